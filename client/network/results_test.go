package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsClient_PostResult(t *testing.T) {
	var received types.Result
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/results", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"result-1","outcome":"mismatch"}`))
	}))
	defer server.Close()

	client := NewResultsClient(NewResultsClientOptions{APIURL: server.URL + "/"})
	result := &types.Result{
		SessionID:       "session-1",
		Outcome:         types.OutcomeMismatch,
		Round:           3,
		RoundsCompleted: 2,
		SequenceLength:  3,
		FinishedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	id, err := client.PostResult(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "result-1", id)
	assert.Equal(t, "session-1", received.SessionID)
	assert.Equal(t, types.OutcomeMismatch, received.Outcome)
	assert.Equal(t, 2, received.RoundsCompleted)
}

func TestResultsClient_PostResultRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "outcome must be victory or mismatch", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewResultsClient(NewResultsClientOptions{APIURL: server.URL})
	_, err := client.PostResult(context.Background(), &types.Result{SessionID: "session-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "outcome must be victory or mismatch")
}
