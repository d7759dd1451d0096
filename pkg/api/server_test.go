package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/repositories"
	"github.com/cbodonnell/simon/pkg/repositories/mocks"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repository repositories.Repository) http.Handler {
	return NewRouter(NewAPIServerOptions{
		Repository:  repository,
		AllowOrigin: "https://simon.example",
	})
}

func serve(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouter_healthz(t *testing.T) {
	w := serve(newTestRouter(&mocks.Repository{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "https://simon.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_preflight(t *testing.T) {
	w := serve(newTestRouter(&mocks.Repository{}), http.MethodOptions, "/results", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_listResults(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", target: "/results", wantLimit: repositories.DefaultListLimit, wantStatus: http.StatusOK},
		{name: "explicit limit", target: "/results?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "limit too large", target: "/results?limit=500", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", target: "/results?limit=all", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &mocks.Repository{}
			if tt.wantLimit > 0 {
				repository.On("ListResults", mock.Anything, tt.wantLimit).Return([]*models.Result{{ID: "r1", Outcome: "victory"}}, nil).Once()
			}

			w := serve(newTestRouter(repository), http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var results []*models.Result
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
				require.Len(t, results, 1)
				assert.Equal(t, "r1", results[0].ID)
			}
			repository.AssertExpectations(t)
		})
	}
}

func TestRouter_getResult(t *testing.T) {
	repository := &mocks.Repository{}
	repository.On("GetResult", mock.Anything, "r1").Return(&models.Result{ID: "r1"}, nil).Once()
	repository.On("GetResult", mock.Anything, "missing").Return(nil, &repositories.ErrNotFound{ID: "missing"}).Once()
	repository.On("GetResult", mock.Anything, "broken").Return(nil, fmt.Errorf("connection reset")).Once()
	router := newTestRouter(repository)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/results/r1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/results/missing", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodGet, "/results/broken", "").Code)
	repository.AssertExpectations(t)
}

func TestRouter_createResult(t *testing.T) {
	valid := map[string]interface{}{
		"sessionID":       "s1",
		"player":          "ada",
		"outcome":         "mismatch",
		"round":           3,
		"roundsCompleted": 2,
		"sequenceLength":  3,
		"skillLevel":      1,
	}
	encode := func(overrides map[string]interface{}) string {
		body := map[string]interface{}{}
		for k, v := range valid {
			body[k] = v
		}
		for k, v := range overrides {
			body[k] = v
		}
		b, _ := json.Marshal(body)
		return string(b)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: encode(nil), wantStatus: http.StatusCreated},
		{name: "unknown outcome", body: encode(map[string]interface{}{"outcome": "abandoned"}), wantStatus: http.StatusBadRequest},
		{name: "missing session", body: encode(map[string]interface{}{"sessionID": ""}), wantStatus: http.StatusBadRequest},
		{name: "completed exceeds round", body: encode(map[string]interface{}{"roundsCompleted": 4}), wantStatus: http.StatusBadRequest},
		{name: "bad skill level", body: encode(map[string]interface{}{"skillLevel": 7}), wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: encode(map[string]interface{}{"score": 10}), wantStatus: http.StatusBadRequest},
		{name: "not json", body: "round=3", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &mocks.Repository{}
			if tt.wantStatus == http.StatusCreated {
				repository.On("SaveResult", mock.Anything, mock.MatchedBy(func(r *types.Result) bool {
					return r.SessionID == "s1" && r.Outcome == types.OutcomeMismatch && !r.FinishedAt.IsZero()
				})).Return(&models.Result{ID: "r1", SessionID: "s1"}, nil).Once()
			}

			w := serve(newTestRouter(repository), http.MethodPost, "/results", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			repository.AssertExpectations(t)
		})
	}
}

func TestRouter_createResult_tooLarge(t *testing.T) {
	body := bytes.Repeat([]byte("a"), 1<<13)
	w := serve(newTestRouter(&mocks.Repository{}), http.MethodPost, "/results", `{"player":"`+string(body)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_getStats(t *testing.T) {
	repository := &mocks.Repository{}
	repository.On("GetStats", mock.Anything).Return(&models.Stats{Games: 3, Victories: 1}, nil).Once()

	w := serve(newTestRouter(repository), http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	stats := &models.Stats{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), stats))
	assert.Equal(t, 3, stats.Games)
	assert.Equal(t, 1, stats.Victories)
}
