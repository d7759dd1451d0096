package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
)

const (
	// PostResultTimeout bounds a single result upload
	PostResultTimeout = 5 * time.Second
)

// ResultsClient uploads finished games to the API server.
type ResultsClient struct {
	apiURL     string
	httpClient *http.Client
}

type NewResultsClientOptions struct {
	APIURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

func NewResultsClient(opts NewResultsClientOptions) *ResultsClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ResultsClient{
		apiURL:     strings.TrimRight(opts.APIURL, "/"),
		httpClient: httpClient,
	}
}

// PostResult stores a result and returns the id assigned by the server.
func (c *ResultsClient) PostResult(ctx context.Context, result *types.Result) (string, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/results", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create result request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send result request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to post result: status: %s, body: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	created := struct {
		ID string `json:"id"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode result response: %v", err)
	}
	return created.ID, nil
}
