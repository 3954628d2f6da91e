package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
	heartbeatout "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/out"
)

// HTTPAPIClient posts heartbeats to a WakaTime or Wakapi-compatible API.
// No timeout is configured beyond the transport defaults; the dispatch
// layer never retries.
type HTTPAPIClient struct {
	httpClient *http.Client
}

func NewHTTPAPIClient() heartbeatout.APIClient {
	return &HTTPAPIClient{httpClient: &http.Client{}}
}

func (c *HTTPAPIClient) Send(ctx context.Context, beat domain.Heartbeat, target domain.Target) (int, error) {
	payload, err := json.Marshal(beat)
	if err != nil {
		return 0, fmt.Errorf("marshal heartbeat: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL(), bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build heartbeat request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", target.AuthHeader())
	req.Header.Set("User-Agent", domain.PluginUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send heartbeat: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Only the status code is consumed; the response body is ignored.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &domain.StatusError{Code: resp.StatusCode}
	}
	return resp.StatusCode, nil
}
