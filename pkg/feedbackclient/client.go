// Package feedbackclient is a small fire-and-forget client for the feedback
// ingestion endpoint. Integrations call Submit with the user's text; the
// package POSTs it as JSON and returns the typed ingestion response.
//
// Configuration is explicit: every call accepts Options, and the only shared
// state is the process-wide default endpoint. That default is a single
// mutex-guarded binding meant to be set once at startup via Configure;
// per-call Options override it without touching the global.
package feedbackclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultEndpoint is the initial submission target, matching the path the
// backend serves the ingestion handler on.
const DefaultEndpoint = "/api/feedback"

var (
	mu              sync.RWMutex
	defaultEndpoint = DefaultEndpoint
)

// Options configures a submission. The zero value uses the process-wide
// default endpoint and a shared HTTP client with a 10s timeout.
type Options struct {
	// Endpoint overrides the configured submission URL for this call.
	Endpoint string
	// HTTPClient overrides the client used for the request; useful for
	// tests and custom transports.
	HTTPClient *http.Client
}

// Configure sets the process-wide default endpoint for subsequent Submit
// calls. Call it once at startup; per-call Options are the injectable
// alternative for anything more dynamic.
func Configure(opts Options) {
	if opts.Endpoint == "" {
		return
	}
	mu.Lock()
	defaultEndpoint = opts.Endpoint
	mu.Unlock()
}

// Feedback mirrors the persisted feedback item in ingestion responses.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag mirrors a persisted tag in ingestion responses.
type Tag struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	FeedbackID string `json:"feedbackId"`
}

// Response is the parsed ingestion response body.
type Response struct {
	Success  bool     `json:"success"`
	Feedback Feedback `json:"feedback"`
	Tags     []Tag    `json:"tags"`
	Error    string   `json:"error,omitempty"`
}

var sharedClient = &http.Client{Timeout: 10 * time.Second}

// Submit POSTs {"content": content} to the configured (or overridden)
// endpoint and returns the parsed response.
//
// On a non-2xx status the returned error carries the server-provided error
// message when the body has one, or a status-derived message otherwise. The
// un-keyed public endpoint shape means Submit is typically used behind a
// server-side forwarder that attaches the API key (see NewHandler).
func Submit(ctx context.Context, content string, opts ...Options) (*Response, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	endpoint := o.Endpoint
	if endpoint == "" {
		mu.RLock()
		endpoint = defaultEndpoint
		mu.RUnlock()
	}
	client := o.HTTPClient
	if client == nil {
		client = sharedClient
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var out Response
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && out.Error != "" {
			return nil, fmt.Errorf("submit feedback: %s", out.Error)
		}
		return nil, fmt.Errorf("failed to submit feedback: status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &out, nil
}
