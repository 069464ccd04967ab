package feedbackclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// HandlerOptions configures the forwarding handler returned by NewHandler.
type HandlerOptions struct {
	// APIKey is attached to forwarded requests via the x-api-key header.
	// Keeping it server-side is the point of the forwarder.
	APIKey string
	// Tags are attached to every forwarded submission.
	Tags []Tag
	// Endpoint is the ingestion URL to forward to. Defaults to the
	// process-wide configured endpoint.
	Endpoint string
	// HTTPClient overrides the client used for forwarding.
	HTTPClient *http.Client
}

type forwardHandler struct {
	opts   HandlerOptions
	client *http.Client
}

// NewHandler returns an http.Handler that hosts can mount inside their own
// application to accept feedback from browsers without exposing the API key.
// It reads {"content": ...} from the request, attaches the configured key and
// tags, forwards to the ingestion endpoint, and relays the upstream status
// and body verbatim.
func NewHandler(opts HandlerOptions) http.Handler {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &forwardHandler{opts: opts, client: client}
}

func (h *forwardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var in struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tags := h.opts.Tags
	if tags == nil {
		tags = []Tag{}
	}
	payload, err := json.Marshal(map[string]any{
		"content": in.Content,
		"tags":    tags,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	endpoint := h.opts.Endpoint
	if endpoint == "" {
		mu.RLock()
		endpoint = defaultEndpoint
		mu.RUnlock()
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", h.opts.APIKey)

	resp, err := h.client.Do(req)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "Failed to reach feedback service")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
