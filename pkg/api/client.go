package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	maxErrorPreview = 200
)

// Client talks to the helpdesk backend. Each call is a single
// fire-and-observe HTTP request: no caching, no retries, no backoff.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: "agrodesk/1.0",
	}
}

// SetTimeout configures the HTTP client timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// StartSession creates a new chat session and returns its identifier.
func (c *Client) StartSession(ctx context.Context) (string, error) {
	var resp StartSessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/session/start", nil, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &Error{Kind: KindServer, Status: http.StatusOK, Message: "backend returned empty session_id"}
	}
	return resp.SessionID, nil
}

// SendMessage delivers one user message to a session and returns the bot
// reply. Delivery must not be assumed on failure; retry is up to the caller.
func (c *Client) SendMessage(ctx context.Context, sessionID, message, userID string) (SendReply, error) {
	req := SendMessageRequest{
		SessionID: sessionID,
		Message:   message,
		UserID:    userID,
	}
	var resp SendReply
	if err := c.doJSON(ctx, http.MethodPost, "/session/message", req, &resp); err != nil {
		return SendReply{}, err
	}
	return resp, nil
}

// History returns the ordered message log for a session.
func (c *Client) History(ctx context.Context, sessionID string) ([]HistoryMessage, error) {
	var resp HistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/session/history/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// CloseSession closes a session. The backend treats a second close as a
// repeat of the last acknowledgement.
func (c *Client) CloseSession(ctx context.Context, sessionID string) (CloseResponse, error) {
	var resp CloseResponse
	if err := c.doJSON(ctx, http.MethodPost, "/session/close/"+sessionID, nil, &resp); err != nil {
		return CloseResponse{}, err
	}
	return resp, nil
}

// Dashboard passthroughs: plain GETs, decoded as-is.

// Tickets returns all helpdesk tickets.
func (c *Client) Tickets(ctx context.Context) ([]Ticket, error) {
	var out []Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/api/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Agents returns the agent pipeline roster.
func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	var out []Agent
	if err := c.doJSON(ctx, http.MethodGet, "/api/agents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Runbooks returns the available automations.
func (c *Client) Runbooks(ctx context.Context) ([]Runbook, error) {
	var out []Runbook
	if err := c.doJSON(ctx, http.MethodGet, "/api/runbooks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Metrics returns aggregated resolution statistics.
func (c *Client) Metrics(ctx context.Context) (Metrics, error) {
	var out Metrics
	if err := c.doJSON(ctx, http.MethodGet, "/api/metrics", nil, &out); err != nil {
		return Metrics{}, err
	}
	return out, nil
}

// Plots returns the monitored field plots.
func (c *Client) Plots(ctx context.Context) ([]Plot, error) {
	var out []Plot
	if err := c.doJSON(ctx, http.MethodGet, "/api/plots", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// doJSON performs one request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	url := c.BaseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.UserAgent)

	slog.Debug("api_request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		slog.Error("api_network_failure", "method", method, "url", url, "error", err)
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("api_read_failure", "method", method, "url", url, "error", err)
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	slog.Debug("api_response", "method", method, "url", url,
		"status_code", resp.StatusCode, "response_size", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return nil
}

func newStatusError(status int, body []byte) *Error {
	message := errorDetail(body)

	kind := KindServer
	if status == http.StatusNotFound {
		kind = KindNotFound
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// errorDetail pulls a human-readable message out of an error body. FastAPI
// style bodies carry {"detail": "..."}; anything else is previewed raw.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}

	preview := strings.TrimSpace(string(body))
	if len(preview) > maxErrorPreview {
		preview = preview[:maxErrorPreview] + "..."
	}
	return preview
}
