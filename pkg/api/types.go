package api

import "fmt"

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindNetwork covers transport failures (no HTTP response received).
	KindNetwork ErrorKind = iota
	// KindServer covers non-2xx responses from the backend.
	KindServer
	// KindNotFound covers 404s on session routes (stale session id).
	KindNotFound
)

// Error is the typed failure returned by all client operations.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, 0 for network failures
	Message string // server-provided detail or transport error text
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network failure: %s", e.Message)
	case KindNotFound:
		return fmt.Sprintf("not found (status %d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
}

// StartSessionResponse is returned by POST /session/start.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// SendMessageRequest is the body for POST /session/message.
type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	UserID    string `json:"user_id,omitempty"`
}

// SendReply is the backend's answer to a sent message. FlowState and the
// execution summary are backend-supplied metadata, opaque to this client.
type SendReply struct {
	OK                 bool           `json:"ok"`
	Reply              string         `json:"reply"`
	FlowState          string         `json:"flow_state,omitempty"`
	NeedsClarification bool           `json:"needs_clarification,omitempty"`
	WorkOrderID        string         `json:"work_order_id,omitempty"`
	ExecutionSummary   map[string]any `json:"execution_summary,omitempty"`
}

// HistoryMessage is one stored turn from GET /session/history/{id}.
type HistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// HistoryResponse wraps the ordered message log for a session.
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// CloseResponse acknowledges POST /session/close/{id}.
type CloseResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Dashboard payloads. These mirror the backend verbatim; the client does no
// response shaping.

// Agent describes one pipeline agent shown on the dashboard.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// TicketStep is one agent action recorded on a ticket.
type TicketStep struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
	TS    string `json:"ts"`
}

// Ticket is a helpdesk ticket with its processing trail.
type Ticket struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Summary  string       `json:"summary"`
	Channel  string       `json:"channel"`
	Location string       `json:"location"`
	Crop     string       `json:"crop"`
	Stage    string       `json:"stage,omitempty"`
	Images   []string     `json:"images"`
	Steps    []TicketStep `json:"steps"`
	Status   string       `json:"status"`
	Decision string       `json:"decision,omitempty"`
}

// Runbook is an automation the backend can execute.
type Runbook struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Safe        bool   `json:"safe"`
}

// SymptomStat is one row of the top-symptoms metric.
type SymptomStat struct {
	Machine    string `json:"machine"`
	Symptom    string `json:"symptom"`
	Percentage int    `json:"percentage"`
}

// Metrics aggregates resolution statistics for the dashboard.
type Metrics struct {
	Reduction         int           `json:"reduction"`
	AvgResolutionTime int           `json:"avgResolutionTime"`
	Accuracy          int           `json:"accuracy"`
	Escalated         int           `json:"escalated"`
	TopSymptoms       []SymptomStat `json:"topSymptoms"`
}

// Plot is a monitored field plot.
type Plot struct {
	ID     string  `json:"id"`
	Crop   string  `json:"crop"`
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
