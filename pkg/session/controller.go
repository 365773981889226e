package session

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"agrodesk/pkg/api"
)

const botSender = "AgroDesk"

var (
	// ErrWrongState is returned when a transition is attempted from a state
	// that does not allow it.
	ErrWrongState = errors.New("operation not allowed in current state")
)

// Controller is the single-session state machine behind the chat view.
// It is synchronous and not goroutine-safe: the UI event loop is the only
// caller, and all suspension happens in the caller's HTTP commands.
type Controller struct {
	state     State
	sessionID string
	userID    string
	userName  string

	messages []ChatMessage
	seq      int

	pendingText string // user text held between BeginSend and ResolveSend
	startErr    error  // last session-start failure, surfaced by the error panel
	closeAck    api.CloseResponse
	closed      bool // close already requested; second close is a no-op
}

// NewController creates a controller with no session. userName is the
// display name attached to outgoing messages; empty means "You".
func NewController(userName string) *Controller {
	if strings.TrimSpace(userName) == "" {
		userName = "You"
	}
	return &Controller{
		state:    StateNone,
		userID:   NewUserID(),
		userName: userName,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// SessionID returns the backend-assigned identifier, empty before start.
func (c *Controller) SessionID() string { return c.sessionID }

// UserID returns the client-generated correlation tag for this controller.
func (c *Controller) UserID() string { return c.userID }

// IsSending reports whether a send is in flight.
func (c *Controller) IsSending() bool { return c.state == StateSending }

// StartErr returns the failure from the last session start, if any.
func (c *Controller) StartErr() error { return c.startErr }

// CloseAck returns the last close acknowledgement.
func (c *Controller) CloseAck() api.CloseResponse { return c.closeAck }

// Messages returns the transcript in insertion order. The returned slice is
// a copy; entries are never reordered or mutated.
func (c *Controller) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// BeginStart moves into starting. Allowed with no session or when retrying
// a failed start.
func (c *Controller) BeginStart() error {
	if c.state != StateNone && c.state != StateFailed {
		return ErrWrongState
	}
	c.state = StateStarting
	c.startErr = nil
	slog.Debug("session_start_begin", "user_id", c.userID)
	return nil
}

// ResolveStart completes a start attempt. On success the session id is
// assigned once and never changes for this session's lifetime.
func (c *Controller) ResolveStart(sessionID string, err error) {
	if c.state != StateStarting {
		return
	}
	if err != nil {
		c.state = StateFailed
		c.startErr = err
		slog.Error("session_start_failed", "error", err)
		return
	}
	c.sessionID = sessionID
	c.state = StateActive
	slog.Info("session_started", "session_id", sessionID)
}

// BeginSend accepts one user message for delivery. It reports false while
// another send is in flight, while the session is not active, or for blank
// input; the caller treats false as a no-op.
func (c *Controller) BeginSend(text string) bool {
	text = strings.TrimSpace(text)
	if c.state != StateActive || text == "" {
		return false
	}
	c.state = StateSending
	c.pendingText = text
	slog.Debug("send_begin", "session_id", c.sessionID, "chars", len(text))
	return true
}

// ResolveSend completes the in-flight send. Success appends exactly two
// messages, user's then bot's. Failure appends exactly one error-flagged bot
// message; the session stays active either way.
func (c *Controller) ResolveSend(reply api.SendReply, err error) {
	if c.state != StateSending {
		return
	}
	text := c.pendingText
	c.pendingText = ""
	c.state = StateActive

	if err != nil {
		slog.Warn("send_failed", "session_id", c.sessionID, "error", err)
		c.append(ChatMessage{
			Content: "Message could not be delivered: " + err.Error(),
			Sender:  botSender,
			IsBot:   true,
			IsError: true,
		})
		return
	}

	c.append(ChatMessage{
		Content: text,
		Sender:  c.userName,
	})
	bot := ChatMessage{
		Content: reply.Reply,
		Sender:  botSender,
		IsBot:   true,
	}
	if reply.FlowState != "" {
		bot.AgentType = reply.FlowState
	}
	c.append(bot)
	slog.Debug("send_resolved", "session_id", c.sessionID,
		"flow_state", reply.FlowState, "work_order_id", reply.WorkOrderID)
}

// Close transitions active to closed. The status change is local and
// immediate; the backend acknowledgement arrives via ResolveClose. A second
// close reports false and changes nothing.
func (c *Controller) Close() bool {
	if c.state != StateActive || c.closed {
		return false
	}
	c.state = StateClosed
	c.closed = true
	slog.Info("session_closed", "session_id", c.sessionID)
	return true
}

// ResolveClose records the backend acknowledgement. The session stays
// closed even if the backend call failed; the user recovers via reset.
func (c *Controller) ResolveClose(ack api.CloseResponse, err error) {
	if err != nil {
		slog.Warn("close_ack_failed", "session_id", c.sessionID, "error", err)
		return
	}
	c.closeAck = ack
}

// Reset discards a closed or failed session so a fresh one can start. The
// next start yields a new backend-assigned identifier.
func (c *Controller) Reset() error {
	if c.state != StateClosed && c.state != StateFailed {
		return ErrWrongState
	}
	slog.Info("session_reset", "old_session_id", c.sessionID)
	c.state = StateNone
	c.sessionID = ""
	c.messages = nil
	c.seq = 0
	c.pendingText = ""
	c.startErr = nil
	c.closeAck = api.CloseResponse{}
	c.closed = false
	return nil
}

// LoadHistory replaces the transcript with the server's stored turns,
// preserving their order. Only meaningful on an active session.
func (c *Controller) LoadHistory(msgs []api.HistoryMessage) {
	if c.state != StateActive {
		return
	}
	c.messages = nil
	c.seq = 0
	for _, m := range msgs {
		entry := ChatMessage{
			Content: m.Content,
			Sender:  botSender,
			IsBot:   true,
		}
		if m.Role == "user" {
			entry.Sender = c.userName
			entry.IsBot = false
		}
		if ts, ok := parseTimestamp(m.Timestamp); ok {
			entry.Timestamp = ts
		}
		c.append(entry)
	}
	slog.Debug("history_loaded", "session_id", c.sessionID, "messages", len(msgs))
}

// parseTimestamp accepts RFC 3339 and the backend's zone-less variant.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (c *Controller) append(m ChatMessage) {
	c.seq++
	m.ID = messageID(c.seq)
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	c.messages = append(c.messages, m)
}
