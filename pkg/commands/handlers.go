package commands

import (
	"strings"

	"agrodesk/pkg/session"
)

// CloseHandler handles the /close command
type CloseHandler struct{}

func (h *CloseHandler) Name() string        { return "/close" }
func (h *CloseHandler) Description() string { return "Close the current session" }

func (h *CloseHandler) Execute(ctx *Context) *Result {
	switch ctx.State {
	case session.StateActive:
		return &Result{Title: "Close", Action: ActionClose}
	case session.StateClosed:
		return &Result{Title: "Close", Content: "Session is already closed. Use /new to start over."}
	default:
		return &Result{Title: "Close", Content: "No active session to close."}
	}
}

// NewSessionHandler handles the /new command
type NewSessionHandler struct{}

func (h *NewSessionHandler) Name() string        { return "/new" }
func (h *NewSessionHandler) Description() string { return "Start a fresh session" }

func (h *NewSessionHandler) Execute(ctx *Context) *Result {
	switch ctx.State {
	case session.StateClosed, session.StateFailed:
		return &Result{Title: "New Session", Action: ActionReset}
	case session.StateActive, session.StateSending:
		return &Result{Title: "New Session", Content: "Close the current session first (/close)."}
	default:
		return &Result{Title: "New Session", Content: "A session is already being set up."}
	}
}

// HistoryHandler handles the /history command
type HistoryHandler struct{}

func (h *HistoryHandler) Name() string        { return "/history" }
func (h *HistoryHandler) Description() string { return "Reload the transcript from the server" }

func (h *HistoryHandler) Execute(ctx *Context) *Result {
	if ctx.State != session.StateActive {
		return &Result{Title: "History", Content: "History is only available on an active session."}
	}
	return &Result{Title: "History", Action: ActionLoadHistory}
}

// DashboardHandler handles the /dashboard command
type DashboardHandler struct{}

func (h *DashboardHandler) Name() string        { return "/dashboard" }
func (h *DashboardHandler) Description() string { return "Toggle the operations dashboard" }

func (h *DashboardHandler) Execute(ctx *Context) *Result {
	return &Result{Title: "Dashboard", Action: ActionToggleDashboard}
}

// HelpHandler handles the /help command
type HelpHandler struct{}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show available commands" }

func (h *HelpHandler) Execute(ctx *Context) *Result {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, h := range helpOrder {
		sb.WriteString("  " + h.Name() + " - " + h.Description() + "\n")
	}
	sb.WriteString("\nKeys: tab dashboard | y copy transcript | r retry/refresh | ctrl+c quit")
	return &Result{Title: "Help", Content: sb.String()}
}

var helpOrder = []Handler{
	&CloseHandler{},
	&NewSessionHandler{},
	&HistoryHandler{},
	&DashboardHandler{},
	&HelpHandler{},
}
