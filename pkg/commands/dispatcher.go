// Package commands routes slash commands typed into the chat composer.
// Handlers only classify intent; the UI layer owns the state changes and
// HTTP calls the resulting action implies.
package commands

import (
	"sort"

	"agrodesk/pkg/session"
)

// Action tells the UI what a command wants done.
type Action int

const (
	// ActionNone means the result only carries text to show inline.
	ActionNone Action = iota
	// ActionClose asks for the current session to be closed.
	ActionClose
	// ActionReset asks for a fresh session after close or failure.
	ActionReset
	// ActionLoadHistory asks for the transcript to be reloaded from the server.
	ActionLoadHistory
	// ActionToggleDashboard switches between the chat and dashboard views.
	ActionToggleDashboard
)

// Result represents the result of a command execution
type Result struct {
	Title   string
	Content string
	Action  Action
}

// Context carries the read-only session facts handlers decide on.
type Context struct {
	State     session.State
	SessionID string
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes commands to their handlers
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&CloseHandler{})
	d.Register(&NewSessionHandler{})
	d.Register(&HistoryHandler{})
	d.Register(&DashboardHandler{})
	d.Register(&HelpHandler{})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Dispatch executes a command by name. Unknown commands never leave the
// client; they produce an inline hint.
func (d *Dispatcher) Dispatch(cmdName string, ctx *Context) *Result {
	handler, ok := d.handlers[cmdName]
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Unknown command: " + cmdName + " (try /help)",
		}
	}

	return handler.Execute(ctx)
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[cmdName]
	return h, ok
}

// Names returns the registered command names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
