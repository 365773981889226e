package commands

import (
	"strings"
	"testing"

	"agrodesk/pkg/session"
)

func TestDispatchUnknownCommand(t *testing.T) {
	d := NewDispatcher()
	result := d.Dispatch("/bogus", &Context{State: session.StateActive})

	if result.Action != ActionNone {
		t.Errorf("Expected no action for unknown command, got %v", result.Action)
	}
	if !strings.Contains(result.Content, "/bogus") {
		t.Errorf("Expected unknown command name in content, got %q", result.Content)
	}
}

func TestCloseCommand(t *testing.T) {
	d := NewDispatcher()

	tests := []struct {
		name  string
		state session.State
		want  Action
	}{
		{"active session closes", session.StateActive, ActionClose},
		{"closed session is a no-op", session.StateClosed, ActionNone},
		{"no session is a no-op", session.StateNone, ActionNone},
		{"sending session is a no-op", session.StateSending, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Dispatch("/close", &Context{State: tt.state})
			if result.Action != tt.want {
				t.Errorf("Expected action %v, got %v", tt.want, result.Action)
			}
		})
	}
}

func TestNewCommand(t *testing.T) {
	d := NewDispatcher()

	tests := []struct {
		name  string
		state session.State
		want  Action
	}{
		{"after close", session.StateClosed, ActionReset},
		{"after failure", session.StateFailed, ActionReset},
		{"while active", session.StateActive, ActionNone},
		{"while starting", session.StateStarting, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Dispatch("/new", &Context{State: tt.state})
			if result.Action != tt.want {
				t.Errorf("Expected action %v, got %v", tt.want, result.Action)
			}
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	d := NewDispatcher()

	if got := d.Dispatch("/history", &Context{State: session.StateActive}).Action; got != ActionLoadHistory {
		t.Errorf("Expected ActionLoadHistory, got %v", got)
	}
	if got := d.Dispatch("/history", &Context{State: session.StateClosed}).Action; got != ActionNone {
		t.Errorf("Expected no action on closed session, got %v", got)
	}
}

func TestDashboardCommand(t *testing.T) {
	d := NewDispatcher()
	if got := d.Dispatch("/dashboard", &Context{State: session.StateNone}).Action; got != ActionToggleDashboard {
		t.Errorf("Expected ActionToggleDashboard, got %v", got)
	}
}

func TestHelpListsAllCommands(t *testing.T) {
	d := NewDispatcher()
	result := d.Dispatch("/help", &Context{State: session.StateActive})

	for _, name := range d.Names() {
		if !strings.Contains(result.Content, name) {
			t.Errorf("Expected help to mention %s", name)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	d := NewDispatcher()
	names := d.Names()
	if len(names) != 5 {
		t.Fatalf("Expected 5 registered commands, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %v", names)
		}
	}
}
