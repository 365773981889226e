package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"agrodesk/pkg/session"
	"agrodesk/pkg/ui/styles"
)

// StatusBar renders the single-line bar at the bottom of the screen. It
// shows the session state, a shortened session id and the backend in use.
type StatusBar struct {
	state     session.State
	sessionID string
	baseURL   string
	message   string
	width     int
}

// NewStatusBar creates a status bar pointing at the given backend.
func NewStatusBar(baseURL string) *StatusBar {
	return &StatusBar{baseURL: baseURL, width: 80}
}

// SetWidth updates the width for rendering.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetSession updates the displayed session state and id.
func (s *StatusBar) SetSession(state session.State, sessionID string) {
	s.state = state
	s.sessionID = sessionID
}

// SetMessage sets a transient message shown instead of the default content.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// Render returns the styled status bar string.
func (s *StatusBar) Render() string {
	var content string
	if s.message != "" {
		content = fmt.Sprintf("[agrodesk] %s", s.message)
	} else {
		content = fmt.Sprintf("[agrodesk] %s%s | %s | Press / for commands",
			s.state, shortID(s.sessionID), s.baseURL)
	}

	if maxWidth := s.width - 4; maxWidth > 3 {
		content = truncateToWidth(content, maxWidth)
	}

	padding := s.width - 2 - lipgloss.Width(content)
	if padding > 0 {
		content = content + strings.Repeat(" ", padding)
	}

	return statusBarStyle.Render(content)
}

// shortID renders the first eight characters of the session id as a
// suffix, or nothing when no session exists.
func shortID(id string) string {
	if id == "" {
		return ""
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf(" (%s)", id)
}

var statusBarStyle = styles.StatusBarStyle
