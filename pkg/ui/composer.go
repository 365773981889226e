package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

const composerHeight = 3

// Composer wraps the message input area. It is disabled while a request is
// in flight and after the session is closed.
type Composer struct {
	textarea textarea.Model
	enabled  bool
}

// NewComposer creates the input area in its disabled state. It is enabled
// once the session becomes active.
func NewComposer() *Composer {
	ta := textarea.New()
	ta.Placeholder = "Connecting..."
	ta.SetHeight(composerHeight)
	return &Composer{textarea: ta}
}

// SetWidth resizes the input area.
func (c *Composer) SetWidth(width int) {
	c.textarea.SetWidth(width)
}

// SetEnabled toggles whether input is accepted, with a placeholder
// explaining why when it is not.
func (c *Composer) SetEnabled(enabled bool, placeholder string) {
	c.enabled = enabled
	c.textarea.Placeholder = placeholder
	if enabled {
		c.textarea.Focus()
	} else {
		c.textarea.Blur()
	}
}

// Enabled reports whether the composer accepts input.
func (c *Composer) Enabled() bool { return c.enabled }

// Focus gives the textarea keyboard focus.
func (c *Composer) Focus() {
	if c.enabled {
		c.textarea.Focus()
	}
}

// Blur removes keyboard focus.
func (c *Composer) Blur() {
	c.textarea.Blur()
}

// Submit returns the trimmed input and clears it. The second return is
// false when the input is blank.
func (c *Composer) Submit() (string, bool) {
	content := strings.TrimSpace(c.textarea.Value())
	if content == "" {
		return "", false
	}
	c.textarea.Reset()
	return content, true
}

// Value returns the current raw input.
func (c *Composer) Value() string {
	return c.textarea.Value()
}

// InsertPaste inserts pasted text at the cursor.
func (c *Composer) InsertPaste(content string) {
	if c.enabled {
		c.textarea.InsertString(content)
	}
}

// Update routes a key event to the textarea.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if !c.enabled {
		return nil
	}
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

// View renders the input area.
func (c *Composer) View() string {
	return c.textarea.View()
}
