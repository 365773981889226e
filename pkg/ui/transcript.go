package ui

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-runewidth"

	"agrodesk/pkg/session"
	"agrodesk/pkg/ui/styles"
)

// Transcript renders the conversation history with scroll support. It keeps
// a pre-wrapped line cache that is rebuilt when the messages or the width
// change.
type Transcript struct {
	messages []session.ChatMessage
	lines    []string
	width    int
	height   int
	scrollY  int
	follow   bool
	focused  bool
}

// NewTranscript creates an empty transcript view.
func NewTranscript() *Transcript {
	return &Transcript{follow: true}
}

// SetSize sets the visible area of the transcript.
func (t *Transcript) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.reflow()
}

// SetMessages replaces the rendered conversation.
func (t *Transcript) SetMessages(messages []session.ChatMessage) {
	t.messages = messages
	t.reflow()
	if t.follow {
		t.scrollY = t.maxScroll()
	}
}

// Focus gives the transcript keyboard control for scrolling.
func (t *Transcript) Focus() { t.focused = true }

// Blur returns keyboard control to the composer.
func (t *Transcript) Blur() { t.focused = false }

// IsFocused reports whether the transcript handles navigation keys.
func (t *Transcript) IsFocused() bool { return t.focused }

// HandleKey processes a navigation key and reports whether it was consumed.
func (t *Transcript) HandleKey(key string) (tea.Cmd, bool) {
	switch key {
	case "up":
		if t.scrollY > 0 {
			t.scrollY--
			t.follow = false
		}
		return nil, true
	case "down":
		if t.scrollY < t.maxScroll() {
			t.scrollY++
		}
		t.follow = t.scrollY >= t.maxScroll()
		return nil, true
	case "pgup":
		t.scrollY -= t.pageSize()
		if t.scrollY < 0 {
			t.scrollY = 0
		}
		t.follow = false
		return nil, true
	case "pgdown":
		t.scrollY += t.pageSize()
		if t.scrollY > t.maxScroll() {
			t.scrollY = t.maxScroll()
		}
		t.follow = t.scrollY >= t.maxScroll()
		return nil, true
	case "home":
		t.scrollY = 0
		t.follow = false
		return nil, true
	case "end":
		t.scrollY = t.maxScroll()
		t.follow = true
		return nil, true
	case "y":
		return t.copyToClipboard(), true
	}
	return nil, false
}

// View renders the visible window of the transcript.
func (t *Transcript) View() string {
	if t.height < 1 || t.width < 1 {
		return ""
	}

	out := make([]string, 0, t.height)
	start := t.scrollY
	end := start + t.height
	if end > len(t.lines) {
		end = len(t.lines)
	}
	for i := start; i < end; i++ {
		out = append(out, padStyled(t.lines[i], t.width))
	}
	for len(out) < t.height {
		out = append(out, strings.Repeat(" ", t.width))
	}
	return strings.Join(out, "\n")
}

// PlainText returns the conversation without styling, used for clipboard
// export.
func (t *Transcript) PlainText() string {
	var sb strings.Builder
	for i, msg := range t.messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format("15:04"), msg.Sender, msg.Content))
	}
	return sb.String()
}

func (t *Transcript) copyToClipboard() tea.Cmd {
	text := t.PlainText()
	return func() tea.Msg {
		_, _ = fmt.Fprint(os.Stdout, osc52.New(text))
		return nil
	}
}

func (t *Transcript) reflow() {
	if t.width <= 0 {
		t.lines = nil
		t.scrollY = 0
		return
	}

	var lines []string
	for i, msg := range t.messages {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderChatMessage(msg, t.width)...)
	}
	t.lines = lines

	if t.scrollY > t.maxScroll() {
		t.scrollY = t.maxScroll()
	}
	if t.scrollY < 0 {
		t.scrollY = 0
	}
}

func (t *Transcript) pageSize() int {
	if t.height > 1 {
		return t.height - 1
	}
	return 1
}

func (t *Transcript) maxScroll() int {
	max := len(t.lines) - t.height
	if max < 0 {
		return 0
	}
	return max
}

// renderChatMessage wraps a single message to width. The sender prefix is
// folded into the first line so wrapping treats it like any other word.
func renderChatMessage(msg session.ChatMessage, width int) []string {
	sender := msg.Sender
	if msg.IsBot && msg.AgentType != "" {
		sender = fmt.Sprintf("%s (%s)", sender, msg.AgentType)
	}
	stamp := msg.Timestamp.Format("15:04")
	raw := fmt.Sprintf("[%s] **%s:** %s", stamp, sender, msg.Content)

	if msg.IsError {
		return wrapPlain(raw, width, transcriptErrorStyle)
	}

	var rendered []string
	for _, line := range strings.Split(sanitizeContent(raw), "\n") {
		rendered = append(rendered, wrapTokens(tokenizeBold(line), width)...)
	}
	if len(rendered) == 0 {
		return []string{""}
	}
	return rendered
}

type chatToken struct {
	text string
	bold bool
}

// tokenizeBold splits a line into words, tracking **bold** spans.
func tokenizeBold(line string) []chatToken {
	var tokens []chatToken
	bold := false

	for len(line) > 0 {
		idx := strings.Index(line, "**")
		segment := line
		if idx >= 0 {
			segment = line[:idx]
		}
		for _, word := range strings.Fields(segment) {
			tokens = append(tokens, chatToken{text: word, bold: bold})
		}
		if idx < 0 {
			break
		}
		bold = !bold
		line = line[idx+2:]
	}

	return tokens
}

func wrapTokens(tokens []chatToken, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	var lineTokens []chatToken
	lineWidth := 0

	flush := func() {
		if len(lineTokens) == 0 {
			lines = append(lines, "")
			return
		}
		lines = append(lines, renderTokenLine(lineTokens))
		lineTokens = nil
		lineWidth = 0
	}

	for _, token := range tokens {
		if token.text == "" {
			continue
		}
		for _, part := range splitByWidth(token.text, width) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				lineWidth++
			}
			lineTokens = append(lineTokens, chatToken{text: part, bold: token.bold})
			lineWidth += partWidth
		}
	}

	if len(lineTokens) > 0 {
		flush()
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func renderTokenLine(tokens []chatToken) string {
	var sb strings.Builder
	for i, token := range tokens {
		if i > 0 {
			sb.WriteString(transcriptTextStyle.Render(" "))
		}
		if token.bold {
			sb.WriteString(transcriptBoldStyle.Render(token.text))
		} else {
			sb.WriteString(transcriptTextStyle.Render(token.text))
		}
	}
	return sb.String()
}

// wrapPlain wraps without markdown handling and applies a single style,
// used for error messages.
func wrapPlain(text string, width int, style lipgloss.Style) []string {
	clean := strings.ReplaceAll(sanitizeContent(text), "**", "")
	var tokens []chatToken
	for _, word := range strings.Fields(clean) {
		tokens = append(tokens, chatToken{text: word})
	}

	if width <= 0 || len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	var current []string
	lineWidth := 0
	for _, token := range tokens {
		for _, part := range splitByWidth(token.text, width) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				lines = append(lines, style.Render(strings.Join(current, " ")))
				current = nil
				lineWidth = 0
			}
			if lineWidth > 0 {
				lineWidth++
			}
			current = append(current, part)
			lineWidth += partWidth
		}
	}
	if len(current) > 0 {
		lines = append(lines, style.Render(strings.Join(current, " ")))
	}
	return lines
}

func splitByWidth(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if text == "" {
		return []string{""}
	}

	var parts []string
	var sb strings.Builder
	currentWidth := 0

	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && currentWidth > 0 {
			parts = append(parts, sb.String())
			sb.Reset()
			currentWidth = 0
		}
		sb.WriteRune(r)
		currentWidth += rw
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return trimToWidth(text, width)
	}
	return trimToWidth(text, width-3) + "..."
}

func trimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += rw
	}
	return sb.String()
}

func padStyled(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// sanitizeContent strips control characters the backend should never send
// but that would corrupt the terminal if echoed.
func sanitizeContent(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

var (
	transcriptTextStyle  = styles.TextStyle
	transcriptBoldStyle  = styles.TextBoldStyle
	transcriptErrorStyle = styles.ErrorStyle
)
