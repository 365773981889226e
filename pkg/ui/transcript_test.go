package ui

import (
	"strings"
	"testing"
	"time"

	"agrodesk/pkg/session"
)

func fixedTime(hour, min int) time.Time {
	return time.Date(2025, 11, 14, hour, min, 0, 0, time.UTC)
}

func sampleMessages() []session.ChatMessage {
	return []session.ChatMessage{
		{ID: "msg-1", Content: "Ping", Sender: "You", Timestamp: fixedTime(8, 5)},
		{ID: "msg-2", Content: "Pong", Sender: "AgroDesk", IsBot: true, AgentType: "triage", Timestamp: fixedTime(8, 6)},
	}
}

func TestTranscriptRendersMessages(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(60, 10)
	tr.SetMessages(sampleMessages())

	view := stripANSI(tr.View())
	if !strings.Contains(view, "You: Ping") {
		t.Errorf("Expected user message in view, got %q", view)
	}
	if !strings.Contains(view, "AgroDesk (triage): Pong") {
		t.Errorf("Expected bot message with flow state in view, got %q", view)
	}
}

func TestTranscriptWrapsLongContent(t *testing.T) {
	long := strings.Repeat("word ", 30)
	tr := NewTranscript()
	tr.SetSize(20, 40)
	tr.SetMessages([]session.ChatMessage{
		{Content: strings.TrimSpace(long), Sender: "You", Timestamp: fixedTime(9, 0)},
	})

	for _, line := range strings.Split(stripANSI(tr.View()), "\n") {
		if len([]rune(strings.TrimRight(line, " "))) > 20 {
			t.Errorf("Expected wrapped lines within width, got %q", line)
		}
	}
}

func TestTranscriptFollowsTail(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(40, 3)

	var msgs []session.ChatMessage
	for i := 0; i < 10; i++ {
		msgs = append(msgs, session.ChatMessage{Content: "message", Sender: "You", Timestamp: fixedTime(8, i)})
	}
	tr.SetMessages(msgs)

	if tr.scrollY != tr.maxScroll() {
		t.Errorf("Expected follow to pin scroll to %d, got %d", tr.maxScroll(), tr.scrollY)
	}

	// Scrolling up detaches from the tail.
	tr.HandleKey("up")
	if tr.follow {
		t.Error("Expected follow disabled after scrolling up")
	}

	prev := tr.scrollY
	tr.SetMessages(append(msgs, session.ChatMessage{Content: "new", Sender: "You", Timestamp: fixedTime(9, 0)}))
	if tr.scrollY != prev {
		t.Errorf("Expected scroll position kept while detached, got %d", tr.scrollY)
	}

	// End re-attaches.
	tr.HandleKey("end")
	if !tr.follow || tr.scrollY != tr.maxScroll() {
		t.Error("Expected end key to re-enable follow at the tail")
	}
}

func TestTranscriptErrorStyling(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(80, 5)
	tr.SetMessages([]session.ChatMessage{
		{
			Content:   "Message could not be delivered: network unreachable",
			Sender:    "AgroDesk",
			IsBot:     true,
			IsError:   true,
			Timestamp: fixedTime(8, 6),
		},
	})

	view := stripANSI(tr.View())
	if !strings.Contains(view, "Message could not be delivered: network unreachable") {
		t.Errorf("Expected error text in view, got %q", view)
	}
}

func TestTranscriptPlainText(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(60, 10)
	tr.SetMessages(sampleMessages())

	text := tr.PlainText()
	want := "[08:05] You: Ping\n[08:06] AgroDesk: Pong"
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestTranscriptCopyKeyReturnsCommand(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(60, 10)
	tr.SetMessages(sampleMessages())

	cmd, handled := tr.HandleKey("y")
	if !handled {
		t.Fatal("Expected y key to be handled")
	}
	if cmd == nil {
		t.Fatal("Expected a clipboard command")
	}
}

func TestTokenizeBold(t *testing.T) {
	tokens := tokenizeBold("plain **bold words** tail")

	want := []chatToken{
		{text: "plain"},
		{text: "bold", bold: true},
		{text: "words", bold: true},
		{text: "tail"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("Token %d: expected %+v, got %+v", i, want[i], tok)
		}
	}
}

func TestSplitByWidth(t *testing.T) {
	parts := splitByWidth("abcdefgh", 3)
	want := []string{"abc", "def", "gh"}
	if len(parts) != len(want) {
		t.Fatalf("Expected %v, got %v", want, parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("Part %d: expected %q, got %q", i, want[i], parts[i])
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("short", 10); got != "short" {
		t.Errorf("Expected no truncation, got %q", got)
	}
	if got := truncateToWidth("a very long line of text", 10); got != "a very ..." {
		t.Errorf("Expected ellipsis truncation, got %q", got)
	}
}
