package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"agrodesk/pkg/session"
)

func stripANSI(s string) string {
	return ansi.Strip(s)
}

// normalizeOutput strips styling and trailing whitespace so golden files
// hold stable plain text.
func normalizeOutput(output string) string {
	output = strings.ReplaceAll(output, "\r", "")
	lines := strings.Split(stripANSI(output), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func TestTranscriptGolden(t *testing.T) {
	tr := NewTranscript()
	tr.SetSize(40, 6)
	tr.SetMessages(sampleMessages())

	golden.RequireEqual(t, []byte(normalizeOutput(tr.View())))
}

func TestStatusBarGolden(t *testing.T) {
	sb := NewStatusBar("http://localhost:8000")
	sb.SetWidth(80)

	golden.RequireEqual(t, []byte(normalizeOutput(sb.Render())))
}

func TestStatusBarGolden_ActiveSession(t *testing.T) {
	sb := NewStatusBar("http://localhost:8000")
	sb.SetWidth(80)
	sb.SetSession(session.StateActive, "a1b2c3d4e5f6")

	golden.RequireEqual(t, []byte(normalizeOutput(sb.Render())))
}
