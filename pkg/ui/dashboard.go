package ui

import (
	"fmt"
	"strings"

	"agrodesk/pkg/api"
	"agrodesk/pkg/ui/styles"
)

// DashboardData bundles everything the dashboard tab shows.
type DashboardData struct {
	Tickets  []api.Ticket
	Agents   []api.Agent
	Runbooks []api.Runbook
	Metrics  api.Metrics
	Plots    []api.Plot
}

// Dashboard renders the operations overview tab. Data is fetched lazily the
// first time the tab is opened and kept until the user refreshes.
type Dashboard struct {
	data    DashboardData
	loaded  bool
	loading bool
	loadErr string

	lines   []string
	width   int
	height  int
	scrollY int
}

// NewDashboard creates an empty dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Loaded reports whether data has been fetched at least once.
func (d *Dashboard) Loaded() bool { return d.loaded }

// Loading reports whether a fetch is in flight.
func (d *Dashboard) Loading() bool { return d.loading }

// SetLoading marks a fetch as started.
func (d *Dashboard) SetLoading() {
	d.loading = true
	d.loadErr = ""
}

// SetData stores fetched dashboard data and rebuilds the view.
func (d *Dashboard) SetData(data DashboardData) {
	d.data = data
	d.loaded = true
	d.loading = false
	d.loadErr = ""
	d.scrollY = 0
	d.rebuild()
}

// SetError records a failed fetch.
func (d *Dashboard) SetError(msg string) {
	d.loading = false
	d.loadErr = msg
}

// SetSize sets the visible area.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.rebuild()
}

// HandleKey processes navigation keys, reporting whether the key was
// consumed. Refresh ('r') is handled by the model since it needs a command.
func (d *Dashboard) HandleKey(key string) bool {
	switch key {
	case "up":
		if d.scrollY > 0 {
			d.scrollY--
		}
		return true
	case "down":
		if d.scrollY < d.maxScroll() {
			d.scrollY++
		}
		return true
	case "pgup":
		d.scrollY -= d.height
		if d.scrollY < 0 {
			d.scrollY = 0
		}
		return true
	case "pgdown":
		d.scrollY += d.height
		if d.scrollY > d.maxScroll() {
			d.scrollY = d.maxScroll()
		}
		return true
	}
	return false
}

// View renders the visible window of the dashboard.
func (d *Dashboard) View() string {
	if d.height < 1 || d.width < 1 {
		return ""
	}

	if d.loadErr != "" {
		return d.fillLines([]string{
			dashErrorStyle.Render(truncateToWidth("Dashboard unavailable: "+d.loadErr, d.width)),
			dashMutedStyle.Render("Press r to retry"),
		})
	}
	if d.loading && !d.loaded {
		return d.fillLines([]string{dashMutedStyle.Render("Loading dashboard...")})
	}
	if !d.loaded {
		return d.fillLines([]string{dashMutedStyle.Render("Dashboard not loaded yet")})
	}

	start := d.scrollY
	end := start + d.height
	if end > len(d.lines) {
		end = len(d.lines)
	}
	return d.fillLines(d.lines[start:end])
}

func (d *Dashboard) fillLines(lines []string) string {
	out := make([]string, 0, d.height)
	for _, line := range lines {
		if len(out) == d.height {
			break
		}
		out = append(out, padStyled(line, d.width))
	}
	for len(out) < d.height {
		out = append(out, strings.Repeat(" ", d.width))
	}
	return strings.Join(out, "\n")
}

func (d *Dashboard) maxScroll() int {
	max := len(d.lines) - d.height
	if max < 0 {
		return 0
	}
	return max
}

func (d *Dashboard) rebuild() {
	if d.width <= 0 || !d.loaded {
		d.lines = nil
		return
	}

	var lines []string
	add := func(line string) {
		lines = append(lines, truncateToWidth(line, d.width))
	}

	lines = append(lines, dashTitleStyle.Render(truncateToWidth("Tickets", d.width)))
	for _, t := range d.data.Tickets {
		status := t.Status
		if t.Decision != "" {
			status = fmt.Sprintf("%s, %s", t.Status, t.Decision)
		}
		add(fmt.Sprintf("%s  %-18s %s [%s]", t.ID, t.Type, t.Summary, status))
		add(fmt.Sprintf("       %s | %s | %s", t.Location, t.Crop, t.Channel))
	}

	lines = append(lines, "", dashTitleStyle.Render(truncateToWidth("Agents", d.width)))
	for _, a := range d.data.Agents {
		add(fmt.Sprintf("%-16s %s", a.Name, a.Role))
	}

	lines = append(lines, "", dashTitleStyle.Render(truncateToWidth("Runbooks", d.width)))
	for _, rb := range d.data.Runbooks {
		marker := "auto"
		if !rb.Safe {
			marker = "needs approval"
		}
		add(fmt.Sprintf("%s  %-24s %s (%s)", rb.ID, rb.Name, rb.Description, marker))
	}

	m := d.data.Metrics
	lines = append(lines, "", dashTitleStyle.Render(truncateToWidth("Metrics", d.width)))
	add(fmt.Sprintf("Escalation reduction %d%% | Avg resolution %d min | Accuracy %d%% | Escalated %d%%",
		m.Reduction, m.AvgResolutionTime, m.Accuracy, m.Escalated))
	for _, s := range m.TopSymptoms {
		add(fmt.Sprintf("  %s: %s (%d%%)", s.Machine, s.Symptom, s.Percentage))
	}

	lines = append(lines, "", dashTitleStyle.Render(truncateToWidth("Plots", d.width)))
	for _, p := range d.data.Plots {
		add(fmt.Sprintf("%-6s %-10s %-12s (%.1f, %.1f)", p.ID, p.Crop, p.Status, p.Lat, p.Lng))
	}

	lines = append(lines, "", dashMutedStyle.Render(truncateToWidth("r refresh | tab back to chat", d.width)))

	d.lines = lines
	if d.scrollY > d.maxScroll() {
		d.scrollY = d.maxScroll()
	}
}

var (
	dashTitleStyle = styles.TitleStyle
	dashMutedStyle = styles.TextMutedStyle
	dashErrorStyle = styles.ErrorStyle
)
