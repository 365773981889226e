package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"agrodesk/pkg/api"
	"agrodesk/pkg/commands"
	"agrodesk/pkg/session"
	"agrodesk/pkg/ui/styles"
)

// tab selects which main view is shown.
type tab int

const (
	tabChat tab = iota
	tabDashboard
)

// Messages produced by backend commands. Each carries the session id the
// request was issued for so responses that outlive their session are
// dropped instead of corrupting a newer one.
type (
	sessionStartedMsg struct {
		sessionID string
		err       error
	}
	sendResultMsg struct {
		sessionID string
		reply     api.SendReply
		err       error
	}
	closeResultMsg struct {
		sessionID string
		ack       api.CloseResponse
		err       error
	}
	historyLoadedMsg struct {
		sessionID string
		messages  []api.HistoryMessage
		err       error
	}
	dashboardLoadedMsg struct {
		data DashboardData
		err  error
	}
)

// Model is the Bubble Tea application state. It owns the session controller
// and translates backend responses into controller transitions.
type Model struct {
	client *api.Client
	ctrl   *session.Controller

	dispatcher *commands.Dispatcher
	transcript *Transcript
	composer   *Composer
	dashboard  *Dashboard
	statusBar  *StatusBar
	spin       spinner.Model

	width  int
	height int
	ready  bool

	activeTab tab
	notice    string
}

// NewModel wires the application together.
func NewModel(client *api.Client, ctrl *session.Controller) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.TextMutedStyle

	return Model{
		client:     client,
		ctrl:       ctrl,
		dispatcher: commands.NewDispatcher(),
		transcript: NewTranscript(),
		composer:   NewComposer(),
		dashboard:  NewDashboard(),
		statusBar:  NewStatusBar(client.BaseURL),
		spin:       sp,
	}
}

// Init starts the backend session immediately.
func (m Model) Init() tea.Cmd {
	if err := m.ctrl.BeginStart(); err != nil {
		slog.Error("initial_start_rejected", "error", err)
	}
	return tea.Batch(m.startSessionCmd(), m.spin.Tick)
}

// Update handles all application events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if m.activeTab == tabChat && !m.transcript.IsFocused() {
			m.composer.InsertPaste(msg.Content)
		}
		return m, nil

	case sessionStartedMsg:
		m.ctrl.ResolveStart(msg.sessionID, msg.err)
		m.syncSessionState()
		return m, nil

	case sendResultMsg:
		if msg.sessionID != m.ctrl.SessionID() {
			slog.Debug("stale_send_result_dropped", "session_id", msg.sessionID)
			return m, nil
		}
		m.ctrl.ResolveSend(msg.reply, msg.err)
		m.syncSessionState()
		return m, nil

	case closeResultMsg:
		if msg.sessionID != m.ctrl.SessionID() {
			return m, nil
		}
		m.ctrl.ResolveClose(msg.ack, msg.err)
		m.syncSessionState()
		return m, nil

	case historyLoadedMsg:
		if msg.sessionID != m.ctrl.SessionID() {
			return m, nil
		}
		if msg.err != nil {
			m.notice = "Could not load history: " + msg.err.Error()
			return m, nil
		}
		m.ctrl.LoadHistory(msg.messages)
		m.notice = ""
		m.syncSessionState()
		return m, nil

	case dashboardLoadedMsg:
		if msg.err != nil {
			m.dashboard.SetError(msg.err.Error())
		} else {
			m.dashboard.SetData(msg.data)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.toggleDashboard()
	}

	if m.activeTab == tabDashboard {
		switch key {
		case "r":
			m.dashboard.SetLoading()
			return m, m.loadDashboardCmd()
		case "esc", "q":
			m.activeTab = tabChat
			m.composer.Focus()
			return m, nil
		}
		m.dashboard.HandleKey(key)
		return m, nil
	}

	// Chat tab.
	if m.ctrl.State() == session.StateFailed && key == "r" {
		return m.retryStart()
	}

	if key == "esc" {
		if m.transcript.IsFocused() {
			m.transcript.Blur()
			m.composer.Focus()
		} else {
			m.transcript.Focus()
			m.composer.Blur()
		}
		return m, nil
	}

	if m.transcript.IsFocused() {
		if cmd, handled := m.transcript.HandleKey(key); handled {
			return m, cmd
		}
		return m, nil
	}

	if key == "enter" {
		return m.submitInput()
	}

	return m, m.composer.Update(msg)
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text, ok := m.composer.Submit()
	if !ok {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		return m.dispatchCommand(text)
	}

	if !m.ctrl.BeginSend(text) {
		switch m.ctrl.State() {
		case session.StateClosed:
			m.notice = "Session is closed. Type /new to start a fresh one."
		case session.StateSending:
			m.notice = "Still waiting for the previous reply."
		default:
			m.notice = "No active session yet."
		}
		return m, nil
	}

	m.notice = ""
	m.syncSessionState()
	return m, m.sendMessageCmd(m.ctrl.SessionID(), text)
}

func (m Model) dispatchCommand(input string) (tea.Model, tea.Cmd) {
	name := strings.Fields(input)[0]
	result := m.dispatcher.Dispatch(name, &commands.Context{
		State:     m.ctrl.State(),
		SessionID: m.ctrl.SessionID(),
	})
	m.notice = result.Content

	switch result.Action {
	case commands.ActionClose:
		if m.ctrl.Close() {
			sessionID := m.ctrl.SessionID()
			m.syncSessionState()
			return m, m.closeSessionCmd(sessionID)
		}

	case commands.ActionReset:
		if err := m.ctrl.Reset(); err == nil {
			return m.retryStart()
		}

	case commands.ActionLoadHistory:
		return m, m.loadHistoryCmd(m.ctrl.SessionID())

	case commands.ActionToggleDashboard:
		return m.toggleDashboard()
	}

	return m, nil
}

func (m Model) toggleDashboard() (tea.Model, tea.Cmd) {
	if m.activeTab == tabDashboard {
		m.activeTab = tabChat
		m.composer.Focus()
		return m, nil
	}

	m.activeTab = tabDashboard
	m.composer.Blur()
	if !m.dashboard.Loaded() && !m.dashboard.Loading() {
		m.dashboard.SetLoading()
		return m, m.loadDashboardCmd()
	}
	return m, nil
}

func (m Model) retryStart() (tea.Model, tea.Cmd) {
	if err := m.ctrl.BeginStart(); err != nil {
		return m, nil
	}
	m.notice = ""
	m.syncSessionState()
	return m, m.startSessionCmd()
}

// syncSessionState pushes controller state into the presentation
// components after every transition.
func (m *Model) syncSessionState() {
	state := m.ctrl.State()
	m.transcript.SetMessages(m.ctrl.Messages())
	m.statusBar.SetSession(state, m.ctrl.SessionID())

	switch state {
	case session.StateActive:
		m.composer.SetEnabled(true, "Describe the problem in the field...")
	case session.StateSending:
		m.composer.SetEnabled(false, "Waiting for reply...")
	case session.StateClosed:
		m.composer.SetEnabled(false, "Session closed. Type /new to start again.")
	default:
		m.composer.SetEnabled(false, "Connecting...")
	}
}

// Backend commands. Each runs one HTTP call and reports back as a message.

func (m Model) startSessionCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		id, err := client.StartSession(context.Background())
		return sessionStartedMsg{sessionID: id, err: err}
	}
}

func (m Model) sendMessageCmd(sessionID, text string) tea.Cmd {
	client := m.client
	userID := m.ctrl.UserID()
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), sessionID, text, userID)
		return sendResultMsg{sessionID: sessionID, reply: reply, err: err}
	}
}

func (m Model) closeSessionCmd(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ack, err := client.CloseSession(context.Background(), sessionID)
		return closeResultMsg{sessionID: sessionID, ack: ack, err: err}
	}
}

func (m Model) loadHistoryCmd(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		messages, err := client.History(context.Background(), sessionID)
		return historyLoadedMsg{sessionID: sessionID, messages: messages, err: err}
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		var data DashboardData
		var err error

		if data.Tickets, err = client.Tickets(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.Agents, err = client.Agents(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.Runbooks, err = client.Runbooks(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.Metrics, err = client.Metrics(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.Plots, err = client.Plots(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{data: data}
	}
}

// layout distributes the window between the components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.composer.SetWidth(m.width)
	m.dashboard.SetSize(m.width, m.height-2)
	m.transcript.SetSize(m.width, m.chatBodyHeight())
}

// chatBodyHeight is the transcript area: everything minus the tab line,
// notice line, composer and status bar.
func (m Model) chatBodyHeight() int {
	h := m.height - 3 - composerHeight
	if h < 1 {
		return 1
	}
	return h
}

// View implements tea.Model. The client always runs on the alternate
// screen so quitting restores the user's shell scrollback.
func (m Model) View() tea.View {
	content, cursor := m.Render()
	var view tea.View
	view.Content = content
	view.Cursor = cursor
	view.AltScreen = true
	return view
}

// Render produces the full frame. A panic in any component is contained
// here so a rendering bug degrades to a fallback screen instead of killing
// the session.
func (m Model) Render() (content string, cursor *tea.Cursor) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render_panic", "panic", r)
			content = "Something went wrong while drawing the screen.\nThe session is still alive. Press ctrl+c to quit."
			cursor = nil
		}
	}()

	if !m.ready {
		return "Starting agrodesk...", nil
	}

	var sections []string
	sections = append(sections, m.renderTabs())

	if m.activeTab == tabDashboard {
		sections = append(sections, m.dashboard.View())
	} else {
		sections = append(sections, m.renderChatBody())
		sections = append(sections, m.renderNotice())
		sections = append(sections, m.composer.View())
	}

	sections = append(sections, m.statusBar.Render())
	return strings.Join(sections, "\n"), nil
}

func (m Model) renderTabs() string {
	chat := styles.TabInactiveStyle.Render("Chat")
	dash := styles.TabInactiveStyle.Render("Dashboard")
	if m.activeTab == tabChat {
		chat = styles.TabActiveStyle.Render("Chat")
	} else {
		dash = styles.TabActiveStyle.Render("Dashboard")
	}
	return padStyled(chat+" "+dash, m.width)
}

func (m Model) renderChatBody() string {
	switch m.ctrl.State() {
	case session.StateStarting:
		return m.fillBody(m.spin.View() + " Starting session...")
	case session.StateFailed:
		return m.renderStartFailure()
	}
	return m.transcript.View()
}

func (m Model) renderStartFailure() string {
	msg := "Could not reach the helpdesk backend."
	if err := m.ctrl.StartErr(); err != nil {
		msg = err.Error()
	}
	body := styles.ErrorStyle.Render(truncateToWidth(msg, m.width)) + "\n" +
		styles.TextMutedStyle.Render("Press r to retry.")
	return m.fillBody(body)
}

// fillBody pads content to the chat body height so the layout stays stable.
func (m Model) fillBody(content string) string {
	lines := strings.Split(content, "\n")
	height := m.chatBodyHeight()
	out := make([]string, 0, height)
	for _, line := range lines {
		if len(out) == height {
			break
		}
		out = append(out, padStyled(line, m.width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", m.width))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderNotice() string {
	if m.ctrl.State() == session.StateSending {
		return padStyled(m.spin.View()+styles.TextMutedStyle.Render(" Sending..."), m.width)
	}

	if m.notice == "" {
		if m.ctrl.State() == session.StateClosed {
			ack := m.ctrl.CloseAck()
			text := "Session closed. Type /new to start a fresh one."
			if ack.Message != "" {
				text = fmt.Sprintf("%s %s", ack.Message, "Type /new to start a fresh one.")
			}
			return padStyled(styles.SuccessStyle.Render(truncateToWidth(text, m.width)), m.width)
		}
		return strings.Repeat(" ", maxInt(m.width, 1))
	}

	// Multi-line command output (such as /help) is flattened to one line;
	// the full text remains visible via the notice until replaced.
	line := strings.ReplaceAll(m.notice, "\n", "  ")
	return padStyled(styles.TextMutedStyle.Render(truncateToWidth(line, m.width)), m.width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
