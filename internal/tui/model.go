package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/webchat/internal/api"
	"github.com/diogo/webchat/internal/chat"
	"github.com/diogo/webchat/internal/config"
	"github.com/diogo/webchat/internal/history"
	"github.com/diogo/webchat/internal/models"
	"github.com/diogo/webchat/internal/render"
	"github.com/diogo/webchat/internal/settings"
)

const (
	minInputHeight  = 1
	maxInputHeight  = 6
	inputCharLimit  = 4000
	feedbackTimeout = 2 * time.Second
	alertTimeout    = 4 * time.Second
)

// Messages exchanged with commands
type (
	historyLoadedMsg struct {
		count int
		err   error
	}
	responseMsg struct {
		result chat.Result
	}
	clearedMsg struct {
		err error
	}
	settingsChangedMsg struct {
		settings settings.Settings
	}
	alertClearMsg struct{}
)

// inputBox lets the chat controller drive the textarea. The model is
// copied on every update so the textarea lives behind a pointer.
type inputBox struct {
	ta textarea.Model
}

func (b *inputBox) Value() string { return b.ta.Value() }
func (b *inputBox) Reset()        { b.ta.Reset() }
func (b *inputBox) Focus()        { b.ta.Focus() }

// keyedConfirm answers the clear prompt with the key the user pressed
type keyedConfirm struct {
	answer bool
}

func (c *keyedConfirm) Confirm(string) bool { return c.answer }

type banner struct {
	text string
}

// Model represents the chat TUI state
type Model struct {
	client api.ClientInterface
	cfg    config.Config
	ctx    context.Context
	logger *slog.Logger

	transcript *chat.Transcript
	controller *chat.Controller
	loader     *history.Loader
	settings   *settings.Controller
	updates    <-chan settings.Settings
	term       *render.Terminal

	input   *inputBox
	send    *chat.Button
	confirm *keyedConfirm
	alert   *banner
	bell    io.Writer
	copy    func(string) error

	viewport viewport.Model
	spinner  spinner.Model

	drawn          uint64
	dirty          bool
	confirming     bool
	loadingHistory bool
	feedback       string

	ready  bool
	width  int
	height int
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithConfig sets the configuration used for rendering
func WithConfig(cfg config.Config) ModelOption {
	return func(m *Model) { m.cfg = cfg }
}

// WithContext sets the context for backend calls
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSettings sets the preferences controller. Without it the model
// keeps preferences in memory.
func WithSettings(ctrl *settings.Controller) ModelOption {
	return func(m *Model) { m.settings = ctrl }
}

// WithSettingsUpdates makes the model apply settings received on ch,
// typically from settings.Watch.
func WithSettingsUpdates(ch <-chan settings.Settings) ModelOption {
	return func(m *Model) { m.updates = ch }
}

// WithBell sets where the notification bell is written
func WithBell(w io.Writer) ModelOption {
	return func(m *Model) { m.bell = w }
}

// WithClipboard replaces the clipboard writer
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) { m.copy = fn }
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ClientInterface, opts ...ModelOption) Model {
	m := Model{
		client:     client,
		cfg:        config.DefaultConfig(),
		ctx:        context.Background(),
		logger:     slog.Default(),
		transcript: chat.NewTranscript(),
		send:       chat.NewButton(),
		confirm:    &keyedConfirm{},
		alert:      &banner{},
		bell:       os.Stderr,
		copy:       clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.settings == nil {
		m.settings = settings.NewController(settings.NewMemoryStore(nil), nil,
			settings.WithDefaultTheme(models.ThemeDark))
		m.settings.Load()
	}

	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = inputCharLimit
	ta.ShowLineNumbers = false
	ta.SetHeight(minInputHeight)
	ta.Focus()
	m.input = &inputBox{ta: ta}

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Points
	m.spinner = s

	prefs, bell, alert := m.settings, m.bell, m.alert
	m.controller = chat.NewController(client, m.transcript, m.input, m.send,
		chat.WithConfirmer(m.confirm),
		chat.WithAlerter(chat.AlertFunc(func(msg string) { alert.text = msg })),
		chat.WithNotifier(chat.NotifyFunc(func() {
			if prefs.SoundEnabled() {
				fmt.Fprint(bell, "\a")
			}
		})),
		chat.WithLogger(m.logger),
	)
	m.loader = history.NewLoader(client, m.transcript, m.controller.Renderer(), m.logger)
	m.loadingHistory = true

	m.applySettings(m.settings.Get())
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.loadHistory()}
	if m.updates != nil {
		cmds = append(cmds, waitForSettings(m.updates))
	}
	return tea.Batch(cmds...)
}

func (m Model) loadHistory() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		n, err := loader.Load(ctx)
		return historyLoadedMsg{count: n, err: err}
	}
}

func waitForSettings(ch <-chan settings.Settings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return settingsChangedMsg{settings: s}
	}
}

func clearAlert(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return alertClearMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true

	case historyLoadedMsg:
		m.loadingHistory = false
		if msg.err != nil {
			m.feedback = "History unavailable"
			cmds = append(cmds, clearFeedback(feedbackTimeout))
		}

	case responseMsg:
		m.controller.Finish(msg.result)

	case clearedMsg:
		if err := m.controller.FinishClear(msg.err); err != nil {
			cmds = append(cmds, clearAlert(alertTimeout))
		}

	case alertClearMsg:
		m.alert.text = ""

	case feedbackClearMsg:
		m.feedback = ""

	case settingsChangedMsg:
		m.applySettings(msg.settings)
		cmds = append(cmds, waitForSettings(m.updates))

	case spinner.TickMsg:
		if m.controller.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "alt+enter":
			m.input.ta.InsertString("\n")
			m.layout()
			return m, nil

		case "ctrl+l":
			m.confirming = true
			return m, nil

		case "ctrl+y":
			return m.copyLastReply()

		case "ctrl+t":
			theme, err := m.settings.ToggleTheme()
			return m.settingChanged("Theme: "+theme, err)

		case "ctrl+d":
			mode, err := m.settings.CycleMessageDisplay()
			return m.settingChanged("Display: "+string(mode), err)

		case "ctrl+s":
			enabled, err := m.settings.ToggleSound()
			return m.settingChanged("Sound: "+onOff(enabled), err)
		}
	}

	var cmd tea.Cmd
	m.input.ta, cmd = m.input.ta.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.layout()
	m.refresh()

	return m, tea.Batch(cmds...)
}

// submit starts sending the input. Empty input and a pending reply are
// both ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.controller.Begin()
	if err != nil {
		return m, nil
	}
	m.layout()
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, sendMessage(m.ctx, req))
}

// sendMessage creates a command that sends a message to the API
func sendMessage(ctx context.Context, req *chat.Request) tea.Cmd {
	return func() tea.Msg {
		return responseMsg{result: req.Do(ctx)}
	}
}

// updateConfirm handles the clear prompt
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y":
		m.confirm.answer = true
	case "n", "N", "esc":
		m.confirm.answer = false
	default:
		return m, nil
	}
	m.confirming = false

	req, err := m.controller.BeginClear()
	if err != nil {
		return m, nil
	}
	m.refresh()

	ctx := m.ctx
	return m, func() tea.Msg {
		return clearedMsg{err: req.Do(ctx)}
	}
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	reply, ok := m.transcript.LastAssistant()
	switch {
	case !ok:
		m.feedback = "Nothing to copy"
	case m.copy(reply.Content) != nil:
		m.feedback = "Copy failed"
	default:
		m.feedback = "Copied last reply"
	}
	return m, clearFeedback(feedbackTimeout)
}

func (m Model) settingChanged(feedback string, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.logger.Warn("failed to save settings", "error", err)
		feedback = "Could not save settings"
	}
	m.feedback = feedback
	m.applySettings(m.settings.Get())
	m.refresh()
	return m, clearFeedback(feedbackTimeout)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// applySettings restyles the view for new preferences
func (m *Model) applySettings(s settings.Settings) {
	UpdateTheme(s.Theme)
	m.styleInput()
	m.term = render.NewTerminal(render.TerminalOptions{
		Theme:     s.Theme,
		Mode:      s.MessageDisplay,
		Width:     m.contentWidth(),
		Markdown:  render.OptionsFromConfig(m.cfg, s.Theme),
		CodeStyle: m.cfg.CodeStyle,
	})
	m.dirty = true
}

func (m *Model) styleInput() {
	ta := &m.input.ta
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = st.inputText
	ta.FocusedStyle.Placeholder = st.placeholder
	ta.BlurredStyle = ta.FocusedStyle
	m.spinner.Style = st.loading
}

func (m Model) contentWidth() int {
	// messages panel border and padding
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// layout sizes the viewport and grows the input with its content
func (m *Model) layout() {
	if m.width == 0 {
		return
	}

	lines := m.input.ta.LineCount()
	if lines < minInputHeight {
		lines = minInputHeight
	}
	if lines > maxInputHeight {
		lines = maxInputHeight
	}
	if lines != m.input.ta.Height() {
		m.input.ta.SetHeight(lines)
	}
	// panel border, padding and the label
	m.input.ta.SetWidth(m.width - 7)

	headerHeight := 4 // border + title + margin
	inputHeight := lines + 2
	statusHeight := 1
	panelBorder := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - panelBorder
	if vpHeight < 3 {
		vpHeight = 3
	}
	width := m.contentWidth()

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = scrollKeys()
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	if m.term == nil || m.term.Width() != width {
		m.applySettings(m.settings.Get())
	}
}

// scrollKeys keeps printable keys for the textarea
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+f")),
		Up:           key.NewBinding(key.WithKeys("ctrl+up")),
		Down:         key.NewBinding(key.WithKeys("ctrl+down")),
	}
}

// refresh redraws the transcript when it or the renderer changed
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	if v := m.transcript.Version(); m.dirty || v != m.drawn {
		m.viewport.SetContent(m.term.Transcript(m.transcript.Entries()))
		m.drawn = v
		m.dirty = false
	}
	if m.transcript.TakeScroll() {
		m.viewport.GotoBottom()
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return st.loading.Render("  Initializing...")
	}

	panelWidth := m.width - 2

	header := m.renderHeader(panelWidth)
	messages := st.messages.Width(panelWidth).Render(m.viewport.View())
	input := m.renderInput(panelWidth)
	status := m.renderStatusBar(m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, messages, input, status)
}

func (m Model) renderHeader(width int) string {
	s := m.settings.Get()
	title := st.title.Render("✦ webchat")
	server := st.subtitle.Render(m.client.BaseURL())

	sound := "🔇"
	if s.SoundEnabled {
		sound = "🔔"
	}
	info := st.hint.Render(fmt.Sprintf("%s · %s %s", s.Theme, s.MessageDisplay, sound))

	left := title + "  " + server
	gap := width - 4 - lipgloss.Width(left) - lipgloss.Width(info)
	if gap < 1 {
		gap = 1
	}
	return st.header.Width(width).Render(left + strings.Repeat(" ", gap) + info)
}

func (m Model) renderInput(width int) string {
	label := st.inputLabel.Render("›")
	if m.controller.Busy() {
		label = m.spinner.View() + " "
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, label, m.input.ta.View())
	return st.input.Width(width).Render(row)
}

// renderStatusBar renders the bottom line. Prompts and alerts take the
// place of the shortcuts.
func (m Model) renderStatusBar(width int) string {
	style := st.status.Width(width).Align(lipgloss.Center)

	switch {
	case m.confirming:
		return style.Render(st.prompt.Render(chat.ClearPrompt + " (y/n)"))
	case m.alert.text != "":
		return style.Render(st.alert.Render("⚠ " + m.alert.text))
	case m.controller.Busy():
		return style.Render(st.loading.Render("Thinking..."))
	case m.feedback != "":
		return style.Render(st.subtitle.Render("✓ " + m.feedback))
	case m.loadingHistory:
		return style.Render(st.hint.Render("Loading history..."))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+L", "Clear"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+D", "Display"},
		{"Ctrl+T", "Theme"},
		{"Ctrl+S", "Sound"},
	}

	sep := "  │  "
	var bar string
	for _, s := range shortcuts {
		item := st.statusKey.Render(s.key) + st.statusDesc.Render(" "+s.desc)
		next := item
		if bar != "" {
			next = bar + st.statusDesc.Render(sep) + item
		}
		if lipgloss.Width(next) > width {
			break
		}
		bar = next
	}
	return style.Render(bar)
}

// Transcript returns the entries shown by the model
func (m Model) Transcript() *chat.Transcript {
	return m.transcript
}

// RunChat starts the chat TUI
func RunChat(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
