package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/webchat/internal/config"
	"github.com/diogo/webchat/internal/models"
	"github.com/diogo/webchat/internal/render"
	"github.com/diogo/webchat/internal/settings"
)

// settingsView represents the current view in the settings menu
type settingsView int

const (
	viewMain settingsView = iota
	viewDisplaySelect
	viewThemeSelect
	viewStyleSelect // Markdown style
)

// Menu item indices for main view
const (
	menuSound = iota
	menuDisplay
	menuTheme
	menuMarkdownStyle
	menuCopyToClipboard
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// SettingsModel is the interactive settings menu
type SettingsModel struct {
	prefs        *settings.Controller
	config       config.Config
	configPath   string
	settingsPath string
	save         func(config.Config) error

	// Navigation
	view          settingsView
	cursor        int
	displayCursor int
	themeCursor   int
	styleCursor   int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewSettingsModel creates the settings menu. Preferences are saved through
// prefs; configuration values are written to configPath.
func NewSettingsModel(prefs *settings.Controller, cfg config.Config, configPath, settingsPath string) SettingsModel {
	m := SettingsModel{
		prefs:           prefs,
		config:          cfg,
		configPath:      configPath,
		settingsPath:    settingsPath,
		view:            viewMain,
		feedbackTimeout: feedbackTimeout,
	}
	m.save = func(c config.Config) error {
		return config.SaveConfigTo(configPath, c)
	}
	m.syncCursors()
	UpdateTheme(prefs.Get().Theme)
	return m
}

// syncCursors points each sub-menu at the current value
func (m *SettingsModel) syncCursors() {
	s := m.prefs.Get()
	for i, mode := range models.AllDisplayModes() {
		if mode == s.MessageDisplay {
			m.displayCursor = i
		}
	}
	for i, theme := range render.AvailableTUIThemes() {
		if theme.Name == s.Theme {
			m.themeCursor = i
		}
	}
	for i, style := range render.AvailableStyles() {
		if style.Name == m.markdownStyle() {
			m.styleCursor = i
		}
	}
}

func (m SettingsModel) markdownStyle() string {
	if m.config.Markdown.Style == "" {
		return render.StyleAuto
	}
	return m.config.Markdown.Style
}

// Init initializes the model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the active view, wrapping around
func (m *SettingsModel) moveCursor(delta int) {
	wrap := func(v, n int) int {
		return ((v+delta)%n + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewDisplaySelect:
		m.displayCursor = wrap(m.displayCursor, len(models.AllDisplayModes()))
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(render.AvailableTUIThemes()))
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, len(render.AvailableStyles()))
	}
}

// report sets the feedback line for the outcome of a save
func (m *SettingsModel) report(err error, format string, args ...any) tea.Cmd {
	if err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = fmt.Sprintf(format, args...)
	}
	return clearFeedback(m.feedbackTimeout)
}

// handleSelect handles menu item selection
func (m SettingsModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuSound:
			enabled, err := m.prefs.ToggleSound()
			return m, m.report(err, "Sound %s", onOff(enabled))

		case menuDisplay:
			m.view = viewDisplaySelect

		case menuTheme:
			m.view = viewThemeSelect

		case menuMarkdownStyle:
			m.view = viewStyleSelect

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m, m.report(m.save(m.config), "Copy to clipboard %s", onOff(m.config.CopyToClipboard))

		case menuExit:
			return m, tea.Quit
		}
		return m, nil

	case viewDisplaySelect:
		mode := models.AllDisplayModes()[m.displayCursor]
		m.view = viewMain
		return m, m.report(m.prefs.SetMessageDisplay(mode), "Message display set to %s", mode)

	case viewThemeSelect:
		theme := render.AvailableTUIThemes()[m.themeCursor].Name
		err := m.prefs.SetTheme(theme)
		if err == nil {
			// Apply the new theme immediately
			UpdateTheme(theme)
		}
		m.view = viewMain
		return m, m.report(err, "Theme set to %s", theme)

	case viewStyleSelect:
		m.config.Markdown.Style = render.AvailableStyles()[m.styleCursor].Name
		m.view = viewMain
		return m, m.report(m.save(m.config), "Markdown style set to %s", m.config.Markdown.Style)
	}

	return m, nil
}

// View renders the TUI
func (m SettingsModel) View() string {
	if !m.ready {
		return st.loading.Render("  Initializing...")
	}

	var sections []string

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := menu.header.Width(contentWidth).Render("✦ Settings")
	sections = append(sections, header)

	paths := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Config:   %s", menu.path.Render(m.configPath)),
		fmt.Sprintf("Settings: %s", menu.path.Render(m.settingsPath)),
	)
	sections = append(sections, menu.panel.Width(contentWidth).Render(paths))

	var body string
	switch m.view {
	case viewMain:
		body = m.renderMainMenu()
	case viewDisplaySelect:
		body = m.renderDisplaySelect()
	case viewThemeSelect:
		body = m.renderThemeSelect()
	case viewStyleSelect:
		body = m.renderStyleSelect()
	}
	sections = append(sections, menu.panel.Width(contentWidth).Render(body))

	if m.feedback != "" {
		sections = append(sections, menu.feedback.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderItem renders one menu line with the cursor when selected
func renderItem(selected bool, label, value string) string {
	cursor := "  "
	style := menu.item
	if selected {
		cursor = menu.cursor.Render("▸ ")
		style = menu.selected
	}
	line := cursor + style.Render(label)
	if value != "" {
		pad := 20 - lipgloss.Width(label)
		if pad < 1 {
			pad = 1
		}
		line += strings.Repeat(" ", pad) + value
	}
	return line
}

// renderMainMenu renders the main settings menu
func (m SettingsModel) renderMainMenu() string {
	s := m.prefs.Get()

	items := []string{
		renderItem(m.cursor == menuSound, "Sound", m.renderBoolValue(s.SoundEnabled)),
		renderItem(m.cursor == menuDisplay, "Message Display", menu.value.Render(string(s.MessageDisplay))),
		renderItem(m.cursor == menuTheme, "Theme", menu.value.Render(s.Theme)),
		renderItem(m.cursor == menuMarkdownStyle, "Markdown Style", menu.value.Render(m.markdownStyle())),
		renderItem(m.cursor == menuCopyToClipboard, "Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)),
		"",
		renderItem(m.cursor == menuExit, "Exit", ""),
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// current marks the active choice in a sub-menu
func current(active bool) string {
	if active {
		return menu.enabled.Render(" (current)")
	}
	return ""
}

func (m SettingsModel) renderDisplaySelect() string {
	active := m.prefs.Get().MessageDisplay
	items := []string{menu.header.Render("Message Display")}
	for i, mode := range models.AllDisplayModes() {
		items = append(items, renderItem(m.displayCursor == i, string(mode), "")+current(mode == active))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m SettingsModel) renderThemeSelect() string {
	active := m.prefs.Get().Theme
	items := []string{menu.header.Render("Theme")}
	for i, theme := range render.AvailableTUIThemes() {
		text := fmt.Sprintf("%s - %s", theme.Name, theme.Description)
		items = append(items, renderItem(m.themeCursor == i, text, "")+current(theme.Name == active))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m SettingsModel) renderStyleSelect() string {
	active := m.markdownStyle()
	items := []string{menu.header.Render("Markdown Style")}
	for i, style := range render.AvailableStyles() {
		text := fmt.Sprintf("%s - %s", style.Name, style.Description)
		items = append(items, renderItem(m.styleCursor == i, text, "")+current(style.Name == active))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m SettingsModel) renderBoolValue(value bool) string {
	if value {
		return menu.enabled.Render("enabled")
	}
	return menu.disabled.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m SettingsModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, st.statusKey.Render(s.key)+st.statusDesc.Render(" "+s.desc))
	}
	return menu.bar.Width(width).Render(strings.Join(items, "  │  "))
}

// RunSettings starts the settings TUI
func RunSettings(m SettingsModel) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
