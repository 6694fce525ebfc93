// Package tui provides the terminal user interface for webchat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/webchat/internal/render"
)

// chatStyles is the chat view's look under one theme
type chatStyles struct {
	header, title, subtitle, hint lipgloss.Style

	messages, input, inputLabel lipgloss.Style
	inputText, placeholder      lipgloss.Style
	loading                     lipgloss.Style

	status, statusKey, statusDesc lipgloss.Style

	// alert is the failure banner, prompt the inline y/n question
	alert, prompt lipgloss.Style
}

// menuStyles is the settings menu's look under one theme
type menuStyles struct {
	header, panel       lipgloss.Style
	item, selected      lipgloss.Style
	cursor, value       lipgloss.Style
	enabled, disabled   lipgloss.Style
	path, feedback, bar lipgloss.Style
}

var (
	st   chatStyles
	menu menuStyles

	// activeTheme is the name last passed to UpdateTheme
	activeTheme string
)

func init() {
	UpdateTheme(render.DarkTheme.Name)
}

// UpdateTheme rebuilds every style from the named theme. Unknown names
// use the dark theme.
func UpdateTheme(name string) {
	theme := render.ThemeFor(name)
	activeTheme = theme.Name
	st = newChatStyles(theme)
	menu = newMenuStyles(theme)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// panel is a rounded box in the theme's border color
func panel(t render.TUITheme, vertical, horizontal int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(vertical, horizontal)
}

func newChatStyles(t render.TUITheme) chatStyles {
	return chatStyles{
		header:   panel(t, 0, 2).MarginBottom(1),
		title:    fg(t.Primary).Bold(true),
		subtitle: fg(t.TextDim),
		hint:     fg(t.TextMute).Italic(true),

		messages:    panel(t, 0, 1),
		input:       panel(t, 0, 1),
		inputLabel:  fg(t.Primary).Bold(true).MarginRight(1),
		inputText:   fg(t.Text),
		placeholder: fg(t.TextDim),
		loading:     fg(t.Accent).Bold(true),

		status:     fg(t.TextMute),
		statusKey:  fg(t.TextDim).Bold(true),
		statusDesc: fg(t.TextMute),

		alert:  fg(t.Error).Bold(true).Padding(0, 1),
		prompt: fg(t.Warning).Bold(true),
	}
}

func newMenuStyles(t render.TUITheme) menuStyles {
	return menuStyles{
		header:   fg(t.Primary).Bold(true).MarginBottom(1).Align(lipgloss.Center),
		panel:    panel(t, 1, 2),
		item:     fg(t.Text).PaddingLeft(2),
		selected: fg(t.Accent).Bold(true),
		cursor:   fg(t.Accent),
		value:    fg(t.TextDim),
		enabled:  fg(t.Secondary),
		disabled: fg(t.Error),
		path:     fg(t.TextMute).Italic(true),
		feedback: fg(t.TextDim).Italic(true).MarginTop(1),
		bar:      fg(t.TextMute).MarginTop(1).Align(lipgloss.Center),
	}
}
