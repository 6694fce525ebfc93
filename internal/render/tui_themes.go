package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/webchat/internal/models"
)

// TUITheme defines the color scheme for the chat view
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Bubble borders per role
	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color

	// CodeStyle is the chroma style that suits the background
	CodeStyle string
}

var (
	// DarkTheme is based on the Tokyo Night palette
	DarkTheme = TUITheme{
		Name:        models.ThemeDark,
		Description: "Dark background with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		UserBubble:      lipgloss.Color("#7aa2f7"),
		AssistantBubble: lipgloss.Color("#414868"),

		CodeStyle: "monokai",
	}

	// LightTheme is based on the Tokyo Night Day palette
	LightTheme = TUITheme{
		Name:        models.ThemeLight,
		Description: "Light background for bright terminals",

		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#d0d5e3"),
		Border:     lipgloss.Color("#a8aecb"),

		Primary:   lipgloss.Color("#2e7de9"),
		Secondary: lipgloss.Color("#587539"),
		Accent:    lipgloss.Color("#9854f1"),
		Warning:   lipgloss.Color("#8c6c3e"),
		Error:     lipgloss.Color("#f52a65"),

		Text:     lipgloss.Color("#3760bf"),
		TextDim:  lipgloss.Color("#6172b0"),
		TextMute: lipgloss.Color("#a8aecb"),

		UserBubble:      lipgloss.Color("#2e7de9"),
		AssistantBubble: lipgloss.Color("#a8aecb"),

		CodeStyle: "github",
	}
)

// GetTUIThemeByName returns the theme for a settings theme name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	switch name {
	case models.ThemeDark:
		return DarkTheme, true
	case models.ThemeLight:
		return LightTheme, true
	default:
		return TUITheme{}, false
	}
}

// ThemeFor returns the theme for name, falling back to the dark theme
func ThemeFor(name string) TUITheme {
	if theme, ok := GetTUIThemeByName(name); ok {
		return theme
	}
	return DarkTheme
}

// AvailableTUIThemes returns every theme
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{DarkTheme, LightTheme}
}
