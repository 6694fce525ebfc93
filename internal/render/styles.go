package render

import (
	"os"

	"github.com/diogo/webchat/internal/models"
)

// Glamour standard style names
const (
	StyleAuto       = "auto"
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo contains information about a markdown style for display purposes.
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles returns the built-in glamour styles
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleAuto, Description: "Follow the chat theme (default)"},
		{Name: StyleDark, Description: "Dark theme"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: StylePink, Description: "Pink accents"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// IsBuiltinStyle reports whether style is a glamour standard style.
// Anything else is treated as a path to a JSON style file.
func IsBuiltinStyle(style string) bool {
	for _, s := range AvailableStyles() {
		if s.Name == style && s.Name != StyleAuto {
			return true
		}
	}
	return false
}

// ResolveStyle turns "auto" (or an empty style) into the glamour style
// matching the chat theme. GLAMOUR_STYLE takes precedence over both.
func ResolveStyle(style, theme string) string {
	if env := os.Getenv("GLAMOUR_STYLE"); env != "" {
		return env
	}
	if style != "" && style != StyleAuto {
		return style
	}
	if theme == models.ThemeLight {
		return StyleLight
	}
	return StyleDark
}
