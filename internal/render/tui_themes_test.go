package render

import (
	"testing"

	"github.com/diogo/webchat/internal/models"
)

func TestTUITheme_Structure(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		t.Run(theme.Name, func(t *testing.T) {
			if theme.Description == "" {
				t.Error("theme description should not be empty")
			}
			colors := map[string]string{
				"background":      string(theme.Background),
				"surface":         string(theme.Surface),
				"border":          string(theme.Border),
				"primary":         string(theme.Primary),
				"secondary":       string(theme.Secondary),
				"accent":          string(theme.Accent),
				"warning":         string(theme.Warning),
				"error":           string(theme.Error),
				"text":            string(theme.Text),
				"textDim":         string(theme.TextDim),
				"textMute":        string(theme.TextMute),
				"userBubble":      string(theme.UserBubble),
				"assistantBubble": string(theme.AssistantBubble),
			}
			for name, c := range colors {
				if c == "" {
					t.Errorf("%s color should not be empty", name)
				}
			}
			if theme.CodeStyle == "" {
				t.Error("code style should not be empty")
			}
		})
	}
}

func TestGetTUIThemeByName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{models.ThemeDark, models.ThemeDark, true},
		{models.ThemeLight, models.ThemeLight, true},
		{"nord", "", false},
	}

	for _, tt := range tests {
		theme, ok := GetTUIThemeByName(tt.name)
		if ok != tt.wantOK {
			t.Errorf("GetTUIThemeByName(%q) ok = %v", tt.name, ok)
		}
		if theme.Name != tt.want {
			t.Errorf("GetTUIThemeByName(%q) = %q", tt.name, theme.Name)
		}
	}
}

func TestThemeFor(t *testing.T) {
	if ThemeFor(models.ThemeLight).Name != models.ThemeLight {
		t.Error("expected light theme")
	}
	if ThemeFor("unknown").Name != models.ThemeDark {
		t.Error("unknown names should fall back to dark")
	}
}
