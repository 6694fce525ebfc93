package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	want := Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
	if got := DefaultOptions(); got != want {
		t.Errorf("DefaultOptions() = %+v, want %+v", got, want)
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle(StyleLight).WithEmoji(false)

	if opts.Width != 100 || opts.Style != StyleLight || opts.EnableEmoji {
		t.Errorf("builders lost a value: %+v", opts)
	}
	if !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("builders should keep the other fields: %+v", opts)
	}

	// builders return copies
	base := DefaultOptions()
	_ = base.WithWidth(10)
	if base.Width != 80 {
		t.Error("WithWidth mutated its receiver")
	}
}

func TestOptionsForTheme(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	tests := []struct {
		style, theme, want string
	}{
		{StyleAuto, "dark", StyleDark},
		{StyleAuto, "light", StyleLight},
		{"", "light", StyleLight},
		{StyleDracula, "light", StyleDracula},
	}
	for _, tt := range tests {
		got := DefaultOptions().WithStyle(tt.style).ForTheme(tt.theme).Style
		if got != tt.want {
			t.Errorf("ForTheme(%q, %q) = %q, want %q", tt.style, tt.theme, got, tt.want)
		}
	}

	t.Setenv("GLAMOUR_STYLE", "pink")
	if got := ResolveStyle(StyleDracula, "dark"); got != "pink" {
		t.Errorf("GLAMOUR_STYLE should win, got %q", got)
	}
}

func TestIsBuiltinStyle(t *testing.T) {
	for _, s := range []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StylePink, StyleNoTTY, StyleASCII} {
		if !IsBuiltinStyle(s) {
			t.Errorf("IsBuiltinStyle(%q) = false", s)
		}
	}
	for _, s := range []string{StyleAuto, "/tmp/style.json", ""} {
		if IsBuiltinStyle(s) {
			t.Errorf("IsBuiltinStyle(%q) = true", s)
		}
	}
	if len(AvailableStyles()) != 8 {
		t.Errorf("AvailableStyles() = %d entries", len(AvailableStyles()))
	}
}

func TestMarkdownReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		width int
		want  []string
	}{
		{"heading", "# Setup steps", 80, []string{"Setup", "steps"}},
		{"emphasis", "That is **really** *important*", 80, []string{"really", "important"}},
		{"code block", "```sh\ndocker compose up -d\n```", 80, []string{"docker", "compose"}},
		{"link", "See [the docs](https://docs.docker.com)", 80, []string{"docs"}},
		{"list", "- first\n- second", 80, []string{"first", "second"}},
		{"table", "| A | B |\n|---|---|\n| 1 | 2 |", 80, []string{"A", "B"}},
		{"narrow", "# A heading long enough to wrap at forty columns", 40, []string{"heading"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MarkdownWithWidth(tt.reply, tt.width)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %s", want, out)
				}
			}
		})
	}
}

func TestMarkdownEmoji(t *testing.T) {
	out, err := Markdown("Thanks :smile:", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, ":smile:") {
		t.Errorf("emoji should be converted: %s", out)
	}

	out, err = Markdown("Thanks :smile:", DefaultOptions().WithEmoji(false))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ":smile:") {
		t.Errorf("emoji should stay literal: %s", out)
	}
}

func TestMarkdownOrPlain(t *testing.T) {
	out := MarkdownOrPlain("**hi**", DefaultOptions())
	if !strings.Contains(out, "hi") || strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("unexpected output %q", out)
	}

	raw := MarkdownOrPlain("**hi**", DefaultOptions().WithStyle("nonexistent_style_path"))
	if raw != "**hi**" {
		t.Errorf("expected raw fallback, got %q", raw)
	}
}
