// Package render draws chat content for the terminal: glamour markdown,
// chroma-highlighted code blocks and the themed transcript layout.
package render

// Options controls how a reply's markdown is turned into terminal text.
// Options is comparable and doubles as the renderer pool key.
type Options struct {
	Width int
	// Style is a glamour standard style, "auto", or a JSON style path.
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions is what replies use when the config says nothing.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// ForTheme swaps an "auto" style for the one matching the chat theme.
func (o Options) ForTheme(theme string) Options {
	o.Style = ResolveStyle(o.Style, theme)
	return o
}
