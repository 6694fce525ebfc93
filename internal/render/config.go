package render

import (
	"github.com/diogo/webchat/internal/config"
)

// OptionsFromConfig builds render options from the user configuration,
// resolving an "auto" style against theme.
func OptionsFromConfig(cfg config.Config, theme string) Options {
	md := cfg.Markdown
	opts := DefaultOptions()
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks
	return opts.ForTheme(theme)
}
