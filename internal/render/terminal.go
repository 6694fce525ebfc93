package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/diogo/webchat/internal/chat"
	"github.com/diogo/webchat/internal/format"
	"github.com/diogo/webchat/internal/models"
)

const (
	avatarAssistant = "🤖"
	avatarUser      = "🧑"
	minBubbleWidth  = 20
)

// TerminalOptions configures a Terminal
type TerminalOptions struct {
	Theme     string
	Mode      models.DisplayMode
	Width     int
	Markdown  Options
	CodeStyle string // chroma style; empty uses the theme's
}

// Terminal draws transcript entries as styled terminal text
type Terminal struct {
	theme     TUITheme
	mode      models.DisplayMode
	width     int
	markdown  Options
	codeStyle string
}

// NewTerminal creates a terminal renderer
func NewTerminal(opts TerminalOptions) *Terminal {
	theme := ThemeFor(opts.Theme)
	mode := opts.Mode
	if _, err := models.ParseDisplayMode(string(mode)); err != nil {
		mode = models.DefaultDisplayMode
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	codeStyle := opts.CodeStyle
	if codeStyle == "" {
		codeStyle = theme.CodeStyle
	}
	md := opts.Markdown
	if md.Style == "" {
		md = DefaultOptions()
	}
	return &Terminal{
		theme:     theme,
		mode:      mode,
		width:     width,
		markdown:  md.ForTheme(theme.Name),
		codeStyle: codeStyle,
	}
}

// Theme returns the active theme
func (t *Terminal) Theme() TUITheme { return t.theme }

// Mode returns the display mode
func (t *Terminal) Mode() models.DisplayMode { return t.mode }

// Width returns the drawing width
func (t *Terminal) Width() int { return t.width }

// Transcript draws every entry in order
func (t *Terminal) Transcript(entries []chat.Entry) string {
	sep := "\n\n"
	if t.mode == models.DisplayCompact {
		sep = "\n"
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, t.Entry(e))
	}
	return strings.Join(parts, sep)
}

// Entry draws one entry in the active display mode
func (t *Terminal) Entry(e chat.Entry) string {
	switch e.Kind {
	case chat.KindWelcome:
		return t.welcome()
	case chat.KindTyping:
		return t.typing()
	}

	switch t.mode {
	case models.DisplayCompact:
		return t.compact(e)
	case models.DisplayMarkdown:
		return t.markdownEntry(e)
	default:
		return t.comfortable(e)
	}
}

func (t *Terminal) welcome() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(t.theme.Primary).Render("Welcome 👋")
	sub := lipgloss.NewStyle().Foreground(t.theme.TextDim).Render("Start a conversation.")
	return lipgloss.NewStyle().Width(t.width).Align(lipgloss.Center).Render(title + "\n" + sub)
}

func (t *Terminal) typing() string {
	dots := lipgloss.NewStyle().Foreground(t.theme.TextDim).Render("● ● ●")
	if t.mode == models.DisplayCompact {
		return t.label(false) + " " + dots
	}
	return t.avatar(false) + " " + dots
}

func (t *Terminal) avatar(user bool) string {
	if user {
		return avatarUser
	}
	return avatarAssistant
}

func (t *Terminal) label(user bool) string {
	if user {
		return lipgloss.NewStyle().Bold(true).Foreground(t.theme.UserBubble).Render("You ▸")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.theme.Secondary).Render("Bot ▸")
}

func (t *Terminal) bubbleWidth() int {
	w := t.width * 3 / 4
	if w < minBubbleWidth {
		w = minBubbleWidth
	}
	return w
}

func (t *Terminal) baseStyle(e chat.Entry) lipgloss.Style {
	if e.Error {
		return lipgloss.NewStyle().Foreground(t.theme.Error)
	}
	return lipgloss.NewStyle().Foreground(t.theme.Text)
}

// comfortable draws a bordered bubble next to an avatar. Assistant
// entries put the avatar first, user entries put it last and align right.
func (t *Terminal) comfortable(e chat.Entry) string {
	user := e.Message.IsUser()
	border := t.theme.AssistantBubble
	if user {
		border = t.theme.UserBubble
	}
	if e.Error {
		border = t.theme.Error
	}

	// border and padding take four columns
	inner := t.bubbleWidth() - 4
	body := t.render(e.Spans, inner, t.baseStyle(e))

	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(body)

	if user {
		row := lipgloss.JoinHorizontal(lipgloss.Top, bubble, " ", t.avatar(true))
		return lipgloss.PlaceHorizontal(t.width, lipgloss.Right, row)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, t.avatar(false), " ", bubble)
}

func (t *Terminal) compact(e chat.Entry) string {
	label := t.label(e.Message.IsUser())
	width := t.width - lipgloss.Width(label) - 1
	if width < minBubbleWidth {
		width = minBubbleWidth
	}
	body := t.render(e.Spans, width, t.baseStyle(e))
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", body)
}

func (t *Terminal) markdownEntry(e chat.Entry) string {
	user := e.Message.IsUser()
	name := "Assistant"
	color := t.theme.Secondary
	if user {
		name = "You"
		color = t.theme.UserBubble
	}
	header := t.avatar(user) + " " + lipgloss.NewStyle().Bold(true).Foreground(color).Render(name)

	if e.Error {
		return header + "\n" + t.render(e.Spans, t.width, t.baseStyle(e))
	}
	return header + "\n" + MarkdownOrPlain(e.Message.Content, t.markdown.WithWidth(t.width))
}

// Content draws formatted spans wrapped to width
func (t *Terminal) Content(spans []format.Span, width int) string {
	return t.render(spans, width, lipgloss.NewStyle().Foreground(t.theme.Text))
}

func (t *Terminal) render(spans []format.Span, width int, base lipgloss.Style) string {
	w := &spanWriter{t: t, width: width}
	w.write(spans, base)
	w.flush()
	return strings.Join(w.blocks, "\n")
}

// spanWriter collects inline text into wrapped paragraphs and emits code
// blocks unwrapped between them.
type spanWriter struct {
	t      *Terminal
	width  int
	line   strings.Builder
	blocks []string
}

func (w *spanWriter) flush() {
	if w.line.Len() == 0 {
		return
	}
	w.blocks = append(w.blocks, wrapText(w.line.String(), w.width))
	w.line.Reset()
}

func (w *spanWriter) write(spans []format.Span, style lipgloss.Style) {
	theme := w.t.theme
	for _, s := range spans {
		switch s.Kind {
		case format.KindText:
			w.line.WriteString(style.Render(s.Text))
		case format.KindBreak:
			w.line.WriteByte('\n')
		case format.KindBold:
			w.write(s.Children, style.Bold(true))
		case format.KindItalic:
			w.write(s.Children, style.Italic(true))
		case format.KindCode:
			w.line.WriteString(lipgloss.NewStyle().
				Foreground(theme.Accent).
				Background(theme.Surface).
				Render(s.Text))
		case format.KindLink:
			w.write(s.Children, style.Underline(true).Foreground(theme.Primary))
			if format.Plain(s.Children) != s.URL {
				w.line.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(" (" + s.URL + ")"))
			}
		case format.KindCodeBlock:
			w.flush()
			w.blocks = append(w.blocks, w.t.codeBlock(s))
		}
	}
}

func (t *Terminal) codeBlock(s format.Span) string {
	lang, body := s.Language()
	body = strings.TrimRight(body, "\n")
	code := HighlightCode(body, lang, t.codeStyle)

	block := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.theme.Border).
		PaddingLeft(1).
		Render(code)

	if lang == "" {
		return block
	}
	label := lipgloss.NewStyle().Foreground(t.theme.TextDim).Render(lang)
	return label + "\n" + block
}

// wrapText word-wraps s to width, hard-breaking words that do not fit.
// ANSI sequences do not count toward the width.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

// Plain draws spans without styling, wrapped to width. Used for raw and
// piped output.
func Plain(spans []format.Span, width int) string {
	return wrapText(format.Plain(spans), width)
}
