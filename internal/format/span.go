// Package format turns raw chat text into a typed span sequence and renders
// that sequence as sanitized HTML.
//
// The supported markup is deliberately small:
//
//	```code block```   `inline code`   **bold**   *italic*   [text](https://link)
//
// Newlines become line breaks. Everything else is plain text.
package format

import "strings"

// Kind identifies the type of a span
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindCode
	KindCodeBlock
	KindLink
	KindBreak
)

// String returns a short name for the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindCode:
		return "code"
	case KindCodeBlock:
		return "code-block"
	case KindLink:
		return "link"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Span is one element of formatted text.
//
// Text holds the raw content of text, code and code-block spans. Bold,
// italic and link spans carry their content in Children. URL is only set
// on links.
type Span struct {
	Kind     Kind
	Text     string
	URL      string
	Children []Span
}

// Language splits a code block into an optional language tag and its body.
// A tag is a single word on the first line, e.g. ```go.
func (s Span) Language() (lang, body string) {
	if s.Kind != KindCodeBlock {
		return "", s.Text
	}
	first, rest, ok := strings.Cut(s.Text, "\n")
	first = strings.TrimSpace(first)
	if !ok || first == "" || strings.ContainsAny(first, " \t`") || len(first) > 20 {
		return "", strings.TrimPrefix(s.Text, "\n")
	}
	return first, rest
}

// Plain returns the visible text of spans without any markup.
func Plain(spans []Span) string {
	var sb strings.Builder
	writePlain(&sb, spans)
	return sb.String()
}

func writePlain(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case KindText, KindCode:
			sb.WriteString(s.Text)
		case KindCodeBlock:
			_, body := s.Language()
			sb.WriteString(body)
		case KindBreak:
			sb.WriteByte('\n')
		case KindBold, KindItalic, KindLink:
			writePlain(sb, s.Children)
		}
	}
}
