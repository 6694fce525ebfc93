package format

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// HTML formats raw text as sanitized HTML. Empty input yields empty output.
func HTML(s string) string {
	if s == "" {
		return ""
	}
	return RenderHTML(Tokenize(s))
}

// RenderHTML renders spans as HTML. All text is escaped before any tag is
// written, so content can never inject markup.
func RenderHTML(spans []Span) string {
	var sb strings.Builder
	writeHTML(&sb, spans)
	return sb.String()
}

func writeHTML(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case KindText:
			sb.WriteString(escapeText(s.Text))
		case KindCodeBlock:
			sb.WriteString("<pre><code>")
			sb.WriteString(escapeText(s.Text))
			sb.WriteString("</code></pre>")
		case KindCode:
			sb.WriteString("<code>")
			sb.WriteString(escapeText(s.Text))
			sb.WriteString("</code>")
		case KindBold:
			sb.WriteString("<strong>")
			writeHTML(sb, s.Children)
			sb.WriteString("</strong>")
		case KindItalic:
			sb.WriteString("<em>")
			writeHTML(sb, s.Children)
			sb.WriteString("</em>")
		case KindBreak:
			sb.WriteString("<br>")
		case KindLink:
			sb.WriteString(`<a href="`)
			sb.WriteString(attrEscaper.Replace(s.URL))
			sb.WriteString(`" target="_blank" rel="noopener noreferrer">`)
			writeHTML(sb, s.Children)
			sb.WriteString("</a>")
		}
	}
}

// escapeText escapes the HTML-significant characters and turns the
// newlines that survive inside code into line breaks.
func escapeText(s string) string {
	s = textEscaper.Replace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
