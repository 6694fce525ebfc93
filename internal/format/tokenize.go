package format

import "strings"

const fence = "```"

// Tokenize splits raw text into spans.
//
// Matching is first-match, left to right. Code spans are opaque: no other
// markup is recognized inside them. Emphasis and link text never cross a
// line break. Unpaired markers are kept as literal text.
func Tokenize(s string) []Span {
	if s == "" {
		return nil
	}
	return parse(s)
}

func parse(s string) []Span {
	var spans []Span
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Span{Kind: KindText, Text: text.String()})
			text.Reset()
		}
	}
	emit := func(span Span) {
		flush()
		spans = append(spans, span)
	}

	for i := 0; i < len(s); {
		rest := s[i:]

		if strings.HasPrefix(rest, fence) {
			if end := strings.Index(rest[len(fence):], fence); end >= 0 {
				emit(Span{Kind: KindCodeBlock, Text: rest[len(fence) : len(fence)+end]})
				i += 2*len(fence) + end
				continue
			}
		}

		switch rest[0] {
		case '`':
			if end := strings.IndexByte(rest[1:], '`'); end > 0 {
				emit(Span{Kind: KindCode, Text: rest[1 : 1+end]})
				i += end + 2
				continue
			}

		case '*':
			if strings.HasPrefix(rest, "**") {
				if end := closingOnLine(rest[2:], "**"); end > 0 {
					emit(Span{Kind: KindBold, Children: parse(rest[2 : 2+end])})
					i += end + 4
					continue
				}
			}
			if end := closingOnLine(rest[1:], "*"); end > 0 {
				emit(Span{Kind: KindItalic, Children: parse(rest[1 : 1+end])})
				i += end + 2
				continue
			}

		case '[':
			if label, url, n, ok := matchLink(rest); ok {
				emit(Span{Kind: KindLink, URL: url, Children: parse(label)})
				i += n
				continue
			}

		case '\n':
			emit(Span{Kind: KindBreak})
			i++
			continue

		case '\r':
			if strings.HasPrefix(rest, "\r\n") {
				emit(Span{Kind: KindBreak})
				i += 2
				continue
			}
		}

		text.WriteByte(rest[0])
		i++
	}

	flush()
	return spans
}

// closingOnLine returns the index of marker in s before the first newline,
// or -1.
func closingOnLine(s, marker string) int {
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}
	return strings.Index(s, marker)
}

// matchLink matches [label](http(s)://target) at the start of s and returns
// the label, the target and the number of bytes consumed.
func matchLink(s string) (label, url string, n int, ok bool) {
	line := s
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		line = s[:nl]
	}

	for j := 1; j < len(line); j++ {
		if !strings.HasPrefix(line[j:], "](") {
			continue
		}
		target := line[j+2:]
		scheme := ""
		switch {
		case strings.HasPrefix(target, "https://"):
			scheme = "https://"
		case strings.HasPrefix(target, "http://"):
			scheme = "http://"
		default:
			continue
		}
		end := strings.IndexByte(target, ')')
		if end <= len(scheme) {
			continue
		}
		return line[1:j], target[:end], j + 2 + end + 1, true
	}
	return "", "", 0, false
}
