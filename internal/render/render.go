package render

import "strings"

// Markdown renders markdown content for terminal display. Output for the
// same content and options is memoized.
func Markdown(content string, opts Options) (string, error) {
	key := keyFor(content, opts)
	if out, ok := globalOutputs.get(key); ok {
		return out, nil
	}

	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	out, err := renderer.Render(content)
	if err != nil {
		return "", err
	}
	globalOutputs.put(key, out)
	return out, nil
}

// MarkdownWithWidth renders with the default options at width
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// MarkdownOrPlain renders content as markdown, falling back to the raw
// text when the renderer fails. Surrounding blank lines are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
