package history

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/diogo/webchat/internal/format"
	"github.com/diogo/webchat/internal/models"
)

// ExportFormat represents the format for exporting the chat history
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatHTML     ExportFormat = "html"
)

// ParseExportFormat resolves a format name, accepting "md" as markdown
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	case "html", "htm":
		return ExportFormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q (use markdown, json or html)", s)
}

// Extension returns the file extension for the format
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatJSON:
		return ".json"
	case ExportFormatHTML:
		return ".html"
	default:
		return ".md"
	}
}

// ExportOptions configures how the history is exported
type ExportOptions struct {
	Format     ExportFormat
	Title      string
	Server     string // backend base URL, recorded in the header
	ExportedAt time.Time
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:     ExportFormatMarkdown,
		Title:      "Chat history",
		ExportedAt: time.Now(),
	}
}

// Export writes messages in the format selected by opts
func Export(messages []models.Message, opts ExportOptions) ([]byte, error) {
	switch opts.Format {
	case ExportFormatMarkdown, "":
		return []byte(ExportMarkdown(messages, opts)), nil
	case ExportFormatJSON:
		return ExportJSON(messages, opts)
	case ExportFormatHTML:
		return []byte(ExportHTML(messages, opts)), nil
	}
	return nil, fmt.Errorf("unknown export format %q", opts.Format)
}

func roleTitle(r models.Role) string {
	if r == models.RoleUser {
		return "User"
	}
	return "Assistant"
}

// ExportMarkdown renders the history as a Markdown document
func ExportMarkdown(messages []models.Message, opts ExportOptions) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# ")
	sb.WriteString(opts.Title)
	sb.WriteString("\n\n")

	if opts.Server != "" {
		sb.WriteString("**Server:** ")
		sb.WriteString(opts.Server)
		sb.WriteString("\n")
	}
	if !opts.ExportedAt.IsZero() {
		sb.WriteString("**Exported:** ")
		sb.WriteString(opts.ExportedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range messages {
		sb.WriteString("## ")
		sb.WriteString(roleTitle(msg.Role))
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// ExportJSON renders the history as indented JSON
func ExportJSON(messages []models.Message, opts ExportOptions) ([]byte, error) {
	type exportDocument struct {
		Title      string           `json:"title"`
		Server     string           `json:"server,omitempty"`
		ExportedAt *time.Time       `json:"exported_at,omitempty"`
		Messages   []models.Message `json:"messages"`
	}

	doc := exportDocument{
		Title:    opts.Title,
		Server:   opts.Server,
		Messages: messages,
	}
	if doc.Messages == nil {
		doc.Messages = []models.Message{}
	}
	if !opts.ExportedAt.IsZero() {
		t := opts.ExportedAt
		doc.ExportedAt = &t
	}

	return json.MarshalIndent(doc, "", "  ")
}

const htmlStyle = `body{font-family:system-ui,sans-serif;background:#0f172a;color:#e2e8f0;margin:0;padding:24px}
.chat{max-width:820px;margin:0 auto;display:flex;flex-direction:column;gap:12px}
.message{display:flex;gap:10px;align-items:flex-start}
.message.user{justify-content:flex-end}
.avatar{width:32px;height:32px;border-radius:50%;display:flex;align-items:center;justify-content:center;background:#334155;flex-shrink:0}
.bubble{padding:10px 14px;border-radius:12px;background:#1e293b;max-width:75%;line-height:1.5;word-wrap:break-word}
.message.user .bubble{background:#2563eb}
pre{background:#020617;padding:8px;border-radius:6px;overflow-x:auto}
code{font-family:ui-monospace,monospace}
a{color:#93c5fd}
.muted{color:#94a3b8}`

// ExportHTML renders the history as a standalone page. Assistant entries
// put the avatar before the bubble, user entries after it.
func ExportHTML(messages []models.Message, opts ExportOptions) string {
	var sb strings.Builder

	title := html.EscapeString(opts.Title)
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(title)
	sb.WriteString("</title>\n<style>\n")
	sb.WriteString(htmlStyle)
	sb.WriteString("\n</style>\n</head>\n<body>\n<h1>")
	sb.WriteString(title)
	sb.WriteString("</h1>\n")

	if opts.Server != "" || !opts.ExportedAt.IsZero() {
		sb.WriteString("<p class=\"muted\">")
		if opts.Server != "" {
			sb.WriteString(html.EscapeString(opts.Server))
		}
		if !opts.ExportedAt.IsZero() {
			if opts.Server != "" {
				sb.WriteString(" · ")
			}
			sb.WriteString(opts.ExportedAt.Format("2006-01-02 15:04:05"))
		}
		sb.WriteString("</p>\n")
	}

	sb.WriteString("<div class=\"chat\">\n")
	for _, msg := range messages {
		role := "assistant"
		avatar := "🤖"
		if msg.IsUser() {
			role = "user"
			avatar = "🧑"
		}

		avatarDiv := "<div class=\"avatar\">" + avatar + "</div>"
		bubbleDiv := "<div class=\"bubble\">" + format.HTML(msg.Content) + "</div>"

		sb.WriteString("<div class=\"message ")
		sb.WriteString(role)
		sb.WriteString("\">")
		if msg.IsUser() {
			sb.WriteString(bubbleDiv)
			sb.WriteString(avatarDiv)
		} else {
			sb.WriteString(avatarDiv)
			sb.WriteString(bubbleDiv)
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</div>\n</body>\n</html>\n")

	return sb.String()
}

// SearchResult represents a search match in the history
type SearchResult struct {
	Index   int
	Message models.Message
	Snippet string
}

// Search returns the messages containing query, case-insensitively
func Search(messages []models.Message, query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryLower := strings.ToLower(query)
	var results []SearchResult
	for i, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Content), queryLower) {
			results = append(results, SearchResult{
				Index:   i,
				Message: msg,
				Snippet: extractSnippet(msg.Content, query, 100),
			})
		}
	}
	return results
}

// extractSnippet extracts a snippet around the first occurrence of query
func extractSnippet(content, query string, maxLen int) string {
	contentLower := strings.ToLower(content)
	queryLower := strings.ToLower(query)

	idx := strings.Index(contentLower, queryLower)
	if idx == -1 || len(content) <= maxLen {
		if len(content) > maxLen {
			return content[:maxLen] + "..."
		}
		return content
	}

	half := maxLen / 2
	start := idx - half
	end := idx + len(query) + half

	if start < 0 {
		start = 0
		end = maxLen
	}
	if end > len(content) {
		end = len(content)
		start = end - maxLen
		if start < 0 {
			start = 0
		}
	}

	// keep the cut on rune boundaries
	for start > 0 && !utf8RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8RuneStart(content[end]) {
		end++
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// Preview flattens content to one line and truncates it to width cells
func Preview(content string, width int) string {
	line := strings.Join(strings.Fields(content), " ")
	if width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}
