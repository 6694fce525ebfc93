package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/webchat/internal/history"
)

func TestExportFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         history.ExportFormat
		wantErr      bool
	}{
		{"", "", history.ExportFormatMarkdown, false},
		{"", "chat.json", history.ExportFormatJSON, false},
		{"", "chat.html", history.ExportFormatHTML, false},
		{"", "chat.txt", history.ExportFormatMarkdown, false},
		{"md", "chat.json", history.ExportFormatMarkdown, false},
		{"html", "", history.ExportFormatHTML, false},
		{"pdf", "", "", true},
	}

	for _, tt := range tests {
		got, err := exportFormat(tt.flag, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("exportFormat(%q, %q) error = %v", tt.flag, tt.output, err)
			continue
		}
		if got != tt.want {
			t.Errorf("exportFormat(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
	}
}

func TestExport_MarkdownToStdout(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()

	out, _, err := env.run(nil, "export", "--title", "Docker notes")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"# Docker notes", "How do I run docker compose?", "docker compose up -d"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestExport_JSONFile(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()
	env.client.URL = "http://chat.example"
	path := filepath.Join(t.TempDir(), "chat.json")

	out, stderr, err := env.run(nil, "export", "-o", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	if !strings.Contains(stderr, "Exported 4 messages") {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Server   string `json:"server"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if doc.Server != "http://chat.example" {
		t.Errorf("server = %q", doc.Server)
	}
	if len(doc.Messages) != 4 || doc.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", doc.Messages)
	}
}

func TestExport_HTMLEscapes(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()
	env.client.HistoryVal[0].Content = "<script>alert(1)</script>"

	out, _, err := env.run(nil, "export", "-f", "html")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "<script>alert") {
		t.Error("message content must be escaped")
	}
	if !strings.Contains(out, "<html") {
		t.Errorf("output is not an HTML page:\n%s", out)
	}
}

func TestExport_Errors(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := env.run(nil, "export", "-f", "pdf"); err == nil {
		t.Error("unknown format should fail")
	}
	if env.client.HistoryCalls != 0 {
		t.Error("format is checked before fetching")
	}

	path := filepath.Join(t.TempDir(), "missing", "dir", "chat.md")
	if _, _, err := env.run(nil, "export", "-o", path); err == nil {
		t.Error("unwritable path should fail")
	}
}
