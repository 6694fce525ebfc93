package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/diogo/webchat/internal/models"
)

func sampleHistory() []models.Message {
	return []models.Message{
		models.NewUserMessage("How do I run docker compose?"),
		models.NewAssistantMessage("Use `docker compose up -d` in the project directory."),
		models.NewUserMessage("And to stop it?"),
		models.NewAssistantMessage("Run docker compose down.\nIt removes the containers."),
	}
}

func TestHistory_List(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()

	out, _, err := env.run(nil, "history")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"ROLE", "MESSAGE", "You", "Bot", "How do I run docker compose?", "And to stop it?"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "down.\nIt") {
		t.Error("previews should be flattened to one line")
	}
	if env.client.HistoryCalls != 1 {
		t.Errorf("HistoryCalls = %d", env.client.HistoryCalls)
	}
}

func TestHistory_Limit(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()

	out, _, err := env.run(nil, "history", "--limit", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "How do I run") {
		t.Error("--limit 1 should drop older messages")
	}
	if !strings.Contains(out, "Run docker compose down.") {
		t.Errorf("--limit 1 should keep the last message:\n%s", out)
	}
	if !strings.Contains(out, "4") {
		t.Error("rows keep their position in the history")
	}

	if _, _, err := env.run(nil, "history", "--limit", "-1"); err == nil {
		t.Error("negative limit should fail")
	}
}

func TestHistory_Search(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()

	out, _, err := env.run(nil, "history", "--search", "STOP")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "stop it") {
		t.Errorf("search should match case-insensitively:\n%s", out)
	}
	if strings.Contains(out, "docker compose up") {
		t.Error("search should drop non-matching messages")
	}

	out, _, err = env.run(nil, "history", "--search", "kubernetes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `No messages matching "kubernetes"`) {
		t.Errorf("output = %q", out)
	}
}

func TestHistory_Full(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryVal = sampleHistory()

	out, _, err := env.run(nil, "history", "--full")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "[4] Bot:\nRun docker compose down.\nIt removes the containers.") {
		t.Errorf("full output should keep whole messages:\n%s", out)
	}
}

func TestHistory_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(nil, "history")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "No messages yet.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestHistory_Error(t *testing.T) {
	env := newTestEnv(t)
	env.client.HistoryErr = errors.New("connection refused")

	_, _, err := env.run(nil, "history")
	if err == nil || !strings.Contains(err.Error(), "failed to load history") {
		t.Errorf("err = %v", err)
	}
}
