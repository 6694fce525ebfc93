package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Waiting")
	s.start()
	// Let it spin briefly
	time.Sleep(3 * spinnerInterval)
	s.stopWithSuccess("done")

	out := buf.String()
	if !strings.Contains(out, "Waiting") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "\033[?25h") {
		t.Error("cursor should be shown again")
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Waiting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()

	if strings.Contains(buf.String(), "✓") {
		t.Error("error stop should not print success")
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Waiting")
	s.start()
	s.stopWithError()
	// a second stop must not panic on the closed channel
	s.stopWithError()
}
