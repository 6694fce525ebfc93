package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/chat"
	"github.com/diogo/webchat/internal/format"
	"github.com/diogo/webchat/internal/models"
	"github.com/diogo/webchat/internal/render"
	"github.com/diogo/webchat/internal/settings"
)

// ErrEmptyMessage is returned when the one-shot message is blank
var ErrEmptyMessage = errors.New("message cannot be empty")

// runSend sends one message and prints the reply.
// Output is raw text when --raw is set or stdout is not a terminal,
// an HTML fragment with --html, and a rendered bubble otherwise.
func runSend(cmd *cobra.Command, a *app, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := commandContext(cmd)
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	decorated := !a.opts.raw && !a.opts.html && a.deps.IsTTY()

	a.logger.Debug("sending message", "chars", len(message), "decorated", decorated)
	start := time.Now()

	var reply string
	var entry chat.Entry
	if decorated {
		spin := newSpinner(stderr, "Waiting for reply")
		spin.start()

		transcript := chat.NewTranscript()
		ctrl := chat.NewController(client, transcript, chat.NewTextInput(message), chat.NewButton(),
			chat.WithLogger(a.logger))
		err = ctrl.Submit(ctx)
		if err != nil {
			spin.stopWithError()
			return fmt.Errorf("send failed: %w", err)
		}
		spin.stopWithSuccess("Done")

		entries := transcript.Entries()
		entry = entries[len(entries)-1]
		reply = entry.Message.Content
	} else {
		reply, err = client.SendMessage(ctx, message)
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}

	a.logger.Debug("reply received", "chars", len(reply), "took", time.Since(start).Round(time.Millisecond))

	if a.opts.copy || a.cfg.CopyToClipboard {
		copyReply(a, stderr, reply, decorated)
	}

	text := reply
	if a.opts.html {
		text = format.HTML(reply)
	}

	if a.opts.output != "" {
		if err := os.WriteFile(a.opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(stderr, successStyle.Render(fmt.Sprintf("✓ Reply saved to %s", a.opts.output)))
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	fmt.Fprintln(stdout, a.terminal().Entry(entry))
	return nil
}

// copyReply puts the reply on the clipboard. Failure is reported, never fatal.
func copyReply(a *app, w io.Writer, reply string, decorated bool) {
	if err := a.deps.Clipboard(reply); err != nil {
		a.logger.Warn("clipboard copy failed", "error", err)
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		return
	}
	if decorated {
		fmt.Fprintln(w, successStyle.Render("✓ Copied to clipboard"))
	}
}

// terminal builds the renderer for decorated output from the saved
// preferences, falling back to the defaults when they cannot be read
func (a *app) terminal() *render.Terminal {
	prefs := settings.Settings{
		MessageDisplay: models.DefaultDisplayMode,
		Theme:          settings.DetectTheme(),
	}
	if _, ctrl, err := a.settings(); err == nil {
		prefs = ctrl.Get()
	} else {
		a.logger.Debug("using default display settings", "error", err)
	}

	return render.NewTerminal(render.TerminalOptions{
		Theme:     prefs.Theme,
		Mode:      prefs.MessageDisplay,
		Width:     getTerminalWidth(),
		Markdown:  render.OptionsFromConfig(a.cfg, prefs.Theme),
		CodeStyle: a.cfg.CodeStyle,
	})
}
