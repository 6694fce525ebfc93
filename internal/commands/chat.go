package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/settings"
	"github.com/diogo/webchat/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

The conversation history kept by the server is shown on start.
Press Enter to send, Alt+Enter for a new line, Ctrl+L to clear the
history and Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, a)
		},
	}
}

func runChat(cmd *cobra.Command, a *app) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	store, prefs, err := a.settings()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	// other instances saving settings.json show up here
	updates := make(chan settings.Settings, 1)
	go func() {
		err := settings.Watch(ctx, store, prefs, a.logger, func(s settings.Settings) {
			select {
			case updates <- s:
			default:
				// drop the stale update, keep the latest
				select {
				case <-updates:
				default:
				}
				updates <- s
			}
		})
		if err != nil {
			a.logger.Warn("settings watch stopped", "error", err)
		}
	}()

	model := tui.NewChatModel(client,
		tui.WithConfig(a.cfg),
		tui.WithContext(ctx),
		tui.WithLogger(a.logger),
		tui.WithSettings(prefs),
		tui.WithSettingsUpdates(updates),
		tui.WithClipboard(a.deps.Clipboard),
	)

	return a.deps.TUI.RunChat(model)
}
