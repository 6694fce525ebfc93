package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/chat"
)

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the conversation history on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, a, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, a *app, yes bool) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	var promptErr error
	confirm := chat.ConfirmFunc(func(prompt string) bool {
		if yes {
			return true
		}
		ok, err := a.deps.Confirm(prompt)
		if err != nil {
			promptErr = err
			return false
		}
		return ok
	})
	alert := chat.AlertFunc(func(message string) {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("⚠ "+message))
	})

	ctrl := chat.NewController(client, chat.NewTranscript(), chat.NewTextInput(""), chat.NewButton(),
		chat.WithConfirmer(confirm),
		chat.WithAlerter(alert),
		chat.WithLogger(a.logger),
	)

	err = ctrl.Clear(commandContext(cmd))
	switch {
	case promptErr != nil:
		return promptErr
	case errors.Is(err, chat.ErrNotConfirmed):
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared.")
	return nil
}
