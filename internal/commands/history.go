package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/history"
	"github.com/diogo/webchat/internal/models"
)

const historyPreviewWidth = 60

type historyOptions struct {
	limit  int
	search string
	full   bool
}

func newHistoryCmd(a *app) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation history",
		Long: `Show the conversation history stored by the server, oldest first.

Examples:
  webchat history                 List every message
  webchat history --limit 10      Only the last 10 messages
  webchat history --search docker Messages mentioning docker
  webchat history --full          Print whole messages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, a, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Show only the last N messages")
	cmd.Flags().StringVar(&opts.search, "search", "", "Only show messages containing this text")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Print whole messages instead of previews")

	return cmd
}

func runHistory(cmd *cobra.Command, a *app, opts historyOptions) error {
	if opts.limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	messages, err := client.History(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	out := cmd.OutOrStdout()

	type row struct {
		index   int
		message models.Message
		preview string
	}
	var rows []row
	if opts.search != "" {
		for _, r := range history.Search(messages, opts.search) {
			rows = append(rows, row{r.Index, r.Message, history.Preview(r.Snippet, historyPreviewWidth)})
		}
	} else {
		for i, msg := range messages {
			rows = append(rows, row{i, msg, history.Preview(msg.Content, historyPreviewWidth)})
		}
	}

	if opts.limit > 0 && len(rows) > opts.limit {
		rows = rows[len(rows)-opts.limit:]
	}

	if len(rows) == 0 {
		if opts.search != "" {
			fmt.Fprintf(out, "No messages matching %q.\n", opts.search)
		} else {
			fmt.Fprintln(out, "No messages yet.")
		}
		return nil
	}

	if opts.full {
		for _, r := range rows {
			printFullMessage(out, r.index, r.message)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tROLE\tMESSAGE")
	_, _ = fmt.Fprintln(w, "-\t----\t-------")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", r.index+1, roleName(r.message.Role), r.preview)
	}
	return w.Flush()
}

func printFullMessage(w io.Writer, index int, msg models.Message) {
	fmt.Fprintf(w, "[%d] %s:\n", index+1, roleName(msg.Role))
	fmt.Fprintf(w, "%s\n\n", msg.Content)
}

func roleName(role models.Role) string {
	if role == models.RoleUser {
		return "You"
	}
	return "Bot"
}
