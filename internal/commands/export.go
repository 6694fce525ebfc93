package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/history"
)

type exportOptions struct {
	format string
	output string
	title  string
}

func newExportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the conversation history",
		Long: `Export the conversation history as Markdown, JSON or HTML.

Without -f the format follows the extension of -o, defaulting to Markdown.
Without -o the export is written to stdout.

Examples:
  webchat export                       Markdown to stdout
  webchat export -o chat.json          JSON file
  webchat export -f html -o chat.html  Standalone HTML page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Export format: markdown, json or html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the export to this file")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title")

	return cmd
}

// exportFormat picks the format from the flag, then the output extension
func exportFormat(flag, output string) (history.ExportFormat, error) {
	if flag != "" {
		return history.ParseExportFormat(flag)
	}
	switch filepath.Ext(output) {
	case ".json":
		return history.ExportFormatJSON, nil
	case ".html", ".htm":
		return history.ExportFormatHTML, nil
	}
	return history.ExportFormatMarkdown, nil
}

func runExport(cmd *cobra.Command, a *app, opts exportOptions) error {
	format, err := exportFormat(opts.format, opts.output)
	if err != nil {
		return err
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

	exportOpts := history.DefaultExportOptions()
	exportOpts.Format = format
	exportOpts.Server = client.BaseURL()
	if opts.title != "" {
		exportOpts.Title = opts.title
	}

	data, err := history.Export(messages, exportOpts)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	a.logger.Info("history exported", "format", format, "messages", len(messages), "path", opts.output)
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d messages to %s\n", len(messages), opts.output)
	return nil
}
