// Package commands provides CLI commands for webchat.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/api"
	"github.com/diogo/webchat/internal/config"
	"github.com/diogo/webchat/internal/logging"
	"github.com/diogo/webchat/internal/settings"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flags shared by the commands
type rootOptions struct {
	server  string
	verbose bool

	// one-shot flags
	file   string
	output string
	raw    bool
	copy   bool
	html   bool
}

// app carries the state set up before every command runs
type app struct {
	deps   *Dependencies
	opts   rootOptions
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

// setup loads the configuration and opens the log file
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}
	if a.opts.server != "" {
		cfg.Server.URL = a.opts.server
	}
	a.cfg = cfg

	logger, closer, err := logging.Setup(cfg, a.opts.verbose)
	if err != nil && a.opts.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
	}
	a.logger = logger
	a.closer = closer
	a.logger.Debug("starting", "command", cmd.Name(), "server", cfg.Server.URL)
	return nil
}

func (a *app) teardown() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// client creates the backend client for the configured server
func (a *app) client() (api.ClientInterface, error) {
	client, err := a.deps.NewClient(a.cfg.Server.URL, a.cfg.RequestTimeout(), a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// settings opens the settings file and loads the preferences. A corrupt
// file is reported and replaced on the next save.
func (a *app) settings() (*settings.FileStore, *settings.Controller, error) {
	if _, err := config.EnsureConfigDir(); err != nil {
		return nil, nil, err
	}
	path, err := config.GetSettingsPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := settings.OpenFileStore(path)
	if err != nil {
		if store == nil {
			return nil, nil, err
		}
		a.logger.Warn("ignoring unreadable settings", "path", path, "error", err)
	}
	ctrl := settings.NewController(store, nil, settings.WithDefaultTheme(settings.DetectTheme()))
	ctrl.Load()
	return store, ctrl, nil
}

// NewRootCmd creates the webchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	a := &app{deps: deps}

	cmd := &cobra.Command{
		Use:   "webchat [message]",
		Short: "Terminal client for a web chatbot backend",
		Long: `webchat talks to a chatbot backend over its HTTP API. Without arguments
it opens the interactive chat view, showing the conversation history kept
by the server.

Examples:
  webchat                               Start interactive chat
  webchat "What is Go?"                 Send a single message
  webchat -f prompt.md                  Read the message from a file
  cat prompt.md | webchat               Read the message from stdin
  webchat history --limit 10            Show the last messages
  webchat export -f html -o chat.html   Export the conversation
  webchat --server http://host:5000     Use another backend`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for version flag
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "webchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			message, ok, err := readMessage(cmd, a.opts.file, args)
			if err != nil {
				return err
			}
			if ok {
				return runSend(cmd, a, message)
			}

			return runChat(cmd, a)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.opts.server, "server", "s", "", "Chat server URL (default from config)")
	cmd.PersistentFlags().BoolVar(&a.opts.verbose, "verbose", false, "Log debug output")
	cmd.Flags().StringVarP(&a.opts.file, "file", "f", "", "Read message from file")
	cmd.Flags().StringVarP(&a.opts.output, "output", "o", "", "Save reply to file")
	cmd.Flags().BoolVar(&a.opts.raw, "raw", false, "Print the reply text without formatting")
	cmd.Flags().BoolVar(&a.opts.copy, "copy", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolVar(&a.opts.html, "html", false, "Print the reply as an HTML fragment")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(
		newChatCmd(a),
		newHistoryCmd(a),
		newClearCmd(a),
		newExportCmd(a),
		newSettingsCmd(a),
		NewConfigCmd(a),
	)

	return cmd
}

// readMessage picks the one-shot message from the file flag, piped stdin
// or the argument. ok is false when none was given.
func readMessage(cmd *cobra.Command, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if hasPipedInput(cmd.InOrStdin()) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	return "", false, nil
}

// hasPipedInput reports whether r is a pipe or file rather than a terminal
func hasPipedInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		// readers set by tests and callers count as piped
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// commandContext returns the command's context, or Background when the
// command was not started through ExecuteContext
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "webchat"))
		os.Exit(1)
	}
}
