package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/diogo/webchat/internal/api"
	"github.com/diogo/webchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(m tui.Model) error
	RunSettings(m tui.SettingsModel) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the backend client.
	NewClient func(baseURL string, timeout time.Duration, logger *slog.Logger) (api.ClientInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Confirm asks a yes/no question.
	Confirm func(title string) (bool, error)

	// Clipboard receives copied replies.
	Clipboard func(text string) error

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(m tui.Model) error {
	return tui.RunChat(m)
}

func (d *DefaultTUI) RunSettings(m tui.SettingsModel) error {
	return tui.RunSettings(m)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newClient,
		TUI:       &DefaultTUI{},
		Confirm:   confirmPrompt,
		Clipboard: clipboard.WriteAll,
		IsTTY:     isStdoutTTY,
	}
}

func newClient(baseURL string, timeout time.Duration, logger *slog.Logger) (api.ClientInterface, error) {
	return api.NewClient(baseURL, api.WithTimeout(timeout), api.WithLogger(logger))
}

// confirmPrompt shows a yes/no form on the terminal
func confirmPrompt(title string) (bool, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(title).
				Affirmative("Yes").
				Negative("No"),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return form.GetBool("confirm"), nil
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
