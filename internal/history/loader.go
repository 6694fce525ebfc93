// Package history loads the backend chat history into a chat surface and
// exports it to Markdown, JSON or HTML.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diogo/webchat/internal/api"
	"github.com/diogo/webchat/internal/chat"
)

// Loader renders the backend history onto a surface at startup
type Loader struct {
	client   api.HistoryClient
	surface  chat.Surface
	renderer *chat.Renderer
	logger   *slog.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(client api.HistoryClient, surface chat.Surface, renderer *chat.Renderer, logger *slog.Logger) *Loader {
	if renderer == nil {
		renderer = chat.NewRenderer(surface)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		client:   client,
		surface:  surface,
		renderer: renderer,
		logger:   logger,
	}
}

// Load fetches the history and renders each entry in the order returned.
// The welcome placeholder is removed only when there is something to show.
// On failure the surface is left untouched.
func (l *Loader) Load(ctx context.Context) (int, error) {
	messages, err := l.client.History(ctx)
	if err != nil {
		l.logger.Warn("failed to load chat history", "error", err)
		return 0, fmt.Errorf("failed to load history: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	l.surface.RemoveWelcome()
	for _, msg := range messages {
		l.renderer.Render(msg)
	}

	l.logger.Debug("chat history loaded", "messages", len(messages))
	return len(messages), nil
}
