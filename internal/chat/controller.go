package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/diogo/webchat/internal/api"
	apierrors "github.com/diogo/webchat/internal/errors"
	"github.com/diogo/webchat/internal/models"
)

// User-facing texts
const (
	ClearPrompt        = "Clear all chat history?"
	ClearFailedMessage = "Failed to clear chat"
	GenericFailure     = "Failed to get response"
	UnreachableNotice  = "❌ Error: Unable to reach server"
	warningPrefix      = "⚠️ Error: "
)

var (
	// ErrEmptyInput is returned when the input is blank after trimming
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy is returned while a previous message awaits its reply
	ErrBusy = errors.New("a message is already being sent")
	// ErrNotConfirmed is returned when the user declines to clear the chat
	ErrNotConfirmed = errors.New("clear not confirmed")
)

// Controller drives one chat view. Every UI handle is injected, so several
// controllers can run side by side.
type Controller struct {
	client   api.ChatClient
	surface  Surface
	renderer *Renderer
	input    Input
	send     SendControl
	confirm  Confirmer
	alert    Alerter
	notifier Notifier
	logger   *slog.Logger

	mu sync.Mutex
}

// Option configures a Controller
type Option func(*Controller)

// WithConfirmer sets the yes/no prompt used by Clear
func WithConfirmer(confirm Confirmer) Option {
	return func(c *Controller) { c.confirm = confirm }
}

// WithAlerter sets where clear failures are reported
func WithAlerter(alert Alerter) Option {
	return func(c *Controller) { c.alert = alert }
}

// WithNotifier sets the reply notification
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRenderer overrides the renderer built from the surface
func WithRenderer(r *Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// NewController wires a controller to its handles
func NewController(client api.ChatClient, surface Surface, input Input, send SendControl, opts ...Option) *Controller {
	c := &Controller{
		client:  client,
		surface: surface,
		input:   input,
		send:    send,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = NewRenderer(surface)
	}
	return c
}

// Renderer returns the renderer bound to the controller's surface
func (c *Controller) Renderer() *Renderer {
	return c.renderer
}

// Busy reports whether a message is awaiting its reply
func (c *Controller) Busy() bool {
	return !c.send.Enabled()
}

// Request is one outstanding chat message
type Request struct {
	Message  string
	TypingID string
	client   api.ChatClient
}

// Result is the outcome of a Request
type Result struct {
	Request *Request
	Reply   string
	Err     error
}

// Begin runs the synchronous half of a submit: it renders the user message
// optimistically, clears the input, shows the typing placeholder and
// disables the send control.
func (c *Controller) Begin() (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return nil, ErrEmptyInput
	}
	if !c.send.Enabled() {
		return nil, ErrBusy
	}

	c.surface.RemoveWelcome()
	c.renderer.Render(models.NewUserMessage(text))
	c.input.Reset()
	typingID := c.renderer.ShowTyping()
	c.send.SetEnabled(false)

	c.logger.Debug("message submitted", "chars", len(text))

	return &Request{Message: text, TypingID: typingID, client: c.client}, nil
}

// Do sends the message. It touches no UI state and may run on any goroutine.
func (r *Request) Do(ctx context.Context) Result {
	reply, err := r.client.SendMessage(ctx, r.Message)
	return Result{Request: r, Reply: reply, Err: err}
}

// Finish renders the outcome of a request and re-enables the send control.
func (c *Controller) Finish(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		c.send.SetEnabled(true)
		c.input.Focus()
	}()

	if res.Request != nil {
		c.renderer.HideTyping(res.Request.TypingID)
	}

	switch {
	case res.Err == nil:
		c.renderer.Render(models.NewAssistantMessage(res.Reply))
		if c.notifier != nil {
			c.notifier.Notify()
		}

	case apierrors.IsAPIError(res.Err):
		detail := apierrors.GetMessage(res.Err)
		if detail == "" {
			detail = GenericFailure
		}
		c.logger.Warn("chat request rejected", "status", apierrors.GetHTTPStatus(res.Err), "error", detail)
		c.renderer.RenderError(warningPrefix + detail)

	default:
		c.logger.Error("chat request failed", "error", res.Err)
		c.renderer.RenderError(UnreachableNotice)
	}
}

// Submit sends the current input and renders the reply. It blocks until
// the request resolves.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.Begin()
	if err != nil {
		return err
	}
	res := req.Do(ctx)
	c.Finish(res)
	return res.Err
}

// ClearRequest is a confirmed clear awaiting the backend call
type ClearRequest struct {
	client api.ChatClient
}

// BeginClear asks for confirmation and, once given, resets the surface to
// the welcome placeholder. The reset does not wait for the backend.
func (c *Controller) BeginClear() (*ClearRequest, error) {
	if c.confirm == nil || !c.confirm.Confirm(ClearPrompt) {
		return nil, ErrNotConfirmed
	}

	c.mu.Lock()
	c.surface.Reset()
	c.mu.Unlock()

	return &ClearRequest{client: c.client}, nil
}

// Do issues the clear-history call
func (r *ClearRequest) Do(ctx context.Context) error {
	return r.client.ClearChat(ctx)
}

// FinishClear reports a failed clear. The surface stays reset.
func (c *Controller) FinishClear(err error) error {
	if err == nil {
		c.logger.Info("chat history cleared")
		return nil
	}
	c.logger.Error("clear chat failed", "error", err)
	if c.alert != nil {
		c.alert.Alert(ClearFailedMessage)
	}
	return fmt.Errorf("failed to clear chat: %w", err)
}

// Clear confirms, resets the surface and clears the backend history.
func (c *Controller) Clear(ctx context.Context) error {
	req, err := c.BeginClear()
	if err != nil {
		return err
	}
	return c.FinishClear(req.Do(ctx))
}
