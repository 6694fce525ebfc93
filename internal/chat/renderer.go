package chat

import (
	"github.com/google/uuid"

	"github.com/diogo/webchat/internal/format"
	"github.com/diogo/webchat/internal/models"
)

// Renderer appends formatted entries to a surface
type Renderer struct {
	surface Surface
	newID   func() string
}

// NewRenderer creates a renderer for surface
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{
		surface: surface,
		newID:   func() string { return uuid.NewString() },
	}
}

// Render appends msg and scrolls to it
func (r *Renderer) Render(msg models.Message) Entry {
	return r.append(msg, false)
}

// RenderError appends an assistant entry reporting a failure
func (r *Renderer) RenderError(text string) Entry {
	return r.append(models.NewAssistantMessage(text), true)
}

func (r *Renderer) append(msg models.Message, isErr bool) Entry {
	e := Entry{
		ID:      r.newID(),
		Kind:    KindMessage,
		Message: msg,
		Spans:   format.Tokenize(msg.Content),
		Error:   isErr,
	}
	r.surface.Append(e)
	r.surface.ScrollToBottom()
	return e
}

// ShowTyping appends a typing placeholder and returns its id
func (r *Renderer) ShowTyping() string {
	id := "typing-" + r.newID()
	r.surface.Append(Entry{
		ID:      id,
		Kind:    KindTyping,
		Message: models.Message{Role: models.RoleAssistant},
	})
	r.surface.ScrollToBottom()
	return id
}

// HideTyping removes the typing placeholder with the given id
func (r *Renderer) HideTyping(id string) {
	r.surface.Remove(id)
}
