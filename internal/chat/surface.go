// Package chat implements the chat session: the display surface that holds
// rendered entries, the renderer that appends to it, and the controller that
// drives the submit and clear flows.
package chat

import (
	"sync"

	"github.com/diogo/webchat/internal/format"
	"github.com/diogo/webchat/internal/models"
)

// EntryKind distinguishes messages from placeholders
type EntryKind int

const (
	KindMessage EntryKind = iota
	KindTyping
	KindWelcome
)

// Entry is one visual unit on the display surface
type Entry struct {
	ID      string
	Kind    EntryKind
	Message models.Message
	Spans   []format.Span
	// Error marks an assistant entry reporting a failed request
	Error bool
}

// Surface is the ordered, scrollable region holding rendered entries
type Surface interface {
	Append(e Entry)
	Remove(id string) bool
	RemoveWelcome() bool
	Reset()
	ScrollToBottom()
}

// WelcomeID identifies the welcome placeholder
const WelcomeID = "welcome"

// Transcript is the in-memory Surface drawn by the terminal view.
// It is safe for concurrent use.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
	version uint64
	pinned  bool
}

var _ Surface = (*Transcript)(nil)

// NewTranscript returns a transcript showing the welcome placeholder
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Reset()
	return t
}

// Append adds an entry at the end
func (t *Transcript) Append(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
	t.version++
}

// Remove deletes the entry with the given id
func (t *Transcript) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(id)
}

// RemoveWelcome deletes the welcome placeholder if present
func (t *Transcript) RemoveWelcome() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(WelcomeID)
}

func (t *Transcript) removeLocked(id string) bool {
	for i, e := range t.entries {
		if e.ID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.version++
			return true
		}
	}
	return false
}

// Reset drops every entry and shows the welcome placeholder
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = []Entry{{ID: WelcomeID, Kind: KindWelcome}}
	t.version++
	t.pinned = true
}

// ScrollToBottom asks the view to show the newest entry
func (t *Transcript) ScrollToBottom() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = true
}

// TakeScroll reports and clears a pending scroll-to-bottom request
func (t *Transcript) TakeScroll() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	pinned := t.pinned
	t.pinned = false
	return pinned
}

// Entries returns a copy of the current entries
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Messages returns the messages on the surface, skipping placeholders
func (t *Transcript) Messages() []models.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []models.Message
	for _, e := range t.entries {
		if e.Kind == KindMessage {
			out = append(out, e.Message)
		}
	}
	return out
}

// Version increases on every mutation
func (t *Transcript) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// HasWelcome reports whether the welcome placeholder is shown
func (t *Transcript) HasWelcome() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if e.Kind == KindWelcome {
			return true
		}
	}
	return false
}

// LastAssistant returns the newest assistant message that is not an error
func (t *Transcript) LastAssistant() (models.Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Kind == KindMessage && !e.Message.IsUser() && !e.Error {
			return e.Message, true
		}
	}
	return models.Message{}, false
}
