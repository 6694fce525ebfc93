package chat

import "sync"

// Input is the message box the user types into
type Input interface {
	Value() string
	Reset()
	Focus()
}

// SendControl is the send button. While disabled, submits are rejected.
type SendControl interface {
	SetEnabled(enabled bool)
	Enabled() bool
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter shows a blocking notice to the user
type Alerter interface {
	Alert(message string)
}

// Notifier signals that a reply arrived (e.g. a sound)
type Notifier interface {
	Notify()
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlertFunc adapts a function to Alerter
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// NotifyFunc adapts a function to Notifier
type NotifyFunc func()

func (f NotifyFunc) Notify() { f() }

// Button is a thread-safe SendControl
type Button struct {
	mu       sync.RWMutex
	disabled bool
}

// NewButton returns an enabled button
func NewButton() *Button {
	return &Button{}
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = !enabled
}

func (b *Button) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.disabled
}

// TextInput is a thread-safe Input holding a plain string
type TextInput struct {
	mu      sync.RWMutex
	value   string
	focused bool
}

// NewTextInput returns an input holding value
func NewTextInput(value string) *TextInput {
	return &TextInput{value: value}
}

func (t *TextInput) SetValue(value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = value
}

func (t *TextInput) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

func (t *TextInput) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = ""
}

func (t *TextInput) Focus() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focused = true
}

// Focused reports whether Focus has been called
func (t *TextInput) Focused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.focused
}
