// Package settings keeps the user's display and sound preferences in a
// key-value store and mirrors them onto a document root as attributes.
package settings

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/muesli/termenv"

	"github.com/diogo/webchat/internal/models"
)

// Store keys
const (
	KeySoundEnabled   = "soundEnabled"
	KeyMessageDisplay = "messageDisplay"
	KeyTheme          = "theme"
)

// Root attributes set from the settings
const (
	AttrMessageDisplay = "data-message-display"
	AttrTheme          = "data-theme"
)

// Keys returns every known settings key
func Keys() []string {
	return []string{KeyMessageDisplay, KeySoundEnabled, KeyTheme}
}

// Settings is a snapshot of the current preferences
type Settings struct {
	SoundEnabled   bool
	MessageDisplay models.DisplayMode
	Theme          string
}

// Root receives presentation hints, like attributes on a document element
type Root interface {
	SetAttribute(name, value string)
}

// Attributes is an in-memory Root
type Attributes struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewAttributes returns an empty attribute set
func NewAttributes() *Attributes {
	return &Attributes{m: map[string]string{}}
}

func (a *Attributes) SetAttribute(name, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.m[name] = value
}

// Attribute returns the value of name
func (a *Attributes) Attribute(name string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.m[name]
}

// DetectTheme picks a theme from the terminal background
func DetectTheme() string {
	if termenv.HasDarkBackground() {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// ParseTheme validates a theme name
func ParseTheme(s string) (string, error) {
	switch s {
	case models.ThemeDark, models.ThemeLight:
		return s, nil
	}
	return "", fmt.Errorf("unknown theme %q (use dark or light)", s)
}

// parseSound treats only an absent, empty or "true" value as enabled
func parseSound(v string, ok bool) bool {
	if !ok || v == "" {
		return true
	}
	return v == "true"
}

// Controller reads and writes the preferences. It is safe for concurrent use.
type Controller struct {
	store        Store
	root         Root
	defaultTheme string

	mu        sync.RWMutex
	current   Settings
	listeners []func(Settings)
}

// Option configures a Controller
type Option func(*Controller)

// WithDefaultTheme sets the theme used when none is stored
func WithDefaultTheme(theme string) Option {
	return func(c *Controller) {
		if t, err := ParseTheme(theme); err == nil {
			c.defaultTheme = t
		}
	}
}

// NewController creates a controller. A nil root ignores attributes.
// Without WithDefaultTheme, the default theme is detected from the terminal.
func NewController(store Store, root Root, opts ...Option) *Controller {
	if root == nil {
		root = NewAttributes()
	}
	c := &Controller{store: store, root: root}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultTheme == "" {
		c.defaultTheme = DetectTheme()
	}
	c.current = Settings{
		SoundEnabled:   true,
		MessageDisplay: models.DefaultDisplayMode,
		Theme:          c.defaultTheme,
	}
	return c
}

// Load reads every key from the store, applying defaults for absent or
// invalid values, and sets the root attributes.
func (c *Controller) Load() Settings {
	v, ok := c.store.Get(KeySoundEnabled)
	s := Settings{SoundEnabled: parseSound(v, ok)}

	s.MessageDisplay = models.DefaultDisplayMode
	if v, ok := c.store.Get(KeyMessageDisplay); ok {
		if mode, err := models.ParseDisplayMode(v); err == nil {
			s.MessageDisplay = mode
		}
	}

	s.Theme = c.defaultTheme
	if v, ok := c.store.Get(KeyTheme); ok {
		if theme, err := ParseTheme(v); err == nil {
			s.Theme = theme
		}
	}

	c.mu.Lock()
	c.current = s
	c.mu.Unlock()

	c.root.SetAttribute(AttrMessageDisplay, string(s.MessageDisplay))
	c.root.SetAttribute(AttrTheme, s.Theme)
	return s
}

// Get returns the current settings
func (c *Controller) Get() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SoundEnabled reports whether reply sounds are on
func (c *Controller) SoundEnabled() bool {
	return c.Get().SoundEnabled
}

// OnChange registers fn to run after every successful change
func (c *Controller) OnChange(fn func(Settings)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) update(key, value string, apply func(*Settings)) error {
	if err := c.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	c.mu.Lock()
	apply(&c.current)
	s := c.current
	listeners := append([]func(Settings){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return nil
}

// SetSoundEnabled stores the sound preference
func (c *Controller) SetSoundEnabled(enabled bool) error {
	return c.update(KeySoundEnabled, strconv.FormatBool(enabled), func(s *Settings) {
		s.SoundEnabled = enabled
	})
}

// ToggleSound flips the sound preference and returns the new value
func (c *Controller) ToggleSound() (bool, error) {
	enabled := !c.SoundEnabled()
	return enabled, c.SetSoundEnabled(enabled)
}

// SetMessageDisplay stores the display mode and sets the root attribute
func (c *Controller) SetMessageDisplay(mode models.DisplayMode) error {
	if _, err := models.ParseDisplayMode(string(mode)); err != nil {
		return err
	}
	c.root.SetAttribute(AttrMessageDisplay, string(mode))
	return c.update(KeyMessageDisplay, string(mode), func(s *Settings) {
		s.MessageDisplay = mode
	})
}

// CycleMessageDisplay moves to the next display mode
func (c *Controller) CycleMessageDisplay() (models.DisplayMode, error) {
	mode := c.Get().MessageDisplay.Next()
	return mode, c.SetMessageDisplay(mode)
}

// SetTheme stores the theme and sets the root attribute
func (c *Controller) SetTheme(theme string) error {
	if _, err := ParseTheme(theme); err != nil {
		return err
	}
	c.root.SetAttribute(AttrTheme, theme)
	return c.update(KeyTheme, theme, func(s *Settings) {
		s.Theme = theme
	})
}

// ToggleTheme switches between dark and light
func (c *Controller) ToggleTheme() (string, error) {
	theme := models.ThemeLight
	if c.Get().Theme == models.ThemeLight {
		theme = models.ThemeDark
	}
	return theme, c.SetTheme(theme)
}

// Value returns the current value of key as stored text
func (c *Controller) Value(key string) (string, error) {
	s := c.Get()
	switch key {
	case KeySoundEnabled:
		return strconv.FormatBool(s.SoundEnabled), nil
	case KeyMessageDisplay:
		return string(s.MessageDisplay), nil
	case KeyTheme:
		return s.Theme, nil
	}
	return "", unknownKey(key)
}

// Set validates and stores a value given as text
func (c *Controller) Set(key, value string) error {
	switch key {
	case KeySoundEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s (use true or false)", value, key)
		}
		return c.SetSoundEnabled(enabled)
	case KeyMessageDisplay:
		mode, err := models.ParseDisplayMode(value)
		if err != nil {
			return err
		}
		return c.SetMessageDisplay(mode)
	case KeyTheme:
		return c.SetTheme(value)
	}
	return unknownKey(key)
}

func unknownKey(key string) error {
	keys := Keys()
	sort.Strings(keys)
	return fmt.Errorf("unknown setting %q (known: %v)", key, keys)
}
