// Package models contains data types and constants for the chatbot backend.
package models

import "fmt"

// Backend endpoint paths, relative to the configured base URL
const (
	PathChat      = "/api/chat"
	PathHistory   = "/api/history"
	PathClearChat = "/api/clear-chat"
)

// DefaultBaseURL is where the reference backend listens by default
const DefaultBaseURL = "http://localhost:5000"

// DefaultHeaders returns the headers sent with every backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "webchat",
	}
}

// DisplayMode controls how the transcript is drawn
type DisplayMode string

const (
	// DisplayComfortable draws bordered bubbles with avatars
	DisplayComfortable DisplayMode = "comfortable"
	// DisplayCompact draws one prefixed block per message, no borders
	DisplayCompact DisplayMode = "compact"
	// DisplayMarkdown renders message content through glamour
	DisplayMarkdown DisplayMode = "markdown"
)

// DefaultDisplayMode is used when no mode has been stored
const DefaultDisplayMode = DisplayComfortable

// AllDisplayModes returns the display modes in cycling order
func AllDisplayModes() []DisplayMode {
	return []DisplayMode{DisplayComfortable, DisplayCompact, DisplayMarkdown}
}

// ParseDisplayMode validates a stored display mode name
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range AllDisplayModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown display mode %q", s)
}

// Next returns the mode after m in cycling order
func (m DisplayMode) Next() DisplayMode {
	modes := AllDisplayModes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return DefaultDisplayMode
}

// Theme names understood by the settings controller
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)
