// Package api provides the client for the chatbot backend endpoints.
package api

// GJSON paths for extracting values from backend responses.
const (
	// POST /api/chat
	PathResponse = "response"
	PathError    = "error"
	PathStatus   = "status"

	// GET /api/history
	PathHistory = "history"

	// Relative to a history entry
	PathEntryRole    = "role"
	PathEntryContent = "content"
)
