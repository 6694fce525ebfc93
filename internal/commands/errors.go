package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/diogo/webchat/internal/chat"
	apierrors "github.com/diogo/webchat/internal/errors"
)

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := warnStyle

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The server answered with something other than JSON. Check --server"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the chat server is running and reachable"))
	case apierrors.IsAPIError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The server rejected the request. Check its logs"))
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, chat.ErrEmptyInput):
		sb.WriteString(dimStyle.Render("\n  Hint: Pass the message as an argument, with -f or on stdin"))
	case errors.Is(err, huh.ErrUserAborted):
		sb.WriteString(dimStyle.Render("\n  Hint: Use --yes to skip the confirmation"))
	}

	return sb.String()
}
