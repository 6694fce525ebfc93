package api

import (
	"context"
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/webchat/internal/errors"
	"github.com/diogo/webchat/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

// SendMessage posts one message to /api/chat and returns the reply text.
//
// A non-success status yields an *errors.APIError carrying the backend's
// "error" text when present. A transport failure or an undecodable success
// body yields an error matching errors.ErrUnreachable.
func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message cannot be empty")
	}

	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, models.PathChat, payload)
	if err != nil {
		return "", err
	}

	if !isSuccess(status) {
		return "", apiErrorFromBody(status, models.PathChat, body)
	}

	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", models.PathChat)
	}

	return gjson.GetBytes(body, PathResponse).String(), nil
}

// ClearChat asks the backend to drop its conversation history.
// Only the status code is inspected.
func (c *Client) ClearChat(ctx context.Context) error {
	body, status, err := c.do(ctx, http.MethodPost, models.PathClearChat, nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return apiErrorFromBody(status, models.PathClearChat, body)
	}
	return nil
}

// History fetches the backend conversation in chronological order.
// A missing "history" field is an empty history.
func (c *Client) History(ctx context.Context) ([]models.Message, error) {
	body, status, err := c.do(ctx, http.MethodGet, models.PathHistory, nil)
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, apiErrorFromBody(status, models.PathHistory, body)
	}

	return ParseHistory(body)
}

// ParseHistory decodes a {"history": [...]} body
func ParseHistory(body []byte) ([]models.Message, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("history is not valid JSON", models.PathHistory)
	}

	history := gjson.GetBytes(body, PathHistory)
	if !history.Exists() || history.Type == gjson.Null {
		return nil, nil
	}
	if !history.IsArray() {
		return nil, apierrors.NewParseError("history is not an array", models.PathHistory)
	}

	var messages []models.Message
	history.ForEach(func(_, entry gjson.Result) bool {
		messages = append(messages, models.Message{
			Role:    models.ParseRole(entry.Get(PathEntryRole).String()),
			Content: entry.Get(PathEntryContent).String(),
		})
		return true
	})

	return messages, nil
}

// apiErrorFromBody builds an APIError, taking the message from an
// {"error": "..."} body when there is one.
func apiErrorFromBody(status int, endpoint string, body []byte) *apierrors.APIError {
	message := ""
	if gjson.ValidBytes(body) {
		message = gjson.GetBytes(body, PathError).String()
	}
	return apierrors.NewAPIError(status, endpoint, message)
}
