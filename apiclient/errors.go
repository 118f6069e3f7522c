package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// RequestError is a non-2xx response, left for the caller to interpret.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Message    string // Server provided message, when the body carried one
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = statusText(e.StatusCode)
	}
	return fmt.Sprintf("[%s %s] %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is maps the status code onto the shared sentinels.
func (e *RequestError) Is(target error) bool {
	switch target {
	case apperrors.ErrRequestFailed:
		return true
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case apperrors.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

func newRequestError(method, path string, status int, body []byte) *RequestError {
	return &RequestError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       body,
		Message:    serverMessage(body),
	}
}

// serverMessage pulls "message" (a string or a list of strings) or "error" out of a JSON error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	if len(payload.Message) > 0 {
		var single string
		if err := json.Unmarshal(payload.Message, &single); err == nil {
			return single
		}
		var many []string
		if err := json.Unmarshal(payload.Message, &many); err == nil {
			return strings.Join(many, "; ")
		}
	}
	return payload.Error
}
