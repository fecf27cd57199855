package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FallbackMessage is shown when no better description of a failure exists
const FallbackMessage = "Error en la operación"

// Error is a non-2xx response from the backend
type Error struct {
	Method  string
	Path    string
	Status  int
	Body    []byte
	message string
}

func newError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:  method,
		Path:    path,
		Status:  status,
		Body:    body,
		message: extractMessage(body, status),
	}
}

func (e *Error) Error() string { return e.message }

// extractMessage picks, in order: a "message" string field, an "error" string
// field, a body that is itself a string, then a status line
func extractMessage(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		var payload any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			switch v := payload.(type) {
			case map[string]any:
				if msg, ok := v["message"].(string); ok {
					return msg
				}
				if msg, ok := v["error"].(string); ok {
					return msg
				}
			case string:
				return v
			}
		} else {
			return string(trimmed)
		}
	}
	return fmt.Sprintf("request failed with status code %d", status)
}

// Message normalizes any failure from this package into user-facing text
func Message(err error) string {
	if err == nil {
		return FallbackMessage
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.message != "" {
			return apiErr.message
		}
		return FallbackMessage
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

// StatusCode returns the HTTP status carried by err, or 0 for transport failures
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
