package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTransport marks failures where no HTTP response was received.
	ErrTransport = errors.New("rest transport failure")
	// ErrUnexpectedPayload is returned when a response body does not match any known envelope.
	ErrUnexpectedPayload = errors.New("rest unexpected payload")
)

// APIError is returned for every non-2xx response. Status codes are not
// interpreted; Detail carries the backend message or the status text.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// String includes the request line for logs.
func (e *APIError) String() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.Path, e.Status, e.Detail)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

type detailEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// detailFromBody extracts the "detail" field of an error body. It accepts a
// plain string or a list of validation items and falls back to the status text.
func detailFromBody(body []byte, status int) string {
	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		var items []detailItem
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			messages := make([]string, 0, len(items))
			for _, item := range items {
				if msg := strings.TrimSpace(item.Msg); msg != "" {
					messages = append(messages, msg)
				}
			}
			if len(messages) > 0 {
				return strings.Join(messages, "; ")
			}
		}
		var texts []string
		if err := json.Unmarshal(envelope.Detail, &texts); err == nil && len(texts) > 0 {
			return strings.Join(texts, "; ")
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
