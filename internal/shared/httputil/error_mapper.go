package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/auth"
	"mesaYaDash/internal/shared/forms"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
	Fields  map[string]string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
// Validation, backend and transport failures are recognised before the
// registered mappings so every handler answers them the same way.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	if verr, ok := forms.AsValidationError(err); ok {
		return HTTPErrorInfo{Status: http.StatusUnprocessableEntity, Message: "validation failed", Fields: verr.Fields}
	}
	if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
		return HTTPErrorInfo{Status: http.StatusUnauthorized, Message: "unauthorized"}
	}

	// Registered mappings win over the backend status so modules can turn a
	// 404 into their own not-found message.
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if apiErr, ok := rest.AsAPIError(err); ok {
		return HTTPErrorInfo{Status: http.StatusBadGateway, Message: apiErr.Error()}
	}
	if errors.Is(err, rest.ErrTransport) || errors.Is(err, querycache.ErrFetchCancelled) {
		return HTTPErrorInfo{Status: http.StatusBadGateway, Message: "backend unavailable"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// Respond writes err as a JSON error body.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	info := m.Map(err)
	body := map[string]any{"error": info.Message}
	if len(info.Fields) > 0 {
		body["fields"] = info.Fields
	}
	return c.JSON(info.Status, body)
}

// UserMessage returns the single line shown to an operator for err. Every
// failure kind ends up as one message; none is retried.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "the server took too long to answer"
	}
	if verr, ok := forms.AsValidationError(err); ok {
		return verr.Error()
	}
	if apiErr, ok := rest.AsAPIError(err); ok {
		return apiErr.Error()
	}
	if errors.Is(err, rest.ErrTransport) || errors.Is(err, querycache.ErrFetchCancelled) {
		return "could not reach the server"
	}
	return err.Error()
}
