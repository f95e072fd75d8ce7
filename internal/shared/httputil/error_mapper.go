package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a mapper answering 500 for anything unregistered.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper. Earlier mappings win.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// Map converts an error to HTTP status and message. Registered mappings are
// checked before context errors, so a relay failure caused by a timeout keeps
// the relay's status.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}
	if info, ok := mapContext(err); ok {
		return info
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

func mapContext(err error) (HTTPErrorInfo, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}, true
	case errors.Is(err, context.Canceled):
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}, true
	}
	return HTTPErrorInfo{}, false
}
