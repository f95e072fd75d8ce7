package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

var (
	errInvalid = errors.New("invalid")
	errRelay   = errors.New("relay")
)

func TestErrorMapperMap(t *testing.T) {
	mapper := NewErrorMapper().
		WithMapping(errInvalid, http.StatusBadRequest, "invalid reservation").
		WithMapping(errRelay, http.StatusBadGateway, "email relay unavailable")

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "nil", err: nil, status: http.StatusOK},
		{name: "wrapped mapping", err: fmt.Errorf("submit: %w", errInvalid), status: http.StatusBadRequest, message: "invalid reservation"},
		{name: "second mapping", err: errRelay, status: http.StatusBadGateway, message: "email relay unavailable"},
		{name: "deadline", err: fmt.Errorf("send: %w", context.DeadlineExceeded), status: http.StatusGatewayTimeout, message: "request timeout"},
		{name: "cancelled", err: context.Canceled, status: http.StatusServiceUnavailable, message: "request cancelled"},
		{name: "mapping wins over deadline", err: fmt.Errorf("%w: %w", errRelay, context.DeadlineExceeded), status: http.StatusBadGateway, message: "email relay unavailable"},
		{name: "unmatched", err: errors.New("boom"), status: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := mapper.Map(tc.err)
			if info.Status != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, info.Status)
			}
			if info.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, info.Message)
			}
		})
	}
}
