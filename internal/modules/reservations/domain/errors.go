package domain

import "errors"

var (
	// ErrInvalidRequest is wrapped by every validation failure.
	ErrInvalidRequest = errors.New("invalid reservation request")
	// ErrRelayFailed reports that the email relay rejected or never answered.
	ErrRelayFailed = errors.New("reservation relay failed")
	// ErrRelayDisabled is returned when no email provider is configured.
	ErrRelayDisabled = errors.New("reservation relay disabled")
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// FieldErrors flattens err into the field failures it carries.
func FieldErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var out []*ValidationError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		out = append(out, verr)
	}
	return out
}
