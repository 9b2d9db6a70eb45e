package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionExpired is returned when the backend answers 401. By the time the
// caller sees it the session has already been cleared; the caller should send
// the user back to the login screen.
var ErrSessionExpired = errors.New("session expired")

// RequestError represents a non-2xx response other than 401. Error returns
// the backend's message verbatim, or "HTTP error <status>" when the body
// carried none.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// TransportError means no response was received at all.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is a RequestError with
// the given status code. A 401 is reported as ErrSessionExpired instead.
func IsStatus(err error, code int) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == code
	}
	return false
}

// FieldError is one failed payload constraint.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s: %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Rule)
}

// ValidationError is returned before any request is sent when a payload
// fails its constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}
