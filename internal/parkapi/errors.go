package parkapi

import (
	"errors"
	"fmt"
)

// ErrTokenExpired is raised before any network call when the locally
// stored token is missing or past its embedded expiry. Callers clear the
// stored token and send the user back to sign-in.
var ErrTokenExpired = errors.New("auth token missing or expired")

// APIError is a non-2xx response from the park backend. Message is taken
// from the body's JSON "error" field when the body parses, otherwise a
// generic fallback.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
}
