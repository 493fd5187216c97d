package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized signals that the server rejected the bearer token.
// Callers treat this as a global signal to clear the session.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a rejection from the station API. Message is the
// server's own message field when one was present, otherwise a generic
// fallback, so it is safe to show to the user directly.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound returns true for 404 rejections
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

func genericMessage(status int) string {
	return fmt.Sprintf("Request failed (status %d). Please try again.", status)
}
