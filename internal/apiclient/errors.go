package apiclient

import (
	"errors"
	"fmt"
)

// ErrAuthRequired signals that no usable access token could be produced;
// no network call has been made for the action itself.
var ErrAuthRequired = errors.New("authentication required")

// NetworkError wraps a transport failure: the request never completed.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError wraps a malformed response body, success or error side.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("response parsing error: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// BackendError is a non-2xx response with a parsed error body.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// userMessage maps a classified call error to the localized string shown to
// the user. Backend errors resolve through the per-action status table;
// everything else falls back to the action's generic message.
func userMessage(err error, fallback string, statusMessages map[int]string) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if msg, ok := statusMessages[backendErr.StatusCode]; ok {
			return msg
		}
	}
	return fallback
}
