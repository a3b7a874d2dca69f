package errors

import (
	"net/http"
	"strings"
)

// ValidationError collects every field-level failure of one request.
// It renders as a list of messages rather than a single string.
type ValidationError struct {
	messages []string
}

// NewValidationError returns a ValidationError holding msgs in order.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{messages: msgs}
}

// Add appends a failure message.
func (e *ValidationError) Add(msg string) {
	e.messages = append(e.messages, msg)
}

// Empty reports whether no failure was recorded.
func (e *ValidationError) Empty() bool {
	return len(e.messages) == 0
}

// Messages returns the collected messages.
func (e *ValidationError) Messages() []string {
	return e.messages
}

// OrNil returns nil when no failure was recorded.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}

	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return strings.Join(e.messages, ", ")
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-facing error message
func (e *ValidationError) Message() string {
	return e.Error()
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return ""
}
