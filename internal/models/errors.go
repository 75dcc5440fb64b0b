package models

import "fmt"

// ErrorKind categorizes extraction failures
type ErrorKind string

const (
	ErrorKindFetch    ErrorKind = "fetch"
	ErrorKindWrite    ErrorKind = "write"
	ErrorKindInternal ErrorKind = "internal"
)

// ExtractionError is the tagged failure variant of an ExtractionResult
type ExtractionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the status line shown to the user. It always carries
// the underlying cause when there is one.
func (e *ExtractionError) UserMessage() string {
	detail := e.Message
	if e.Cause != nil {
		detail = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	switch e.Kind {
	case ErrorKindFetch:
		return fmt.Sprintf("Failed to fetch page: %s", detail)
	case ErrorKindWrite:
		return fmt.Sprintf("Failed to write output: %s", detail)
	default:
		return fmt.Sprintf("An error occurred: %s", detail)
	}
}

// NewFetchError wraps a network or HTTP status failure
func NewFetchError(message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: ErrorKindFetch, Message: message, Cause: cause}
}

// NewWriteError wraps a filesystem failure
func NewWriteError(message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: ErrorKindWrite, Message: message, Cause: cause}
}

// NewInternalError wraps anything else that went wrong
func NewInternalError(message string, cause error) *ExtractionError {
	return &ExtractionError{Kind: ErrorKindInternal, Message: message, Cause: cause}
}
