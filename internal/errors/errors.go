package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig       = "CONFIG"
	ErrInvalidInput = "INVALID_INPUT"
	ErrCapacity     = "CAPACITY"
	ErrSource       = "SOURCE"
	ErrLayout       = "LAYOUT"
	ErrInterrupt    = "INTERRUPT"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// ErrInterruptRequested is the cancellation cause recorded when an operator
// interrupts the dashboard. The render loop treats it as a clean shutdown.
var ErrInterruptRequested = &Error{
	Code:    ErrInterrupt,
	Message: "Interrupt requested",
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSource code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSource,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewInvalidInput reports input the aggregation pipeline refuses to process.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:       ErrInvalidInput,
		Message:    message,
		Suggestion: "The previous frame stays on screen; the next tick retries on schedule",
	}
}

// NewCapacityMismatch reports more nodes than the grid preset can show.
func NewCapacityMismatch(nodes, capacity int) *Error {
	return &Error{
		Code:       ErrCapacity,
		Message:    fmt.Sprintf("%d nodes exceed grid capacity of %d", nodes, capacity),
		Suggestion: "Pick a larger preset with --grid (see 'clustertop presets')",
	}
}

// WrapSourceUnavailable marks a failed cluster state fetch.
func WrapSourceUnavailable(err error) *Error {
	return &Error{
		Code:       ErrSource,
		Message:    "Cluster state unavailable",
		Suggestion: "Check that the telemetry source is reachable",
		Cause:      err,
	}
}

// Error implements the error interface with the ✗ message / cause / suggestion layout.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ctErr *Error
	if errors.As(err, &ctErr) {
		return ctErr.Code == code
	}
	return false
}

// Summary returns the one-line message of a structured error, or err.Error()
// for anything else. Used where multi-line output would break a layout.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var ctErr *Error
	if errors.As(err, &ctErr) {
		if ctErr.Cause != nil {
			return ctErr.Message + ": " + firstLine(ctErr.Cause.Error())
		}
		return ctErr.Message
	}
	return firstLine(err.Error())
}

func firstLine(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "✗ ")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
