// Package dErrors carries typed domain errors across layer boundaries.
// Services wrap store failures into these; handlers translate them to HTTP.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and branching.
type Code string

const (
	// CodeBadRequest covers missing or undecodable request payloads.
	CodeBadRequest Code = "bad_request"
	// CodeValidation covers field-level rule failures.
	CodeValidation Code = "validation"
	// CodeInvalidID covers operations keyed by a zero or negative identifier.
	CodeInvalidID Code = "invalid_id"
	// CodeNotFound covers lookups and updates against missing records.
	CodeNotFound Code = "not_found"
	// CodeMapping covers row-to-record conversion failures (schema drift).
	CodeMapping Code = "mapping"
	// CodeInternal covers persistence and other infrastructure failures.
	CodeInternal Code = "internal"
)

// DomainError pairs a classification code with a user-presentable message
// and an optional wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a domain error with no underlying cause.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error
// carrying the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Message returns the user-presentable message for err. Non-domain errors
// fall back to their Error string.
func Message(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidID:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMapping, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
