// Package domainerrors defines the coded error taxonomy shared by services
// and the HTTP layer. Services create or wrap errors with a Code; transport
// translates codes to status lines without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for callers and for HTTP translation.
type Code string

const (
	// CodeInvalidInput marks input that failed validation at the boundary
	// (unparseable candidate, non-positive value, out-of-range rounds).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks a malformed request body or query.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a reference to something not registered,
	// e.g. an unknown test id.
	CodeNotFound Code = "not_found"
	// CodeInternal marks unexpected failures. Messages are not exposed
	// over HTTP for this code.
	CodeInternal Code = "internal_error"
)

// DomainError carries a Code alongside a human-readable message and an
// optional wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a DomainError with the given code and message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message while preserving the cause for
// errors.Is/As chains.
func Wrap(err error, code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the Code from err, walking the wrap chain. Unclassified
// errors report CodeInternal.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a Code to the HTTP status the transport layer should
// respond with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
