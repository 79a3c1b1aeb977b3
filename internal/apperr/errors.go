package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidSortField Code = "INVALID_SORT_FIELD"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeInternal         Code = "INTERNAL"
)

// Sentinels for errors.Is; they match any *Error of the same code.
var (
	ErrInvalidInput     = &Error{Code: CodeInvalidInput}
	ErrInvalidSortField = &Error{Code: CodeInvalidSortField}
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrConflict         = &Error{Code: CodeConflict}
	ErrInternal         = &Error{Code: CodeInternal}
)

// Error is the only error shape that leaves the store and validation layers.
// Message is safe for clients; Cause is kept for logs and development details.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches sentinels by code. INVALID_SORT_FIELD is also an INVALID_INPUT.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Cause != nil {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return t.Code == CodeInvalidInput && e.Code == CodeInvalidSortField
}

func Invalid(msg string) *Error { return &Error{Code: CodeInvalidInput, Message: msg} }

func InvalidSortField(msg string) *Error { return &Error{Code: CodeInvalidSortField, Message: msg} }

func NotFound(msg string) *Error { return &Error{Code: CodeNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Code: CodeConflict, Message: msg} }

func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, Cause: cause}
}

// As extracts the taxonomy error, wrapping anything foreign as INTERNAL.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal error", err)
}

// Status maps a taxonomy code to its HTTP status.
func Status(err error) int {
	switch As(err).Code {
	case CodeInvalidInput, CodeInvalidSortField:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
