// Package httpx carries the HTTP error taxonomy and the JSON response helpers.
// Handlers return errors; Handle maps them to a status and body exactly once.
package httpx

import (
	"errors"
	"net/http"
)

// MsgBadCredentials is shared by every login failure so that an unknown email
// and a wrong password cannot be told apart.
const MsgBadCredentials = "Invalid email or password."

const msgInternal = "Internal server error."

// Error is an error tagged with the status and message the client sees.
// Err is the underlying cause; it is logged, never sent.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Authentication() *Error {
	return &Error{Status: http.StatusBadRequest, Message: MsgBadCredentials}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msgInternal, Err: err}
}

// As converts any error into an *Error. Untagged errors become Internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
