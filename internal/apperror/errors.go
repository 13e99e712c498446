// Package apperror defines the error taxonomy handled at the request
// boundary. Every error carries a Kind and maps to a fixed HTTP status via
// StatusCode, which the error middleware consumes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindAuthentication Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindValidation
	KindConflict
	KindInternal
)

// Fixed client-facing messages. Authentication failures are always the same
// string regardless of whether the username existed, and record-level
// denials are reported as not found so callers cannot enumerate records.
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgPermissionDenied   = "permission denied"
	MsgNotFound           = "not found"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what the client sees. Internal errors never leak their
// underlying cause.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		return "internal error"
	}
	return e.Message
}

func Authentication() *Error {
	return &Error{Kind: KindAuthentication, Message: MsgInvalidCredentials}
}

func Authorization() *Error {
	return &Error{Kind: KindAuthorization, Message: MsgPermissionDenied}
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: MsgNotFound}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// IsKind reports whether err is an apperror of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool       { return IsKind(err, KindNotFound) }
func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }
func IsAuthorization(err error) bool  { return IsKind(err, KindAuthorization) }
func IsValidation(err error) bool     { return IsKind(err, KindValidation) }
func IsConflict(err error) bool       { return IsKind(err, KindConflict) }
