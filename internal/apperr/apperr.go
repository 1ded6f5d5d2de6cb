package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error so handlers can map it to an HTTP status without
// knowing every package sentinel.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindInvalidState
	KindExpired
	KindInvalidSignature
	KindUpstream
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func NotFound(msg string) *Error         { return New(KindNotFound, msg) }
func Forbidden(msg string) *Error        { return New(KindForbidden, msg) }
func Validation(msg string) *Error       { return New(KindValidation, msg) }
func InvalidState(msg string) *Error     { return New(KindInvalidState, msg) }
func Expired(msg string) *Error          { return New(KindExpired, msg) }
func InvalidSignature(msg string) *Error { return New(KindInvalidSignature, msg) }

func Upstream(msg string, err error) *Error { return Wrap(KindUpstream, msg, err) }

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// HTTPStatus maps an error kind to the status code the API returns for it.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidState:
		return http.StatusConflict
	case KindExpired:
		return http.StatusGone
	case KindInvalidSignature:
		return http.StatusUnauthorized
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
