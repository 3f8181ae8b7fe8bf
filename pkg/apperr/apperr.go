package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so transport layers can map it to a status
// code without inspecting message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthorization
	KindPermissionDenied
	KindNotFound
	KindDatabase
	KindIO
	KindConfiguration
	KindParsing
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	case KindIO:
		return "io"
	case KindConfiguration:
		return "configuration"
	case KindParsing:
		return "parsing"
	default:
		return "internal"
	}
}

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

// HTTPStatus maps the error kind to a response status. Everything that
// is not an authorization/permission/not-found condition is a generic
// server error so internals do not leak into status codes.
func (e *Error) HTTPStatus() int {
	switch e.kind {
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, msg string) *Error { return &Error{kind: kind, msg: msg} }

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func Authorization(msg string) *Error    { return New(KindAuthorization, msg) }
func PermissionDenied(msg string) *Error { return New(KindPermissionDenied, msg) }
func NotFound(msg string) *Error         { return New(KindNotFound, msg) }
func Database(msg string) *Error         { return New(KindDatabase, msg) }
func IO(msg string) *Error               { return New(KindIO, msg) }
func Configuration(msg string) *Error    { return New(KindConfiguration, msg) }
func Parsing(msg string) *Error          { return New(KindParsing, msg) }
func Internal(msg string) *Error         { return New(KindInternal, msg) }

// KindOf returns the kind of err, or KindInternal for errors that did
// not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

// HTTPStatus resolves any error to a response status, defaulting to 500.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
