package docgen

import (
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines docgen error kinds.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindStore      ErrorKind = "store"
	KindRender     ErrorKind = "render"
	KindInternal   ErrorKind = "internal"
	KindNotImpl    ErrorKind = "not_implemented"
)

// DocgenError wraps errors with a kind.
type DocgenError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DocgenError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *DocgenError) Unwrap() error {
	return e.Err
}

// NewError creates a new docgen error.
func NewError(kind ErrorKind, msg string, err error) *DocgenError {
	return &DocgenError{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var dgErr *DocgenError
	if errors.As(err, &dgErr) {
		kind = dgErr.Kind
		msg = dgErr.Error()
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindStore:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("store")
	case KindRender:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("render")
	case KindNotImpl:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("not_implemented")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its docgen error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var dgErr *DocgenError
	if errors.As(err, &dgErr) {
		return dgErr.Kind
	}

	return KindInternal
}
