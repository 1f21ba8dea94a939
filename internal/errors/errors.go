// Package errors re-exports github.com/cockroachdb/errors so the rest of citygraph
// gets stack traces, hints and wrapping from one import, and defines the sentinel
// errors the HTTP layer maps onto status codes.
//
//	if err := store.Save(req); err != nil {
//	    return errors.Wrap(err, "save graph")
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	Mark          = crdb.Mark
)

var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinels. Wrap them (or Mark an existing error with them) to keep errors.Is working.
var (
	// ErrNotFound indicates the requested graph, text or map entry does not exist.
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the caller sent something malformed.
	ErrInvalidRequest = New("invalid request")

	// ErrConflict indicates the target of a write already exists.
	ErrConflict = New("resource conflict")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool {
	return err != nil && Is(err, ErrConflict)
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// InvalidRequestf creates an invalid-request error with a formatted message.
func InvalidRequestf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRequest)
}

// Conflictf creates a conflict error with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConflict)
}
