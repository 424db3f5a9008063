// Package simerr defines the engine's closed set of error kinds. Every
// layer of the engine — the value model, the ECS store, the interpreter,
// and the service facade — raises errors through this package so that the
// facade can map them onto RPC status codes without re-deriving the
// classification (spec §7).
package simerr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error. The set is closed; see spec §7.
type Kind int

const (
	// Internal is the zero Kind, used for errors raised beneath the
	// interpreter that don't fit a more specific kind.
	Internal Kind = iota
	TypeMismatch
	DomainError
	AttrNotFound
	SchemaViolation
	NotFound
	AlreadyExists
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case DomainError:
		return "DomainError"
	case AttrNotFound:
		return "AttrNotFound"
	case SchemaViolation:
		return "SchemaViolation"
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the engine-wide error type. SystemID is populated by
// Simulation.Step when a failure occurs while running a system's graph,
// per spec §7 ("message includes the offending system id when known").
type Error struct {
	Kind     Kind
	Msg      string
	SystemID *int64
	cause    error
}

func (e *Error) Error() string {
	if e.SystemID != nil {
		return fmt.Sprintf("%s: %s (system %d)", e.Kind, e.Msg, *e.SystemID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind that wraps an existing error,
// preserving it for errors.Unwrap/errors.Is chains.
func Wrap(cause error, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), cause: cause}
}

// WithSystem returns a copy of e with SystemID set, used by
// Simulation.Step to annotate a failure with the system it occurred in.
func (e *Error) WithSystem(id int64) *Error {
	cp := *e
	cp.SystemID = &id
	return &cp
}

// Of reports whether err is an *Error of the given kind.
func Of(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// As is errors.As specialized to *Error, so callers outside this package
// don't need their own "var se *simerr.Error" boilerplate plus a stdlib
// errors import just to inspect SystemID or Kind.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}
