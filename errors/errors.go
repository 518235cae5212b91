package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhaseTransfer Phase = "transfer" // Take on a wrapper or table entry
	PhaseRelease  Phase = "release"  // Close of a table
	PhaseTable    Phase = "table"    // handle table bookkeeping
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidTransferState Kind = "invalid_transfer_state"
	KindNotFound             Kind = "not_found"
	KindClosed               Kind = "closed"
	KindReleaseFailed        Kind = "release_failed"
)

// ErrInvalidTransferState matches any error raised by Take while the
// wrapper does not hold ownership.
var ErrInvalidTransferState = &Error{Phase: PhaseTransfer, Kind: KindInvalidTransferState}

// ErrNotFound matches any unknown-handle error from a table.
var ErrNotFound = &Error{Phase: PhaseTable, Kind: KindNotFound}

// ErrClosed matches any operation rejected by a closed table.
var ErrClosed = &Error{Phase: PhaseTable, Kind: KindClosed}

// ErrReleaseFailed matches the error returned when closing a table fails
// to release one or more entries.
var ErrReleaseFailed = &Error{Phase: PhaseRelease, Kind: KindReleaseFailed}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Hint   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(" of ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name of the wrapped resource
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Hint sets a note about the likely cause
func (b *Builder) Hint(msg string) *Builder {
	b.err.Hint = msg
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// InvalidTransferState creates the error returned by Take when the caller
// does not hold ownership.
func InvalidTransferState(goType string) *Error {
	return New(PhaseTransfer, KindInvalidTransferState).
		GoType(goType).
		Detail("value can only be taken while owned").
		Hint("calling Take more than once is a common cause").
		Build()
}

// NotFound creates a not-found error for a handle
func NotFound(handle uint32) *Error {
	return New(PhaseTable, KindNotFound).
		Value(handle).
		Detail("handle %d not found", handle).
		Build()
}

// Closed creates the error returned by operations on a closed table
func Closed(op string) *Error {
	return New(PhaseTable, KindClosed).
		Detail("%s on closed table", op).
		Build()
}

// ReleaseFailed reports that failed of total releases did not succeed.
// cause holds the release errors themselves.
func ReleaseFailed(failed, total int, cause error) *Error {
	return New(PhaseRelease, KindReleaseFailed).
		Value(failed).
		Detail("%d of %d releases failed", failed, total).
		Cause(cause).
		Build()
}
