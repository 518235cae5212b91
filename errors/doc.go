// Package errors provides structured error types for the ownership module.
//
// Errors are categorized by Phase (which operation failed) and Kind (error category).
// The Error type carries the Go type of the wrapped resource, a detail message,
// an optional hint about the likely cause, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTable, errors.KindNotFound).
//		Value(uint32(h)).
//		Detail("handle %d not found", h).
//		Build()
//
// The convenience constructors are built the same way:
//
//	err := errors.InvalidTransferState("*os.File")
//	err := errors.NotFound(uint32(handle))
//	err := errors.Closed("take")
//	err := errors.ReleaseFailed(failed, total, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching is by Phase and Kind, so the exported sentinels match every
// error of their category:
//
//	if errors.Is(err, ownerrors.ErrInvalidTransferState) { ... }
package errors
