// Package ownership tracks whether the holder of a releasable resource is
// responsible for releasing it.
//
// A Ref wraps a resource together with an ownership flag. An owned Ref closes
// its resource when the Ref itself is closed; a borrowed Ref never does.
//
//	// ownership of f moves into ref
//	ref := ownership.Owned(f)
//	defer ref.Close()
//
//	// caller keeps responsibility for conn
//	view := ownership.Borrowed(conn)
//	defer view.Close() // no-op
//
// # Package Layout
//
//	ownership/        Ref, AsyncRef, capability interfaces, Use helpers
//	├── errors/       Structured error types (InvalidTransferState)
//	├── resource/     Handle table of owned and lent resources
//	└── cmd/          Playground CLI running ownership scenarios
//
// # Transfer
//
// Take moves the resource out of an owned Ref. Afterwards the Ref no longer
// releases it and the caller must:
//
//	f, err := ref.Take()
//	if err != nil {
//	    return err // ErrInvalidTransferState: borrowed, or taken twice
//	}
//	defer f.Close()
//
// Take succeeds at most once per owned Ref. It fails with
// errors.ErrInvalidTransferState on a borrowed Ref and on every repeated call.
//
// # Release
//
// Close releases the resource only while the Ref owns it. A nil resource is
// never released. Close does not clear the ownership flag: it is contracted
// for single use, and a second Close on an owning Ref calls the resource's
// Close again. Errors from the resource are returned unmodified.
//
// Use ties a Ref to a function scope and closes it on every exit path:
//
//	err := ownership.Use(ownership.Owned(f), func(f *os.File) error {
//	    _, err := f.Write(data)
//	    return err
//	})
//
// # Context-Aware Release
//
// AsyncRef wraps resources released with Close(context.Context) error, such
// as wazero runtimes and modules. CloseAsync returns a channel that yields the
// release result once it completes. The context is passed to the resource
// unchanged; AsyncRef adds no timeout of its own.
//
// # Thread Safety
//
// Ref and AsyncRef are not safe for concurrent use. Exactly one goroutine
// should drive Take and Close on a given Ref.
package ownership
