package ownership

import (
	"context"

	"github.com/wippyai/ownership/errors"
)

// AsyncRef is Ref for resources released with a context.
type AsyncRef[R ContextCloser] struct {
	resource     R
	hasOwnership bool
}

// OwnedAsync wraps resource and takes responsibility for releasing it.
func OwnedAsync[R ContextCloser](resource R) *AsyncRef[R] {
	return &AsyncRef[R]{resource: resource, hasOwnership: true}
}

// OwnedAsyncFrom is OwnedAsync(fn()).
func OwnedAsyncFrom[R ContextCloser](fn func() R) *AsyncRef[R] {
	return OwnedAsync(fn())
}

// BorrowedAsync wraps resource without taking responsibility for it.
func BorrowedAsync[R ContextCloser](resource R) *AsyncRef[R] {
	return &AsyncRef[R]{resource: resource}
}

// Value returns the wrapped resource without changing ownership.
func (r *AsyncRef[R]) Value() R {
	return r.resource
}

// HasOwnership reports whether Close would release the resource.
func (r *AsyncRef[R]) HasOwnership() bool {
	return r != nil && r.hasOwnership
}

// Take moves the resource out of the AsyncRef. See Ref.Take.
func (r *AsyncRef[R]) Take() (R, error) {
	if !r.HasOwnership() {
		var zero R
		return zero, errors.InvalidTransferState(typeName[R]())
	}
	r.hasOwnership = false
	return r.resource, nil
}

// Close releases the resource with ctx if the AsyncRef owns it. Cancellation
// and deadlines are whatever the resource does with ctx.
// Like Ref.Close it is meant to be called once.
func (r *AsyncRef[R]) Close(ctx context.Context) error {
	if !r.HasOwnership() || isNil(r.resource) {
		return nil
	}
	return r.resource.Close(ctx)
}

// CloseAsync runs Close on a new goroutine. The returned channel receives
// the result of Close and is then closed.
// Do not call Close or Take on r until the result has been received.
func (r *AsyncRef[R]) CloseAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- r.Close(ctx)
	}()
	return done
}

func (r *AsyncRef[R]) String() string {
	if r.HasOwnership() {
		return "owned(" + typeName[R]() + ")"
	}
	return "borrowed(" + typeName[R]() + ")"
}
