package ownership

import (
	"github.com/wippyai/ownership/errors"
)

// Ref holds a resource and records whether it is responsible for
// releasing it. The resource never changes after construction; only the
// ownership flag does, and only from true to false.
type Ref[R Closer] struct {
	resource     R
	hasOwnership bool
}

// Owned wraps resource and takes responsibility for releasing it.
func Owned[R Closer](resource R) *Ref[R] {
	return &Ref[R]{resource: resource, hasOwnership: true}
}

// OwnedFrom is Owned(fn()). It keeps the acquisition and the ownership
// transfer in one expression at the call site.
func OwnedFrom[R Closer](fn func() R) *Ref[R] {
	return Owned(fn())
}

// Borrowed wraps resource without taking responsibility for it. Closing the
// Ref never releases the resource.
func Borrowed[R Closer](resource R) *Ref[R] {
	return &Ref[R]{resource: resource}
}

// Value returns the wrapped resource. It does not change ownership and stays
// valid after Take, though the Ref no longer controls the resource lifetime.
func (r *Ref[R]) Value() R {
	return r.resource
}

// HasOwnership reports whether Close would release the resource.
func (r *Ref[R]) HasOwnership() bool {
	return r != nil && r.hasOwnership
}

// Take moves the resource out of the Ref. The caller becomes responsible for
// releasing it and later calls to Close on the Ref do nothing.
// Take fails with errors.ErrInvalidTransferState if the Ref does not own the
// resource, which covers borrowed Refs, a second Take and a nil Ref.
func (r *Ref[R]) Take() (R, error) {
	if !r.HasOwnership() {
		var zero R
		return zero, errors.InvalidTransferState(typeName[R]())
	}
	r.hasOwnership = false
	return r.resource, nil
}

// Close releases the resource if the Ref owns it and it is not nil.
// The resource's error is returned as is.
//
// Close is meant to be called once. It does not clear the ownership flag, so
// calling it again on an owning Ref releases the resource again.
func (r *Ref[R]) Close() error {
	if !r.HasOwnership() || isNil(r.resource) {
		return nil
	}
	return r.resource.Close()
}

func (r *Ref[R]) String() string {
	if r.HasOwnership() {
		return "owned(" + typeName[R]() + ")"
	}
	return "borrowed(" + typeName[R]() + ")"
}
