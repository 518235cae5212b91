package resource

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/errors"
)

var _ ownership.Closer = (*Table[ownership.Closer])(nil)

// Table is the single owner of a set of resources addressed by handle.
// Adopted entries are released by Remove and Close; lent entries never are.
// Table methods are safe for concurrent use. Releases run outside the
// table lock.
type Table[R ownership.Closer] struct {
	backend   *LocalBackend[R]
	observers []Observer
	obsMu     sync.RWMutex
	opts      Options
}

// NewTable creates a table with a LocalBackend.
func NewTable[R ownership.Closer](opts Options) *Table[R] {
	return &Table[R]{
		backend: NewLocalBackend[R](),
		opts:    opts,
	}
}

// NewTableWithDefaults creates a table with default options.
func NewTableWithDefaults[R ownership.Closer]() *Table[R] {
	return NewTable[R](DefaultOptions())
}

// Adopt stores value and takes responsibility for releasing it.
func (t *Table[R]) Adopt(value R) (Handle, error) {
	return t.insert(ownership.Owned(value), EventAdopted)
}

// Lend stores value without taking responsibility for it.
func (t *Table[R]) Lend(value R) (Handle, error) {
	return t.insert(ownership.Borrowed(value), EventLent)
}

func (t *Table[R]) insert(ref *ownership.Ref[R], typ EventType) (Handle, error) {
	handle, err := t.backend.Create(ref)
	if err != nil {
		return 0, err
	}

	Logger().Debug("resource stored",
		zap.Uint32("handle", uint32(handle)),
		zap.Stringer("ref", ref))

	t.notify(Event{
		Type:   typ,
		Handle: handle,
		Value:  ref.Value(),
		Owned:  ref.HasOwnership(),
	})
	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table[R]) Get(handle Handle) (R, bool) {
	ref, ok := t.backend.Get(handle)
	if !ok {
		var zero R
		return zero, false
	}
	return ref.Value(), true
}

// Owns reports whether the table is responsible for releasing handle.
func (t *Table[R]) Owns(handle Handle) bool {
	ref, ok := t.backend.Get(handle)
	return ok && ref.HasOwnership()
}

// Take moves an adopted value out of the table. The handle becomes invalid
// and the caller is responsible for releasing the value.
// Lent entries fail with errors.ErrInvalidTransferState and stay in the
// table; unknown handles fail with errors.ErrNotFound, and every handle
// fails with errors.ErrClosed once the table is closed.
func (t *Table[R]) Take(handle Handle) (R, error) {
	value, err := t.backend.Take(handle)
	if err != nil {
		return value, err
	}

	t.notify(Event{
		Type:   EventTaken,
		Handle: handle,
		Value:  value,
	})
	return value, nil
}

// Remove drops handle from the table and releases its value if the table
// owns it. The release error is returned as is. After Close, Remove fails
// with errors.ErrClosed.
func (t *Table[R]) Remove(handle Handle) error {
	ref, ok := t.backend.Drop(handle)
	if !ok {
		if t.backend.IsClosed() {
			return errors.Closed("remove")
		}
		return errors.NotFound(uint32(handle))
	}
	return t.release(handle, ref)
}

// Len returns the number of entries.
func (t *Table[R]) Len() int {
	return t.backend.Len()
}

// Each iterates over all entries in handle order. owned reports whether the
// table would release the value. fn must not call back into the table.
func (t *Table[R]) Each(fn func(handle Handle, value R, owned bool) bool) {
	t.backend.Each(func(h Handle, ref *ownership.Ref[R]) bool {
		return fn(h, ref.Value(), ref.HasOwnership())
	})
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[R]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[R]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close releases every owned entry in Options.Order and stops accepting
// inserts. Every entry is attempted; failures are logged and returned as an
// errors.ErrReleaseFailed error whose Cause combines the release errors.
// Calling Close again does nothing.
func (t *Table[R]) Close() error {
	entries := t.backend.Drain()
	if t.opts.Order == LIFO {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	var errs error
	failed := 0
	for _, e := range entries {
		if err := t.release(e.Handle, e.Ref); err != nil {
			Logger().Warn("failed to release resource during table close",
				zap.Uint32("handle", uint32(e.Handle)),
				zap.Stringer("ref", e.Ref),
				zap.Error(err))
			errs = multierr.Append(errs, err)
			failed++
		}
	}
	if errs != nil {
		return errors.ReleaseFailed(failed, len(entries), errs)
	}
	return nil
}

func (t *Table[R]) release(handle Handle, ref *ownership.Ref[R]) error {
	owned := ref.HasOwnership()
	err := ref.Close()

	Logger().Debug("resource released",
		zap.Uint32("handle", uint32(handle)),
		zap.Bool("owned", owned),
		zap.Error(err))

	t.notify(Event{
		Type:   EventReleased,
		Handle: handle,
		Value:  ref.Value(),
		Owned:  owned,
		Err:    err,
	})
	return err
}

func (t *Table[R]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
