package resource

import (
	"sort"
	"sync"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/errors"
)

var _ Backend[ownership.Closer] = (*LocalBackend[ownership.Closer])(nil)

// LocalBackend is an in-memory backend with handle reuse.
type LocalBackend[R ownership.Closer] struct {
	entries  []entry[R]
	freeList []Handle
	seq      uint64
	mu       sync.RWMutex
	closed   bool
}

type entry[R ownership.Closer] struct {
	ref   *ownership.Ref[R]
	seq   uint64
	valid bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend[R ownership.Closer]() *LocalBackend[R] {
	return &LocalBackend[R]{
		entries:  make([]entry[R], 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Create stores a wrapper and returns a handle.
func (b *LocalBackend[R]) Create(ref *ownership.Ref[R]) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errors.Closed("create")
	}

	b.seq++
	e := entry[R]{
		ref:   ref,
		seq:   b.seq,
		valid: true,
	}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, nil
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), nil
}

// Get retrieves a wrapper by handle.
func (b *LocalBackend[R]) Get(handle Handle) (*ownership.Ref[R], bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}
	return e.ref, true
}

// Take moves the resource out of an owning wrapper and frees the handle.
func (b *LocalBackend[R]) Take(handle Handle) (R, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		var zero R
		return zero, errors.Closed("take")
	}
	e, ok := b.lookup(handle)
	if !ok {
		var zero R
		return zero, errors.NotFound(uint32(handle))
	}

	value, err := e.ref.Take()
	if err != nil {
		return value, err
	}
	b.free(handle)
	return value, nil
}

// Drop removes a wrapper and returns it.
func (b *LocalBackend[R]) Drop(handle Handle) (*ownership.Ref[R], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}
	ref := e.ref
	b.free(handle)
	return ref, true
}

// Drain marks the backend closed and returns all live entries in insertion
// order. A second Drain returns nil.
func (b *LocalBackend[R]) Drain() []Entry[R] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	live := make([]int, 0, len(b.entries))
	for i, e := range b.entries {
		if e.valid {
			live = append(live, i)
		}
	}
	sort.Slice(live, func(i, j int) bool { return b.entries[live[i]].seq < b.entries[live[j]].seq })

	out := make([]Entry[R], len(live))
	for i, idx := range live {
		out[i] = Entry[R]{Ref: b.entries[idx].ref, Handle: Handle(idx + 1)}
	}

	b.entries = nil
	b.freeList = nil
	return out
}

// IsClosed reports whether Drain has been called.
func (b *LocalBackend[R]) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Len returns the number of live entries.
func (b *LocalBackend[R]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live entries in handle order.
// fn must not call back into the backend.
func (b *LocalBackend[R]) Each(fn func(Handle, *ownership.Ref[R]) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.ref) {
				break
			}
		}
	}
}

func (b *LocalBackend[R]) lookup(handle Handle) (*entry[R], bool) {
	if handle == 0 {
		return nil, false
	}
	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}
	e := &b.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e, true
}

// free must be called with mu held.
func (b *LocalBackend[R]) free(handle Handle) {
	b.entries[handle-1] = entry[R]{}
	b.freeList = append(b.freeList, handle)
}
