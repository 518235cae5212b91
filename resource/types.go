package resource

import (
	"github.com/wippyai/ownership"
)

// Handle is an opaque reference to an entry in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventAdopted EventType = iota
	EventLent
	EventTaken
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventAdopted:
		return "adopted"
	case EventLent:
		return "lent"
	case EventTaken:
		return "taken"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a resource lifecycle event.
// For EventReleased, Owned reports whether the table actually released the
// value and Err carries the release error, if any.
type Event struct {
	Value  any
	Err    error
	Handle Handle
	Type   EventType
	Owned  bool
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Order controls the sequence in which Close releases entries.
type Order uint8

const (
	// LIFO releases the most recently inserted entry first.
	LIFO Order = iota
	// FIFO releases in insertion order.
	FIFO
)

// Options configures table behavior.
type Options struct {
	Order Order
}

// DefaultOptions returns default table configuration.
func DefaultOptions() Options {
	return Options{
		Order: LIFO,
	}
}

// Backend provides the underlying storage for ownership wrappers.
type Backend[R ownership.Closer] interface {
	// Create stores a wrapper and returns a handle.
	Create(ref *ownership.Ref[R]) (Handle, error)

	// Get retrieves a wrapper by handle.
	Get(handle Handle) (*ownership.Ref[R], bool)

	// Take moves the resource out of an owning wrapper and frees the handle.
	// Borrowed entries stay in place.
	Take(handle Handle) (R, error)

	// Drop removes a wrapper and returns it. The caller closes it.
	Drop(handle Handle) (*ownership.Ref[R], bool)

	// Drain marks the backend closed and returns every live entry in
	// insertion order.
	Drain() []Entry[R]
}

// Entry is a live handle and its wrapper.
type Entry[R ownership.Closer] struct {
	Ref    *ownership.Ref[R]
	Handle Handle
}
