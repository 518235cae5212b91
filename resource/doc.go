// Package resource provides a handle table of ownership wrappers.
//
// A Table is the single owner of the resources adopted into it. Each entry is
// an ownership.Ref addressed by an integer handle, so a resource can be passed
// around by handle while exactly one party remains responsible for releasing
// it.
//
// # Resource Lifecycle
//
//	Adopt  - the table takes ownership; Remove and Close release the value
//	Lend   - the table only references the value; it is never released
//	Take   - ownership moves from the table to the caller; the handle is freed
//	Remove - the entry is dropped and released if the table owns it
//
// Take follows the same rule as ownership.Ref: it only succeeds on adopted
// entries. Taking a lent entry fails with errors.ErrInvalidTransferState and
// leaves the entry in place.
//
// # Handle Table
//
//	table := resource.NewTableWithDefaults[io.Closer]()
//	defer table.Close()
//
//	h, err := table.Adopt(file)
//	f, ok := table.Get(h)
//
//	// hand the file to someone else
//	f, err = table.Take(h)
//
// Handle 0 is never issued. Freed handles are reused.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(obs) // obs.OnResourceEvent(resource.Event)
//
// EventReleased is delivered for every removed entry. Event.Owned tells
// whether the value was actually released and Event.Err carries the
// release error.
//
// # Closing
//
// Close releases every adopted entry, most recent first by default
// (Options.Order), and keeps going when a release fails. Failures are logged
// through Logger() and returned combined with go.uber.org/multierr.
// The table rejects inserts after Close with errors.ErrClosed.
package resource
