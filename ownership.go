package ownership

import (
	"context"
	"reflect"

	"github.com/tetratelabs/wazero/api"
)

// Closer is a resource released synchronously.
type Closer interface {
	Close() error
}

// ContextCloser is a resource released with a context. It is the same
// contract wazero uses for runtimes, compiled modules and instances.
type ContextCloser = api.Closer

// CloserFunc adapts a function to Closer.
type CloserFunc func() error

// Close calls f.
func (f CloserFunc) Close() error {
	return f()
}

// ContextCloserFunc adapts a function to ContextCloser.
type ContextCloserFunc func(ctx context.Context) error

// Close calls f with ctx.
func (f ContextCloserFunc) Close(ctx context.Context) error {
	return f(ctx)
}

// isNil reports whether v holds no resource at all, including typed nils
// stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func typeName[R any]() string {
	return reflect.TypeFor[R]().String()
}

var (
	_ Closer        = (*Ref[Closer])(nil)
	_ ContextCloser = (*AsyncRef[ContextCloser])(nil)
)
