package ownership

import (
	"context"

	"go.uber.org/multierr"
)

// Use calls fn with the wrapped resource and closes ref when fn returns or
// panics. If only one of fn and Close fails its error is returned unchanged;
// if both fail the errors are combined.
func Use[R Closer](ref *Ref[R], fn func(R) error) (err error) {
	defer func() {
		err = multierr.Append(err, ref.Close())
	}()
	return fn(ref.Value())
}

// UseAsync is Use for AsyncRef. ctx is passed to fn and to Close.
func UseAsync[R ContextCloser](ctx context.Context, ref *AsyncRef[R], fn func(context.Context, R) error) (err error) {
	defer func() {
		err = multierr.Append(err, ref.Close(ctx))
	}()
	return fn(ctx, ref.Value())
}
