package promise

// Then derives a new promise from a continuation that itself returns a
// promise. If p rejects, the derived promise rejects with the same cause and
// fn never runs. If p resolves, fn runs with the result on p's executor, and
// then:
//
//   - fn returns a promise: the derived promise tracks it, resolving with its
//     result or rejecting with its cause.
//   - fn returns a nil promise: the derived promise resolves with the zero
//     value.
//   - fn returns an error or panics: the derived promise rejects with the
//     error, or with a *PanicError wrapping the panic value.
//
// The derived promise is a distinct handle that inherits p's configuration.
// A nil fn panics.
func Then[T, R any](p Promise[T], fn func(value T) (Promise[R], error)) Promise[R] {
	if fn == nil {
		panic("promise: nil callback")
	}
	d := newChild[R](p)
	p.Fail(func(cause error) {
		d.Reject(cause)
	})
	p.Done(func(value T) {
		next, err := call(fn, value)
		if err != nil {
			d.Reject(err)
			return
		}
		if next == nil || next.impl() == nil {
			var zero R
			d.Resolve(zero)
			return
		}
		next.Done(func(value R) {
			d.Resolve(value)
		})
		next.Fail(func(cause error) {
			d.Reject(cause)
		})
	})
	return d
}

// Map derives a new promise from a transformation of p's result. If p rejects,
// the derived promise rejects with the same cause and fn never runs. If p
// resolves, the derived promise resolves with fn's return value, or rejects if
// fn returns an error or panics. A nil fn panics.
func Map[T, R any](p Promise[T], fn func(value T) (R, error)) Promise[R] {
	if fn == nil {
		panic("promise: nil callback")
	}
	d := newChild[R](p)
	p.Fail(func(cause error) {
		d.Reject(cause)
	})
	p.Done(func(value T) {
		result, err := call(fn, value)
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(result)
	})
	return d
}

// Consume derives a valueless promise that settles once fn has consumed p's
// result. If p rejects, the derived promise rejects with the same cause and fn
// never runs. If p resolves, the derived promise resolves empty after fn
// returns nil, or rejects if fn returns an error or panics. A nil fn panics.
func Consume[T any](p Promise[T], fn func(value T) error) Promise[struct{}] {
	if fn == nil {
		panic("promise: nil callback")
	}
	d := newChild[struct{}](p)
	p.Fail(func(cause error) {
		d.Reject(cause)
	})
	p.Done(func(value T) {
		_, err := call(func(value T) (struct{}, error) {
			return struct{}{}, fn(value)
		}, value)
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(struct{}{})
	})
	return d
}

func newChild[R any, T any](p Promise[T]) *Deferred[R] {
	return newDeferred[R](p.impl().cfg)
}

// call invokes fn with panic capture: a recovered panic comes back as a
// *PanicError so chaining can turn it into a rejection.
func call[T, R any](fn func(T) (R, error), value T) (result R, err error) {
	defer func() {
		if v := recover(); v != nil {
			var zero R
			result, err = zero, newPanicError(v)
		}
	}()
	return fn(value)
}
