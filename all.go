package promise

import (
	"sync"
)

// All combines promises into a single promise for all of their results. The
// combined promise resolves once every input has resolved, with the results
// ordered to match the input order no matter which input finished first, and
// it rejects with the first input's cause as soon as any input rejects,
// without waiting for the rest. Later settlements of the remaining inputs
// never alter the combined promise again.
//
// All returns ErrNoPromises when given nothing to combine and ErrNilPromise
// when an input is nil. The combined promise runs its callbacks on the
// immediate executor regardless of how the inputs are configured.
func All[T any](promises ...Promise[T]) (Promise[[]T], error) {
	if len(promises) == 0 {
		return nil, ErrNoPromises
	}
	for _, p := range promises {
		if p == nil {
			return nil, ErrNilPromise
		}
	}
	a := &aggregate[T]{
		d:       New[[]T](),
		results: make([]T, len(promises)),
	}
	for i, p := range promises {
		i := i
		p.Done(func(value T) {
			a.complete(i, value)
		})
		p.Fail(func(cause error) {
			a.fail(cause)
		})
	}
	return a.d, nil
}

// aggregate tracks the inputs of one All call. The mutex covers the result
// slots and the completion count only; the combined deferred is always settled
// with no aggregate lock held, so a callback on the combined promise is free
// to settle other inputs. Racing completions and failures are arbitrated by
// the deferred's one-shot settlement.
type aggregate[T any] struct {
	d *Deferred[[]T]

	mu        sync.Mutex
	results   []T
	completed int
}

func (a *aggregate[T]) complete(i int, value T) {
	a.mu.Lock()
	if a.d.State() != Pending {
		a.mu.Unlock()
		return
	}
	a.results[i] = value
	a.completed++
	full := a.completed == len(a.results)
	a.mu.Unlock()

	if full {
		a.d.Resolve(a.results)
	}
}

// fail rejects the combined deferred. One-shot settlement keeps the first
// cause; later failures are no-ops.
func (a *aggregate[T]) fail(cause error) {
	a.d.Reject(cause)
}
