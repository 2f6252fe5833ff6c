package promise

// Promise is the read-only view of a Deferred. It is the same object as the
// deferred it came from, not a copy: registrations made through it attach to
// the live handle, and the owner's Resolve or Reject call is what fires them.
// Producers keep the Deferred to themselves and hand out its Promise freely.
//
// All methods are safe for concurrent use. The interface can only be
// implemented by types in this package; the registration and settlement
// contract depends on internals a foreign implementation couldn't honor.
type Promise[T any] interface {
	// State returns where the promise is in its lifecycle.
	State() State

	// Result returns the resolved value, or the zero value if the promise has
	// not resolved.
	Result() T

	// Cause returns the rejection cause, or nil if the promise has not
	// rejected.
	Cause() error

	// Done registers fn to run with the result when the promise resolves. If
	// it has already resolved, fn fires immediately; if it has already
	// rejected, fn never runs. A nil fn is ignored. Returns the same promise,
	// so registrations chain fluently.
	Done(fn func(value T)) Promise[T]

	// Fail registers fn to run with the cause when the promise rejects. If it
	// has already rejected, fn fires immediately; if it has already resolved,
	// fn never runs. A nil fn is ignored. Returns the same promise.
	Fail(fn func(cause error)) Promise[T]

	// Progress registers fn to observe percentages reported through
	// SetProgress while the promise is pending. If the promise has already
	// resolved, fn fires immediately with 100; resolution counts as full
	// progress. Stored listeners fire only through explicit SetProgress
	// calls, not when the promise settles. A nil fn is ignored. Returns the
	// same promise.
	Progress(fn func(percent int)) Promise[T]

	// Always registers fn to run once the promise settles, whichever way it
	// goes. If it has already settled, fn fires immediately. A nil fn is
	// ignored. Returns the same promise.
	Always(fn func()) Promise[T]

	// Settled returns a channel that is closed once the promise resolves or
	// rejects.
	Settled() <-chan struct{}

	impl() *Deferred[T]
}
