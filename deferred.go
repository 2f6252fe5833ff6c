package promise

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// closedChan is returned by Settled for every deferred that settled before a
// channel was ever requested.
var closedChan = make(chan struct{})

func init() {
	close(closedChan)
}

// Deferred is the writable completion handle behind a Promise. The creator
// keeps the Deferred, settles it exactly once with Resolve or Reject, and may
// report progress along the way; everyone else gets the Promise view. Deferred
// implements Promise, so handing out the view is handing out the same object
// with the writable half out of reach.
//
// All methods are safe for concurrent use. Transitions are guarded by a mutex
// scoped to the single handle; once settled, the result or cause is immutable
// and reads of it take no lock.
type Deferred[T any] struct {
	cfg config

	state atomic.Int32

	mu       sync.Mutex
	result   T
	cause    error
	done     []func(T)
	fail     []func(error)
	always   []func()
	progress []func(int)
	settled  chan struct{}
}

// New creates a pending deferred. With no options its callbacks run inline on
// the goroutine that triggers them; use WithExecutor to pin them elsewhere.
func New[T any](opts ...Option) *Deferred[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newDeferred[T](cfg)
}

func newDeferred[T any](cfg config) *Deferred[T] {
	d := &Deferred[T]{cfg: cfg}
	if o := cfg.observer; o != nil {
		o.Created()
	}
	return d
}

// Promise returns the read-only view of d. The view is d itself, narrowed.
func (d *Deferred[T]) Promise() Promise[T] {
	return d
}

func (d *Deferred[T]) impl() *Deferred[T] {
	return d
}

// State returns where the deferred is in its lifecycle.
func (d *Deferred[T]) State() State {
	return State(d.state.Load())
}

// Result returns the resolved value, or the zero value if the deferred has not
// resolved.
func (d *Deferred[T]) Result() T {
	if d.State() == Resolved {
		return d.result
	}
	var zero T
	return zero
}

// Cause returns the rejection cause, or nil if the deferred has not rejected.
func (d *Deferred[T]) Cause() error {
	if d.State() == Rejected {
		return d.cause
	}
	return nil
}

// Resolve settles d successfully with value and fires the registered done and
// always callbacks in registration order. Settlement is one-shot: if d has
// already resolved or rejected, Resolve is a no-op. Returns the promise view
// of d.
func (d *Deferred[T]) Resolve(value T) Promise[T] {
	d.mu.Lock()
	if State(d.state.Load()) != Pending {
		d.mu.Unlock()
		return d
	}
	d.result = value
	d.state.Store(int32(Resolved))
	done := d.done
	always := d.always
	settled := d.settled
	d.clearListeners()
	d.mu.Unlock()

	if o := d.cfg.observer; o != nil {
		o.Settled(Resolved)
	}
	for _, fn := range done {
		fn := fn
		d.fire(func() { fn(value) })
	}
	for _, fn := range always {
		d.fire(fn)
	}
	if settled != nil {
		close(settled)
	}
	return d
}

// Reject settles d with cause and fires the registered fail and always
// callbacks in registration order. Settlement is one-shot: if d has already
// resolved or rejected, Reject is a no-op, so a resolved deferred can never
// turn into a rejected one. Returns the promise view of d.
func (d *Deferred[T]) Reject(cause error) Promise[T] {
	d.mu.Lock()
	if State(d.state.Load()) != Pending {
		d.mu.Unlock()
		return d
	}
	d.cause = cause
	d.state.Store(int32(Rejected))
	fail := d.fail
	always := d.always
	settled := d.settled
	d.clearListeners()
	d.mu.Unlock()

	if o := d.cfg.observer; o != nil {
		o.Settled(Rejected)
	}
	for _, fn := range fail {
		fn := fn
		d.fire(func() { fn(cause) })
	}
	for _, fn := range always {
		d.fire(fn)
	}
	if settled != nil {
		close(settled)
	}
	return d
}

// SetProgress reports completion progress to the registered progress
// listeners, synchronously and in registration order. The percentage is
// clamped to [0, 100]. Once d has settled, SetProgress is a no-op. Returns the
// promise view of d.
func (d *Deferred[T]) SetProgress(percent int) Promise[T] {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	d.mu.Lock()
	if State(d.state.Load()) != Pending {
		d.mu.Unlock()
		return d
	}
	listeners := d.progress
	d.mu.Unlock()

	for _, fn := range listeners {
		d.notifyProgress(fn, percent)
	}
	return d
}

// Done registers fn to run with the result when d resolves. See
// Promise.Done.
func (d *Deferred[T]) Done(fn func(value T)) Promise[T] {
	if fn == nil {
		return d
	}
	d.mu.Lock()
	if State(d.state.Load()) == Pending {
		d.done = append(d.done, fn)
		d.mu.Unlock()
		return d
	}
	d.mu.Unlock()

	if d.State() == Resolved {
		value := d.result
		d.fire(func() { fn(value) })
	}
	return d
}

// Fail registers fn to run with the cause when d rejects. See Promise.Fail.
func (d *Deferred[T]) Fail(fn func(cause error)) Promise[T] {
	if fn == nil {
		return d
	}
	d.mu.Lock()
	if State(d.state.Load()) == Pending {
		d.fail = append(d.fail, fn)
		d.mu.Unlock()
		return d
	}
	d.mu.Unlock()

	if d.State() == Rejected {
		cause := d.cause
		d.fire(func() { fn(cause) })
	}
	return d
}

// Progress registers fn to observe progress percentages. See
// Promise.Progress.
func (d *Deferred[T]) Progress(fn func(percent int)) Promise[T] {
	if fn == nil {
		return d
	}
	d.mu.Lock()
	if State(d.state.Load()) == Pending {
		d.progress = append(d.progress, fn)
		d.mu.Unlock()
		return d
	}
	d.mu.Unlock()

	if d.State() == Resolved {
		d.notifyProgress(fn, 100)
	}
	return d
}

// Always registers fn to run once d settles, whichever way it goes. See
// Promise.Always.
func (d *Deferred[T]) Always(fn func()) Promise[T] {
	if fn == nil {
		return d
	}
	d.mu.Lock()
	if State(d.state.Load()) == Pending {
		d.always = append(d.always, fn)
		d.mu.Unlock()
		return d
	}
	d.mu.Unlock()

	d.fire(fn)
	return d
}

// Settled returns a channel that is closed once d resolves or rejects.
func (d *Deferred[T]) Settled() <-chan struct{} {
	if d.State() != Pending {
		return closedChan
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if State(d.state.Load()) != Pending {
		return closedChan
	}
	if d.settled == nil {
		d.settled = make(chan struct{})
	}
	return d.settled
}

// clearListeners drops every stored callback so settled deferreds don't pin
// them. The caller must hold mu.
func (d *Deferred[T]) clearListeners() {
	d.done = nil
	d.fail = nil
	d.always = nil
	d.progress = nil
	d.settled = nil
}

// fire hands fn to the deferred's executor. A panic escaping a plain callback
// has no derived promise to carry it, so it is contained here: reported to the
// observer, logged, and otherwise discarded. Settlement is never affected.
func (d *Deferred[T]) fire(fn func()) {
	d.cfg.executor.Submit(func() {
		defer func() {
			if v := recover(); v != nil {
				if o := d.cfg.observer; o != nil {
					o.CallbackPanic(v)
				}
				d.cfg.logger.WithFields(logrus.Fields{
					"state": d.State().String(),
					"panic": v,
					"stack": string(debug.Stack()),
				}).Error("uncaught panic in promise callback")
			}
		}()
		fn()
	})
}

// notifyProgress invokes a single progress listener directly on the calling
// goroutine. Progress is best effort: a panicking listener must never
// destabilize the producer, so the panic is counted and discarded.
func (d *Deferred[T]) notifyProgress(fn func(int), percent int) {
	defer func() {
		if v := recover(); v != nil {
			if o := d.cfg.observer; o != nil {
				o.CallbackPanic(v)
			}
		}
	}()
	fn(percent)
}
