package promise

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

// Executor decides which goroutine runs the callbacks of the deferreds pinned
// to it. Submit must guarantee that fn eventually runs, exactly once.
type Executor interface {
	Submit(fn func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Submit(fn func()) {
	f(fn)
}

// Immediate is the default executor. It runs every closure inline on the
// goroutine that submits it, so callbacks fire synchronously inside Resolve,
// Reject, or a registration call made after settlement.
var Immediate Executor = immediateExecutor{}

type immediateExecutor struct{}

func (immediateExecutor) Submit(fn func()) {
	fn()
}

// SerialExecutor runs closures one at a time, in submission order. It keeps an
// unbounded queue and drains it with at most one active worker, so closures
// submitted against the same deferred are delivered FIFO. The worker exits
// whenever the queue empties; there is nothing to shut down.
type SerialExecutor struct {
	underlying Executor

	mu      sync.Mutex
	queue   []func()
	running bool
}

// NewSerialExecutor returns a SerialExecutor that runs its drain turns on
// underlying. A nil underlying means each drain turn gets a fresh goroutine.
// Wrapping a PoolExecutor trades that per-turn goroutine for a pooled one
// while keeping FIFO delivery.
func NewSerialExecutor(underlying Executor) *SerialExecutor {
	return &SerialExecutor{underlying: underlying}
}

func (e *SerialExecutor) Submit(fn func()) {
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	if e.underlying != nil {
		e.underlying.Submit(e.drain)
	} else {
		go e.drain()
	}
}

func (e *SerialExecutor) drain() {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.running = false
			e.mu.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()
		fn()
	}
}

// PoolExecutor runs closures on a fixed-size goroutine pool. Delivery order is
// not guaranteed; wrap it in a SerialExecutor when a deferred's callbacks need
// ordered delivery on pooled goroutines.
type PoolExecutor struct {
	pool *ants.Pool
}

// NewPoolExecutor creates a PoolExecutor with the given number of workers.
func NewPoolExecutor(size int) (*PoolExecutor, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, errors.Wrap(err, "error creating goroutine pool")
	}
	return &PoolExecutor{pool: pool}, nil
}

// Submit hands fn to the pool. If the pool refuses it, for example after
// Release, fn runs on a fresh goroutine instead so that it is never dropped.
func (e *PoolExecutor) Submit(fn func()) {
	if err := e.pool.Submit(fn); err != nil {
		go fn()
	}
}

// Release stops the pool's workers. Closures submitted afterwards fall back to
// fresh goroutines.
func (e *PoolExecutor) Release() {
	e.pool.Release()
}
