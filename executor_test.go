package promise

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateRunsInline(t *testing.T) {
	ran := false
	Immediate.Submit(func() {
		ran = true
	})
	assert.True(t, ran)
}

func TestExecutorFunc(t *testing.T) {
	var submitted []func()
	executor := ExecutorFunc(func(fn func()) {
		submitted = append(submitted, fn)
	})

	d := New[int](WithExecutor(executor))
	calls := 0
	d.Done(func(int) {
		calls++
	})
	d.Resolve(1)

	// The callback was handed to the executor, not run.
	assert.Equal(t, 0, calls)
	require.Len(t, submitted, 1)
	submitted[0]()
	assert.Equal(t, 1, calls)
}

func TestSerialExecutorPreservesOrder(t *testing.T) {
	const n = 100

	executor := NewSerialExecutor(nil)
	var mu sync.Mutex
	var order []int
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		executor.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == n-1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the queue to drain")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, n)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestSerialExecutorOnImmediate(t *testing.T) {
	executor := NewSerialExecutor(Immediate)
	var order []int
	for i := 0; i < 10; i++ {
		i := i
		executor.Submit(func() {
			order = append(order, i)
		})
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestSerialExecutorReentrantSubmit(t *testing.T) {
	executor := NewSerialExecutor(Immediate)
	var order []string
	executor.Submit(func() {
		order = append(order, "outer")
		executor.Submit(func() {
			order = append(order, "inner")
		})
		order = append(order, "outer end")
	})
	assert.Equal(t, []string{"outer", "outer end", "inner"}, order)
}

func TestSerialExecutorOnPool(t *testing.T) {
	pool, err := NewPoolExecutor(4)
	require.NoError(t, err)
	defer pool.Release()

	executor := NewSerialExecutor(pool)
	const n = 50
	var mu sync.Mutex
	var order []int
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		executor.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == n-1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the queue to drain")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, n)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestPoolExecutor(t *testing.T) {
	pool, err := NewPoolExecutor(2)
	require.NoError(t, err)

	const n = 20
	var ran atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		pool.Submit(func() {
			ran.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	assert.Equal(t, int32(n), ran.Load())

	// After Release the pool refuses work; Submit degrades to a fresh
	// goroutine rather than dropping the closure.
	pool.Release()
	released := make(chan struct{})
	pool.Submit(func() {
		close(released)
	})
	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("closure submitted after Release never ran")
	}
}

func TestQueuedCallbacksFireInRegistrationOrder(t *testing.T) {
	executor := NewSerialExecutor(nil)
	d := New[int](WithExecutor(executor))
	d.Resolve(1)

	var mu sync.Mutex
	var order []string
	done := make(chan struct{})
	d.Done(func(int) {
		mu.Lock()
		order = append(order, "first")
		mu.Unlock()
	})
	d.Done(func(int) {
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
	})
	d.Always(func() {
		mu.Lock()
		order = append(order, "third")
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callbacks")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second", "third"}, order)
}
