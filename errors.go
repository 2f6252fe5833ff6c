package promise

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

var (
	// ErrNoPromises is returned by All when it is given nothing to combine.
	ErrNoPromises = errors.New("no promises to combine")

	// ErrNilPromise is returned by All when one of its inputs is nil.
	ErrNilPromise = errors.New("nil promise in input")
)

// PanicError is the rejection cause produced when a Then, Map, or Consume
// callback panics instead of returning an error.
type PanicError struct {
	value any
	stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{value: v, stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panic: %v", e.value)
}

// V returns the value the callback panicked with.
func (e *PanicError) V() any {
	return e.value
}

// Stack returns the stack captured when the panic was recovered.
func (e *PanicError) Stack() []byte {
	return e.stack
}
