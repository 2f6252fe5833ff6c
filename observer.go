package promise

// Observer receives lifecycle notifications from the deferreds it is attached
// to via WithObserver. Deferreds derived through Then, Map, Consume, and All
// share their parent's observer. Implementations must be safe for concurrent
// use; the engine never invokes an observer while holding an internal lock.
type Observer interface {
	// Created is called once for each new deferred.
	Created()

	// Settled is called once per deferred with the terminal state it reached.
	Settled(s State)

	// CallbackPanic is called with the recovered value whenever a callback
	// panic is contained by the engine rather than converted into a
	// rejection.
	CallbackPanic(v any)
}
