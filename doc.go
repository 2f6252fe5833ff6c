// Package promise provides a deferred/promise coordination primitive: a
// writable completion handle (Deferred) paired with a read-only view (Promise)
// that producers and consumers share to coordinate one-shot asynchronous
// results without polling.
//
// A Deferred settles exactly once, by Resolve or Reject. Consumers register
// callbacks through the Promise view with Done, Fail, Always, and Progress;
// callbacks registered before settlement fire when it happens, and callbacks
// registered afterwards fire right away. Then, Map, and Consume derive new
// promises from continuation callbacks, and All combines many promises into
// one. Which goroutine runs a callback is decided by the Executor the handle
// was constructed with; the default runs callbacks inline on the goroutine
// that triggers them.
package promise
