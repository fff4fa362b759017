// Package effect provides the sequencing primitives the card engine resolves
// abilities with: continuations, an ordered task queue, and a single-goroutine
// loop that view callbacks are posted back onto.
package effect

import "sync/atomic"

// Continuation resumes a pipeline with a (possibly transformed) value.
type Continuation func(value int)

// Done signals that an asynchronous step has finished.
type Done func()

// Task is a unit of queued work. It must call done exactly once when finished.
type Task func(done Done)

// Once wraps done so that only the first call is forwarded.
func Once(done Done) Done {
	var fired atomic.Bool
	return func() {
		if fired.CompareAndSwap(false, true) && done != nil {
			done()
		}
	}
}

// OnceValue is Once for continuations.
func OnceValue(k Continuation) Continuation {
	var fired atomic.Bool
	return func(value int) {
		if fired.CompareAndSwap(false, true) && k != nil {
			k(value)
		}
	}
}
