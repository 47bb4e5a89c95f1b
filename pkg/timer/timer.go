// Package timer provides the cancellable single-shot scheduling the gesture
// state machine relies on. Callbacks always run on the goroutine that owns
// the menu, never concurrently with input handling.
package timer

import "time"

// Scheduler schedules single-shot callbacks.
type Scheduler interface {
	// Schedule runs fn once after delay unless the returned handle is
	// cancelled first.
	Schedule(delay time.Duration, fn func()) Handle
}

// Handle is a pending callback.
type Handle interface {
	// Cancel prevents the callback from running. It is idempotent and safe
	// to call after the callback already ran.
	Cancel()
}

// Cancel cancels h when it is not nil.
func Cancel(h Handle) {
	if h != nil {
		h.Cancel()
	}
}
