// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package carousel

import "time"

// Scheduler abstracts the one-shot timer behind the autoplay tick.
//
// The controller never touches the clock directly, so tests can drive ticks
// deterministically with a fake implementation.
type Scheduler interface {
	// Schedule runs fn once after d and returns a cancel function.
	// Cancel is safe to call more than once and after the timer fired.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production [Scheduler] backed by [time.AfterFunc].
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}
