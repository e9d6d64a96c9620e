package common

import "time"

// Cancel releases a scheduled callback. Calling it more than once, or after
// the callback already ran, is a no-op.
type Cancel func()

// Scheduler is the single-threaded cooperative clock every effect runs on.
// In the browser it maps to setTimeout/setInterval/requestAnimationFrame;
// tests and the terminal preview drive a ManualScheduler instead.
type Scheduler interface {
	// Now returns the time since the scheduler's origin.
	Now() time.Duration
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Cancel
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Cancel
	// RequestFrame runs fn once on the next animation frame with the frame timestamp.
	RequestFrame(fn func(now time.Duration)) Cancel
}

// Millis converts a millisecond count from config into a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
