//go:build js
// +build js

package common

import (
	"time"

	"github.com/gopherjs/gopherjs/js"
)

// BrowserScheduler drives callbacks from the page's event loop.
type BrowserScheduler struct {
	perf *js.Object
}

// NewBrowserScheduler returns a Scheduler backed by window timers and
// requestAnimationFrame.
func NewBrowserScheduler() *BrowserScheduler {
	return &BrowserScheduler{perf: js.Global.Get("performance")}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Now implements Scheduler.
func (b *BrowserScheduler) Now() time.Duration {
	if b.perf == nil || b.perf == js.Undefined {
		return msToDuration(js.Global.Get("Date").Call("now").Float())
	}
	return msToDuration(b.perf.Call("now").Float())
}

// AfterFunc implements Scheduler.
func (b *BrowserScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	id := js.Global.Call("setTimeout", fn, d.Milliseconds())
	return func() { js.Global.Call("clearTimeout", id) }
}

// Every implements Scheduler.
func (b *BrowserScheduler) Every(d time.Duration, fn func()) Cancel {
	id := js.Global.Call("setInterval", fn, d.Milliseconds())
	return func() { js.Global.Call("clearInterval", id) }
}

// RequestFrame implements Scheduler.
func (b *BrowserScheduler) RequestFrame(fn func(now time.Duration)) Cancel {
	id := js.Global.Call("requestAnimationFrame", func(ts float64) {
		fn(msToDuration(ts))
	}).Int()
	return func() { js.Global.Call("cancelAnimationFrame", id) }
}
