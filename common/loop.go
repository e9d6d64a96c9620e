package common

import "time"

// MaxFrameDelta caps the step handed to frame callbacks so a long stall
// (debugger, throttled tab) does not launch springs across the screen.
const MaxFrameDelta = 100 * time.Millisecond

// PausableClock measures animation time that stands still while paused.
type PausableClock struct {
	sched    Scheduler
	origin   time.Duration
	paused   bool
	pausedAt time.Duration
	offset   time.Duration
}

// NewPausableClock starts a running clock at zero.
func NewPausableClock(sched Scheduler) *PausableClock {
	return &PausableClock{sched: sched, origin: sched.Now()}
}

// Elapsed returns running time since creation, excluding paused spans.
func (c *PausableClock) Elapsed() time.Duration {
	now := c.sched.Now()
	if c.paused {
		now = c.pausedAt
	}
	return now - c.origin - c.offset
}

// Pause freezes the clock.
func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.sched.Now()
}

// Resume restarts the clock from where it froze.
func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.offset += c.sched.Now() - c.pausedAt
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *PausableClock) Paused() bool {
	return c.paused
}

// Frame is what a loop callback receives each animation frame.
type Frame struct {
	Index   uint64
	Elapsed time.Duration
	Delta   time.Duration
}

// Seconds returns elapsed animation time in seconds.
func (f Frame) Seconds() float64 { return f.Elapsed.Seconds() }

// DeltaSeconds returns the frame step in seconds.
func (f Frame) DeltaSeconds() float64 { return f.Delta.Seconds() }

// FrameLoop runs a callback once per animation frame while started. Stopping
// cancels the outstanding frame request and freezes the loop's clock, so a
// restarted loop continues from the same animation time.
type FrameLoop struct {
	sched   Scheduler
	clock   *PausableClock
	fn      func(Frame)
	cancel  Cancel
	running bool
	index   uint64
	last    time.Duration

	// FPS bookkeeping
	fpsFrames int
	fpsSince  time.Duration
	fps       float64
}

// NewFrameLoop returns a stopped loop.
func NewFrameLoop(sched Scheduler, fn func(Frame)) *FrameLoop {
	clock := NewPausableClock(sched)
	clock.Pause()
	return &FrameLoop{sched: sched, clock: clock, fn: fn}
}

// Start begins requesting frames. Starting a running loop does nothing.
func (l *FrameLoop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.clock.Resume()
	l.last = l.clock.Elapsed()
	l.fpsSince = l.sched.Now()
	l.fpsFrames = 0
	l.request()
}

// Stop cancels the pending frame and freezes animation time.
func (l *FrameLoop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.clock.Pause()
}

// Running reports whether the loop is requesting frames.
func (l *FrameLoop) Running() bool { return l.running }

// FPS returns the frame rate measured over the last full second.
func (l *FrameLoop) FPS() float64 { return l.fps }

// Elapsed returns the loop's animation time.
func (l *FrameLoop) Elapsed() time.Duration { return l.clock.Elapsed() }

func (l *FrameLoop) request() {
	l.cancel = l.sched.RequestFrame(l.tick)
}

func (l *FrameLoop) tick(now time.Duration) {
	if !l.running {
		return
	}
	// Schedule next frame first so the callback may Stop the loop.
	l.request()

	l.fpsFrames++
	if span := now - l.fpsSince; span >= time.Second {
		l.fps = float64(l.fpsFrames) / span.Seconds()
		l.fpsFrames = 0
		l.fpsSince = now
	}

	elapsed := l.clock.Elapsed()
	delta := elapsed - l.last
	if delta > MaxFrameDelta {
		delta = MaxFrameDelta
	}
	if delta < 0 {
		delta = 0
	}
	l.last = elapsed
	l.index++
	l.fn(Frame{Index: l.index, Elapsed: elapsed, Delta: delta})
}
