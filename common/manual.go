package common

import (
	"sort"
	"time"
)

// DefaultFrameInterval is the animation frame cadence of a ManualScheduler (~60 Hz).
const DefaultFrameInterval = 16 * time.Millisecond

type manualTimer struct {
	seq      uint64
	deadline time.Duration
	interval time.Duration
	fn       func()
	dead     bool
}

type manualFrame struct {
	fn   func(time.Duration)
	dead bool
}

// ManualScheduler is a deterministic Scheduler whose clock only moves when
// Advance is called. Timers due at the same instant run in registration
// order, and timers due at a frame boundary run before that frame.
// It is not safe for concurrent use; like the browser event loop it expects
// a single caller.
type ManualScheduler struct {
	FrameInterval time.Duration

	now       time.Duration
	nextFrame time.Duration
	seq       uint64
	timers    []*manualTimer
	frames    []*manualFrame
}

// NewManualScheduler returns a scheduler at time zero with 16ms frames.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		FrameInterval: DefaultFrameInterval,
		nextFrame:     DefaultFrameInterval,
	}
}

// Now implements Scheduler.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// AfterFunc implements Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	return m.add(d, 0, fn)
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(d, d, fn)
}

func (m *ManualScheduler) add(d, interval time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{seq: m.seq, deadline: m.now + d, interval: interval, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.dead = true }
}

// RequestFrame implements Scheduler.
func (m *ManualScheduler) RequestFrame(fn func(now time.Duration)) Cancel {
	f := &manualFrame{fn: fn}
	m.frames = append(m.frames, f)
	return func() { f.dead = true }
}

// Advance moves the clock forward by d, firing everything that falls due.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		m.compact()
		t := m.earliest()
		if t != nil && t.deadline <= target && t.deadline <= m.nextFrame {
			m.now = t.deadline
			if t.interval > 0 {
				t.deadline += t.interval
			} else {
				t.dead = true
			}
			t.fn()
			continue
		}
		if m.nextFrame <= target {
			m.now = m.nextFrame
			m.nextFrame += m.FrameInterval
			m.runFrames()
			continue
		}
		break
	}
	m.now = target
}

// AdvanceFrames advances by n frame intervals.
func (m *ManualScheduler) AdvanceFrames(n int) {
	m.Advance(time.Duration(n) * m.FrameInterval)
}

// Pending reports how many timers and frame callbacks are still scheduled.
// Views that tore down cleanly leave nothing behind.
func (m *ManualScheduler) Pending() int {
	m.compact()
	return len(m.timers) + len(m.frames)
}

// PendingFrames reports outstanding animation frame requests.
func (m *ManualScheduler) PendingFrames() int {
	m.compact()
	return len(m.frames)
}

func (m *ManualScheduler) runFrames() {
	batch := m.frames
	m.frames = nil
	for _, f := range batch {
		if f.dead {
			continue
		}
		f.dead = true
		f.fn(m.now)
	}
}

func (m *ManualScheduler) earliest() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].deadline == m.timers[j].deadline {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].deadline < m.timers[j].deadline
	})
	return m.timers[0]
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	m.timers = live

	frames := m.frames[:0]
	for _, f := range m.frames {
		if !f.dead {
			frames = append(frames, f)
		}
	}
	m.frames = frames
}
