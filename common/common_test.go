package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRNG_Deterministic(t *testing.T) {
	a := NewSeededRNG(42)
	b := NewSeededRNG(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Random(), b.Random()
		require.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 0.0)
		assert.Less(t, va, 1.0)
	}
}

func TestSeededRNG_Reset(t *testing.T) {
	r := NewSeededRNG(7)
	first := r.Random()
	r.Random()
	r.Reset()
	assert.Equal(t, first, r.Random())
}

func TestStringSeed_StableAndDistinct(t *testing.T) {
	assert.Equal(t, StringSeed("dark"), StringSeed("dark"))
	assert.NotEqual(t, StringSeed("dark"), StringSeed("light"))
	assert.NotEqual(t, DeriveSeed(1, 1), DeriveSeed(1, 2))
}

func TestManualScheduler_TimerOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "b") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })

	s.Advance(29 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	s.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Pending())
}

func TestManualScheduler_CancelAndEvery(t *testing.T) {
	s := NewManualScheduler()
	fired := 0
	cancel := s.AfterFunc(10*time.Millisecond, func() { fired++ })
	cancel()
	cancel()

	ticks := 0
	stop := s.Every(100*time.Millisecond, func() { ticks++ })
	s.Advance(350 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 3, ticks)
	stop()
	s.Advance(time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, s.Pending())
}

func TestManualScheduler_FramesNextTick(t *testing.T) {
	s := NewManualScheduler()
	var stamps []time.Duration
	var step func(time.Duration)
	step = func(now time.Duration) {
		stamps = append(stamps, now)
		if len(stamps) < 3 {
			s.RequestFrame(step)
		}
	}
	s.RequestFrame(step)
	s.AdvanceFrames(5)
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}, stamps)
	assert.Equal(t, 0, s.PendingFrames())
}

func TestScope_LIFOAndOnce(t *testing.T) {
	sc := NewScope()
	var order []int
	sc.Defer(func() { order = append(order, 1) })
	sc.Defer(func() { order = append(order, 2) })
	child := sc.Child()
	child.Defer(func() { order = append(order, 3) })

	sc.Close()
	sc.Close()
	assert.Equal(t, []int{3, 2, 1}, order)

	late := false
	sc.Defer(func() { late = true })
	assert.True(t, late, "cleanup registered after close runs immediately")
}

func TestScope_TrackCancelsTimers(t *testing.T) {
	s := NewManualScheduler()
	sc := NewScope()
	fired := false
	sc.Track(s.AfterFunc(time.Second, func() { fired = true }))
	sc.Track(s.RequestFrame(func(time.Duration) { fired = true }))
	sc.Close()
	s.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestSubject_NotifiesOnChangeOnly(t *testing.T) {
	sub := NewSubject(false)
	var seen []bool
	unsubscribe := sub.Subscribe(func(v bool) { seen = append(seen, v) })
	sub.Set(false)
	sub.Set(true)
	sub.Set(true)
	unsubscribe()
	sub.Set(false)
	assert.Equal(t, []bool{true}, seen)
	assert.Equal(t, 0, sub.Subscribers())
}

func TestFrameLoop_StopFreezesTime(t *testing.T) {
	s := NewManualScheduler()
	var frames []Frame
	loop := NewFrameLoop(s, func(f Frame) { frames = append(frames, f) })

	loop.Start()
	s.AdvanceFrames(3)
	require.Len(t, frames, 3)
	elapsed := loop.Elapsed()

	loop.Stop()
	assert.Equal(t, 0, s.PendingFrames())
	s.Advance(5 * time.Second)
	assert.Equal(t, elapsed, loop.Elapsed())
	assert.Len(t, frames, 3)

	loop.Start()
	s.AdvanceFrames(1)
	require.Len(t, frames, 4)
	assert.Less(t, frames[3].Elapsed, elapsed+100*time.Millisecond, "resumed loop continues from frozen time")
}

func TestFrameLoop_StopInsideCallback(t *testing.T) {
	s := NewManualScheduler()
	var loop *FrameLoop
	count := 0
	loop = NewFrameLoop(s, func(Frame) {
		count++
		loop.Stop()
	})
	loop.Start()
	s.AdvanceFrames(10)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Pending())
}
