// Package equalizer turns the voice channel's frequency data into a bank of
// bar heights, or simulates plausible heights when there is no analyser.
package equalizer

import (
	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
)

// MaxHeight is the height of a bar at full amplitude.
const MaxHeight = 100

// Source is what the bars read from the audio engine.
type Source interface {
	HasAnalyser() bool
	Silenced() bool
	FrequencySnapshot() []uint8
}

// Mode is how the bars are currently driven.
type Mode int

const (
	// Silent holds every bar at zero.
	Silent Mode = iota
	// Live samples the analyser once per animation frame.
	Live
	// Simulated draws random heights on an interval timer.
	Simulated
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case Simulated:
		return "simulated"
	default:
		return "silent"
	}
}

// Sample maps a frequency snapshot onto n bars, taking evenly spaced bins
// across the spectrum.
func Sample(snapshot []uint8, n int, dst []float64) []float64 {
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	step := len(snapshot) / n
	if step == 0 {
		step = 1
	}
	for i := range dst {
		dst[i] = 0
		if idx := i * step; idx < len(snapshot) {
			dst[i] = float64(snapshot[idx]) / 255 * MaxHeight
		}
	}
	return dst
}

// Bars is the equalizer bank. Call Sync whenever mute state, the effects
// policy or visibility changes; it swaps drivers synchronously.
type Bars struct {
	cfg   config.Equalizer
	sched common.Scheduler
	src   Source
	rng   *common.SeededRNG
	log   zerolog.Logger

	heights []float64
	mode    Mode
	driver  *common.Scope
	running bool

	effectsOff bool
	paused     bool

	// OnChange receives the heights after every refresh. The slice is reused.
	OnChange func(heights []float64)
}

// New returns a silent bank of cfg.Bars bars.
func New(cfg config.Equalizer, sched common.Scheduler, src Source, seed uint32) *Bars {
	return &Bars{
		cfg:     cfg,
		sched:   sched,
		src:     src,
		rng:     common.NewSeededRNG(seed),
		log:     common.Component("equalizer"),
		heights: make([]float64, cfg.Bars),
	}
}

func (b *Bars) wanted() Mode {
	switch {
	case b.src.Silenced():
		return Silent
	case b.effectsOff || !b.src.HasAnalyser():
		return Simulated
	default:
		return Live
	}
}

// Sync re-derives the driver from the source's mute state, whether effects
// are disabled and whether the page is hidden.
func (b *Bars) Sync(effectsOff, paused bool) {
	b.effectsOff, b.paused = effectsOff, paused
	mode := b.wanted()
	run := mode != Silent && !paused
	if mode == b.mode && run == b.running {
		return
	}
	b.stopDriver()
	if mode != b.mode {
		b.log.Debug().Stringer("mode", mode).Msg("equalizer mode")
	}
	b.mode = mode
	if mode == Silent {
		b.zero()
		return
	}
	if !paused {
		b.startDriver()
	}
}

func (b *Bars) startDriver() {
	b.driver = common.NewScope()
	b.running = true
	switch b.mode {
	case Live:
		loop := common.NewFrameLoop(b.sched, func(common.Frame) { b.refresh() })
		loop.Start()
		b.driver.Defer(loop.Stop)
	case Simulated:
		b.driver.Track(b.sched.Every(common.Millis(b.cfg.FallbackIntervalMs), b.refresh))
	}
}

func (b *Bars) stopDriver() {
	if b.driver != nil {
		b.driver.Close()
		b.driver = nil
	}
	b.running = false
}

// refresh is one tick of the current driver. A mute that arrived without a
// Sync still zeroes the bars on this tick.
func (b *Bars) refresh() {
	if mode := b.wanted(); mode != b.mode {
		b.Sync(b.effectsOff, b.paused)
		return
	}
	switch b.mode {
	case Live:
		snap := b.src.FrequencySnapshot()
		if snap == nil {
			b.zero()
			return
		}
		b.heights = Sample(snap, b.cfg.Bars, b.heights)
	case Simulated:
		for i := range b.heights {
			b.heights[i] = b.rng.Random() * MaxHeight
		}
	}
	b.emit()
}

func (b *Bars) zero() {
	for i := range b.heights {
		b.heights[i] = 0
	}
	b.emit()
}

func (b *Bars) emit() {
	if b.OnChange != nil {
		b.OnChange(b.heights)
	}
}

// Heights returns a copy of the current bar heights.
func (b *Bars) Heights() []float64 {
	out := make([]float64, len(b.heights))
	copy(out, b.heights)
	return out
}

// Mode reports the current driver.
func (b *Bars) Mode() Mode { return b.mode }

// Running reports whether a driver is scheduled.
func (b *Bars) Running() bool { return b.running }

// Close releases the driver and leaves the bars at zero.
func (b *Bars) Close() {
	b.stopDriver()
	b.mode = Silent
	b.zero()
}
