package audio

import (
	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Engine is the single owner of the audio channels and the analyser. Every
// consumer commands it; nothing else holds a channel. All calls are no-ops
// until Initialize succeeds and after Close.
type Engine struct {
	cfg     config.Audio
	backend Backend
	sched   common.Scheduler
	log     zerolog.Logger

	muted      *prefs.Flag
	voiceMuted *prefs.Flag

	ambient  Channel
	voice    Channel
	glitch   Channel
	oneShots map[Kind]Channel
	analyser Analyser
	bins     []uint8

	ready      bool
	enabled    bool
	suspended  bool
	voiceArmed bool
	zones      map[*Zone]struct{}
	scope      *common.Scope
}

// NewEngine returns an uninitialized engine. A nil backend is a NopBackend.
func NewEngine(cfg config.Audio, backend Backend, sched common.Scheduler, muted, voiceMuted *prefs.Flag) *Engine {
	if backend == nil {
		backend = NopBackend()
	}
	return &Engine{
		cfg:        cfg,
		backend:    backend,
		sched:      sched,
		log:        common.Component("audio"),
		muted:      muted,
		voiceMuted: voiceMuted,
		oneShots:   make(map[Kind]Channel),
		zones:      make(map[*Zone]struct{}),
		enabled:    true,
		scope:      common.NewScope(),
	}
}

// Initialize opens the backend and creates every channel. Failure leaves the
// engine silent but usable; the error is returned only for logging.
func (e *Engine) Initialize() error {
	if e.ready || e.scope.Closed() {
		return nil
	}
	if err := e.backend.Open(); err != nil {
		e.log.Warn().Err(err).Msg("audio disabled")
		return err
	}
	var err error
	if e.ambient, err = e.load("ambient", e.cfg.Ambient); err != nil {
		e.log.Warn().Err(err).Msg("ambient channel unavailable")
	}
	if e.voice, err = e.load("voice", e.cfg.Voice); err != nil {
		e.log.Warn().Err(err).Msg("voice channel unavailable")
	}
	if e.glitch, err = e.load("glitch", e.cfg.Glitch); err != nil {
		e.log.Debug().Err(err).Msg("glitch channel unavailable")
	}
	for name, c := range e.cfg.OneShots {
		ch, err := e.load(name, c)
		if err != nil {
			e.log.Debug().Err(err).Str("kind", name).Msg("one-shot unavailable")
			continue
		}
		e.oneShots[Kind(name)] = ch
	}

	if e.voice != nil {
		a, err := e.backend.Analyse(e.voice, e.cfg.AnalyserFFTSize)
		if err != nil {
			e.log.Debug().Err(err).Msg("analyser unavailable, equalizer will simulate")
		} else {
			e.analyser = a
			e.bins = make([]uint8, a.Bins())
		}
	}

	e.ready = true
	e.scope.Defer(e.muted.Subscribe(func(bool) { e.apply() }))
	e.scope.Defer(e.voiceMuted.Subscribe(func(bool) { e.apply() }))
	e.scope.Track(e.sched.AfterFunc(common.Millis(e.cfg.VoiceStartDelayMs), func() {
		e.voiceArmed = true
		e.apply()
	}))
	e.apply()
	e.log.Info().Int("one_shots", len(e.oneShots)).Bool("analyser", e.analyser != nil).Msg("audio ready")
	return nil
}

// load creates a channel for c on the engine's backend, synthesizing the
// clip when c has no src.
func (e *Engine) load(name string, c config.Channel) (Channel, error) {
	src := c.Src
	if src == "" {
		var err error
		if src, err = SynthDataURL(c.Synth); err != nil {
			return nil, err
		}
	}
	ch, err := e.backend.Load(name, src, c.Loop)
	if err != nil {
		return nil, err
	}
	ch.SetVolume(c.Volume)
	return ch, nil
}

// apply brings the beds in line with mute, enable and suspend state.
func (e *Engine) apply() {
	if !e.ready {
		return
	}
	live := e.enabled && !e.suspended && !e.muted.Get()
	setPlaying(e.ambient, live)
	setPlaying(e.voice, live && e.voiceArmed && !e.voiceMuted.Get())
	for z := range e.zones {
		z.apply()
	}
}

func setPlaying(ch Channel, on bool) {
	if ch == nil {
		return
	}
	switch {
	case on && !ch.Playing():
		ch.Play()
	case !on && ch.Playing():
		ch.Pause()
	}
}

func (e *Engine) canPlay() bool {
	return e.ready && e.enabled && !e.suspended && !e.muted.Get()
}

// PlayOneShot restarts the named effect at its base volume.
func (e *Engine) PlayOneShot(kind Kind) {
	if !e.canPlay() {
		return
	}
	ch, ok := e.oneShots[kind]
	if !ok {
		return
	}
	ch.SetPan(0)
	ch.SetVolume(e.cfg.OneShots[string(kind)].Volume)
	ch.Restart()
}

// PlaySpatial plays an effect panned and attenuated for a screen position.
func (e *Engine) PlaySpatial(kind Kind, x, y, width, height float64) {
	if !e.canPlay() {
		return
	}
	ch, ok := e.oneShots[kind]
	if !ok {
		return
	}
	cue := Cue(x, y, width, height)
	ch.SetPan(cue.Pan)
	ch.SetVolume(cue.Volume * e.cfg.OneShots[string(kind)].Volume)
	ch.Restart()
}

// PlayGlitch plays the glitch sting.
func (e *Engine) PlayGlitch() {
	if !e.canPlay() || e.glitch == nil {
		return
	}
	e.glitch.SetVolume(e.cfg.Glitch.Volume)
	e.glitch.Restart()
}

// ToggleMute flips the global mute preference.
func (e *Engine) ToggleMute() bool { return e.muted.Toggle() }

// ToggleVoiceMute flips the voice-only mute preference.
func (e *Engine) ToggleVoiceMute() bool { return e.voiceMuted.Toggle() }

// Muted reports the global mute preference.
func (e *Engine) Muted() bool { return e.muted.Get() }

// VoiceMuted reports the voice mute preference.
func (e *Engine) VoiceMuted() bool { return e.voiceMuted.Get() }

// Silenced reports whether the analysed voice bed is inaudible by choice.
func (e *Engine) Silenced() bool { return e.muted.Get() || e.voiceMuted.Get() }

// HasAnalyser reports whether real frequency data is available.
func (e *Engine) HasAnalyser() bool { return e.ready && e.analyser != nil }

// FrequencySnapshot returns the voice bed's current spectrum (0-255 per bin)
// or nil when there is no analyser or the voice is muted. The slice is
// reused by the next call.
func (e *Engine) FrequencySnapshot() []uint8 {
	if !e.HasAnalyser() || !e.enabled || e.Silenced() {
		return nil
	}
	e.analyser.Read(e.bins)
	return e.bins
}

// SetEnabled applies the effects kill-switch: disabled stops the beds and
// turns every play call into a no-op.
func (e *Engine) SetEnabled(on bool) {
	if e.enabled == on {
		return
	}
	e.enabled = on
	e.apply()
}

// Enabled reports the kill-switch state.
func (e *Engine) Enabled() bool { return e.enabled }

// Suspend pauses the beds and the audio context while the page is hidden.
func (e *Engine) Suspend() {
	if e.suspended {
		return
	}
	e.suspended = true
	e.apply()
	e.backend.Suspend()
}

// Resume undoes Suspend.
func (e *Engine) Resume() {
	if !e.suspended {
		return
	}
	e.suspended = false
	e.backend.Resume()
	e.apply()
}

// Close stops everything and releases the backend.
func (e *Engine) Close() {
	if e.scope.Closed() {
		return
	}
	e.scope.Close()
	if e.ready {
		setPlaying(e.ambient, false)
		setPlaying(e.voice, false)
		for z := range e.zones {
			setPlaying(z.ambient, false)
		}
		e.backend.Close()
	}
	e.ready = false
}
