package audio

import (
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Zone is the hidden page's own soundscape: a looping bed and a short data
// chirp on a fixed interval, both silenced by the zone mute flag as well as
// the global one.
type Zone struct {
	engine  *Engine
	muted   *prefs.Flag
	ambient Channel
	chirp   Channel
	loaded  bool
	scope   *common.Scope
}

// OpenZone starts the zone soundscape. Close it when the page unmounts. A
// zone opened before Initialize loads its channels once the engine is ready.
func (e *Engine) OpenZone(muted *prefs.Flag) *Zone {
	z := &Zone{engine: e, muted: muted, scope: common.NewScope()}
	z.load()
	e.zones[z] = struct{}{}
	z.scope.Defer(func() { delete(e.zones, z) })
	z.scope.Defer(muted.Subscribe(func(bool) { z.apply() }))
	z.scope.Defer(e.muted.Subscribe(func(bool) { z.apply() }))
	z.scope.Track(e.sched.Every(common.Millis(e.cfg.Zone.ChirpIntervalMs), z.tick))
	z.scope.Defer(func() { setPlaying(z.ambient, false) })
	z.apply()
	return z
}

func (z *Zone) load() {
	e := z.engine
	if z.loaded || !e.ready || z.scope.Closed() {
		return
	}
	z.loaded = true
	var err error
	if z.ambient, err = e.load("zone-ambient", e.cfg.Zone.Ambient); err != nil {
		e.log.Debug().Err(err).Msg("zone ambient unavailable")
	}
	if z.chirp, err = e.load("zone-chirp", e.cfg.Zone.Chirp); err != nil {
		e.log.Debug().Err(err).Msg("zone chirp unavailable")
	}
}

// Loaded reports whether the zone channels exist.
func (z *Zone) Loaded() bool { return z.loaded }

func (z *Zone) audible() bool {
	return z.engine.canPlay() && !z.muted.Get()
}

func (z *Zone) apply() {
	z.load()
	setPlaying(z.ambient, z.audible())
}

func (z *Zone) tick() {
	// Enable or suspend state may have changed without a mute event.
	z.apply()
	if z.chirp != nil && z.audible() {
		z.chirp.Restart()
	}
}

// ToggleMute flips the zone mute preference.
func (z *Zone) ToggleMute() bool { return z.muted.Toggle() }

// Muted reports the zone mute preference.
func (z *Zone) Muted() bool { return z.muted.Get() }

// Close stops the bed and the chirp timer.
func (z *Zone) Close() { z.scope.Close() }
