// Package app is the application-scoped handle: it builds every effect
// component from a Platform, applies each policy decision to all of them
// and tears them down in reverse order.
package app

import (
	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/audio"
	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/equalizer"
	"github.com/codelinechef/portfolio-fx/geo"
	"github.com/codelinechef/portfolio-fx/page"
	"github.com/codelinechef/portfolio-fx/policy"
	"github.com/codelinechef/portfolio-fx/prefs"
	"github.com/codelinechef/portfolio-fx/render"
)

// Platform is everything environment-specific the app needs.
type Platform struct {
	Store    prefs.Store
	System   prefs.System
	Env      capability.Env
	Audio    audio.Backend
	Surfaces render.SurfaceFactory
	// Geo may be nil; the hidden page then reports an unknown location.
	Geo geo.Provider
}

// App owns the effect engine for one page load.
type App struct {
	cfg   *config.Engine
	sched common.Scheduler
	pf    Platform
	log   zerolog.Logger
	scope *common.Scope

	prefs    *prefs.Preferences
	detector *capability.Detector
	visible  *common.Subject[bool]
	resolver *policy.Resolver
	audio    *audio.Engine
	stage    *render.Stage
	bars     *equalizer.Bars

	started  bool
	zone     *RedZone
	fyi      *page.Page
	fyiUnsub func()
}

// New builds the components. Nothing runs until Start.
func New(cfg *config.Engine, sched common.Scheduler, pf Platform) *App {
	if pf.Store == nil {
		pf.Store = prefs.NewMemoryStore()
	}
	if pf.System == nil {
		pf.System = prefs.StaticSystem{}
	}
	if pf.Env == nil {
		pf.Env = capability.StaticEnv{}
	}
	a := &App{
		cfg:      cfg,
		sched:    sched,
		pf:       pf,
		log:      common.Component("app"),
		scope:    common.NewScope(),
		prefs:    prefs.Load(pf.Store, pf.System),
		detector: capability.NewDetector(pf.Env),
		visible:  common.NewSubject(true),
	}
	profile := a.detector.Profile()
	a.resolver = policy.NewResolver(profile, a.prefs.Accessibility, a.visible)
	a.audio = audio.NewEngine(cfg.Audio, pf.Audio, sched, a.prefs.Muted, a.prefs.VoiceMuted)

	factory := pf.Surfaces
	if factory == nil {
		factory = func(policy.Path) render.Surface { return nil }
	}
	scene := render.NewScene(cfg, profile.Tier, a.prefs.Theme.Get())
	a.stage = render.NewStage(sched, scene, factory)
	a.stage.OnRelease = a.onRelease
	a.bars = equalizer.New(cfg.Equalizer, sched, a.audio, common.StringSeed("equalizer"))
	return a
}

// Start applies the current decision and follows every input from then on.
func (a *App) Start() {
	if a.started || a.scope.Closed() {
		return
	}
	a.started = true
	a.scope.Defer(a.resolver.Close)
	a.scope.Defer(a.audio.Close)
	a.scope.Defer(a.stage.Close)
	a.scope.Defer(a.bars.Close)

	a.scope.Defer(a.resolver.Decisions().Subscribe(func(policy.Decision) { a.apply() }))
	a.scope.Defer(a.prefs.Theme.Subscribe(func(prefs.Theme) { a.apply() }))
	a.scope.Defer(a.prefs.Muted.Subscribe(func(bool) { a.syncBars() }))
	a.scope.Defer(a.prefs.VoiceMuted.Subscribe(func(bool) { a.syncBars() }))
	a.apply()

	d := a.resolver.Current()
	a.log.Info().
		Stringer("path", d.Path).
		Stringer("tier", a.detector.Profile().Tier).
		Bool("paused", d.Paused).
		Msg("effects started")
}

// UnlockAudio initializes audio. Browsers only allow it after a user
// gesture; calling it again does nothing.
func (a *App) UnlockAudio() {
	if !a.started || a.scope.Closed() {
		return
	}
	if err := a.audio.Initialize(); err != nil {
		a.log.Debug().Err(err).Msg("continuing without audio")
	}
	a.apply()
}

// apply pushes the current decision into every component. Loops stop or
// start before it returns.
func (a *App) apply() {
	if a.scope.Closed() {
		return
	}
	d := a.resolver.Current()
	a.stage.Apply(d, a.prefs.Theme.Get())
	a.audio.SetEnabled(d.AudioEnabled)
	if d.Paused {
		a.audio.Suspend()
	} else {
		a.audio.Resume()
	}
	a.syncBars()
}

func (a *App) syncBars() {
	if a.scope.Closed() {
		return
	}
	d := a.resolver.Current()
	a.bars.Sync(!d.AudioEnabled, d.Paused)
}

func (a *App) onRelease(x, y float64) {
	vp := a.stage.Scene().Viewport
	a.audio.PlaySpatial(audio.Drag, x, y, vp.X, vp.Y)
}

// SetVisible reports a page visibility change.
func (a *App) SetVisible(v bool) { a.visible.Set(v) }

// Visible is the visibility subject the browser binding writes to.
func (a *App) Visible() *common.Subject[bool] { return a.visible }

// Decision is the current policy decision.
func (a *App) Decision() policy.Decision { return a.resolver.Current() }

// Profile is the cached device profile.
func (a *App) Profile() capability.Profile { return a.detector.Profile() }

// Prefs is the preference state.
func (a *App) Prefs() *prefs.Preferences { return a.prefs }

// Audio is the audio engine.
func (a *App) Audio() *audio.Engine { return a.audio }

// Stage is the render stage.
func (a *App) Stage() *render.Stage { return a.stage }

// Equalizer is the equalizer bank.
func (a *App) Equalizer() *equalizer.Bars { return a.bars }

// Close tears everything down, newest first.
func (a *App) Close() {
	if a.zone != nil {
		a.zone.Close()
	}
	a.CloseFYI()
	a.scope.Close()
}

// openPage mounts a hidden-page sequence that follows the motion decision
// for as long as it is open. The returned func unsubscribes.
func (a *App) openPage(opt page.Options, view page.View, highAccuracy bool) (*page.Page, func()) {
	d := a.resolver.Current()
	if a.pf.Geo != nil {
		opt.Locator = geo.NewLocator(a.cfg.Geo, a.pf.Geo, highAccuracy)
	}
	opt.Sched = a.sched
	opt.Config = a.cfg.Sequence
	opt.Sound = a.audio
	opt.GPU = d.Capable
	opt.Motion = d.Path != policy.PathStatic
	pg := page.Open(opt, view)
	unsub := a.resolver.Decisions().Subscribe(func(d policy.Decision) {
		pg.SetMotion(d.Path != policy.PathStatic)
	})
	return pg, unsub
}

// RedZone is a mounted hidden page with its soundscape.
type RedZone struct {
	Page *page.Page
	Zone *audio.Zone

	app    *App
	unsub  func()
	closed bool
}

// OpenRedZone mounts the hidden page on view, replacing one already open.
func (a *App) OpenRedZone(view page.View, highAccuracy bool, onExit func()) *RedZone {
	if a.zone != nil {
		a.zone.Close()
	}
	rz := &RedZone{app: a, Zone: a.audio.OpenZone(a.prefs.ZoneMuted)}
	a.audio.PlayGlitch()
	rz.Page, rz.unsub = a.openPage(page.Options{
		Transition: true,
		OnExit: func() {
			rz.Close()
			if onExit != nil {
				onExit()
			}
		},
	}, view, highAccuracy)
	a.zone = rz
	return rz
}

// Close unmounts the page and stops its audio.
func (rz *RedZone) Close() {
	if rz.closed {
		return
	}
	rz.closed = true
	rz.unsub()
	rz.Page.Close()
	rz.Zone.Close()
	if rz.app.zone == rz {
		rz.app.zone = nil
	}
}

// OpenFYI runs the reveal in the main page's FYI section: an IP lookup only,
// with no transition, countdown or zone audio. An FYI already open is
// replaced.
func (a *App) OpenFYI(view page.View) *page.Page {
	a.CloseFYI()
	a.fyi, a.fyiUnsub = a.openPage(page.Options{SkipCountdown: true}, view, false)
	return a.fyi
}

// CloseFYI unmounts the FYI reveal if one is open.
func (a *App) CloseFYI() {
	if a.fyi == nil {
		return
	}
	a.fyiUnsub()
	a.fyi.Close()
	a.fyi, a.fyiUnsub = nil, nil
}
