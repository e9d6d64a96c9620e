// Package policy decides which rendering path runs, at what resolution, and
// whether continuous loops may run right now.
package policy

import (
	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Path is the active rendering path.
type Path int

const (
	// PathStatic renders a still fallback disk: no loops, no trail, no particles.
	PathStatic Path = iota
	// PathFallback is the animated 2D canvas surface.
	PathFallback
	// PathGPU is the WebGL scene.
	PathGPU
)

func (p Path) String() string {
	switch p {
	case PathGPU:
		return "gpu"
	case PathFallback:
		return "fallback"
	default:
		return "static"
	}
}

// Decision is the resolved policy for the current inputs.
type Decision struct {
	// Capable is graphics support on a non-low tier, before user preferences.
	Capable bool
	// UseGPU is the effects-enabled decision.
	UseGPU     bool
	Path       Path
	PixelScale float64
	LowEnd     bool
	// Paused is set while the page is hidden.
	Paused bool
	// AudioEnabled is false only under the global kill-switch.
	AudioEnabled bool
}

// Animating reports whether continuous loops should be running.
func (d Decision) Animating() bool {
	return d.Path != PathStatic && !d.Paused
}

// ResolveUseGPU reports whether the GPU path and its effects are enabled.
// Accessibility flags always win.
func ResolveUseGPU(graphics bool, tier capability.DeviceTier, reducedMotion, disableAll bool) bool {
	return graphics && tier != capability.TierLow && !reducedMotion && !disableAll
}

// Resolve is the pure policy function.
func Resolve(p capability.Profile, a prefs.Accessibility, visible bool) Decision {
	d := Decision{
		Capable:      p.Graphics && p.Tier != capability.TierLow,
		UseGPU:       ResolveUseGPU(p.Graphics, p.Tier, a.ReducedMotion, a.DisableAllEffects),
		LowEnd:       p.LowEnd(),
		Paused:       !visible,
		AudioEnabled: !a.DisableAllEffects,
	}
	switch {
	case d.UseGPU:
		d.Path = PathGPU
		d.PixelScale = p.PixelScale
	case a.MotionAllowed():
		d.Path = PathFallback
		d.PixelScale = 1
	default:
		d.Path = PathStatic
		d.PixelScale = 1
	}
	return d
}

// Resolver re-derives the decision synchronously whenever accessibility or
// visibility changes.
type Resolver struct {
	profile  capability.Profile
	access   *common.Subject[prefs.Accessibility]
	visible  *common.Subject[bool]
	decision *common.Subject[Decision]
	scope    *common.Scope
}

// NewResolver subscribes to the inputs. Close releases the subscriptions.
func NewResolver(profile capability.Profile, access *common.Subject[prefs.Accessibility], visible *common.Subject[bool]) *Resolver {
	r := &Resolver{
		profile: profile,
		access:  access,
		visible: visible,
		scope:   common.NewScope(),
	}
	r.decision = common.NewSubject(r.compute())
	r.scope.Defer(access.Subscribe(func(prefs.Accessibility) { r.update() }))
	r.scope.Defer(visible.Subscribe(func(bool) { r.update() }))
	return r
}

func (r *Resolver) compute() Decision {
	return Resolve(r.profile, r.access.Get(), r.visible.Get())
}

func (r *Resolver) update() {
	d := r.compute()
	if d != r.decision.Get() {
		log := common.Component("policy")
		log.Debug().
			Stringer("path", d.Path).
			Bool("paused", d.Paused).
			Bool("audio", d.AudioEnabled).
			Msg("policy changed")
	}
	r.decision.Set(d)
}

// Current returns the latest decision.
func (r *Resolver) Current() Decision { return r.decision.Get() }

// Decisions is the observable decision stream.
func (r *Resolver) Decisions() *common.Subject[Decision] { return r.decision }

// Profile returns the device profile the resolver was built with.
func (r *Resolver) Profile() capability.Profile { return r.profile }

// Close stops following the inputs.
func (r *Resolver) Close() { r.scope.Close() }
