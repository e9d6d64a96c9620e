package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Particle is one backdrop point.
type Particle struct {
	X, Y, Z float64
	Color   colorful.Color
}

// TierScale is how much of the full field a tier gets, both in population
// and in rotation speed. Low-tier devices get no particle field at all.
func TierScale(cfg config.Particles, tier capability.DeviceTier) float64 {
	switch tier {
	case capability.TierHigh:
		return 1
	case capability.TierMedium:
		return cfg.MediumTierScale
	default:
		return 0
	}
}

// ParticleCount is the population for a theme on a device tier.
func ParticleCount(cfg config.Particles, theme prefs.Theme, tier capability.DeviceTier) int {
	n := cfg.LightCount
	if theme == prefs.Dark {
		n = cfg.DarkCount
	}
	return int(float64(n) * TierScale(cfg, tier))
}

// Field is a particle backdrop. Its layout is a pure function of theme and
// tier; the same inputs give the same picture.
type Field struct {
	Theme     prefs.Theme
	Tier      capability.DeviceTier
	Particles []Particle

	cfg config.Particles
}

// NewField generates the field for theme, seeded from the theme name.
func NewField(cfg config.Particles, theme prefs.Theme, tier capability.DeviceTier) *Field {
	f := &Field{Theme: theme, Tier: tier, cfg: cfg}
	n := ParticleCount(cfg, theme, tier)
	if n == 0 {
		return f
	}
	rng := common.NewSeededRNG(common.StringSeed(string(theme)))
	base := mustColor(PaletteFor(theme).Particle)
	h, s, l := base.Hsl()

	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X = rng.Centered(cfg.Spread)
		p.Y = rng.Centered(cfg.Spread)
		p.Z = rng.Centered(cfg.Spread)
		ll := l + rng.Centered(2*cfg.LightnessJitter)
		p.Color = colorful.Hsl(h, s, math.Max(0, math.Min(1, ll))).Clamped()
	}
	return f
}

// Rotation is the field's rotation about x and y at time t seconds, slowed
// on weaker tiers.
func (f *Field) Rotation(t float64) (x, y float64) {
	k := t * TierScale(f.cfg, f.Tier)
	return k * f.cfg.RotationX, k * f.cfg.RotationY
}

// Backdrop keeps the current field and regenerates it only when the theme
// (or tier) changes, never per frame.
type Backdrop struct {
	cfg     config.Particles
	field   *Field
	rebuilt int
}

// NewBackdrop returns an empty backdrop.
func NewBackdrop(cfg config.Particles) *Backdrop {
	return &Backdrop{cfg: cfg}
}

// Field returns the field for theme and tier, reusing the current one when
// nothing changed.
func (b *Backdrop) Field(theme prefs.Theme, tier capability.DeviceTier) *Field {
	if b.field == nil || b.field.Theme != theme || b.field.Tier != tier {
		b.field = NewField(b.cfg, theme, tier)
		b.rebuilt++
	}
	return b.field
}

// Rebuilds counts how many times a field has been generated.
func (b *Backdrop) Rebuilds() int { return b.rebuilt }
