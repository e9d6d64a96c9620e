// Package capability classifies the device the engine is running on.
package capability

import (
	"math"
	"sync"

	"github.com/codelinechef/portfolio-fx/common"
)

// DeviceTier is a coarse device-performance class.
type DeviceTier int

const (
	TierLow DeviceTier = iota
	TierMedium
	TierHigh
)

func (t DeviceTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// Defaults used when the environment does not report a value.
const (
	DefaultCores    = 4
	DefaultMemoryGB = 4
)

// ClassifyTier maps core count and memory to a tier. Non-positive inputs are
// treated as unknown and replaced by the defaults.
func ClassifyTier(cores int, memoryGB float64) DeviceTier {
	if cores <= 0 {
		cores = DefaultCores
	}
	if memoryGB <= 0 {
		memoryGB = DefaultMemoryGB
	}
	switch {
	case cores >= 8 && memoryGB >= 8:
		return TierHigh
	case cores >= 4 && memoryGB >= 4:
		return TierMedium
	default:
		return TierLow
	}
}

// RecommendedPixelScale caps the device pixel ratio by tier.
func RecommendedPixelScale(tier DeviceTier, native float64) float64 {
	if native <= 0 {
		native = 1
	}
	switch tier {
	case TierHigh:
		return math.Min(native, 2.0)
	case TierMedium:
		return math.Min(native, 1.5)
	default:
		return 1.0
	}
}

// Env is the slice of the runtime environment the detector reads.
// Cores and MemoryGB return 0 when the platform does not expose them.
type Env interface {
	ProbeGraphics() (bool, error)
	Cores() int
	MemoryGB() float64
	PixelRatio() float64
}

// StaticEnv is a fixed Env for tests and native tools.
type StaticEnv struct {
	Graphics  bool
	ProbeErr  error
	CoreCount int
	Memory    float64
	NativeDPR float64
}

func (s StaticEnv) ProbeGraphics() (bool, error) { return s.Graphics, s.ProbeErr }
func (s StaticEnv) Cores() int                   { return s.CoreCount }
func (s StaticEnv) MemoryGB() float64            { return s.Memory }
func (s StaticEnv) PixelRatio() float64          { return s.NativeDPR }

// Profile is the result of one detection pass.
type Profile struct {
	Graphics   bool
	Tier       DeviceTier
	Cores      int
	MemoryGB   float64
	PixelScale float64
}

// LowEnd reports whether motion should run at reduced rate and amplitude.
func (p Profile) LowEnd() bool { return p.Tier == TierLow }

// Detect runs a single detection pass. A failing graphics probe counts as no
// graphics support and is only logged.
func Detect(env Env) Profile {
	graphics, err := env.ProbeGraphics()
	if err != nil {
		log := common.Component("capability")
		log.Debug().Err(err).Msg("graphics probe failed, using fallback")
		graphics = false
	}
	cores := env.Cores()
	if cores <= 0 {
		cores = DefaultCores
	}
	mem := env.MemoryGB()
	if mem <= 0 {
		mem = DefaultMemoryGB
	}
	tier := ClassifyTier(cores, mem)
	return Profile{
		Graphics:   graphics,
		Tier:       tier,
		Cores:      cores,
		MemoryGB:   mem,
		PixelScale: RecommendedPixelScale(tier, env.PixelRatio()),
	}
}

// Detector caches the first detection for the life of the process. The tier
// is never re-evaluated afterwards.
type Detector struct {
	env     Env
	once    sync.Once
	profile Profile
}

// NewDetector returns a detector over env.
func NewDetector(env Env) *Detector {
	return &Detector{env: env}
}

// Profile returns the cached profile, probing on first use.
func (d *Detector) Profile() Profile {
	d.once.Do(func() {
		d.profile = Detect(d.env)
		log := common.Component("capability")
		log.Info().
			Bool("graphics", d.profile.Graphics).
			Stringer("tier", d.profile.Tier).
			Float64("pixel_scale", d.profile.PixelScale).
			Msg("device profile")
	})
	return d.profile
}
