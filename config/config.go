package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed engine.yaml
var defaultDocument []byte

// Motion tunes the focal element: rotation, pointer follow, drag spring,
// distortion and pulse.
type Motion struct {
	RotationSpeed     float64 `yaml:"rotation_speed"`
	RotationAmplitude float64 `yaml:"rotation_amplitude"`
	PointerInfluence  float64 `yaml:"pointer_influence"`
	LerpFactor        float64 `yaml:"lerp_factor"`
	LowEndScale       float64 `yaml:"low_end_scale"` // multiplier for speed, amplitude and lerp on low-end devices
	SpringStiffness   float64 `yaml:"spring_stiffness"`
	SpringMass        float64 `yaml:"spring_mass"`
	DistortSpeed      float64 `yaml:"distort_speed"`
	DistortAmount     float64 `yaml:"distort_amount"`
	PulsePeriodMs     int     `yaml:"pulse_period_ms"`
	PulseAmplitude    float64 `yaml:"pulse_amplitude"`
}

// Particles sizes the backdrop field and its rotation.
type Particles struct {
	DarkCount       int     `yaml:"dark_count"`
	LightCount      int     `yaml:"light_count"`
	Spread          float64 `yaml:"spread"`
	RotationX       float64 `yaml:"rotation_x"` // radians per second
	RotationY       float64 `yaml:"rotation_y"`
	LightnessJitter float64 `yaml:"lightness_jitter"`
	MediumTierScale float64 `yaml:"medium_tier_scale"`
}

// Trail bounds the cursor trail and sets its fade.
type Trail struct {
	MaxPoints int     `yaml:"max_points"`
	Decay     float64 `yaml:"decay"`
	Cutoff    float64 `yaml:"cutoff"`
}

// Channel describes one audio source. Src is a media URL; when it is empty
// the clip is synthesized from the named Synth preset instead.
type Channel struct {
	Src    string  `yaml:"src,omitempty"`
	Synth  string  `yaml:"synth,omitempty"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop,omitempty"`
}

// Zone is the hidden page's soundscape.
type Zone struct {
	Ambient         Channel `yaml:"ambient"`
	Chirp           Channel `yaml:"chirp"`
	ChirpIntervalMs int     `yaml:"chirp_interval_ms"`
}

// Audio lists every channel the engine loads.
type Audio struct {
	AnalyserFFTSize   int                `yaml:"analyser_fft_size"`
	VoiceStartDelayMs int                `yaml:"voice_start_delay_ms"`
	Ambient           Channel            `yaml:"ambient"`
	Voice             Channel            `yaml:"voice"`
	Glitch            Channel            `yaml:"glitch"`
	OneShots          map[string]Channel `yaml:"one_shots"`
	Zone              Zone               `yaml:"zone"`
}

// Equalizer sets the bar count and the simulated update rate.
type Equalizer struct {
	Bars               int `yaml:"bars"`
	FallbackIntervalMs int `yaml:"fallback_interval_ms"`
}

// Sequence is the hidden page's reveal timing and countdown length.
type Sequence struct {
	TypewriterMsPerChar int `yaml:"typewriter_ms_per_char"`
	StatusDelayMs       int `yaml:"status_delay_ms"`
	FeaturesDelayMs     int `yaml:"features_delay_ms"`
	LogsDelayMs         int `yaml:"logs_delay_ms"`
	LogIntervalMs       int `yaml:"log_interval_ms"`
	CountdownSeconds    int `yaml:"countdown_seconds"`
}

// Geo configures the location lookup.
type Geo struct {
	IPLookupURL       string `yaml:"ip_lookup_url"`
	ReverseGeocodeURL string `yaml:"reverse_geocode_url"`
	PositionTimeoutMs int    `yaml:"position_timeout_ms"`
	PositionMaxAgeMs  int    `yaml:"position_max_age_ms"`
}

// Engine is the complete tuning document.
type Engine struct {
	Motion    Motion    `yaml:"motion"`
	Particles Particles `yaml:"particles"`
	Trail     Trail     `yaml:"trail"`
	Audio     Audio     `yaml:"audio"`
	Equalizer Equalizer `yaml:"equalizer"`
	Sequence  Sequence  `yaml:"sequence"`
	Geo       Geo       `yaml:"geo"`
}

// Default returns the embedded defaults. It panics only if the embedded
// document itself is broken, which the tests guard against.
func Default() *Engine {
	var e Engine
	if err := yaml.Unmarshal(defaultDocument, &e); err != nil {
		panic(fmt.Sprintf("config: embedded engine.yaml: %v", err))
	}
	return &e
}

// Parse overlays doc onto the defaults and validates the result.
func Parse(doc []byte) (*Engine, error) {
	e := Default()
	if err := yaml.Unmarshal(doc, e); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Load reads and parses a tuning file.
func Load(path string) (*Engine, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Save writes the document as YAML.
func Save(path string, e *Engine) error {
	b, err := yaml.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

var (
	ErrLerpRange    = errors.New("config: motion.lerp_factor must be in (0, 1]")
	ErrLowEndScale  = errors.New("config: motion.low_end_scale must be in (0, 1]")
	ErrSpring       = errors.New("config: spring stiffness and mass must be positive")
	ErrBarCount     = errors.New("config: equalizer.bars must be positive")
	ErrFFTSize      = errors.New("config: audio.analyser_fft_size must be a power of two between 32 and 32768")
	ErrTypewriterMs = errors.New("config: sequence.typewriter_ms_per_char must be positive")
	ErrChannel      = errors.New("config: audio channel needs a src or synth preset and a volume in [0, 1]")
)

// Validate checks the invariants the engine relies on.
func (e *Engine) Validate() error {
	m := e.Motion
	switch {
	case m.LerpFactor <= 0 || m.LerpFactor > 1:
		return ErrLerpRange
	case m.LowEndScale <= 0 || m.LowEndScale > 1:
		return ErrLowEndScale
	case m.SpringStiffness <= 0 || m.SpringMass <= 0:
		return ErrSpring
	case e.Equalizer.Bars <= 0:
		return ErrBarCount
	case !validFFT(e.Audio.AnalyserFFTSize):
		return ErrFFTSize
	case e.Sequence.TypewriterMsPerChar <= 0:
		return ErrTypewriterMs
	}
	a := e.Audio
	channels := []Channel{a.Ambient, a.Voice, a.Glitch, a.Zone.Ambient, a.Zone.Chirp}
	for _, c := range a.OneShots {
		channels = append(channels, c)
	}
	for _, c := range channels {
		if (c.Src == "" && c.Synth == "") || c.Volume < 0 || c.Volume > 1 {
			return ErrChannel
		}
	}
	return nil
}

func validFFT(n int) bool {
	return n >= 32 && n <= 32768 && n&(n-1) == 0
}
