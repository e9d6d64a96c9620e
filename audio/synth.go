package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/codelinechef/portfolio-fx/common"
)

// SynthRate is the sample rate of synthesized clips.
const SynthRate = beep.SampleRate(22050)

// ErrUnknownPreset is returned for a synth preset name with no definition.
var ErrUnknownPreset = errors.New("audio: unknown synth preset")

type wave int

const (
	sine wave = iota
	square
	saw
	triangle
	noise
)

// note is one segment of a preset.
type note struct {
	wave     wave
	freq     float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// presets are the built-in one-shot clips.
var presets = map[string][]note{
	"click":      {{square, 1200, 30 * time.Millisecond, 2 * time.Millisecond, 20 * time.Millisecond, 0.5}},
	"hover":      {{sine, 880, 60 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond, 0.4}},
	"navigation": {{triangle, 660, 50 * time.Millisecond, 5 * time.Millisecond, 20 * time.Millisecond, 0.6}, {triangle, 990, 70 * time.Millisecond, 5 * time.Millisecond, 50 * time.Millisecond, 0.6}},
	"success": {
		{sine, 523.25, 90 * time.Millisecond, 5 * time.Millisecond, 30 * time.Millisecond, 0.6},
		{sine, 659.25, 90 * time.Millisecond, 5 * time.Millisecond, 30 * time.Millisecond, 0.6},
		{sine, 783.99, 220 * time.Millisecond, 5 * time.Millisecond, 180 * time.Millisecond, 0.6},
	},
	"drag":    {{saw, 220, 120 * time.Millisecond, 10 * time.Millisecond, 90 * time.Millisecond, 0.35}},
	"spatial": {{square, 987.77, 80 * time.Millisecond, 2 * time.Millisecond, 40 * time.Millisecond, 0.4}, {square, 1318.51, 160 * time.Millisecond, 2 * time.Millisecond, 130 * time.Millisecond, 0.4}},
	"glitch":  {{noise, 0, 70 * time.Millisecond, 0, 30 * time.Millisecond, 0.8}, {square, 110, 60 * time.Millisecond, 0, 50 * time.Millisecond, 0.5}, {noise, 0, 90 * time.Millisecond, 0, 80 * time.Millisecond, 0.8}},
	"chirp":   {{sine, 1760, 40 * time.Millisecond, 2 * time.Millisecond, 30 * time.Millisecond, 0.3}, {sine, 2349.32, 40 * time.Millisecond, 2 * time.Millisecond, 30 * time.Millisecond, 0.3}},
}

// Presets lists the known preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// Synthesize renders a preset to a streamer.
func Synthesize(name string, rng *common.SeededRNG) (beep.Streamer, error) {
	notes, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc, err := oscillator(n, rng)
		if err != nil {
			return nil, fmt.Errorf("audio: preset %q: %w", name, err)
		}
		shaped := envelope(beep.Take(SynthRate.N(n.duration), osc), n, SynthRate)
		parts = append(parts, gain(shaped, n.gain))
	}
	return beep.Seq(parts...), nil
}

// SynthDataURL renders a preset to a WAV data URL the browser can decode.
func SynthDataURL(name string) (string, error) {
	s, err := Synthesize(name, common.NewSeededRNG(common.StringSeed(name)))
	if err != nil {
		return "", err
	}
	var buf memFile
	format := beep.Format{SampleRate: SynthRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(&buf, s, format); err != nil {
		return "", fmt.Errorf("audio: encode %q: %w", name, err)
	}
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(buf.data), nil
}

func oscillator(n note, rng *common.SeededRNG) (beep.Streamer, error) {
	switch n.wave {
	case sine:
		return generators.SineTone(SynthRate, n.freq)
	case square:
		return generators.SquareTone(SynthRate, n.freq)
	case saw:
		return generators.SawtoothTone(SynthRate, n.freq)
	case triangle:
		return generators.TriangleTone(SynthRate, n.freq)
	default:
		return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				v := rng.Random()*2 - 1
				samples[i][0], samples[i][1] = v, v
			}
			return len(samples), true
		}), nil
	}
}

// envelope applies a linear attack and release.
func envelope(s beep.Streamer, n note, rate beep.SampleRate) beep.Streamer {
	total := rate.N(n.duration)
	att := rate.N(n.attack)
	rel := rate.N(n.release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		got, ok := s.Stream(samples)
		for i := 0; i < got; i++ {
			vol := 1.0
			if pos < att {
				vol = float64(pos) / float64(att)
			}
			if remaining := total - pos; rel > 0 && remaining < rel {
				vol = math.Max(0, float64(remaining)/float64(rel))
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
			pos++
		}
		return got, ok
	})
}

func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// memFile is an in-memory io.WriteSeeker for the WAV encoder, which seeks
// back to patch the header sizes.
type memFile struct {
	data []byte
	pos  int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.data) {
		m.data = append(m.data, make([]byte, end-len(m.data))...)
	}
	copy(m.data[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = len(m.data)
	default:
		return 0, errors.New("audio: bad whence")
	}
	next := base + int(offset)
	if next < 0 {
		return 0, errors.New("audio: negative seek")
	}
	m.pos = next
	return int64(next), nil
}
