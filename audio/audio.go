// Package audio owns every sound the site makes: the ambient and voice beds,
// short one-shot effects, the glitch sting and the frequency analyser tapped
// onto the voice bed.
package audio

import "errors"

// Kind names a one-shot effect.
type Kind string

const (
	Click      Kind = "click"
	Hover      Kind = "hover"
	Success    Kind = "success"
	Navigation Kind = "navigation"
	Drag       Kind = "drag"
	Spatial    Kind = "spatial"
)

// ErrUnavailable is returned when the platform has no usable audio API.
var ErrUnavailable = errors.New("audio: unavailable")

// Channel is one playable source.
type Channel interface {
	// Play resumes from the current position.
	Play()
	// Restart rewinds to the start and plays.
	Restart()
	Pause()
	Playing() bool
	SetVolume(v float64)
	// SetPan sets stereo balance in [-1, 1].
	SetPan(p float64)
}

// Analyser is a frequency tap. Read fills dst with 0-255 magnitudes, one per
// bin.
type Analyser interface {
	Bins() int
	Read(dst []uint8)
}

// Backend creates channels on a platform audio API.
type Backend interface {
	Open() error
	Load(name, src string, loop bool) (Channel, error)
	// Analyse attaches an analyser to ch's output.
	Analyse(ch Channel, fftSize int) (Analyser, error)
	Suspend()
	Resume()
	Close()
}

type nopBackend struct{}

// NopBackend is a backend with no audio device. Open always fails, leaving the
// engine silent.
func NopBackend() Backend { return nopBackend{} }

func (nopBackend) Open() error                                { return ErrUnavailable }
func (nopBackend) Load(string, string, bool) (Channel, error) { return nil, ErrUnavailable }
func (nopBackend) Analyse(Channel, int) (Analyser, error)     { return nil, ErrUnavailable }
func (nopBackend) Suspend()                                   {}
func (nopBackend) Resume()                                    {}
func (nopBackend) Close()                                     {}
