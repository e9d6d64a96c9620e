package audio

import "math"

// MinSpatialVolume is the attenuation floor for far-off cues.
const MinSpatialVolume = 0.2

// SpatialCue is the stereo balance and distance attenuation for a point on
// screen. Volume is a factor in [0.2, 1] applied to the channel's base volume.
type SpatialCue struct {
	Pan    float64
	Volume float64
}

// Cue maps screen coordinates inside a width x height viewport to a cue.
// A degenerate viewport is treated as a cue at the center.
func Cue(x, y, width, height float64) SpatialCue {
	if width <= 0 || height <= 0 {
		return SpatialCue{Pan: 0, Volume: 1}
	}
	pan := clamp(2*x/width-1, -1, 1)
	ny := 2*y/height - 1
	distance := math.Sqrt(pan*pan + ny*ny)
	return SpatialCue{
		Pan:    pan,
		Volume: math.Max(MinSpatialVolume, 1-distance*0.5),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
