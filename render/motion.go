// Package render holds the focal element's motion model, the decorative
// backdrop state and the two surfaces that draw them.
package render

import (
	"math"

	"github.com/codelinechef/portfolio-fx/config"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Near(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// MotionParams are the rotation constants in effect for a device.
type MotionParams struct {
	Speed     float64
	Amplitude float64
	Influence float64
	Lerp      float64
}

// MotionParamsFor returns the full-power constants, or the scaled-down set
// for low-end devices.
func MotionParamsFor(m config.Motion, lowEnd bool) MotionParams {
	p := MotionParams{
		Speed:     m.RotationSpeed,
		Amplitude: m.RotationAmplitude,
		Influence: m.PointerInfluence,
		Lerp:      m.LerpFactor,
	}
	if lowEnd {
		p.Speed *= m.LowEndScale
		p.Amplitude *= m.LowEndScale
		p.Lerp *= m.LowEndScale
	}
	return p
}

// Rotator eases the sphere's rotation toward a target that blends an
// autonomous oscillation with pointer influence. It never snaps.
type Rotator struct {
	Params   MotionParams
	Rotation Vec2
}

// Target is the rotation the sphere is heading toward at time t (seconds)
// for a pointer in normalized [-1, 1] coordinates.
func (r *Rotator) Target(t float64, pointer Vec2) Vec2 {
	p := r.Params
	return Vec2{
		X: p.Amplitude*math.Sin(t*p.Speed) + pointer.Y*p.Influence,
		Y: p.Amplitude*math.Cos(t*p.Speed) + pointer.X*p.Influence,
	}
}

// Step moves the rotation one smoothing step toward the target.
func (r *Rotator) Step(t float64, pointer Vec2) Vec2 {
	target := r.Target(t, pointer)
	r.Rotation = r.Rotation.Add(target.Sub(r.Rotation).Scale(r.Params.Lerp))
	return r.Rotation
}

// Pulse is the fallback disk's breathing scale: 1 +- amplitude over period.
func Pulse(t float64, m config.Motion, lowEnd bool) float64 {
	if m.PulsePeriodMs <= 0 {
		return 1
	}
	amp := m.PulseAmplitude
	if lowEnd {
		amp *= m.LowEndScale
	}
	period := float64(m.PulsePeriodMs) / 1000
	return 1 + amp*math.Sin(2*math.Pi*t/period)
}
