package render

import "math"

// Spring is a critically damped spring integrated analytically, so it is
// exact for any step size and never overshoots when released from rest.
type Spring struct {
	Omega  float64 // natural frequency, sqrt(k/m)
	Pos    float64
	Vel    float64
	Target float64
}

// NewSpring returns a spring at rest at zero.
func NewSpring(stiffness, mass float64) Spring {
	return Spring{Omega: math.Sqrt(stiffness / mass)}
}

// Step advances the spring by dt seconds.
func (s *Spring) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w := s.Omega
	x0 := s.Pos - s.Target
	v0 := s.Vel
	decay := math.Exp(-w * dt)
	b := v0 + w*x0
	s.Pos = s.Target + (x0+b*dt)*decay
	s.Vel = (v0 - w*b*dt) * decay
}

// Settled reports whether the spring is within eps of its target and slow.
func (s *Spring) Settled(eps float64) bool {
	return math.Abs(s.Pos-s.Target) < eps && math.Abs(s.Vel) < eps
}

// Drag moves the focal element with a pointer and springs it home on
// release. Offsets are in CSS pixels relative to the element's rest position.
type Drag struct {
	x, y     Spring
	grab     Vec2
	dragging bool
}

// NewDrag returns a drag controller at rest.
func NewDrag(stiffness, mass float64) *Drag {
	return &Drag{x: NewSpring(stiffness, mass), y: NewSpring(stiffness, mass)}
}

// Begin grabs the element at screen point p.
func (d *Drag) Begin(p Vec2) {
	d.dragging = true
	d.grab = p.Sub(d.Offset())
}

// Move follows the pointer while dragging.
func (d *Drag) Move(p Vec2) {
	if !d.dragging {
		return
	}
	t := p.Sub(d.grab)
	d.x.Target, d.y.Target = t.X, t.Y
}

// End releases the element; it springs back to rest. It reports whether a
// drag was in progress.
func (d *Drag) End() bool {
	if !d.dragging {
		return false
	}
	d.dragging = false
	d.x.Target, d.y.Target = 0, 0
	return true
}

// Dragging reports whether the pointer holds the element.
func (d *Drag) Dragging() bool { return d.dragging }

// Step advances both axes.
func (d *Drag) Step(dt float64) {
	d.x.Step(dt)
	d.y.Step(dt)
}

// Offset is the element's current displacement.
func (d *Drag) Offset() Vec2 { return Vec2{d.x.Pos, d.y.Pos} }

// Settled reports whether the element is at rest at its target.
func (d *Drag) Settled(eps float64) bool {
	return d.x.Settled(eps) && d.y.Settled(eps)
}

// Reset snaps the element home, used when motion is switched off.
func (d *Drag) Reset() {
	d.dragging = false
	d.x.Pos, d.x.Vel, d.x.Target = 0, 0, 0
	d.y.Pos, d.y.Vel, d.y.Target = 0, 0, 0
}
