package render

import "math"

// Vec3 is a scene-space position.
type Vec3 struct {
	X, Y, Z float64
}

// Shape is one floating wireframe octahedron.
type Shape struct {
	Base     Vec3
	Speed    float64
	Position Vec3
	Spin     float64 // rotation about x and y, radians
}

// DefaultShapes is the floating shape layout.
func DefaultShapes() []Shape {
	layout := []struct {
		pos   Vec3
		speed float64
	}{
		{Vec3{-3, 2, -2}, 0.8},
		{Vec3{3, -1, -3}, 1.2},
		{Vec3{-2, -2, -1}, 0.6},
		{Vec3{4, 3, -4}, 1.0},
	}
	shapes := make([]Shape, len(layout))
	for i, l := range layout {
		shapes[i] = Shape{Base: l.pos, Speed: l.speed, Position: l.pos}
	}
	return shapes
}

// StepShapes spins each shape a fixed step and bobs it about its base
// height at time t seconds.
func StepShapes(shapes []Shape, t float64) {
	for i := range shapes {
		s := &shapes[i]
		s.Spin += 0.01 * s.Speed
		s.Position = s.Base
		s.Position.Y = s.Base.Y + math.Sin(t*s.Speed)*0.5
	}
}
