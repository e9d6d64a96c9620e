package render

import (
	"math"

	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Scene is the state both surfaces draw: the focal element's rotation,
// drag offset and pulse, the floating shapes, the particle field and the
// cursor trail. Update is a function of animation time and current input,
// so a dropped frame only leaves the picture one frame stale.
type Scene struct {
	cfg *config.Engine

	Rotator  Rotator
	Drag     *Drag
	Shapes   []Shape
	Trail    *Trail
	backdrop *Backdrop

	Theme     prefs.Theme
	Tier      capability.DeviceTier
	LowEnd    bool
	Static    bool
	Particles bool

	// Input
	Pointer  Vec2 // normalized to [-1, 1]
	Viewport Vec2 // CSS pixels

	// Per-frame output
	Time       float64
	Rotation   Vec2
	Offset     Vec2
	Scale      float64
	Distort    float64
	Field      *Field
	FieldRot   Vec2
	Sprites    []Sprite
	ShapeColor string
	Palette    Palette
}

// NewScene returns a scene at rest.
func NewScene(cfg *config.Engine, tier capability.DeviceTier, theme prefs.Theme) *Scene {
	s := &Scene{
		cfg:      cfg,
		Drag:     NewDrag(cfg.Motion.SpringStiffness, cfg.Motion.SpringMass),
		Shapes:   DefaultShapes(),
		Trail:    NewTrail(cfg.Trail),
		backdrop: NewBackdrop(cfg.Particles),
		Tier:     tier,
		Scale:    1,
		Viewport: Vec2{X: 1280, Y: 720},
	}
	s.Configure(false, theme, false, false)
	return s
}

// Configure applies the current policy and theme. A static scene drops
// transient motion state: the drag springs home at once and the trail
// clears.
func (s *Scene) Configure(lowEnd bool, theme prefs.Theme, static, particles bool) {
	s.LowEnd = lowEnd
	s.Rotator.Params = MotionParamsFor(s.cfg.Motion, lowEnd)
	s.Theme = theme
	s.Palette = PaletteFor(theme)
	s.ShapeColor = s.Palette.Shape
	s.Static = static
	s.Particles = particles && !static
	if static {
		s.Drag.Reset()
		s.Trail.Clear()
		s.Sprites = nil
		s.Offset = Vec2{}
		s.Scale = 1
	}
	if s.Particles {
		s.Field = s.backdrop.Field(theme, s.Tier)
	} else {
		s.Field = nil
	}
}

// Backdrop exposes the particle cache.
func (s *Scene) Backdrop() *Backdrop { return s.backdrop }

// Resize records the viewport size in CSS pixels.
func (s *Scene) Resize(w, h float64) {
	if w > 0 && h > 0 {
		s.Viewport = Vec2{X: w, Y: h}
	}
}

// PointerMove records the pointer at screen point (x, y).
func (s *Scene) PointerMove(x, y float64) {
	s.Pointer = Vec2{X: 2*x/s.Viewport.X - 1, Y: -(2*y/s.Viewport.Y - 1)}
	if s.Static {
		return
	}
	s.Trail.Push(x, y)
	s.Drag.Move(Vec2{X: x, Y: y})
}

// Center is the focal element's current screen position.
func (s *Scene) Center() Vec2 {
	return s.Viewport.Scale(0.5).Add(s.Offset)
}

// FocalRadius is the focal element's radius in CSS pixels.
func (s *Scene) FocalRadius() float64 {
	return 0.18 * math.Min(s.Viewport.X, s.Viewport.Y)
}

// Hit reports whether screen point (x, y) is on the focal element.
func (s *Scene) Hit(x, y float64) bool {
	return Vec2{X: x, Y: y}.Sub(s.Center()).Len() <= s.FocalRadius()*s.Scale
}

// PointerDown grabs the focal element when the press lands on it.
func (s *Scene) PointerDown(x, y float64) bool {
	if s.Static || !s.Hit(x, y) {
		return false
	}
	s.Drag.Begin(Vec2{X: x, Y: y})
	return true
}

// PointerUp releases a drag. It reports whether one was in progress.
func (s *Scene) PointerUp() bool {
	return s.Drag.End()
}

// Update advances the scene to frame f.
func (s *Scene) Update(f common.Frame) {
	t := f.Seconds()
	s.Time = t
	if s.Static {
		return
	}
	dt := f.DeltaSeconds()
	m := s.cfg.Motion

	s.Rotation = s.Rotator.Step(t, s.Pointer)
	s.Drag.Step(dt)
	s.Offset = s.Drag.Offset()
	s.Scale = Pulse(t, m, s.LowEnd)
	speed := m.DistortSpeed
	if s.LowEnd {
		speed *= m.LowEndScale
	}
	s.Distort = t * speed
	StepShapes(s.Shapes, t)
	if s.Field != nil {
		x, y := s.Field.Rotation(t)
		s.FieldRot = Vec2{X: x, Y: y}
	}
	s.Sprites = s.Trail.Step()
}
