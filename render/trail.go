package render

import (
	"fmt"

	"github.com/codelinechef/portfolio-fx/config"
)

// TrailPoint is one fading cursor sample.
type TrailPoint struct {
	X, Y    float64
	Opacity float64
}

// Trail is the cursor trail: a bounded queue of points that fade each frame.
type Trail struct {
	cfg    config.Trail
	points []TrailPoint
}

// NewTrail returns an empty trail.
func NewTrail(cfg config.Trail) *Trail {
	return &Trail{cfg: cfg}
}

// Push records a pointer position, dropping the oldest point past capacity.
func (t *Trail) Push(x, y float64) {
	t.points = append(t.points, TrailPoint{X: x, Y: y, Opacity: 1})
	if over := len(t.points) - t.cfg.MaxPoints; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

// Sprite is a trail point as drawn.
type Sprite struct {
	X, Y    float64
	Size    float64
	Opacity float64
}

// Radius is the drawn circle's radius in CSS pixels.
func (sp Sprite) Radius() float64 { return sp.Size / 2 }

// Fill is the canvas fill style for the sprite in trail color rgb, given as
// "r, g, b".
func (sp Sprite) Fill(rgb string) string {
	return fmt.Sprintf("rgba(%s, %.3f)", rgb, sp.Opacity)
}

// Step returns this frame's sprites, then fades every point and drops the
// ones below the cutoff. Older points are smaller and fainter.
func (t *Trail) Step() []Sprite {
	n := len(t.points)
	sprites := make([]Sprite, 0, n)
	for i := range t.points {
		p := &t.points[i]
		frac := float64(i) / float64(n)
		sprites = append(sprites, Sprite{
			X:       p.X,
			Y:       p.Y,
			Size:    3 + frac*5,
			Opacity: p.Opacity * frac,
		})
		p.Opacity *= t.cfg.Decay
	}
	live := t.points[:0]
	for _, p := range t.points {
		if p.Opacity > t.cfg.Cutoff {
			live = append(live, p)
		}
	}
	t.points = live
	return sprites
}

// Len is the number of live points.
func (t *Trail) Len() int { return len(t.points) }

// Clear drops every point.
func (t *Trail) Clear() { t.points = t.points[:0] }
