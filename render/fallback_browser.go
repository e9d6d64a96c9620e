//go:build js
// +build js

package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

var errNo2D = errors.New("render: 2d context unavailable")

// layer is a 2D canvas covering the viewport.
type layer struct {
	canvas *js.Object
	ctx    *js.Object
	scale  float64
	w, h   float64
}

func (l *layer) mount(pixelScale float64) error {
	if pixelScale <= 0 {
		pixelScale = 1
	}
	l.scale = pixelScale
	err := common.Try(func() {
		l.canvas = newCanvas()
		l.ctx = l.canvas.Call("getContext", "2d")
		if !common.Defined(l.ctx) {
			panic(errNo2D)
		}
		container().Call("appendChild", l.canvas)
	})
	if err != nil {
		l.unmount()
	}
	return err
}

func (l *layer) resize(w, h float64) {
	if l.canvas == nil || w <= 0 || h <= 0 {
		return
	}
	l.w, l.h = w, h
	l.canvas.Set("width", int(w*l.scale))
	l.canvas.Set("height", int(h*l.scale))
	style := l.canvas.Get("style")
	style.Set("width", fmt.Sprintf("%dpx", int(w)))
	style.Set("height", fmt.Sprintf("%dpx", int(h)))
	l.ctx.Call("setTransform", l.scale, 0, 0, l.scale, 0, 0)
}

func (l *layer) clear() {
	l.ctx.Call("clearRect", 0, 0, l.w, l.h)
}

// drawTrail paints the cursor trail sprites.
func (l *layer) drawTrail(sprites []Sprite, rgb string) {
	for _, sp := range sprites {
		l.ctx.Set("fillStyle", sp.Fill(rgb))
		l.ctx.Call("beginPath")
		l.ctx.Call("arc", sp.X, sp.Y, sp.Radius(), 0, math.Pi*2)
		l.ctx.Call("fill")
	}
}

func (l *layer) unmount() {
	removeNode(l.canvas)
	l.canvas, l.ctx = nil, nil
}

// CanvasSurface draws the focal element as a glowing gradient disk on a 2D
// canvas, with the cursor trail on top. It serves both the fallback and the
// static path.
type CanvasSurface struct {
	layer
}

// Mount implements Surface.
func (c *CanvasSurface) Mount(pixelScale float64) error { return c.mount(pixelScale) }

// Resize implements Surface.
func (c *CanvasSurface) Resize(w, h float64) { c.resize(w, h) }

// Draw implements Surface.
func (c *CanvasSurface) Draw(s *Scene) {
	if c.ctx == nil {
		return
	}
	ctx := c.ctx
	c.clear()

	p := s.Palette
	center := s.Center()
	r := s.FocalRadius() * s.Scale

	ctx.Call("save")
	ctx.Set("filter", fmt.Sprintf("blur(%.0fpx)", p.GlowBlur/4))
	grad := ctx.Call("createRadialGradient", center.X, center.Y, r*0.1, center.X, center.Y, r)
	grad.Call("addColorStop", 0, p.GlowInner)
	grad.Call("addColorStop", 1, p.GlowOuter)
	ctx.Set("fillStyle", grad)
	ctx.Call("beginPath")
	ctx.Call("arc", center.X, center.Y, r, 0, math.Pi*2)
	ctx.Call("fill")
	ctx.Call("restore")

	c.drawTrail(s.Sprites, p.TrailRGB)
}

// Unmount implements Surface.
func (c *CanvasSurface) Unmount() { c.unmount() }
