//go:build js
// +build js

package render

import (
	"errors"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

var errNoThree = errors.New("render: three.js not loaded")

const sphereVertex = `
uniform float uTime;
uniform float uDistort;
varying vec3 vNormal;
void main() {
	vNormal = normal;
	float n = sin(position.x * 3.0 + uTime) * cos(position.y * 3.0 + uTime) * sin(position.z * 3.0 + uTime);
	vec3 p = position + normal * n * uDistort;
	gl_Position = projectionMatrix * modelViewMatrix * vec4(p, 1.0);
}`

const sphereFragment = `
uniform vec3 uColor;
varying vec3 vNormal;
void main() {
	float rim = pow(1.0 - abs(dot(normalize(vNormal), vec3(0.0, 0.0, 1.0))), 2.0);
	gl_FragColor = vec4(uColor + rim * 0.4, 1.0);
}`

// worldPerPixel maps a drag offset in CSS pixels to scene units at z=0 for
// a 60 degree camera ten units back.
func worldPerPixel(viewportH float64) float64 {
	if viewportH <= 0 {
		return 0
	}
	return 2 * 10 * 0.57735 / viewportH
}

// GPUSurface is the WebGL scene: a distorted shader sphere, the particle
// backdrop and the floating octahedrons, drawn with three.js. The cursor
// trail goes on a 2D layer above it.
type GPUSurface struct {
	three    *js.Object
	renderer *js.Object
	camera   *js.Object
	scene    *js.Object

	sphere   *js.Object
	uniforms *js.Object
	shapes   []*js.Object
	points   *js.Object
	field    *Field
	theme    string

	trail layer
}

// Mount implements Surface.
func (g *GPUSurface) Mount(pixelScale float64) error {
	three := js.Global.Get("THREE")
	if !common.Defined(three) {
		return errNoThree
	}
	g.three = three
	err := common.Try(func() {
		g.renderer = three.Get("WebGLRenderer").New(map[string]interface{}{"antialias": true, "alpha": true})
		g.renderer.Call("setPixelRatio", pixelScale)
		canvas := g.renderer.Get("domElement")
		style := canvas.Get("style")
		style.Set("position", "fixed")
		style.Set("inset", "0")
		style.Set("pointerEvents", "none")
		style.Set("zIndex", "-1")
		container().Call("appendChild", canvas)

		g.scene = three.Get("Scene").New()
		g.camera = three.Get("PerspectiveCamera").New(60, 16.0/9, 0.1, 100)
		g.camera.Get("position").Set("z", 10)

		g.uniforms = js.Global.Get("Object").New()
		g.uniforms.Set("uTime", map[string]interface{}{"value": 0})
		g.uniforms.Set("uDistort", map[string]interface{}{"value": 0.3})
		g.uniforms.Set("uColor", map[string]interface{}{"value": three.Get("Color").New("#ffffff")})
		mat := three.Get("ShaderMaterial").New(map[string]interface{}{
			"uniforms":       g.uniforms,
			"vertexShader":   sphereVertex,
			"fragmentShader": sphereFragment,
		})
		geo := three.Get("SphereGeometry").New(1.6, 64, 64)
		g.sphere = three.Get("Mesh").New(geo, mat)
		g.scene.Call("add", g.sphere)

		for range DefaultShapes() {
			m := three.Get("MeshBasicMaterial").New(map[string]interface{}{
				"wireframe":   true,
				"transparent": true,
				"opacity":     0.3,
			})
			mesh := three.Get("Mesh").New(three.Get("OctahedronGeometry").New(0.5), m)
			g.scene.Call("add", mesh)
			g.shapes = append(g.shapes, mesh)
		}
	})
	if err != nil {
		g.Unmount()
		return err
	}
	if err := g.trail.mount(pixelScale); err != nil {
		log := common.Component("render")
		log.Debug().Err(err).Msg("no trail layer over the gpu scene")
	}
	return nil
}

// Resize implements Surface.
func (g *GPUSurface) Resize(w, h float64) {
	if g.renderer == nil || w <= 0 || h <= 0 {
		return
	}
	g.renderer.Call("setSize", w, h)
	g.camera.Set("aspect", w/h)
	g.camera.Call("updateProjectionMatrix")
	g.trail.resize(w, h)
}

// syncField rebuilds the points object when the scene's field changed.
func (g *GPUSurface) syncField(s *Scene) {
	if s.Field == g.field {
		return
	}
	g.dropPoints()
	g.field = s.Field
	if s.Field == nil || len(s.Field.Particles) == 0 {
		return
	}
	n := len(s.Field.Particles)
	pos := js.Global.Get("Float32Array").New(n * 3)
	col := js.Global.Get("Float32Array").New(n * 3)
	for i, p := range s.Field.Particles {
		pos.SetIndex(i*3, p.X)
		pos.SetIndex(i*3+1, p.Y)
		pos.SetIndex(i*3+2, p.Z)
		col.SetIndex(i*3, p.Color.R)
		col.SetIndex(i*3+1, p.Color.G)
		col.SetIndex(i*3+2, p.Color.B)
	}
	geo := g.three.Get("BufferGeometry").New()
	geo.Call("setAttribute", "position", g.three.Get("BufferAttribute").New(pos, 3))
	geo.Call("setAttribute", "color", g.three.Get("BufferAttribute").New(col, 3))
	mat := g.three.Get("PointsMaterial").New(map[string]interface{}{
		"size":         0.05,
		"vertexColors": true,
		"transparent":  true,
		"depthWrite":   false,
		"blending":     g.three.Get("AdditiveBlending"),
	})
	g.points = g.three.Get("Points").New(geo, mat)
	g.scene.Call("add", g.points)
}

func (g *GPUSurface) dropPoints() {
	if g.points == nil {
		return
	}
	g.scene.Call("remove", g.points)
	dispose(g.points)
	g.points = nil
}

// Draw implements Surface.
func (g *GPUSurface) Draw(s *Scene) {
	if g.renderer == nil {
		return
	}
	g.syncField(s)
	if string(s.Theme) != g.theme {
		g.theme = string(s.Theme)
		g.uniforms.Get("uColor").Get("value").Call("set", s.Palette.SphereColor)
		for _, m := range g.shapes {
			m.Get("material").Get("color").Call("set", s.ShapeColor)
		}
	}

	g.uniforms.Get("uTime").Set("value", s.Distort)
	g.uniforms.Get("uDistort").Set("value", s.cfg.Motion.DistortAmount)
	rot := g.sphere.Get("rotation")
	rot.Set("x", s.Rotation.X)
	rot.Set("y", s.Rotation.Y)
	k := worldPerPixel(s.Viewport.Y)
	pos := g.sphere.Get("position")
	pos.Set("x", s.Offset.X*k)
	pos.Set("y", -s.Offset.Y*k)

	for i, m := range g.shapes {
		if i >= len(s.Shapes) {
			break
		}
		sh := s.Shapes[i]
		m.Get("position").Call("set", sh.Position.X, sh.Position.Y, sh.Position.Z)
		m.Get("rotation").Set("x", sh.Spin)
		m.Get("rotation").Set("y", sh.Spin)
	}
	if g.points != nil {
		g.points.Get("rotation").Set("x", s.FieldRot.X)
		g.points.Get("rotation").Set("y", s.FieldRot.Y)
	}
	g.renderer.Call("render", g.scene, g.camera)

	if g.trail.ctx != nil {
		g.trail.clear()
		g.trail.drawTrail(s.Sprites, s.Palette.TrailRGB)
	}
}

func dispose(obj *js.Object) {
	if obj == nil {
		return
	}
	if geo := obj.Get("geometry"); common.Defined(geo) {
		geo.Call("dispose")
	}
	if mat := obj.Get("material"); common.Defined(mat) {
		mat.Call("dispose")
	}
}

// Unmount implements Surface.
func (g *GPUSurface) Unmount() {
	g.trail.unmount()
	if g.renderer == nil {
		return
	}
	if g.scene != nil {
		g.dropPoints()
	}
	dispose(g.sphere)
	for _, m := range g.shapes {
		dispose(m)
	}
	common.Try(func() {
		removeNode(g.renderer.Get("domElement"))
		g.renderer.Call("dispose")
	})
	g.renderer, g.scene, g.camera, g.sphere, g.uniforms = nil, nil, nil, nil, nil
	g.shapes, g.field, g.theme = nil, nil, ""
}
