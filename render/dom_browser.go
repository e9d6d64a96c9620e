//go:build js
// +build js

package render

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/policy"
)

// StageElementID is the element surfaces mount into.
const StageElementID = "fx-stage"

func container() *js.Object {
	doc := js.Global.Get("document")
	if el := doc.Call("getElementById", StageElementID); common.Defined(el) {
		return el
	}
	return doc.Get("body")
}

func newCanvas() *js.Object {
	canvas := js.Global.Get("document").Call("createElement", "canvas")
	style := canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("inset", "0")
	style.Set("pointerEvents", "none")
	style.Set("zIndex", "-1")
	return canvas
}

func removeNode(n *js.Object) {
	if common.Defined(n) {
		if parent := n.Get("parentNode"); common.Defined(parent) {
			parent.Call("removeChild", n)
		}
	}
}

// BindBrowser wires window pointer and resize events into st and returns
// the function that removes them.
func BindBrowser(st *Stage) func() {
	win := js.Global
	st.Resize(win.Get("innerWidth").Float(), win.Get("innerHeight").Float())

	onMove := func(e *js.Object) {
		st.PointerMove(e.Get("clientX").Float(), e.Get("clientY").Float())
	}
	onDown := func(e *js.Object) {
		if st.PointerDown(e.Get("clientX").Float(), e.Get("clientY").Float()) {
			e.Call("preventDefault")
		}
	}
	onUp := func(e *js.Object) {
		st.PointerUp(e.Get("clientX").Float(), e.Get("clientY").Float())
	}
	onResize := func() {
		st.Resize(win.Get("innerWidth").Float(), win.Get("innerHeight").Float())
	}

	win.Call("addEventListener", "pointermove", onMove)
	win.Call("addEventListener", "pointerdown", onDown)
	win.Call("addEventListener", "pointerup", onUp)
	win.Call("addEventListener", "pointercancel", onUp)
	win.Call("addEventListener", "resize", onResize)
	return func() {
		win.Call("removeEventListener", "pointermove", onMove)
		win.Call("removeEventListener", "pointerdown", onDown)
		win.Call("removeEventListener", "pointerup", onUp)
		win.Call("removeEventListener", "pointercancel", onUp)
		win.Call("removeEventListener", "resize", onResize)
	}
}

// BrowserSurfaces is the SurfaceFactory for the page.
func BrowserSurfaces(path policy.Path) Surface {
	if path == policy.PathGPU {
		return &GPUSurface{}
	}
	return &CanvasSurface{}
}
