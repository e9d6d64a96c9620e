//go:build js
// +build js

package capability

import (
	"errors"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

var errNoContext = errors.New("capability: no webgl context")

// BrowserEnv reads navigator and window properties.
type BrowserEnv struct{}

// ProbeGraphics acquires a WebGL context on a throwaway canvas.
func (BrowserEnv) ProbeGraphics() (ok bool, err error) {
	err = common.Try(func() {
		doc := js.Global.Get("document")
		canvas := doc.Call("createElement", "canvas")
		ctx := canvas.Call("getContext", "webgl")
		if !common.Defined(ctx) {
			ctx = canvas.Call("getContext", "experimental-webgl")
		}
		ok = common.Defined(ctx)
		if ok {
			// Release the context so it does not count against the page's limit.
			if ext := ctx.Call("getExtension", "WEBGL_lose_context"); common.Defined(ext) {
				ext.Call("loseContext")
			}
		}
	})
	if err == nil && !ok {
		err = errNoContext
	}
	return ok, err
}

func (BrowserEnv) Cores() int {
	n := 0
	_ = common.Try(func() {
		if v := js.Global.Get("navigator").Get("hardwareConcurrency"); common.Defined(v) {
			n = v.Int()
		}
	})
	return n
}

func (BrowserEnv) MemoryGB() float64 {
	gb := 0.0
	_ = common.Try(func() {
		if v := js.Global.Get("navigator").Get("deviceMemory"); common.Defined(v) {
			gb = v.Float()
		}
	})
	return gb
}

func (BrowserEnv) PixelRatio() float64 {
	dpr := 1.0
	_ = common.Try(func() {
		if v := js.Global.Get("devicePixelRatio"); common.Defined(v) {
			dpr = v.Float()
		}
	})
	return dpr
}
