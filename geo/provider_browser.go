//go:build js
// +build js

package geo

import (
	"errors"
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

// Browser is the Provider backed by navigator.geolocation and fetch.
type Browser struct{}

// HasGeolocation implements Provider.
func (Browser) HasGeolocation() bool {
	return common.Defined(js.Global.Get("navigator").Get("geolocation"))
}

// CurrentPosition implements Provider.
func (Browser) CurrentPosition(opts PositionOptions, done func(Coordinates, error)) {
	ok := func(pos *js.Object) {
		c := pos.Get("coords")
		done(Coordinates{Latitude: c.Get("latitude").Float(), Longitude: c.Get("longitude").Float()}, nil)
	}
	fail := func(e *js.Object) {
		done(Coordinates{}, fmt.Errorf("geo: position error %d: %s", e.Get("code").Int(), e.Get("message").String()))
	}
	err := common.Try(func() {
		js.Global.Get("navigator").Get("geolocation").Call("getCurrentPosition", ok, fail, map[string]interface{}{
			"enableHighAccuracy": opts.HighAccuracy,
			"timeout":            opts.TimeoutMs,
			"maximumAge":         opts.MaximumAgeMs,
		})
	})
	if err != nil {
		done(Coordinates{}, err)
	}
}

// Fetch implements Provider. Non-2xx responses are errors.
func (Browser) Fetch(url string, done func([]byte, error)) {
	fail := func(e *js.Object) {
		done(nil, errors.New("geo: fetch: "+e.Call("toString").String()))
	}
	err := common.Try(func() {
		js.Global.Call("fetch", url).Call("then", func(resp *js.Object) {
			if !resp.Get("ok").Bool() {
				done(nil, fmt.Errorf("geo: fetch %s: status %d", url, resp.Get("status").Int()))
				return
			}
			resp.Call("text").Call("then", func(body string) {
				done([]byte(body), nil)
			}, fail)
		}).Call("catch", fail)
	})
	if err != nil {
		done(nil, err)
	}
}
