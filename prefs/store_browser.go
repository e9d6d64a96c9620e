//go:build js
// +build js

package prefs

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

// LocalStorage is a Store over window.localStorage. When storage is
// unavailable (privacy mode, sandboxed iframe) it keeps values in memory for
// the session instead.
type LocalStorage struct {
	ls       *js.Object
	fallback MemoryStore
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() *LocalStorage {
	s := &LocalStorage{fallback: NewMemoryStore()}
	if err := common.Try(func() { s.ls = js.Global.Get("localStorage") }); err != nil || !common.Defined(s.ls) {
		common.Log.Warn().Err(err).Msg("localStorage unavailable, preferences will not persist")
		s.ls = nil
	}
	return s
}

// Get implements Store.
func (s *LocalStorage) Get(key string) (string, bool) {
	if s.ls == nil {
		return s.fallback.Get(key)
	}
	var v *js.Object
	if err := common.Try(func() { v = s.ls.Call("getItem", key) }); err != nil || !common.Defined(v) {
		return s.fallback.Get(key)
	}
	return v.String(), true
}

// Set implements Store.
func (s *LocalStorage) Set(key, value string) {
	s.fallback.Set(key, value)
	if s.ls == nil {
		return
	}
	if err := common.Try(func() { s.ls.Call("setItem", key, value) }); err != nil {
		common.Log.Debug().Err(err).Str("key", key).Msg("localStorage write failed")
	}
}

// BrowserSystem reads prefers-* media queries.
type BrowserSystem struct{}

func (BrowserSystem) PrefersReducedMotion() bool {
	return mediaMatches("(prefers-reduced-motion: reduce)")
}

func (BrowserSystem) PrefersDark() bool {
	return mediaMatches("(prefers-color-scheme: dark)")
}

func mediaMatches(query string) bool {
	matches := false
	_ = common.Try(func() {
		mm := js.Global.Get("matchMedia")
		if !common.Defined(mm) {
			return
		}
		matches = js.Global.Call("matchMedia", query).Get("matches").Bool()
	})
	return matches
}

// WatchColorScheme follows system theme changes into prefs until the
// returned function is called.
func WatchColorScheme(p *Preferences) func() {
	var mq *js.Object
	if err := common.Try(func() { mq = js.Global.Call("matchMedia", "(prefers-color-scheme: dark)") }); err != nil || !common.Defined(mq) {
		return func() {}
	}
	handler := func(e *js.Object) {
		if e.Get("matches").Bool() {
			p.Theme.Set(Dark)
		} else {
			p.Theme.Set(Light)
		}
	}
	mq.Call("addEventListener", "change", handler)
	return func() { mq.Call("removeEventListener", "change", handler) }
}
