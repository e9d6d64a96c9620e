//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/app"
	"github.com/codelinechef/portfolio-fx/audio"
	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/equalizer"
	"github.com/codelinechef/portfolio-fx/geo"
	"github.com/codelinechef/portfolio-fx/page"
	"github.com/codelinechef/portfolio-fx/policy"
	"github.com/codelinechef/portfolio-fx/prefs"
	"github.com/codelinechef/portfolio-fx/render"
)

// EqualizerElementID hosts the equalizer bars.
const EqualizerElementID = "fx-equalizer"

func main() {
	common.UseConsole()
	if js.Global.Get("location").Get("search").Call("indexOf", "debug").Int() >= 0 {
		common.SetDebug(true)
	}
	log := common.Component("main")

	a := app.New(config.Default(), common.NewBrowserScheduler(), app.Platform{
		Store:    prefs.NewLocalStorage(),
		System:   prefs.BrowserSystem{},
		Env:      capability.BrowserEnv{},
		Audio:    audio.NewWebAudio(),
		Surfaces: render.BrowserSurfaces,
		Geo:      geo.Browser{},
	})

	scope := common.NewScope()
	scope.Defer(a.Close)
	scope.Defer(policy.WatchVisibility(a.Visible()))
	scope.Defer(prefs.WatchColorScheme(a.Prefs()))
	a.Start()
	scope.Defer(render.BindBrowser(a.Stage()))
	scope.Defer(equalizer.Mount(a.Equalizer(), EqualizerElementID))

	// Audio may only start from a user gesture.
	doc := js.Global.Get("document")
	var unlock func()
	unlock = func() {
		a.UnlockAudio()
		doc.Call("removeEventListener", "pointerdown", unlock)
		doc.Call("removeEventListener", "keydown", unlock)
	}
	doc.Call("addEventListener", "pointerdown", unlock)
	doc.Call("addEventListener", "keydown", unlock)

	var zone *app.RedZone
	var unbindExit func()
	closeZone := func() {
		if unbindExit != nil {
			unbindExit()
			unbindExit = nil
		}
		if zone != nil {
			zone.Close()
			zone = nil
		}
	}
	scope.Defer(closeZone)

	figures := a.Prefs().Figures
	js.Global.Set("PortfolioFX", map[string]interface{}{
		"toggleTheme":             a.Prefs().ToggleTheme,
		"toggleReducedMotion":     a.Prefs().ToggleReducedMotion,
		"toggleDisableAllEffects": a.Prefs().ToggleDisableAllEffects,
		"toggleMute":              a.Audio().ToggleMute,
		"toggleVoiceMute":         a.Audio().ToggleVoiceMute,
		"playSound": func(kind string) {
			a.Audio().PlayOneShot(audio.Kind(kind))
		},
		"decision": func() map[string]interface{} {
			d := a.Decision()
			return map[string]interface{}{
				"path":         d.Path.String(),
				"useGPU":       d.UseGPU,
				"pixelScale":   d.PixelScale,
				"lowEnd":       d.LowEnd,
				"paused":       d.Paused,
				"audioEnabled": d.AudioEnabled,
				"tier":         a.Profile().Tier.String(),
			}
		},
		"fps": a.Stage().FPS,
		"openRedZone": func(highAccuracy bool, onExit *js.Object) {
			closeZone()
			view := page.NewDOMView(page.RedZonePrefix)
			zone = a.OpenRedZone(view, highAccuracy, func() {
				closeZone()
				if common.Defined(onExit) {
					onExit.Invoke()
				}
			})
			unbindExit = view.BindExit(zone.Page)
		},
		"closeRedZone": closeZone,
		"openFYI": func() {
			a.OpenFYI(page.NewDOMView(page.FYIPrefix))
		},
		"closeFYI":         a.CloseFYI,
		"toggleZoneMute":   a.Prefs().ZoneMuted.Toggle,
		"figures":          figures.All,
		"addFigure":        figures.Add,
		"removeFigure":     figures.Remove,
		"resetFigures":     figures.Reset,
		"setFiguresLocked": figures.SetLocked,
		"moveFigure": func(id string, x, y float64) bool {
			return figures.Move(id, prefs.Position{X: x, Y: y})
		},
	})

	js.Global.Call("addEventListener", "beforeunload", func() {
		scope.Close()
	})

	d := a.Decision()
	log.Info().Stringer("path", d.Path).Msg("portfolio effects running")
}
