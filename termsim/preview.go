//go:build !js
// +build !js

package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/codelinechef/portfolio-fx/app"
	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/equalizer"
	"github.com/codelinechef/portfolio-fx/page"
	"github.com/codelinechef/portfolio-fx/policy"
	"github.com/codelinechef/portfolio-fx/prefs"
	"github.com/codelinechef/portfolio-fx/render"
	"github.com/codelinechef/portfolio-fx/sequence"
)

// surface stands in for both browser surfaces and counts what it draws.
type surface struct {
	path    policy.Path
	mounted bool
	frames  int
}

func (s *surface) Mount(float64) error     { s.mounted = true; return nil }
func (s *surface) Resize(float64, float64) {}
func (s *surface) Draw(*render.Scene)      { s.frames++ }
func (s *surface) Unmount()                { s.mounted = false }

// textView keeps the hidden page's output as lines.
type textView struct {
	transition string
	status     string
	features   []page.FeatureRow
	gpu        bool
	logs       []page.LogLine
	location   []string
	signature  string
	countdown  string
	exit       bool
}

func (v *textView) SetTransition(m string) { v.transition = m }
func (v *textView) SetStatus(text string, caret bool) {
	if caret {
		text += sequence.Caret
	}
	v.transition, v.status = "", text
}
func (v *textView) ShowFeatures(rows []page.FeatureRow, gpu bool) { v.features, v.gpu = rows, gpu }
func (v *textView) ShowLogs()                                     {}
func (v *textView) AppendLog(l page.LogLine)                      { v.logs = append(v.logs, l) }
func (v *textView) ShowLocation(lines []string)                   { v.location = lines }
func (v *textView) ShowSignature(text string)                     { v.signature = text }
func (v *textView) SetCountdown(text string)                      { v.countdown = text }
func (v *textView) ShowExit()                                     { v.exit = true }

func (v *textView) lines() []string {
	var out []string
	if v.transition != "" {
		out = append(out, v.transition)
	}
	if v.status != "" {
		out = append(out, v.status)
	}
	for _, r := range v.features {
		col := r.CPU
		if v.gpu {
			col = r.GPU
		}
		out = append(out, fmt.Sprintf("  %-16s %s", r.Feature, col))
	}
	for _, l := range v.logs {
		out = append(out, fmt.Sprintf("  [%s] %s", l.Type, l.Message))
	}
	out = append(out, v.location...)
	if v.signature != "" {
		out = append(out, v.signature)
	}
	if v.countdown != "" {
		exit := ""
		if v.exit {
			exit = "  [x] exit"
		}
		out = append(out, "T-"+v.countdown+exit)
	}
	return out
}

// Preview runs the engine on a manual clock, one frame per Step.
type Preview struct {
	sched    *common.ManualScheduler
	app      *app.App
	surfaces map[policy.Path]*surface
	view     *textView
	zone     *app.RedZone
}

// Options are the simulated device and stored preferences.
type Options struct {
	Env           capability.StaticEnv
	ReducedMotion bool
	DisableAll    bool
}

// NewPreview builds and starts the app with no audio device.
func NewPreview(opt Options) *Preview {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyReducedMotion, strconv.FormatBool(opt.ReducedMotion))
	store.Set(prefs.KeyDisableAllEffects, strconv.FormatBool(opt.DisableAll))

	p := &Preview{
		sched:    common.NewManualScheduler(),
		surfaces: map[policy.Path]*surface{},
		view:     &textView{},
	}
	p.app = app.New(config.Default(), p.sched, app.Platform{
		Store:  store,
		System: prefs.StaticSystem{Dark: true},
		Env:    opt.Env,
		Surfaces: func(path policy.Path) render.Surface {
			s := &surface{path: path}
			p.surfaces[path] = s
			return s
		},
	})
	p.app.Start()
	p.app.UnlockAudio()
	p.zone = p.app.OpenRedZone(p.view, false, nil)
	return p
}

// Step advances one animation frame.
func (p *Preview) Step() { p.sched.AdvanceFrames(1) }

// Key handles a key press and reports whether the preview should go on.
func (p *Preview) Key(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'm':
		p.app.Audio().ToggleMute()
	case 'e':
		p.app.Prefs().ToggleDisableAllEffects()
	case 'r':
		p.app.Prefs().ToggleReducedMotion()
	case 'h':
		p.app.SetVisible(!p.app.Visible().Get())
	case 'x':
		p.zone.Page.Exit()
	}
	return true
}

// Close tears the app down.
func (p *Preview) Close() { p.app.Close() }

// Status is the one-line policy summary.
func (p *Preview) Status() string {
	d := p.app.Decision()
	particles := 0
	if f := p.app.Stage().Scene().Field; f != nil {
		particles = len(f.Particles)
	}
	frames := 0
	if s := p.surfaces[p.app.Stage().Mounted()]; s != nil {
		frames = s.frames
	}
	return fmt.Sprintf("tier=%s path=%s scale=%.1f paused=%t audio=%t muted=%t eq=%s particles=%d frames=%d",
		p.app.Profile().Tier, d.Path, d.PixelScale, d.Paused, d.AudioEnabled,
		p.app.Audio().Muted(), p.app.Equalizer().Mode(), particles, frames)
}

const (
	barRows  = 8
	helpLine = "m mute  e disable-all  r reduced motion  h hide tab  x exit zone  q quit"
)

var barColor = colorful.Hcl(140, 0.6, 0.8).Clamped()

// Draw renders the preview onto screen.
func (p *Preview) Draw(screen tcell.Screen) {
	screen.Clear()
	text := tcell.StyleDefault
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	row := 0
	put(screen, 0, row, p.Status(), text)
	row += 2

	r, g, b := barColor.RGB255()
	bar := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	for i, h := range p.app.Equalizer().Heights() {
		filled := int(h / equalizer.MaxHeight * barRows)
		for k := 0; k < barRows; k++ {
			ch := ' '
			if barRows-k <= filled {
				ch = '█'
			}
			screen.SetContent(i*2, row+k, ch, nil, bar)
		}
	}
	row += barRows + 1

	for _, line := range p.view.lines() {
		put(screen, 0, row, line, text)
		row++
	}
	put(screen, 0, row+1, helpLine, dim)
	screen.Show()
}

func put(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, c := range s {
		screen.SetContent(x, y, c, nil, style)
		x++
	}
}
