package page

import (
	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/audio"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/geo"
	"github.com/codelinechef/portfolio-fx/sequence"
)

// View is what the controller draws on. The browser binds it to the DOM; the
// terminal preview and tests record it.
type View interface {
	SetTransition(message string)
	SetStatus(text string, caret bool)
	ShowFeatures(rows []FeatureRow, gpu bool)
	ShowLogs()
	AppendLog(line LogLine)
	ShowLocation(lines []string)
	ShowSignature(text string)
	SetCountdown(text string)
	ShowExit()
}

// Sound plays the page's one-shot cues.
type Sound interface {
	PlayOneShot(kind audio.Kind)
}

// Options configure one page instance.
type Options struct {
	Sched  common.Scheduler
	Config config.Sequence
	Sound  Sound
	// Locator resolves the visitor's location; nil means unknown.
	Locator *geo.Locator
	// GPU selects the status line and the highlighted matrix column.
	GPU bool
	// Motion false shows text at once instead of typing it.
	Motion bool
	// Transition plays the entry messages before the page content.
	Transition bool
	// SkipCountdown leaves out the countdown and the exit control.
	SkipCountdown bool
	// OnExit runs when the visitor leaves through the exit control.
	OnExit func()
}

// Signature timing relative to the location reveal, and the transition
// schedule.
const (
	signatureDelayMs  = 1500
	transitionStepMs  = 800
	transitionTotalMs = 2800
)

// Page is one mounted hidden page. Close releases every timer it took.
type Page struct {
	opt   Options
	view  View
	scope *common.Scope
	log   zerolog.Logger

	typer     *sequence.Typewriter
	reveal    *sequence.Reveal
	join      *sequence.Join
	countdown *sequence.Countdown

	status   string
	location geo.Location
	located  bool
	shown    bool
	signed   bool
	entered  bool
}

// Open mounts the page and starts its schedule.
func Open(opt Options, view View) *Page {
	p := &Page{opt: opt, view: view, scope: common.NewScope(), log: common.Component("page")}
	if opt.Transition {
		p.transition()
	} else {
		p.enter()
	}
	return p
}

// transition shows the entry messages, then the page.
func (p *Page) transition() {
	stages := make([]sequence.Stage, 0, len(TransitionMessages)+1)
	for i, msg := range TransitionMessages {
		msg := msg
		delay := common.Millis(transitionStepMs)
		if i == 0 {
			delay = 0
		}
		stages = append(stages, sequence.Stage{Name: "transition", Delay: delay, OnReveal: func() { p.view.SetTransition(msg) }})
	}
	rest := transitionTotalMs - transitionStepMs*(len(TransitionMessages)-1)
	stages = append(stages, sequence.Stage{Name: "enter", Delay: common.Millis(rest), OnReveal: p.enter})
	r := sequence.NewReveal(p.opt.Sched, stages...)
	p.scope.Defer(r.Stop)
	r.Start()
}

func (p *Page) enter() {
	if p.entered || p.scope.Closed() {
		return
	}
	p.entered = true
	cfg := p.opt.Config

	p.typer = sequence.NewTypewriter(p.opt.Sched, cfg.TypewriterMsPerChar)
	p.typer.OnUpdate = p.view.SetStatus
	p.scope.Defer(p.typer.Stop)
	p.setStatus(Scanning)

	p.join = sequence.NewJoin(p.showLocation, "logs", "lookup")
	p.scope.Defer(p.join.Cancel)

	stages := []sequence.Stage{
		{Name: "status", Delay: common.Millis(cfg.StatusDelayMs), OnReveal: func() {
			p.setStatus(StatusLine(p.opt.GPU))
			p.play(audio.Hover)
		}},
		{Name: "features", Delay: common.Millis(cfg.FeaturesDelayMs), OnReveal: func() {
			p.view.ShowFeatures(FeatureMatrix, p.opt.GPU)
		}},
		{Name: "logs", Delay: common.Millis(cfg.LogsDelayMs), OnReveal: p.view.ShowLogs},
	}
	for _, line := range Logs {
		line := line
		stages = append(stages, sequence.Stage{Name: "log", Delay: common.Millis(cfg.LogIntervalMs), OnReveal: func() {
			p.view.AppendLog(line)
			p.play(audio.Click)
		}})
	}
	p.reveal = sequence.NewReveal(p.opt.Sched, stages...)
	p.reveal.OnDone = func() { p.join.Arrive("logs") }
	p.scope.Defer(p.reveal.Stop)

	p.reveal.Start()
	if !p.opt.SkipCountdown {
		p.countdown = sequence.NewCountdown(p.opt.Sched, cfg.CountdownSeconds)
		p.countdown.OnTick = func(int) { p.view.SetCountdown(p.countdown.String()) }
		p.countdown.OnZero = p.view.ShowExit
		p.scope.Defer(p.countdown.Stop)
		p.view.SetCountdown(p.countdown.String())
		p.countdown.Start()
	}
	p.lookup()
}

func (p *Page) lookup() {
	l := p.opt.Locator
	if l == nil {
		p.located = true
		p.join.Arrive("lookup")
		return
	}
	p.scope.Defer(l.Close)
	l.OnDone = func(loc geo.Location, err error) {
		if err != nil {
			p.log.Debug().Err(err).Msg("location unknown")
		}
		p.location, p.located = loc, true
		p.join.Arrive("lookup")
	}
	l.Start()
}

func (p *Page) setStatus(text string) {
	p.status = text
	if p.opt.Motion {
		p.typer.Type(text)
		return
	}
	p.typer.Stop()
	p.view.SetStatus(text, false)
}

// SetMotion follows a policy change. Turning motion off finishes any status
// line still typing and drops the caret.
func (p *Page) SetMotion(on bool) {
	if on == p.opt.Motion || p.scope.Closed() {
		return
	}
	p.opt.Motion = on
	if on || p.typer == nil || !p.typer.Typing() {
		return
	}
	p.typer.Stop()
	p.view.SetStatus(p.status, false)
}

// Motion reports whether status lines are typed.
func (p *Page) Motion() bool { return p.opt.Motion }

func (p *Page) showLocation() {
	p.shown = true
	p.view.ShowLocation(LocationLines(p.location))
	p.play(audio.Hover)
	p.scope.Track(p.opt.Sched.AfterFunc(common.Millis(signatureDelayMs), func() {
		p.signed = true
		p.view.ShowSignature(Signature)
	}))
}

func (p *Page) play(kind audio.Kind) {
	if p.opt.Sound != nil {
		p.opt.Sound.PlayOneShot(kind)
	}
}

// Exit leaves through the exit control. It only works once the countdown
// has run out.
func (p *Page) Exit() bool {
	if p.countdown == nil || !p.countdown.Expired() || p.scope.Closed() {
		return false
	}
	p.play(audio.Navigation)
	p.Close()
	if p.opt.OnExit != nil {
		p.opt.OnExit()
	}
	return true
}

// Entered reports whether the transition finished.
func (p *Page) Entered() bool { return p.entered }

// LogsVisible counts the log lines shown.
func (p *Page) LogsVisible() int {
	if p.reveal == nil {
		return 0
	}
	n := p.reveal.Visible() - 3
	if n < 0 {
		return 0
	}
	return n
}

// Located reports whether the lookup settled.
func (p *Page) Located() bool { return p.located }

// LocationShown reports whether the location reveal ran.
func (p *Page) LocationShown() bool { return p.shown }

// Signed reports whether the signature is showing.
func (p *Page) Signed() bool { return p.signed }

// Close tears the page down; nothing it scheduled fires afterwards.
func (p *Page) Close() { p.scope.Close() }
