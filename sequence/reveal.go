// Package sequence schedules the time-gated parts of a page: staged reveals,
// typewriter text, joins on asynchronous work and countdowns. Everything runs
// on a common.Scheduler and releases its timers on Stop.
package sequence

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/common"
)

// ErrStarted is returned when a reveal is started twice.
var ErrStarted = errors.New("sequence: reveal already started")

// StageState is where a stage is in its lifecycle.
type StageState int

const (
	Pending StageState = iota
	Armed
	Visible
)

func (s StageState) String() string {
	switch s {
	case Armed:
		return "armed"
	case Visible:
		return "visible"
	default:
		return "pending"
	}
}

// Stage is one step of a reveal. Delay is measured from the previous stage.
type Stage struct {
	Name     string
	Delay    time.Duration
	OnReveal func()
}

// Reveal shows an ordered list of stages, each at its cumulative delay from
// Start. No stage becomes visible before its predecessor, and none fires
// after Stop.
type Reveal struct {
	sched  common.Scheduler
	stages []Stage
	states []StageState
	scope  *common.Scope
	log    zerolog.Logger

	started bool

	// OnDone runs once after the last stage is visible.
	OnDone func()
}

// NewReveal returns an unstarted reveal.
func NewReveal(sched common.Scheduler, stages ...Stage) *Reveal {
	return &Reveal{
		sched:  sched,
		stages: stages,
		states: make([]StageState, len(stages)),
		scope:  common.NewScope(),
		log:    common.Component("sequence"),
	}
}

// Start arms every stage. A reveal runs at most once.
func (r *Reveal) Start() error {
	if r.started {
		return ErrStarted
	}
	r.started = true
	if r.scope.Closed() {
		return nil
	}
	var at time.Duration
	for i := range r.stages {
		i := i
		at += r.stages[i].Delay
		r.states[i] = Armed
		r.scope.Track(r.sched.AfterFunc(at, func() { r.reveal(i) }))
	}
	if len(r.stages) == 0 {
		r.finish()
	}
	return nil
}

func (r *Reveal) reveal(i int) {
	if r.scope.Closed() || r.states[i] == Visible {
		return
	}
	if i > 0 && r.states[i-1] != Visible {
		r.reveal(i - 1)
	}
	r.states[i] = Visible
	r.log.Debug().Str("stage", r.stages[i].Name).Msg("stage visible")
	if fn := r.stages[i].OnReveal; fn != nil {
		fn()
	}
	if i == len(r.stages)-1 {
		r.finish()
	}
}

func (r *Reveal) finish() {
	if r.OnDone != nil {
		r.OnDone()
	}
}

// State reports the state of stage i.
func (r *Reveal) State(i int) StageState { return r.states[i] }

// Visible counts the stages shown so far.
func (r *Reveal) Visible() int {
	n := 0
	for _, s := range r.states {
		if s == Visible {
			n++
		}
	}
	return n
}

// Done reports whether every stage is visible.
func (r *Reveal) Done() bool { return r.started && r.Visible() == len(r.stages) }

// Total is the delay from Start to the last stage.
func (r *Reveal) Total() time.Duration {
	var d time.Duration
	for _, s := range r.stages {
		d += s.Delay
	}
	return d
}

// Stop cancels every stage that has not fired. Armed stages fall back to
// pending.
func (r *Reveal) Stop() {
	r.scope.Close()
	for i, s := range r.states {
		if s == Armed {
			r.states[i] = Pending
		}
	}
}
