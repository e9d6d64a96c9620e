package sequence

import (
	"time"

	"github.com/codelinechef/portfolio-fx/common"
)

// Caret is drawn after the text while it is still typing.
const Caret = "▋"

// Typewriter reveals text one character per tick. Typing new text restarts
// from empty.
type Typewriter struct {
	sched    common.Scheduler
	interval time.Duration

	text   []rune
	shown  int
	cancel common.Cancel

	// OnUpdate receives the visible prefix and whether the caret shows.
	OnUpdate func(text string, caret bool)
	// OnDone runs once the whole text is visible.
	OnDone func()
}

// NewTypewriter returns an idle typewriter ticking every msPerChar.
func NewTypewriter(sched common.Scheduler, msPerChar int) *Typewriter {
	return &Typewriter{sched: sched, interval: common.Millis(msPerChar)}
}

// Type starts typing text from the beginning, abandoning any text in
// progress.
func (t *Typewriter) Type(text string) {
	t.Stop()
	t.text = []rune(text)
	t.shown = 0
	t.emit()
	if len(t.text) == 0 {
		t.done()
		return
	}
	t.cancel = t.sched.Every(t.interval, t.tick)
}

func (t *Typewriter) tick() {
	if t.shown >= len(t.text) {
		return
	}
	t.shown++
	t.emit()
	if t.shown == len(t.text) {
		t.Stop()
		t.done()
	}
}

func (t *Typewriter) emit() {
	if t.OnUpdate != nil {
		t.OnUpdate(t.Text(), t.Typing())
	}
}

func (t *Typewriter) done() {
	if t.OnDone != nil {
		t.OnDone()
	}
}

// Text is the visible prefix.
func (t *Typewriter) Text() string { return string(t.text[:t.shown]) }

// Typing reports whether characters remain; the caret shows while it does.
func (t *Typewriter) Typing() bool { return t.shown < len(t.text) }

// Render is the visible prefix with the caret appended while typing.
func (t *Typewriter) Render() string {
	if t.Typing() {
		return t.Text() + Caret
	}
	return t.Text()
}

// Stop halts typing where it is.
func (t *Typewriter) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
