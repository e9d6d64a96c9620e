package sequence

import (
	"fmt"
	"time"

	"github.com/codelinechef/portfolio-fx/common"
)

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Countdown ticks down once a second and stops at zero.
type Countdown struct {
	sched     common.Scheduler
	remaining int
	cancel    common.Cancel

	OnTick func(remaining int)
	OnZero func()
}

// NewCountdown returns a stopped countdown from seconds.
func NewCountdown(sched common.Scheduler, seconds int) *Countdown {
	return &Countdown{sched: sched, remaining: seconds}
}

// Start begins ticking. Starting a running or expired countdown does
// nothing.
func (c *Countdown) Start() {
	if c.cancel != nil || c.remaining <= 0 {
		return
	}
	c.cancel = c.sched.Every(time.Second, c.tick)
}

func (c *Countdown) tick() {
	c.remaining--
	if c.OnTick != nil {
		c.OnTick(c.remaining)
	}
	if c.remaining <= 0 {
		c.Stop()
		if c.OnZero != nil {
			c.OnZero()
		}
	}
}

// Remaining is the number of seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// String is the remaining time as mm:ss.
func (c *Countdown) String() string { return FormatClock(c.remaining) }

// Expired reports whether the countdown reached zero.
func (c *Countdown) Expired() bool { return c.remaining <= 0 }

// Stop halts the countdown.
func (c *Countdown) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
