package sequence

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelinechef/portfolio-fx/common"
)

const ms = time.Millisecond

func TestReveal_CumulativeOrder(t *testing.T) {
	sched := common.NewManualScheduler()
	var got []string
	at := map[string]time.Duration{}
	stage := func(name string, d time.Duration) Stage {
		return Stage{Name: name, Delay: d, OnReveal: func() {
			got = append(got, name)
			at[name] = sched.Now()
		}}
	}
	r := NewReveal(sched,
		stage("status", 1000*ms),
		stage("features", 800*ms),
		stage("logs", 800*ms),
		stage("same-instant", 0),
	)
	done := 0
	r.OnDone = func() { done++ }

	require.NoError(t, r.Start())
	assert.Equal(t, ErrStarted, r.Start())
	assert.Equal(t, Armed, r.State(0))
	assert.Equal(t, 2600*ms, r.Total())

	sched.Advance(999 * ms)
	assert.Empty(t, got)
	sched.Advance(3 * time.Second)

	assert.Equal(t, []string{"status", "features", "logs", "same-instant"}, got)
	assert.Equal(t, 1000*ms, at["status"])
	assert.Equal(t, 1800*ms, at["features"])
	assert.Equal(t, 2600*ms, at["logs"])
	assert.Equal(t, 2600*ms, at["same-instant"])
	assert.True(t, r.Done())
	assert.Equal(t, 1, done)
	assert.Zero(t, sched.Pending())
}

func TestReveal_StopCancelsRemaining(t *testing.T) {
	sched := common.NewManualScheduler()
	fired := 0
	inc := func() { fired++ }
	r := NewReveal(sched,
		Stage{Name: "a", Delay: 100 * ms, OnReveal: inc},
		Stage{Name: "b", Delay: 100 * ms, OnReveal: inc},
		Stage{Name: "c", Delay: 100 * ms, OnReveal: inc},
	)
	require.NoError(t, r.Start())
	sched.Advance(150 * ms)
	r.Stop()
	r.Stop()

	assert.Zero(t, sched.Pending(), "no timers leak past teardown")
	sched.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, Visible, r.State(0))
	assert.Equal(t, Pending, r.State(1))
	assert.False(t, r.Done())
}

func TestReveal_StopBeforeStart(t *testing.T) {
	sched := common.NewManualScheduler()
	r := NewReveal(sched, Stage{Name: "a", Delay: ms})
	r.Stop()
	require.NoError(t, r.Start())
	assert.Zero(t, sched.Pending())
}

func TestTypewriter_ShowsWholeTextExactlyOnce(t *testing.T) {
	for _, text := range []string{
		"Hardware Acceleration: ENABLED → Engaging Full WebGL Pipeline.",
		"Ooh… I see you, Lisbon.",
		"x",
	} {
		t.Run(text, func(t *testing.T) {
			sched := common.NewManualScheduler()
			tw := NewTypewriter(sched, 30)
			n := utf8.RuneCountInString(text)
			full, longest := 0, 0
			var carets []bool
			tw.OnUpdate = func(s string, caret bool) {
				require.True(t, strings.HasPrefix(text, s))
				if l := utf8.RuneCountInString(s); l > longest {
					longest = l
				}
				if s == text {
					full++
				}
				carets = append(carets, caret)
			}
			tw.Type(text)
			assert.Equal(t, "", tw.Text())
			assert.True(t, tw.Typing())
			assert.Equal(t, Caret, tw.Render())

			sched.Advance(time.Duration(n-1) * 30 * ms)
			assert.NotEqual(t, text, tw.Text())

			sched.Advance(30 * ms)
			assert.Equal(t, text, tw.Text())
			assert.Equal(t, text, tw.Render(), "caret hidden when done")
			assert.False(t, tw.Typing())

			sched.Advance(time.Second)
			assert.Equal(t, 1, full)
			assert.Equal(t, n, longest)
			assert.False(t, carets[len(carets)-1])
			assert.Zero(t, sched.Pending())
		})
	}
}

func TestTypewriter_RestartResets(t *testing.T) {
	sched := common.NewManualScheduler()
	tw := NewTypewriter(sched, 30)
	done := 0
	tw.OnDone = func() { done++ }

	tw.Type("SCANNING...")
	sched.Advance(60 * ms)
	require.Equal(t, "SC", tw.Text())

	tw.Type("ok")
	assert.Equal(t, "", tw.Text())
	sched.Advance(30 * ms)
	assert.Equal(t, "o", tw.Text())
	sched.Advance(30 * ms)
	assert.Equal(t, "ok", tw.Text())
	assert.Equal(t, 1, done)
	assert.Zero(t, sched.Pending())

	tw.Type("")
	assert.False(t, tw.Typing())
	assert.Equal(t, 2, done)
}

func TestTypewriter_Stop(t *testing.T) {
	sched := common.NewManualScheduler()
	tw := NewTypewriter(sched, 30)
	tw.Type("abcdef")
	sched.Advance(90 * ms)
	tw.Stop()
	sched.Advance(time.Second)
	assert.Equal(t, "abc", tw.Text())
	assert.Zero(t, sched.Pending())
}

// locationAt runs a log reveal and a lookup that completes after lookup, and
// reports when the joined location stage fired.
func locationAt(t *testing.T, lookup time.Duration) (time.Duration, int) {
	sched := common.NewManualScheduler()
	logsShown := 0
	var firedAt time.Duration = -1
	visibleAtFire := -1

	logs := NewReveal(sched,
		Stage{Name: "log1", Delay: 400 * ms, OnReveal: func() { logsShown++ }},
		Stage{Name: "log2", Delay: 400 * ms, OnReveal: func() { logsShown++ }},
		Stage{Name: "log3", Delay: 400 * ms, OnReveal: func() { logsShown++ }},
		Stage{Name: "log4", Delay: 400 * ms, OnReveal: func() { logsShown++ }},
	)
	join := NewJoin(func() {
		firedAt = sched.Now()
		visibleAtFire = logsShown
	}, "logs", "lookup")
	logs.OnDone = func() { join.Arrive("logs") }

	require.NoError(t, logs.Start())
	sched.AfterFunc(lookup, func() { join.Arrive("lookup") })
	sched.Advance(5 * time.Second)
	require.True(t, join.Fired())
	return firedAt, visibleAtFire
}

func TestJoin_LookupFirstWaitsForLogs(t *testing.T) {
	at, shown := locationAt(t, 300*ms)
	assert.Equal(t, 1600*ms, at)
	assert.Equal(t, 4, shown)
}

func TestJoin_LookupLastGates(t *testing.T) {
	at, shown := locationAt(t, 2500*ms)
	assert.Equal(t, 2500*ms, at)
	assert.Equal(t, 4, shown)
}

func TestJoin_IgnoresRepeatsAndCancel(t *testing.T) {
	fired := 0
	j := NewJoin(func() { fired++ }, "a", "b")
	j.Arrive("a")
	j.Arrive("a")
	j.Arrive("zzz")
	assert.Zero(t, fired)
	assert.True(t, j.Waiting("b"))
	j.Arrive("b")
	j.Arrive("b")
	assert.Equal(t, 1, fired)

	c := NewJoin(func() { fired++ }, "a")
	c.Cancel()
	c.Arrive("a")
	assert.Equal(t, 1, fired)
	assert.False(t, c.Fired())
}

func TestCountdown(t *testing.T) {
	sched := common.NewManualScheduler()
	c := NewCountdown(sched, 3)
	var ticks []string
	zero := 0
	c.OnTick = func(int) { ticks = append(ticks, c.String()) }
	c.OnZero = func() { zero++ }

	assert.Equal(t, "00:03", c.String())
	c.Start()
	c.Start()
	sched.Advance(10 * time.Second)
	assert.Equal(t, []string{"00:02", "00:01", "00:00"}, ticks)
	assert.Equal(t, 1, zero)
	assert.True(t, c.Expired())
	assert.Zero(t, sched.Pending())
}

func TestCountdown_StopOnTeardown(t *testing.T) {
	sched := common.NewManualScheduler()
	c := NewCountdown(sched, 60)
	c.Start()
	sched.Advance(2500 * ms)
	c.Stop()
	assert.Zero(t, sched.Pending())
	assert.Equal(t, 58, c.Remaining())
	assert.Equal(t, "00:58", c.String())
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "00:00", 59: "00:59", 60: "01:00", 61: "01:01", 600: "10:00", -5: "00:00"}
	for in, want := range tests {
		assert.Equal(t, want, FormatClock(in), "%d", in)
	}
}
