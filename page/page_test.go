package page

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelinechef/portfolio-fx/audio"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/config"
	"github.com/codelinechef/portfolio-fx/geo"
)

const ms = time.Millisecond

type event struct {
	at   time.Duration
	what string
}

type recorder struct {
	sched  *common.ManualScheduler
	events []event
	status string
	caret  bool
	gpu    bool
	logs   []LogLine
	loc    []string
	clock  string
	sounds []audio.Kind
}

func (r *recorder) add(what string) { r.events = append(r.events, event{r.sched.Now(), what}) }

func (r *recorder) SetTransition(m string)              { r.add("transition:" + m) }
func (r *recorder) SetStatus(text string, c bool)       { r.status, r.caret = text, c }
func (r *recorder) ShowFeatures(_ []FeatureRow, g bool) { r.gpu = g; r.add("features") }
func (r *recorder) ShowLogs()                           { r.add("logs") }
func (r *recorder) AppendLog(l LogLine)                 { r.logs = append(r.logs, l); r.add("log:" + l.Type) }
func (r *recorder) ShowLocation(lines []string)         { r.loc = lines; r.add("location") }
func (r *recorder) ShowSignature(string)                { r.add("signature") }
func (r *recorder) SetCountdown(text string)            { r.clock = text }
func (r *recorder) ShowExit()                           { r.add("exit") }
func (r *recorder) PlayOneShot(k audio.Kind)            { r.sounds = append(r.sounds, k) }

func (r *recorder) at(what string) time.Duration {
	for _, e := range r.events {
		if e.what == what {
			return e.at
		}
	}
	return -1
}

// heldProvider answers the IP lookup when the test says so.
type heldProvider struct {
	body string
	done func([]byte, error)
}

func (h *heldProvider) HasGeolocation() bool                                              { return false }
func (h *heldProvider) CurrentPosition(geo.PositionOptions, func(geo.Coordinates, error)) {}
func (h *heldProvider) Fetch(_ string, done func([]byte, error))                          { h.done = done }
func (h *heldProvider) answer()                                                           { h.done([]byte(h.body), nil) }

func openPage(t *testing.T, motion bool, p geo.Provider) (*Page, *recorder) {
	t.Helper()
	sched := common.NewManualScheduler()
	rec := &recorder{sched: sched}
	cfg := config.Default()
	var loc *geo.Locator
	if p != nil {
		loc = geo.NewLocator(cfg.Geo, p, false)
	}
	pg := Open(Options{
		Sched:   sched,
		Config:  cfg.Sequence,
		Sound:   rec,
		Locator: loc,
		GPU:     true,
		Motion:  motion,
	}, rec)
	return pg, rec
}

const lisbon = `{"city":"Lisbon","region":"Lisbon","country_name":"Portugal"}`

func TestPage_Schedule(t *testing.T) {
	prov := &heldProvider{body: lisbon}
	pg, rec := openPage(t, true, prov)
	assert.Equal(t, "01:00", rec.clock)
	assert.True(t, rec.caret, "scanning line is typing")

	rec.sched.Advance(5 * time.Second)
	assert.Equal(t, 1800*ms, rec.at("features"))
	assert.Equal(t, 2600*ms, rec.at("logs"))
	assert.Equal(t, 3000*ms, rec.at("log:INFO"))
	assert.Equal(t, 4200*ms, rec.at("log:SECURE"))
	assert.True(t, rec.gpu)
	assert.Equal(t, Logs, rec.logs)
	assert.Equal(t, 4, pg.LogsVisible())
	assert.False(t, pg.LocationShown(), "lookup still out")

	rec.sched.Advance(time.Second)
	prov.answer()
	assert.Equal(t, 6*time.Second, rec.at("location"))
	assert.Equal(t, []string{"Ooh… I see you, Lisbon.", "The system recognizes your coordinates: Lisbon, Portugal."}, rec.loc)

	rec.sched.Advance(1499 * ms)
	assert.False(t, pg.Signed())
	rec.sched.Advance(ms)
	assert.True(t, pg.Signed())

	assert.Equal(t, StatusLine(true), rec.status)
	assert.False(t, rec.caret)
	assert.Equal(t, []audio.Kind{audio.Hover, audio.Click, audio.Click, audio.Click, audio.Click, audio.Hover}, rec.sounds)
	pg.Close()
	assert.Zero(t, rec.sched.Pending())
}

func TestPage_FastLookupWaitsForLogs(t *testing.T) {
	prov := &heldProvider{body: lisbon}
	pg, rec := openPage(t, false, prov)
	rec.sched.Advance(100 * ms)
	prov.answer()
	assert.True(t, pg.Located())
	assert.False(t, pg.LocationShown())

	rec.sched.Advance(6 * time.Second)
	assert.Equal(t, 4200*ms, rec.at("location"))
	assert.Greater(t, rec.at("location"), rec.at("log:SECURE")-1)
	assert.Equal(t, 5700*ms, rec.at("signature"))
}

func TestPage_UnknownLocation(t *testing.T) {
	pg, rec := openPage(t, false, nil)
	rec.sched.Advance(5 * time.Second)
	require.True(t, pg.LocationShown())
	assert.Equal(t, []string{unknown}, rec.loc)

	prov := &heldProvider{body: `not json`}
	_, rec2 := openPage(t, false, prov)
	prov.answer()
	rec2.sched.Advance(5 * time.Second)
	assert.Equal(t, []string{unknown}, rec2.loc)
}

func TestPage_NoMotionShowsStatusAtOnce(t *testing.T) {
	_, rec := openPage(t, false, nil)
	assert.Equal(t, Scanning, rec.status)
	assert.False(t, rec.caret)
	rec.sched.Advance(1000 * ms)
	assert.Equal(t, StatusLine(true), rec.status)
	assert.Zero(t, rec.sched.PendingFrames())
}

func TestPage_MotionOffFinishesTyping(t *testing.T) {
	pg, rec := openPage(t, true, nil)
	rec.sched.Advance(1300 * ms)
	require.Equal(t, "Hardware A", rec.status)
	require.True(t, rec.caret)

	pending := rec.sched.Pending()
	pg.SetMotion(false)
	assert.False(t, pg.Motion())
	assert.Equal(t, StatusLine(true), rec.status)
	assert.False(t, rec.caret)
	assert.Equal(t, pending-1, rec.sched.Pending(), "typewriter released")

	rec.sched.Advance(300 * ms)
	assert.Equal(t, StatusLine(true), rec.status)
	assert.False(t, rec.caret)

	pg.SetMotion(true)
	assert.Equal(t, StatusLine(true), rec.status, "finished text stays")
}

func TestPage_SkipCountdown(t *testing.T) {
	sched := common.NewManualScheduler()
	rec := &recorder{sched: sched}
	pg := Open(Options{Sched: sched, Config: config.Default().Sequence, SkipCountdown: true}, rec)

	sched.Advance(2 * time.Minute)
	assert.Empty(t, rec.clock)
	assert.Equal(t, time.Duration(-1), rec.at("exit"))
	assert.False(t, pg.Exit())
	assert.True(t, pg.Signed())
	assert.Zero(t, sched.Pending(), "nothing left once the reveal ends")
}

func TestPage_CloseMidSequenceLeaksNothing(t *testing.T) {
	prov := &heldProvider{body: lisbon}
	pg, rec := openPage(t, true, prov)
	rec.sched.Advance(2700 * ms)
	pg.Close()
	pg.Close()
	assert.Zero(t, rec.sched.Pending())

	before := len(rec.events)
	rec.sched.Advance(time.Minute)
	prov.answer()
	assert.Len(t, rec.events, before, "nothing fires after teardown")
	assert.False(t, pg.LocationShown())
}

func TestPage_CountdownAndExit(t *testing.T) {
	pg, rec := openPage(t, false, nil)
	exited := 0
	pg.opt.OnExit = func() { exited++ }

	assert.False(t, pg.Exit(), "exit hidden until zero")
	rec.sched.Advance(59 * time.Second)
	assert.Equal(t, "00:01", rec.clock)
	assert.Equal(t, time.Duration(-1), rec.at("exit"))

	rec.sched.Advance(time.Second)
	assert.Equal(t, "00:00", rec.clock)
	assert.Equal(t, 60*time.Second, rec.at("exit"))

	require.True(t, pg.Exit())
	assert.Equal(t, audio.Navigation, rec.sounds[len(rec.sounds)-1])
	assert.Equal(t, 1, exited)
	assert.False(t, pg.Exit())
	assert.Zero(t, rec.sched.Pending())
}

func TestPage_Transition(t *testing.T) {
	sched := common.NewManualScheduler()
	rec := &recorder{sched: sched}
	pg := Open(Options{Sched: sched, Config: config.Default().Sequence, Transition: true}, rec)

	sched.Advance(3 * time.Second)
	assert.Equal(t, time.Duration(0), rec.at("transition:"+TransitionMessages[0]))
	assert.Equal(t, 800*ms, rec.at("transition:"+TransitionMessages[1]))
	assert.Equal(t, 1600*ms, rec.at("transition:"+TransitionMessages[2]))
	assert.True(t, pg.Entered())
	assert.Equal(t, "01:00", rec.clock, "countdown starts on entry")
	pg.Close()
	assert.Zero(t, sched.Pending())
}

func TestLocationLines(t *testing.T) {
	assert.Equal(t, []string{unknown}, LocationLines(geo.Location{Country: "Portugal"}))
	lines := LocationLines(geo.Location{City: "Porto", Country: "Portugal"})
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ": Portugal."))
	assert.Len(t, LocationLines(geo.Location{City: "Nowhere"}), 1)
}

func TestStatusLine(t *testing.T) {
	assert.Contains(t, StatusLine(true), "ENABLED")
	assert.Contains(t, StatusLine(false), "Canvas Emulation Mode")
}
