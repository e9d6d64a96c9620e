package sequence

// Join runs a callback once every named party has arrived, whichever order
// they arrive in.
type Join struct {
	waiting map[string]bool
	fn      func()
	fired   bool
	closed  bool
}

// NewJoin waits for parties before calling fn. With no parties it never
// fires.
func NewJoin(fn func(), parties ...string) *Join {
	j := &Join{waiting: make(map[string]bool, len(parties)), fn: fn}
	for _, p := range parties {
		j.waiting[p] = true
	}
	return j
}

// Arrive marks party as done. Unknown or repeated parties are ignored.
func (j *Join) Arrive(party string) {
	if j.closed || j.fired || !j.waiting[party] {
		return
	}
	delete(j.waiting, party)
	if len(j.waiting) == 0 {
		j.fired = true
		j.fn()
	}
}

// Waiting reports whether party has yet to arrive.
func (j *Join) Waiting(party string) bool { return j.waiting[party] }

// Fired reports whether the callback ran.
func (j *Join) Fired() bool { return j.fired }

// Cancel drops the join; later arrivals do nothing.
func (j *Join) Cancel() { j.closed = true }
