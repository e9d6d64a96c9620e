package prefs

import (
	"encoding/json"
	"strconv"

	"github.com/codelinechef/portfolio-fx/common"
)

// IconCount is the number of decorative figure icons.
const IconCount = 4

// Position is a screen position in CSS pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Figure is one user-placed decorative figure.
type Figure struct {
	ID       string   `json:"id"`
	Icon     int      `json:"icon"`
	Position Position `json:"position"`
}

// Figures is the persisted, user-arranged figure layout.
type Figures struct {
	store  Store
	items  []Figure
	locked bool
	nextID int64
	rng    *common.SeededRNG
}

// DefaultFigures is the layout shown before the user arranges anything.
func DefaultFigures() []Figure {
	return []Figure{
		{ID: "1", Icon: 0, Position: Position{X: 100, Y: 100}},
		{ID: "2", Icon: 1, Position: Position{X: 200, Y: 150}},
	}
}

// LoadFigures reads the saved layout. A missing or unreadable entry yields
// the default layout.
func LoadFigures(store Store) *Figures {
	f := &Figures{store: store, rng: common.NewSeededRNG(0x5eed), nextID: 1}
	raw, ok := store.Get(KeyFigures)
	if !ok || raw == "" || json.Unmarshal([]byte(raw), &f.items) != nil {
		f.items = DefaultFigures()
	}
	for _, it := range f.items {
		if n, err := strconv.ParseInt(it.ID, 10, 64); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
	}
	return f
}

// All returns a copy of the layout.
func (f *Figures) All() []Figure {
	return append([]Figure(nil), f.items...)
}

// Locked reports whether moves are currently ignored.
func (f *Figures) Locked() bool { return f.locked }

// SetLocked freezes or unfreezes the layout.
func (f *Figures) SetLocked(locked bool) { f.locked = locked }

// Add places a figure with a random icon somewhere in the top-left 300x300
// area and returns it.
func (f *Figures) Add() Figure {
	fig := Figure{
		ID:   strconv.FormatInt(f.nextID, 10),
		Icon: f.rng.RandomInt(0, IconCount),
		Position: Position{
			X: f.rng.RandomFloat(0, 300),
			Y: f.rng.RandomFloat(0, 300),
		},
	}
	f.nextID++
	f.items = append(f.items, fig)
	f.save()
	return fig
}

// Remove deletes the figure with id.
func (f *Figures) Remove(id string) {
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	f.save()
}

// Move repositions a figure. It returns false when locked or id is unknown.
func (f *Figures) Move(id string, pos Position) bool {
	if f.locked {
		return false
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Position = pos
			f.save()
			return true
		}
	}
	return false
}

// Reset clears the layout.
func (f *Figures) Reset() {
	f.items = nil
	f.save()
}

func (f *Figures) save() {
	items := f.items
	if items == nil {
		items = []Figure{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	f.store.Set(KeyFigures, string(b))
}
