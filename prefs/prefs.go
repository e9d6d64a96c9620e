package prefs

import (
	"strconv"

	"github.com/codelinechef/portfolio-fx/common"
)

// Accessibility is the user's motion preference pair.
type Accessibility struct {
	ReducedMotion     bool
	DisableAllEffects bool
}

// MotionAllowed reports whether decorative motion may run at all.
func (a Accessibility) MotionAllowed() bool {
	return !a.ReducedMotion && !a.DisableAllEffects
}

// Theme is the site color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Flag is a persisted boolean preference.
type Flag struct {
	*common.Subject[bool]
	key string
}

// Toggle flips the flag and returns the new value.
func (f *Flag) Toggle() bool {
	f.Set(!f.Get())
	return f.Get()
}

// Key returns the storage key backing the flag.
func (f *Flag) Key() string { return f.key }

// Preferences is the application-scoped preference state. Every field is
// observable; changes are written through to the store as they happen.
type Preferences struct {
	Accessibility *common.Subject[Accessibility]
	Theme         *common.Subject[Theme]
	Muted         *Flag
	VoiceMuted    *Flag
	ZoneMuted     *Flag
	Figures       *Figures

	store Store
}

// Load reads preferences from store, filling gaps from the system signals.
func Load(store Store, sys System) *Preferences {
	p := &Preferences{store: store}

	reduced := sys.PrefersReducedMotion()
	if v, ok := store.Get(KeyReducedMotion); ok && v != "" {
		reduced = v == "true"
	}
	p.Accessibility = common.NewSubject(Accessibility{
		ReducedMotion:     reduced,
		DisableAllEffects: readBool(store, KeyDisableAllEffects),
	})
	p.Accessibility.Subscribe(func(a Accessibility) {
		store.Set(KeyReducedMotion, strconv.FormatBool(a.ReducedMotion))
		store.Set(KeyDisableAllEffects, strconv.FormatBool(a.DisableAllEffects))
	})

	theme := Light
	if sys.PrefersDark() {
		theme = Dark
	}
	if v, ok := store.Get(KeyTheme); ok && (v == string(Light) || v == string(Dark)) {
		theme = Theme(v)
	}
	p.Theme = common.NewSubject(theme)
	p.Theme.Subscribe(func(t Theme) { store.Set(KeyTheme, string(t)) })

	p.Muted = p.flag(KeyMuted)
	p.VoiceMuted = p.flag(KeyVoiceMuted)
	p.ZoneMuted = p.flag(KeyZoneMuted)
	p.Figures = LoadFigures(store)
	return p
}

func (p *Preferences) flag(key string) *Flag {
	f := &Flag{Subject: common.NewSubject(readBool(p.store, key)), key: key}
	f.Subscribe(func(v bool) { p.store.Set(key, strconv.FormatBool(v)) })
	return f
}

func readBool(store Store, key string) bool {
	v, _ := store.Get(key)
	return v == "true"
}

// ToggleReducedMotion flips the reduced-motion preference.
func (p *Preferences) ToggleReducedMotion() {
	a := p.Accessibility.Get()
	a.ReducedMotion = !a.ReducedMotion
	p.Accessibility.Set(a)
}

// ToggleDisableAllEffects flips the global effects kill-switch.
func (p *Preferences) ToggleDisableAllEffects() {
	a := p.Accessibility.Get()
	a.DisableAllEffects = !a.DisableAllEffects
	p.Accessibility.Set(a)
}

// ToggleTheme switches between light and dark.
func (p *Preferences) ToggleTheme() {
	if p.Theme.Get() == Dark {
		p.Theme.Set(Light)
		return
	}
	p.Theme.Set(Dark)
}
