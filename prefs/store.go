package prefs

// Storage keys. They match the keys the site has always written so existing
// visitors keep their settings.
const (
	KeyTheme             = "portfolio-theme"
	KeyReducedMotion     = "reduced-motion"
	KeyDisableAllEffects = "disable-all-effects"
	KeyMuted             = "audio-muted"
	KeyVoiceMuted        = "voice-muted"
	KeyZoneMuted         = "redzone-audio-muted"
	KeyFigures           = "draggable-figures"
)

// Store is a string key/value store; localStorage in the browser.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// System exposes the platform-level preference signals used for first-load
// defaults.
type System interface {
	PrefersReducedMotion() bool
	PrefersDark() bool
}

// MemoryStore is an in-process Store.
type MemoryStore map[string]string

// NewMemoryStore returns an empty store.
func NewMemoryStore() MemoryStore {
	return make(MemoryStore)
}

// Get implements Store.
func (m MemoryStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set implements Store.
func (m MemoryStore) Set(key, value string) {
	m[key] = value
}

// StaticSystem is a fixed System, used by tests and native tools.
type StaticSystem struct {
	ReducedMotion bool
	Dark          bool
}

func (s StaticSystem) PrefersReducedMotion() bool { return s.ReducedMotion }
func (s StaticSystem) PrefersDark() bool          { return s.Dark }
