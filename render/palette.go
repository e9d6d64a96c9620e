package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/codelinechef/portfolio-fx/prefs"
)

// Palette holds the visual styling for one theme.
type Palette struct {
	// Backdrop
	Particle string
	Shape    string

	// Focal element
	SphereColor    string
	SphereEmissive string
	GlowInner      string
	GlowOuter      string
	GlowBlur       float64

	// Cursor trail, as an "r, g, b" triple for rgba()
	TrailRGB string
}

// Palettes are the styles for each theme.
var Palettes = map[prefs.Theme]Palette{
	prefs.Dark: {
		Particle:       "#9AFF9A",
		Shape:          "#60a5fa",
		SphereColor:    "#7c3aed",
		SphereEmissive: "#1e1b4b",
		GlowInner:      "rgba(124, 58, 237, 0.9)",
		GlowOuter:      "rgba(96, 165, 250, 0)",
		GlowBlur:       40,
		TrailRGB:       "255, 0, 60",
	},
	prefs.Light: {
		Particle:       "#ff6fa3",
		Shape:          "#ff6fa3",
		SphereColor:    "#ff6fa3",
		SphereEmissive: "#4a044e",
		GlowInner:      "rgba(255, 111, 163, 0.85)",
		GlowOuter:      "rgba(255, 111, 163, 0)",
		GlowBlur:       32,
		TrailRGB:       "255, 0, 60",
	},
}

// PaletteFor returns the palette for theme, defaulting to dark.
func PaletteFor(theme prefs.Theme) Palette {
	if p, ok := Palettes[theme]; ok {
		return p
	}
	return Palettes[prefs.Dark]
}

// mustColor parses a palette hex color; palette entries are constants.
func mustColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
