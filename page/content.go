// Package page drives the hidden "red zone" page: the entry transition, the
// typed status line, the feature matrix, the log stream, the location reveal,
// the signature and the exit countdown.
package page

import (
	"fmt"

	"github.com/codelinechef/portfolio-fx/geo"
)

// LogLine is one entry of the system log stream.
type LogLine struct {
	Type    string
	Message string
}

// Logs is the log stream, in order.
var Logs = []LogLine{
	{"INFO", "Procedural geometry instantiated."},
	{"AUDIO", "FFT analysis initialized — ready to vibe."},
	{"NOTICE", "Adaptive render pipeline engaged."},
	{"SECURE", "Runtime sandbox active — no external calls made."},
}

// FeatureRow is one line of the feature matrix.
type FeatureRow struct {
	Feature string
	GPU     string
	CPU     string
}

// FeatureMatrix compares the two render paths.
var FeatureMatrix = []FeatureRow{
	{"Shader Sphere", "✅ WebGL Shader Pipeline", "⚙️ 2D Canvas Blob Sim"},
	{"Particle System", "✅ Real-time Emitters", "⚙️ CSS Sim Particles"},
	{"Spatial Audio", "✅ Positional Stereo", "⚙️ Flat Stereo Mix"},
	{"Equalizer", "✅ Audio-Reactive Bars", "⚙️ Looped Amplitude Pattern"},
	{"Animations", "✅ GPU Motion Curves", "⚙️ CSS Eased Transitions"},
}

// TransitionMessages are shown while entering the page.
var TransitionMessages = []string{
	"Initializing system breach...",
	"Calibrating neural core…",
	"Taking you to the Red Zone.",
}

const (
	// Scanning is typed while the status is pending.
	Scanning  = "SCANNING..."
	Banner    = "SYSTEM MODE: RED ZONE — ENCRYPTED ENVIRONMENT"
	Signature = "Powered by CodeLineChef — where code meets consciousness."
	unknown   = "Ooh… I can't see you clearly through the data cloud — yet."
)

// StatusLine is the hardware line for the active path.
func StatusLine(gpu bool) string {
	if gpu {
		return "Hardware Acceleration: ENABLED → Engaging Full WebGL Pipeline."
	}
	return "Hardware Acceleration: DISABLED → Running Canvas Emulation Mode."
}

// LocationLines is the location reveal text. An unknown location gets the
// placeholder rather than an error.
func LocationLines(loc geo.Location) []string {
	if !loc.Known() {
		return []string{unknown}
	}
	lines := []string{fmt.Sprintf("Ooh… I see you, %s.", loc.City)}
	switch {
	case loc.Region != "" && loc.Country != "":
		lines = append(lines, fmt.Sprintf("The system recognizes your coordinates: %s, %s.", loc.Region, loc.Country))
	case loc.Country != "":
		lines = append(lines, fmt.Sprintf("The system recognizes your coordinates: %s.", loc.Country))
	}
	return lines
}
