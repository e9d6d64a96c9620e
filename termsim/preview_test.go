//go:build !js
// +build !js

package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/equalizer"
	"github.com/codelinechef/portfolio-fx/policy"
)

func steps(p *Preview, n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

func TestPreview_Keys(t *testing.T) {
	p := NewPreview(Options{Env: capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 8}})
	defer p.Close()

	assert.Contains(t, p.Status(), "path=gpu")
	assert.Equal(t, equalizer.Simulated, p.app.Equalizer().Mode(), "no audio device")

	assert.True(t, p.Key('e'))
	assert.Contains(t, p.Status(), "path=static")
	assert.Contains(t, p.Status(), "audio=false")
	assert.True(t, p.Key('e'))

	assert.True(t, p.Key('r'))
	assert.Equal(t, policy.PathStatic, p.app.Stage().Mounted())
	assert.Contains(t, p.Status(), "path=static")
	assert.True(t, p.Key('r'))

	assert.True(t, p.Key('m'))
	assert.Equal(t, equalizer.Silent, p.app.Equalizer().Mode())

	assert.True(t, p.Key('h'))
	assert.True(t, p.app.Decision().Paused)

	assert.False(t, p.Key('q'))
}

func TestPreview_FlagsSeedPreferences(t *testing.T) {
	p := NewPreview(Options{
		Env:        capability.StaticEnv{Graphics: true, CoreCount: 2, Memory: 2},
		DisableAll: true,
	})
	defer p.Close()
	assert.Equal(t, policy.PathStatic, p.app.Decision().Path)
	assert.Contains(t, p.Status(), "tier=low")
}

func TestPreview_RevealRuns(t *testing.T) {
	p := NewPreview(Options{Env: capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 8}})
	defer p.Close()

	steps(p, 10*60)
	lines := strings.Join(p.view.lines(), "\n")
	assert.Contains(t, lines, "Hardware Acceleration")
	assert.Contains(t, lines, "[SECURE]")
	assert.Contains(t, lines, "T-00:")
	assert.NotEmpty(t, p.view.location)
}

func TestPreview_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(100, 40)

	p := NewPreview(Options{Env: capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 8}})
	defer p.Close()
	steps(p, 30)
	p.Draw(screen)

	cells, w, _ := screen.GetContents()
	var first strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[x].Runes; len(r) > 0 {
			first.WriteRune(r[0])
		}
	}
	assert.True(t, strings.HasPrefix(first.String(), "tier=high path=gpu"))
}
