package policy

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/prefs"
)

var tiers = []capability.DeviceTier{capability.TierLow, capability.TierMedium, capability.TierHigh}

func TestResolveUseGPU_AccessibilityFlagsDominate(t *testing.T) {
	for _, tier := range tiers {
		for _, graphics := range []bool{false, true} {
			assert.False(t, ResolveUseGPU(graphics, tier, true, false), "reduced motion, %v %v", tier, graphics)
			assert.False(t, ResolveUseGPU(graphics, tier, false, true), "disable all, %v %v", tier, graphics)
			assert.False(t, ResolveUseGPU(graphics, tier, true, true), "both, %v %v", tier, graphics)
		}
	}
}

func TestResolveUseGPU_Capability(t *testing.T) {
	tests := []struct {
		name     string
		graphics bool
		tier     capability.DeviceTier
		want     bool
	}{
		{"high with webgl", true, capability.TierHigh, true},
		{"medium with webgl", true, capability.TierMedium, true},
		{"low with webgl", true, capability.TierLow, false},
		{"high without webgl", false, capability.TierHigh, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveUseGPU(tt.graphics, tt.tier, false, false))
		})
	}
}

func TestResolve_Paths(t *testing.T) {
	high := capability.Detect(capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 8, NativeDPR: 3})
	low := capability.Detect(capability.StaticEnv{Graphics: true, CoreCount: 2, Memory: 2, NativeDPR: 3})

	tests := []struct {
		name    string
		profile capability.Profile
		access  prefs.Accessibility
		visible bool
		path    Path
		scale   float64
		animate bool
	}{
		{"high tier", high, prefs.Accessibility{}, true, PathGPU, 2, true},
		{"low tier", low, prefs.Accessibility{}, true, PathFallback, 1, true},
		{"reduced motion", high, prefs.Accessibility{ReducedMotion: true}, true, PathStatic, 1, false},
		{"disable all", high, prefs.Accessibility{DisableAllEffects: true}, true, PathStatic, 1, false},
		{"hidden tab", high, prefs.Accessibility{}, false, PathGPU, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.profile, tt.access, tt.visible)
			assert.Equal(t, tt.path, d.Path)
			assert.Equal(t, tt.scale, d.PixelScale)
			assert.Equal(t, tt.animate, d.Animating())
		})
	}
}

func TestResolve_LowEndKeepsCapabilityFalse(t *testing.T) {
	low := capability.Detect(capability.StaticEnv{Graphics: true, CoreCount: 2, Memory: 2})
	d := Resolve(low, prefs.Accessibility{}, true)
	assert.False(t, d.Capable)
	assert.False(t, d.UseGPU)
	assert.True(t, d.LowEnd)
	assert.True(t, d.AudioEnabled)
}

func TestResolver_ReactsWithoutReload(t *testing.T) {
	profile := capability.Detect(capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 16})
	access := common.NewSubject(prefs.Accessibility{})
	visible := common.NewSubject(true)
	r := NewResolver(profile, access, visible)

	var seen []Path
	r.Decisions().Subscribe(func(d Decision) { seen = append(seen, d.Path) })
	assert.Equal(t, PathGPU, r.Current().Path)

	access.Set(prefs.Accessibility{DisableAllEffects: true})
	assert.Equal(t, PathStatic, r.Current().Path)
	assert.False(t, r.Current().AudioEnabled)

	access.Set(prefs.Accessibility{})
	visible.Set(false)
	assert.True(t, r.Current().Paused)

	assert.Equal(t, []Path{PathStatic, PathGPU, PathGPU}, seen)

	r.Close()
	assert.Equal(t, 0, access.Subscribers())
	assert.Equal(t, 0, visible.Subscribers())
	access.Set(prefs.Accessibility{ReducedMotion: true})
	assert.Equal(t, PathGPU, r.Current().Path, "closed resolver stops following")
}

func TestResolver_LogsChanges(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogOutput(&buf)
	common.SetDebug(true)
	t.Cleanup(func() {
		common.SetDebug(false)
		common.SetLogOutput(os.Stderr)
	})

	profile := capability.Detect(capability.StaticEnv{Graphics: true, CoreCount: 8, Memory: 16})
	access := common.NewSubject(prefs.Accessibility{})
	r := NewResolver(profile, access, common.NewSubject(true))
	defer r.Close()

	access.Set(prefs.Accessibility{ReducedMotion: true})
	assert.Contains(t, buf.String(), "policy changed")
	assert.Contains(t, buf.String(), `"path":"static"`)
}
