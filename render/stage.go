package render

import (
	"github.com/rs/zerolog"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/policy"
	"github.com/codelinechef/portfolio-fx/prefs"
)

// Surface draws a Scene. The GPU surface is a WebGL scene; the fallback is
// a 2D canvas disk.
type Surface interface {
	Mount(pixelScale float64) error
	Resize(width, height float64)
	Draw(s *Scene)
	Unmount()
}

// SurfaceFactory builds the surface for a path. PathStatic and PathFallback
// share the 2D surface.
type SurfaceFactory func(path policy.Path) Surface

// Stage owns the render loop and the mounted surface, switching between them
// as the policy decision changes.
type Stage struct {
	scene   *Scene
	factory SurfaceFactory
	loop    *common.FrameLoop
	log     zerolog.Logger

	surface   Surface
	mounted   policy.Path
	decision  policy.Decision
	gpuFailed bool

	// OnRelease is called with the screen point where a drag ended.
	OnRelease func(x, y float64)
}

// NoSurface is reported by Mounted when nothing is mounted.
const NoSurface policy.Path = -1

// NewStage returns a stage with nothing mounted.
func NewStage(sched common.Scheduler, scene *Scene, factory SurfaceFactory) *Stage {
	st := &Stage{
		scene:   scene,
		factory: factory,
		log:     common.Component("render"),
		mounted: NoSurface,
	}
	st.loop = common.NewFrameLoop(sched, st.frame)
	return st
}

func (st *Stage) frame(f common.Frame) {
	st.scene.Update(f)
	if st.surface != nil {
		st.surface.Draw(st.scene)
	}
}

// Apply brings the stage in line with a decision. Loops start or stop
// synchronously, so a kill-switch takes effect before the next frame.
func (st *Stage) Apply(d policy.Decision, theme prefs.Theme) {
	st.decision = d
	path := d.Path
	if path == policy.PathStatic {
		st.loop.Stop()
	}

	want := path
	if want == policy.PathGPU && st.gpuFailed {
		want = policy.PathFallback
	}
	if want != st.mounted || st.surface == nil {
		st.swap(want, d.PixelScale)
	}
	st.scene.Configure(d.LowEnd, theme, path == policy.PathStatic, path == policy.PathGPU && st.mounted == policy.PathGPU)

	switch {
	case d.Animating() && st.surface != nil:
		st.loop.Start()
	default:
		st.loop.Stop()
		if st.surface != nil && path == policy.PathStatic {
			st.surface.Draw(st.scene)
		}
	}
}

// swap unmounts the current surface and mounts one for path, dropping to the
// 2D surface when the GPU surface fails. A GPU failure is not retried.
func (st *Stage) swap(path policy.Path, scale float64) {
	if st.surface != nil {
		st.surface.Unmount()
		st.surface = nil
	}
	st.mounted = NoSurface
	if s := st.factory(path); s != nil {
		err := s.Mount(scale)
		if err == nil {
			st.surface, st.mounted = s, path
			s.Resize(st.scene.Viewport.X, st.scene.Viewport.Y)
			st.log.Debug().Stringer("path", path).Msg("surface mounted")
			return
		}
		st.log.Warn().Err(err).Stringer("path", path).Msg("surface failed")
	}
	if path == policy.PathGPU {
		st.gpuFailed = true
		st.swap(policy.PathFallback, 1)
	}
}

// Mounted reports which surface is up.
func (st *Stage) Mounted() policy.Path { return st.mounted }

// Decision is the last applied decision.
func (st *Stage) Decision() policy.Decision { return st.decision }

// Running reports whether the render loop is active.
func (st *Stage) Running() bool { return st.loop.Running() }

// FPS is the measured render rate.
func (st *Stage) FPS() float64 { return st.loop.FPS() }

// Scene returns the stage's scene.
func (st *Stage) Scene() *Scene { return st.scene }

// Resize forwards a viewport change.
func (st *Stage) Resize(w, h float64) {
	st.scene.Resize(w, h)
	if st.surface != nil {
		st.surface.Resize(w, h)
		if !st.loop.Running() {
			st.surface.Draw(st.scene)
		}
	}
}

// PointerMove forwards pointer motion.
func (st *Stage) PointerMove(x, y float64) {
	st.scene.PointerMove(x, y)
}

// PointerDown starts a drag when the press lands on the focal element.
func (st *Stage) PointerDown(x, y float64) bool {
	return st.scene.PointerDown(x, y)
}

// PointerUp ends a drag and fires OnRelease at the release point.
func (st *Stage) PointerUp(x, y float64) {
	if st.scene.PointerUp() && st.OnRelease != nil {
		st.OnRelease(x, y)
	}
}

// Close stops the loop and unmounts.
func (st *Stage) Close() {
	st.loop.Stop()
	if st.surface != nil {
		st.surface.Unmount()
		st.surface = nil
	}
	st.mounted = NoSurface
}
