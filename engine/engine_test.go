package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer"
	"github.com/Carmen-Shannon/oxy-physics/engine/scene"
	"github.com/Carmen-Shannon/oxy-physics/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	rendered []string
	resized  [][2]int
	err      error
}

func (f *fakeRenderer) Render(s scene.Scene) error {
	f.rendered = append(f.rendered, s.Name())
	return f.err
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.resized = append(f.resized, [2]int{width, height})
	return nil
}

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) Release()                            {}

type fakeWindow struct {
	update func()
	resize func(width, height int)
	scroll func(delta float32)
	drag   func(button window.MouseButton, dx, dy float32)
	frames int
	closed int
}

func (w *fakeWindow) SetUpdateCallback(cb func())                                   { w.update = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))                  { w.resize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float32))                      { w.scroll = cb }
func (w *fakeWindow) SetDragCallback(cb func(b window.MouseButton, dx, dy float32)) { w.drag = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                    { return nil }
func (w *fakeWindow) IsRunning() bool                                               { return w.closed == 0 }
func (w *fakeWindow) Width() int                                                    { return 1920 }
func (w *fakeWindow) Height() int                                                   { return 1080 }

func (w *fakeWindow) Close() error {
	w.closed++
	return nil
}

// ProcessMessages runs a fixed number of frames.
func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.frames && w.IsRunning(); i++ {
		w.update()
	}
}

func orbitScene(name string, active bool) scene.Scene {
	ctrl := camera.NewOrbitController(
		camera.WithPosition(mgl32.Vec3{75, 20, 0}),
		camera.WithTarget(mgl32.Vec3{0, 20, 0}),
	)
	return scene.NewScene(name, camera.NewCamera(camera.WithController(ctrl)), scene.WithActive(active))
}

func fakeClock(e *engine, step time.Duration) {
	t := time.Unix(100, 0)
	e.now = func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestFrameTimer(t *testing.T) {
	var ft frameTimer
	start := time.Unix(10, 0)
	assert.Zero(t, ft.elapsed(start))
	assert.InDelta(t, 0.016, ft.elapsed(start.Add(16*time.Millisecond)), 1e-6)
	assert.InDelta(t, 0.5, ft.elapsed(start.Add(516*time.Millisecond)), 1e-6)
}

func TestRunTicksThenRenders(t *testing.T) {
	w := &fakeWindow{frames: 3}
	r := &fakeRenderer{}
	e := NewEngine(WithWindow(w), WithRenderer(r), WithScene(0, orbitScene("main", true))).(*engine)
	fakeClock(e, 20*time.Millisecond)

	var order []string
	var dts []float32
	e.SetTickCallback(func(dt float32) {
		order = append(order, "tick")
		dts = append(dts, dt)
	})
	e.SetRenderCallback(func(float32) { order = append(order, "after") })

	e.Run()

	require.Len(t, dts, 3)
	assert.Zero(t, dts[0], "first frame has no elapsed time")
	assert.InDelta(t, 0.02, dts[1], 1e-6)
	assert.Equal(t, []string{"main", "main", "main"}, r.rendered)
	assert.Equal(t, []string{"tick", "after", "tick", "after", "tick", "after"}, order)
}

func TestRendersLowestActiveScene(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r)).(*engine)
	e.AddScene(5, orbitScene("hud", true))
	e.AddScene(1, orbitScene("inactive", false))
	e.AddScene(3, orbitScene("world", true))

	e.frame()
	assert.Equal(t, []string{"world"}, r.rendered)

	e.RemoveScene(3)
	e.frame()
	assert.Equal(t, []string{"world", "hud"}, r.rendered)
	assert.Nil(t, e.Scene(3))
	assert.Len(t, e.Scenes(), 2)
}

func TestRenderErrorSkipsFrame(t *testing.T) {
	r := &fakeRenderer{err: errors.New("surface lost")}
	e := NewEngine(WithRenderer(r), WithScene(0, orbitScene("main", true))).(*engine)

	ticks := 0
	e.SetTickCallback(func(float32) { ticks++ })
	assert.NotPanics(t, func() {
		e.frame()
		e.frame()
	})
	assert.Equal(t, 2, ticks)
}

func TestResizeFansOut(t *testing.T) {
	w := &fakeWindow{}
	r := &fakeRenderer{}
	a, b := orbitScene("a", true), orbitScene("b", false)
	NewEngine(WithWindow(w), WithRenderer(r), WithScene(0, a), WithScene(1, b))

	w.resize(1920, 1080)
	w.resize(0, 1080)

	assert.Equal(t, [][2]int{{1920, 1080}}, r.resized)
	assert.InDelta(t, 1920.0/1080.0, a.Camera().Aspect(), 1e-6)
	assert.InDelta(t, 1920.0/1080.0, b.Camera().Aspect(), 1e-6)
}

func TestInputDrivesOrbitController(t *testing.T) {
	w := &fakeWindow{}
	s := orbitScene("main", true)
	NewEngine(WithWindow(w), WithScene(0, s))
	ctrl := s.Camera().Controller()

	azimuth, radius := ctrl.Azimuth(), ctrl.Radius()
	w.drag(window.MouseButtonLeft, 10, 0)
	assert.NotEqual(t, azimuth, ctrl.Azimuth())

	w.scroll(1)
	assert.Less(t, ctrl.Radius(), radius)

	target := ctrl.Target()
	w.drag(window.MouseButtonRight, 5, 5)
	assert.NotEqual(t, target, ctrl.Target())
}

func TestQuitClosesWindowOnce(t *testing.T) {
	w := &fakeWindow{frames: 10}
	r := &fakeRenderer{}
	e := NewEngine(WithWindow(w), WithRenderer(r), WithScene(0, orbitScene("main", true)))
	frames := 0
	e.SetTickCallback(func(float32) {
		frames++
		if frames == 2 {
			e.Quit()
			e.Quit()
		}
	})

	e.Run()
	assert.Equal(t, 2, frames)
	assert.Equal(t, 1, w.closed)
	assert.Len(t, r.rendered, 1, "no render after quitting mid-frame")
}

func TestRunWithoutWindowPanics(t *testing.T) {
	assert.Panics(t, func() { NewEngine().Run() })
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-5))
	assert.Equal(t, 16666666*time.Nanosecond, frameDuration(60))
}
