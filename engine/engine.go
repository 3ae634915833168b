package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/profiler"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer"
	"github.com/Carmen-Shannon/oxy-physics/engine/scene"
	"github.com/Carmen-Shannon/oxy-physics/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the window's message loop goroutine: each loop iteration
// is one frame.
type engine struct {
	mu *sync.Mutex

	window   window.Window
	renderer renderer.Renderer

	timer frameTimer
	now   func() time.Time

	quitOnce sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop: time the frame, tick, render the active scene, present.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil if none was set
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil if none was set
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of each frame.
	// Use this for physics stepping and other per-frame state updates.
	//
	// Parameters:
	//   - callback: function receiving the seconds elapsed since the previous frame (0 on the first)
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each frame is rendered.
	//
	// Parameters:
	//   - callback: function receiving the same delta time as the tick callback
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// The active scene with the lowest key is the one rendered.
	//
	// Parameters:
	//   - key: the z-index determining priority (lower wins)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the frame loop. Blocks until the window closes.
	// Panics if no window was set.
	Run()

	// Quit closes the window, which ends Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied its resize, drag and scroll events are routed to
// the renderer and to the cameras of registered scenes.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		now:      time.Now,
		scenes:   make(map[int]scene.Scene),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handleResize)
		e.window.SetDragCallback(e.handleDrag)
		e.window.SetScrollCallback(e.handleScroll)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run called without a window")
	}
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window == nil {
			return
		}
		if err := e.window.Close(); err != nil {
			common.Logger().Warn("close window", "error", err)
		}
	})
}

// frame runs one iteration of the loop: tick, render, then optional profiling
// and frame limiting.
func (e *engine) frame() {
	start := e.now()
	dt := e.timer.elapsed(start)

	e.mu.Lock()
	tick, after := e.tickCallback, e.renderCallback
	e.mu.Unlock()

	if tick != nil {
		tick(dt)
	}
	if e.window != nil && !e.window.IsRunning() {
		// quit during tick; the surface is gone
		return
	}

	if s := e.activeScene(); s != nil {
		s.Camera().Update()
		if e.renderer != nil {
			if err := e.renderer.Render(s); err != nil {
				common.Logger().Warn("frame skipped", "scene", s.Name(), "error", err)
			}
		}
	}

	if after != nil {
		after(dt)
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// activeScene returns the active scene with the lowest key, or nil.
func (e *engine) activeScene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			return s
		}
	}
	return nil
}

// handleResize keeps every scene camera's aspect ratio in step with the framebuffer.
func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			common.Logger().Error("resize surface", "width", width, "height", height, "error", err)
		}
	}
	for _, s := range e.Scenes() {
		s.Camera().SetAspect(float32(width) / float32(height))
	}
}

// handleDrag orbits with the left button and pans with the right or middle button.
func (e *engine) handleDrag(button window.MouseButton, dx, dy float32) {
	s := e.activeScene()
	if s == nil {
		return
	}
	ctrl := s.Camera().Controller()
	if ctrl == nil {
		return
	}
	switch button {
	case window.MouseButtonLeft:
		ctrl.Rotate(dx, dy)
	default:
		ctrl.Pan(dx, dy)
	}
}

func (e *engine) handleScroll(delta float32) {
	s := e.activeScene()
	if s == nil {
		return
	}
	if ctrl := s.Camera().Controller(); ctrl != nil {
		ctrl.Zoom(delta)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		panic("engine: nil scene")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
