package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
)

// Scene is a container of meshes rendered from one camera under one directional light.
// Meshes keep their insertion order, which is also the draw order.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera. Panics on nil.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Light returns the scene's directional light, or nil when the scene is unlit.
	Light() light.DirectionalLight

	// SetLight replaces the scene's directional light. Nil removes it.
	//
	// Parameters:
	//   - l: the new light
	SetLight(l light.DirectionalLight)

	// Background returns the clear color.
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the new clear color
	SetBackground(c common.Color)

	// Ambient returns the constant fill light applied to every surface.
	Ambient() float32

	// SetAmbient sets the constant fill light, clamped to [0, 1].
	//
	// Parameters:
	//   - a: the fill amount
	SetAmbient(a float32)

	// Add inserts a mesh. Adding a mesh that is already present is a no-op.
	//
	// Parameters:
	//   - m: the mesh to add (must not be nil)
	//
	// Returns:
	//   - uint64: the mesh ID
	Add(m mesh.Mesh) uint64

	// Get returns the mesh with the given ID, or nil.
	//
	// Parameters:
	//   - id: the mesh ID
	//
	// Returns:
	//   - mesh.Mesh: the mesh or nil
	Get(id uint64) mesh.Mesh

	// Remove deletes the mesh with the given ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the mesh ID
	Remove(id uint64)

	// Meshes returns a snapshot of the meshes in insertion order.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// Count returns the number of meshes.
	Count() int

	// Clear removes every mesh. Camera, light and background are kept.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam        camera.Camera
	light      light.DirectionalLight
	background common.Color
	ambient    float32

	order    []mesh.Mesh
	registry map[uint64]mesh.Mesh
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene rendered from the given camera. The scene starts
// inactive with a black background, no light and no meshes. Panics if cam is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		cam:      cam,
		registry: make(map[uint64]mesh.Mesh),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		panic("scene: SetCamera requires a non-nil Camera")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Light() light.DirectionalLight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.light
}

func (s *scene) SetLight(l light.DirectionalLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light = l
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Ambient() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambient
}

func (s *scene) SetAmbient(a float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = clamp01(a)
}

func (s *scene) Add(m mesh.Mesh) uint64 {
	if m == nil {
		panic("scene: cannot Add a nil Mesh")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(m)
	return m.ID()
}

// add inserts a mesh. Caller must hold the write lock.
func (s *scene) add(m mesh.Mesh) {
	if _, exists := s.registry[m.ID()]; exists {
		return
	}
	s.registry[m.ID()] = m
	s.order = append(s.order, m)
}

func (s *scene) Get(id uint64) mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	for i, m := range s.order {
		if m.ID() == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) Meshes() []mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mesh.Mesh, len(s.order))
	copy(out, s.order)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.registry = make(map[uint64]mesh.Mesh)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
