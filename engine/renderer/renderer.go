package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-physics/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything a render surface can be created from.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend rendererBackend

	// frame holds the camera, light and shadow uniforms plus the shadow map
	// bindings; shadowPass holds the copy of the shadow uniform the depth pass reads.
	frame         bind_group_provider.BindGroupProvider
	shadowPass    bind_group_provider.BindGroupProvider
	shadowMapSize uint32

	geometries map[uint64]bind_group_provider.BindGroupProvider
	meshes     map[uint64]bind_group_provider.BindGroupProvider

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws a scene to a window surface.
//
// GPU resources are created lazily the first time a geometry or mesh is seen and
// released once it is no longer part of the rendered scene.
type Renderer interface {
	// Render draws one frame of the scene: a shadow depth pass from the scene's light
	// followed by the lit main pass, then presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: an error if GPU resources could not be created or the frame could not be acquired
	Render(s scene.Scene) error

	// Resize reconfigures the surface for a new framebuffer size.
	// Non-positive sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// SetPresentMode changes how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees every GPU resource, including the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer drawing into the given surface source.
//
// Parameters:
//   - surface: the window (or other source) providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if no adapter or device is available or the surface cannot be configured
func NewRenderer(surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	if err != nil {
		return nil, fmt.Errorf("create wgpu backend: %w", err)
	}
	if err := r.attach(backend, surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		geometries: make(map[uint64]bind_group_provider.BindGroupProvider),
		meshes:     make(map[uint64]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach binds a backend to the renderer and configures the initial surface.
func (r *renderer) attach(backend rendererBackend, width, height int) error {
	r.backend = backend
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Render(s scene.Scene) error {
	if s == nil {
		return errors.New("render: nil scene")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l := s.Light()
	if err := r.ensureFrame(shadowMapSize(l)); err != nil {
		return err
	}

	writes := r.frameWrites(s.Camera(), l, s.Ambient())

	seenGeometry := make(map[uint64]bool)
	seenMesh := make(map[uint64]bool)
	items := make([]drawItem, 0, s.Count())
	for _, m := range s.Meshes() {
		g := m.Geometry()
		seenGeometry[g.ID()] = true
		seenMesh[m.ID()] = true
		if !m.Visible() {
			continue
		}

		gp, err := r.geometryProvider(g)
		if err != nil {
			return err
		}
		mp, err := r.meshProvider(m)
		if err != nil {
			return err
		}

		u := NewGPUMeshUniform(m)
		writes = append(writes, mp.Write(0, u.Marshal()))
		items = append(items, drawItem{geometry: gp, mesh: mp, castShadow: m.CastShadow()})
	}
	sweep(r.geometries, seenGeometry)
	sweep(r.meshes, seenMesh)

	r.backend.WriteBuffers(writes)
	return r.backend.DrawFrame(frameDraw{
		background: s.Background(),
		shadows:    l != nil && l.CastShadow(),
		items:      items,
	})
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.meshes {
		p.Release()
		delete(r.meshes, id)
	}
	for id, p := range r.geometries {
		p.Release()
		delete(r.geometries, id)
	}
	if r.frame != nil {
		r.frame.Release()
		r.shadowPass.Release()
		r.frame, r.shadowPass = nil, nil
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

// ensureFrame creates the frame bindings, recreating them when the shadow map size changes.
func (r *renderer) ensureFrame(size uint32) error {
	if r.frame != nil && r.shadowMapSize == size {
		return nil
	}
	if r.frame == nil {
		r.frame = bind_group_provider.NewBindGroupProvider("Frame", 0)
		r.shadowPass = bind_group_provider.NewBindGroupProvider("Shadow Pass", 0)
	}
	if err := r.backend.InitFrame(r.frame, r.shadowPass, size); err != nil {
		return fmt.Errorf("init frame resources: %w", err)
	}
	r.shadowMapSize = size
	return nil
}

// frameWrites stages the per-frame uniforms. Without a light nothing is lit
// apart from the ambient term.
func (r *renderer) frameWrites(cam camera.Camera, l light.DirectionalLight, ambient float32) []bind_group_provider.BufferWrite {
	cu := camera.NewGPUCameraUniform(cam)

	lu := light.GPULight{Ambient: ambient}
	var su light.GPUShadowData
	if l != nil {
		lu = light.ToGPULight(l, ambient)
		su = light.ToGPUShadowData(l)
	}
	shadowBytes := su.Marshal()

	return []bind_group_provider.BufferWrite{
		r.frame.Write(bindingCamera, cu.Marshal()),
		r.frame.Write(bindingLight, lu.Marshal()),
		r.frame.Write(bindingShadow, shadowBytes),
		r.shadowPass.Write(0, shadowBytes),
	}
}

func (r *renderer) geometryProvider(g *mesh.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.geometries[g.ID()]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Geometry %s#%d", g.Kind(), g.ID()), g.ID())
	vertexData := common.SliceToBytes(g.Vertices())
	indexData := common.SliceToBytes(g.Indices())
	if err := r.backend.InitGeometry(p, vertexData, indexData, len(g.Indices())); err != nil {
		p.Release()
		return nil, fmt.Errorf("upload geometry %d: %w", g.ID(), err)
	}
	r.geometries[g.ID()] = p
	return p, nil
}

func (r *renderer) meshProvider(m mesh.Mesh) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.meshes[m.ID()]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Mesh %s#%d", m.Name(), m.ID()), m.ID())
	if err := r.backend.InitMesh(p); err != nil {
		p.Release()
		return nil, fmt.Errorf("init mesh %d: %w", m.ID(), err)
	}
	r.meshes[m.ID()] = p
	return p, nil
}

// sweep releases providers whose source is no longer in the scene.
func sweep(providers map[uint64]bind_group_provider.BindGroupProvider, seen map[uint64]bool) {
	for id, p := range providers {
		if !seen[id] {
			p.Release()
			delete(providers, id)
		}
	}
}

func shadowMapSize(l light.DirectionalLight) uint32 {
	if l == nil || l.Shadow().MapSize == 0 {
		return light.DefaultShadowMapSize
	}
	return l.Shadow().MapSize
}
