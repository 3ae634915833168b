package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	alphaMode        wgpu.CompositeAlphaMode
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	frameLayout      *wgpu.BindGroupLayout
	shadowPassLayout *wgpu.BindGroupLayout
	meshLayout       *wgpu.BindGroupLayout
	litPipeline      *wgpu.RenderPipeline
	shadowPipeline   *wgpu.RenderPipeline

	// Shadow map state. The depth texture is Depth32Float, single-sampled and
	// sized from the light's shadow config.
	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView
	shadowSampler *wgpu.Sampler

	frame      bind_group_provider.BindGroupProvider
	shadowPass bind_group_provider.BindGroupProvider
}

var _ rendererBackend = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("nil surface descriptor")
	}

	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, fmt.Errorf("surface reports no supported formats")
	}
	b.surfaceFormat = pickSurfaceFormat(capabilities.Formats)
	b.alphaMode = capabilities.AlphaModes[0]

	if err := b.createLayouts(); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.createPipelines(); err != nil {
		b.Release()
		return nil, err
	}

	sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("create comparison sampler: %w", err)
	}
	b.shadowSampler = sampler

	return b, nil
}

// pickSurfaceFormat prefers a non-sRGB format so shaded colors reach the screen
// without an extra encode step.
func pickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		switch f {
		case wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm:
			return f
		}
	}
	return formats[0]
}

func (b *wgpuRendererBackend) createLayouts() error {
	uniform := func(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
		e.Buffer.Type = wgpu.BufferBindingTypeUniform
		e.Buffer.MinBindingSize = size
		return e
	}
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	var cu camera.GPUCameraUniform
	var lu light.GPULight
	var su light.GPUShadowData
	var mu GPUMeshUniform

	shadowMap := wgpu.BindGroupLayoutEntry{Binding: bindingShadowMap, Visibility: wgpu.ShaderStageFragment}
	shadowMap.Texture.SampleType = wgpu.TextureSampleTypeDepth
	shadowMap.Texture.ViewDimension = wgpu.TextureViewDimension2D
	shadowSampler := wgpu.BindGroupLayoutEntry{Binding: bindingShadowSampler, Visibility: wgpu.ShaderStageFragment}
	shadowSampler.Sampler.Type = wgpu.SamplerBindingTypeComparison

	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniform(bindingCamera, both, uint64(cu.Size())),
			uniform(bindingLight, wgpu.ShaderStageFragment, uint64(lu.Size())),
			uniform(bindingShadow, wgpu.ShaderStageFragment, uint64(su.Size())),
			shadowMap,
			shadowSampler,
		},
	})
	if err != nil {
		return fmt.Errorf("create frame layout: %w", err)
	}

	b.shadowPassLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Shadow Pass Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageVertex, uint64(su.Size()))},
	})
	if err != nil {
		return fmt.Errorf("create shadow pass layout: %w", err)
	}

	b.meshLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Mesh Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniform(0, both, uint64(mu.Size()))},
	})
	if err != nil {
		return fmt.Errorf("create mesh layout: %w", err)
	}
	return nil
}

func vertexLayout(withNormal bool) []wgpu.VertexBufferLayout {
	attributes := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	}
	if withNormal {
		attributes = append(attributes, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1})
	}
	return []wgpu.VertexBufferLayout{{
		ArrayStride: mesh.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}}
}

func (b *wgpuRendererBackend) createPipelines() error {
	lit, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Lit Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: litShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile lit shader: %w", err)
	}
	defer lit.Release()

	shadow, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Shadow Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shadowShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile shadow shader: %w", err)
	}
	defer shadow.Release()

	litLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Lit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.meshLayout},
	})
	if err != nil {
		return err
	}
	defer litLayout.Release()

	stencil := wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways}

	b.litPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Lit Render Pipeline",
		Layout: litLayout,
		Vertex: wgpu.VertexState{
			Module:     lit,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(true),
		},
		Fragment: &wgpu.FragmentState{
			Module:     lit,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
	})
	if err != nil {
		return fmt.Errorf("create lit pipeline: %w", err)
	}

	shadowLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shadow Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.shadowPassLayout, b.meshLayout},
	})
	if err != nil {
		return err
	}
	defer shadowLayout.Release()

	// Depth-only. The light's mirrored ortho flips winding, so nothing is culled.
	b.shadowPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Shadow Render Pipeline",
		Layout: shadowLayout,
		Vertex: wgpu.VertexState{
			Module:     shadow,
			EntryPoint: "vs_shadow",
			Buffers:    vertexLayout(false),
		},
		Fragment: nil,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
	})
	if err != nil {
		return fmt.Errorf("create shadow pipeline: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseAttachments()
	count := uint32(b.sampleCount)

	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createAttachment("MSAA Texture", width, height, count, b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createAttachment("Depth Texture", width, height, count, wgpu.TextureFormatDepth24Plus)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view
	return nil
}

func (b *wgpuRendererBackend) createAttachment(label string, width, height int, samples uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

func (b *wgpuRendererBackend) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) InitFrame(frame, shadowPass bind_group_provider.BindGroupProvider, shadowMapSize uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame.Release()
	shadowPass.Release()
	if b.shadowView != nil {
		b.shadowView.Release()
		b.shadowTexture.Release()
		b.shadowView, b.shadowTexture = nil, nil
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              shadowMapSize,
			Height:             shadowMapSize,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create shadow depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("create shadow depth texture view: %w", err)
	}
	b.shadowTexture, b.shadowView = tex, view

	var cu camera.GPUCameraUniform
	var lu light.GPULight
	var su light.GPUShadowData
	sizes := map[int]int{bindingCamera: cu.Size(), bindingLight: lu.Size(), bindingShadow: su.Size()}
	for binding := bindingCamera; binding <= bindingShadow; binding++ {
		if err := b.createUniform(frame, binding, sizes[binding]); err != nil {
			return err
		}
	}
	if err := b.createUniform(shadowPass, 0, su.Size()); err != nil {
		return err
	}

	entries := []wgpu.BindGroupEntry{
		{Binding: bindingCamera, Buffer: frame.Buffer(bindingCamera), Size: wgpu.WholeSize},
		{Binding: bindingLight, Buffer: frame.Buffer(bindingLight), Size: wgpu.WholeSize},
		{Binding: bindingShadow, Buffer: frame.Buffer(bindingShadow), Size: wgpu.WholeSize},
		{Binding: bindingShadowMap, TextureView: b.shadowView},
		{Binding: bindingShadowSampler, Sampler: b.shadowSampler},
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   frame.Label() + " Bind Group",
		Layout:  b.frameLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}
	frame.SetBindGroup(bg)

	bg, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   shadowPass.Label() + " Bind Group",
		Layout:  b.shadowPassLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: shadowPass.Buffer(0), Size: wgpu.WholeSize}},
	})
	if err != nil {
		return fmt.Errorf("create shadow pass bind group: %w", err)
	}
	shadowPass.SetBindGroup(bg)

	b.frame, b.shadowPass = frame, shadowPass
	return nil
}

func (b *wgpuRendererBackend) createUniform(provider bind_group_provider.BindGroupProvider, binding, size int) error {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s uniform buffer: %w", provider.Label(), err)
	}
	provider.SetBuffer(binding, buf)
	return nil
}

func (b *wgpuRendererBackend) InitGeometry(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuRendererBackend) InitMesh(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var u GPUMeshUniform
	if err := b.createUniform(provider, 0, u.Size()); err != nil {
		return err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  b.meshLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: provider.Buffer(0), Size: wgpu.WholeSize}},
	})
	if err != nil {
		return fmt.Errorf("create mesh bind group: %w", err)
	}
	provider.SetBindGroup(bg)
	return nil
}

func (b *wgpuRendererBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if w.Empty() {
			continue
		}
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackend) DrawFrame(f frameDraw) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil || b.depthTextureView == nil {
		return fmt.Errorf("draw frame: backend not initialized")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// The shadow map is always cleared so receivers stay lit when shadows are off.
	shadowPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	if f.shadows {
		shadowPass.SetPipeline(b.shadowPipeline)
		shadowPass.SetBindGroup(frameGroup, b.shadowPass.BindGroup(), nil)
		for _, item := range f.items {
			if item.castShadow {
				drawIndexed(shadowPass, item)
			}
		}
	}
	shadowPass.End()

	// When MSAA is enabled, the MSAA texture is the color attachment View and
	// the swapchain view is the ResolveTarget.
	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(f.background[0]),
			G: float64(f.background[1]),
			B: float64(f.background[2]),
			A: 1.0,
		},
	}
	if b.sampleCount > 1 {
		color.View = b.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(b.litPipeline)
	pass.SetBindGroup(frameGroup, b.frame.BindGroup(), nil)
	for _, item := range f.items {
		drawIndexed(pass, item)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

func drawIndexed(pass *wgpu.RenderPassEncoder, item drawItem) {
	pass.SetBindGroup(meshGroup, item.mesh.BindGroup(), nil)
	pass.SetVertexBuffer(0, item.geometry.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(item.geometry.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(item.geometry.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseAttachments()
	if b.shadowView != nil {
		b.shadowView.Release()
		b.shadowTexture.Release()
		b.shadowView, b.shadowTexture = nil, nil
	}
	if b.shadowSampler != nil {
		b.shadowSampler.Release()
		b.shadowSampler = nil
	}
	for _, p := range []*wgpu.RenderPipeline{b.litPipeline, b.shadowPipeline} {
		if p != nil {
			p.Release()
		}
	}
	b.litPipeline, b.shadowPipeline = nil, nil
	for _, l := range []*wgpu.BindGroupLayout{b.frameLayout, b.shadowPassLayout, b.meshLayout} {
		if l != nil {
			l.Release()
		}
	}
	b.frameLayout, b.shadowPassLayout, b.meshLayout = nil, nil, nil
	b.frame, b.shadowPass = nil, nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
