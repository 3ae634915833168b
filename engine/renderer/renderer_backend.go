package renderer

import (
	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer/bind_group_provider"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// drawItem is one mesh draw: its geometry buffers and its per-mesh bind group.
type drawItem struct {
	geometry   bind_group_provider.BindGroupProvider
	mesh       bind_group_provider.BindGroupProvider
	castShadow bool
}

// frameDraw is everything the backend needs to encode one frame.
type frameDraw struct {
	background common.Color
	shadows    bool
	items      []drawItem
}

// rendererBackend is the GPU-facing half of the renderer. The frontend decides
// what to draw and which resources must exist; the backend owns the device and
// turns those decisions into GPU objects and command buffers.
type rendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the size-dependent attachments.
	ConfigureSurface(width, height int) error

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// InitFrame creates the frame uniforms, the shadow map of the given size and
	// both frame bind groups. Calling it again releases the previous shadow map.
	InitFrame(frame, shadowPass bind_group_provider.BindGroupProvider, shadowMapSize uint32) error

	// InitGeometry uploads vertex and index data onto the provider.
	InitGeometry(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitMesh creates the per-mesh uniform buffer and bind group on the provider.
	InitMesh(provider bind_group_provider.BindGroupProvider) error

	// WriteBuffers uploads staged uniform data.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// DrawFrame encodes the shadow pass and the main pass, submits and presents.
	DrawFrame(frame frameDraw) error

	// Release frees the device and everything created from it.
	Release()
}
