package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// GPU resources below are owned by the provider and released by Release.

	bindGroup    *wgpu.BindGroup
	buffers      map[int]*wgpu.Buffer
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int

	// sourceID identifies the CPU-side object the resources were built from
	// (a geometry or a mesh), so stale providers can be found and released.
	sourceID uint64
}

// BindGroupProvider holds the GPU resources the renderer builds for one CPU-side
// object: a bind group with its uniform buffers for per-frame or per-mesh data, or
// the vertex and index buffers of a geometry.
//
// Usage pattern:
//  1. Renderer creates a provider for a frame, mesh or geometry
//  2. Renderer allocates buffers and bind groups and stores them on the provider
//  3. Each frame, uniform data is uploaded through BufferWrite values
//  4. Draw calls read BindGroup() or the vertex/index buffers
//  5. Release frees everything once the source object is gone
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. Safe to call twice.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// SourceID returns the ID of the CPU-side object the provider was built from.
	//
	// Returns:
	//   - uint64: the source ID
	SourceID() uint64

	// BindGroup returns the bind group, or nil if not created yet.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the buffer bound at the given binding index, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices to draw.
	IndexCount() int

	// Write builds a BufferWrite of data into the buffer at binding, offset 0.
	//
	// Parameters:
	//   - binding: the target binding index
	//   - data: bytes to upload
	//
	// Returns:
	//   - BufferWrite: the staged write
	Write(binding int, data []byte) BufferWrite

	SetBindGroup(bg *wgpu.BindGroup)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: debug label used for the GPU objects created for this provider
//   - sourceID: ID of the CPU-side object the resources mirror
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, sourceID uint64) BindGroupProvider {
	return &bindGroupProvider{
		label:    label,
		sourceID: sourceID,
		buffers:  make(map[int]*wgpu.Buffer),
	}
}

func (p *bindGroupProvider) Label() string                   { return p.label }
func (p *bindGroupProvider) SourceID() uint64                { return p.sourceID }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup      { return p.bindGroup }
func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer { return p.buffers[binding] }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer      { return p.vertexBuffer }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer       { return p.indexBuffer }
func (p *bindGroupProvider) IndexCount() int                 { return p.indexCount }

func (p *bindGroupProvider) Write(binding int, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: binding, Data: data}
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) { p.bindGroup = bg }

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) { p.vertexBuffer = buf }
func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer)  { p.indexBuffer = buf }
func (p *bindGroupProvider) SetIndexCount(count int)          { p.indexCount = count }

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
