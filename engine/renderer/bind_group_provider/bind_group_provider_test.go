package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("mesh 7", 7)
	assert.Equal(t, "mesh 7", p.Label())
	assert.Equal(t, uint64(7), p.SourceID())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestWrite(t *testing.T) {
	p := NewBindGroupProvider("frame", 0)
	w := p.Write(2, []byte{1, 2, 3})

	assert.Same(t, p, w.Provider)
	assert.Equal(t, 2, w.Binding)
	assert.Zero(t, w.Offset)
	assert.Equal(t, []byte{1, 2, 3}, w.Data)
	assert.False(t, w.Empty())

	assert.True(t, p.Write(0, nil).Empty())
	assert.True(t, BufferWrite{Data: []byte{1}}.Empty())
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("geometry", 1)
	p.SetIndexCount(36)

	assert.NotPanics(t, func() {
		p.Release()
		p.Release()
	})
	assert.Zero(t, p.IndexCount())
}
