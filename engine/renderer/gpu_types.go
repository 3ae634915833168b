package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUMeshUniformSource is the WGSL definition of the MeshUniform struct.
// Matches GPUMeshUniform layout exactly (144 bytes).
const GPUMeshUniformSource = `
struct MeshUniform {
    model: mat4x4<f32>,
    normal: mat4x4<f32>,
    color: vec3<f32>,
    receive_shadow: u32,
};
`

// GPUMeshUniform is the per-mesh uniform block.
//
// Layout:
//
//	mat4x4<f32> model          (64 bytes, offset 0)
//	mat4x4<f32> normal         (64 bytes, offset 64)
//	vec3<f32>   color          (12 bytes, offset 128)
//	u32         receive_shadow ( 4 bytes, offset 140)
type GPUMeshUniform struct {
	Model         mgl32.Mat4
	Normal        mgl32.Mat4
	Color         common.Color
	ReceiveShadow uint32
}

// NewGPUMeshUniform snapshots a mesh's transform and material.
//
// Parameters:
//   - m: the source mesh
//
// Returns:
//   - GPUMeshUniform: the marshal-ready struct
func NewGPUMeshUniform(m mesh.Mesh) GPUMeshUniform {
	model := m.ModelMatrix()
	u := GPUMeshUniform{
		Model:  model,
		Normal: common.NormalMatrix(model),
		Color:  m.Color(),
	}
	if m.ReceiveShadow() {
		u.ReceiveShadow = 1
	}
	return u
}

// Size returns the size of the GPUMeshUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (u *GPUMeshUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUMeshUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (u *GPUMeshUniform) Marshal() []byte {
	buf := make([]byte, 144)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(u.Normal[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(u.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], u.ReceiveShadow)
	return buf
}
