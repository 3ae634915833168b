package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPULightSource is the WGSL definition of the Light struct.
// Matches GPULight layout exactly (32 bytes).
const GPULightSource = `
struct Light {
    direction: vec3<f32>,
    intensity: f32,
    color: vec3<f32>,
    ambient: f32,
};
`

// GPULight is the GPU-aligned representation of the directional light.
type GPULight struct {
	Direction mgl32.Vec3 // offset  0: normalized direction from light toward scene
	Intensity float32    // offset 12: scalar multiplier
	Color     [3]float32 // offset 16: RGB color
	Ambient   float32    // offset 28: constant fill added to every fragment
}

// ToGPULight converts a light into its GPU representation.
//
// Parameters:
//   - l: the source light
//   - ambient: constant fill term for unlit faces
//
// Returns:
//   - GPULight: the marshal-ready struct
func ToGPULight(l DirectionalLight, ambient float32) GPULight {
	return GPULight{
		Direction: l.Direction(),
		Intensity: l.Intensity(),
		Color:     l.Color(),
		Ambient:   ambient,
	}
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 32)
	putVec3(buf[0:], g.Direction)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Ambient))
	return buf
}

// GPUShadowDataSource is the WGSL definition of the ShadowData struct.
// Matches GPUShadowData layout exactly (80 bytes).
const GPUShadowDataSource = `
struct ShadowData {
    light_vp: mat4x4<f32>,
    texel_size: vec2<f32>,
    bias: f32,
    enabled: u32,
};
`

// GPUShadowData is the GPU-aligned representation of directional shadow data.
//
// Layout:
//
//	mat4x4<f32> light_vp       (64 bytes, offset 0)
//	vec2<f32>   texel_size     ( 8 bytes, offset 64)
//	f32         bias           ( 4 bytes, offset 72)
//	u32         enabled        ( 4 bytes, offset 76)
type GPUShadowData struct {
	LightVP   mgl32.Mat4
	TexelSize [2]float32
	Bias      float32
	Enabled   uint32
}

// ToGPUShadowData snapshots the light's shadow camera.
// Enabled is 0 when the light does not cast shadows, so receivers sample full light.
//
// Parameters:
//   - l: the source light
//
// Returns:
//   - GPUShadowData: the marshal-ready struct
func ToGPUShadowData(l DirectionalLight) GPUShadowData {
	s := l.Shadow()
	d := GPUShadowData{
		LightVP:   l.ViewProjection(),
		TexelSize: s.TexelSize(),
		Bias:      s.Bias,
	}
	if l.CastShadow() {
		d.Enabled = 1
	}
	return d
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 80)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s.LightVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[76:80], s.Enabled)
	return buf
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
