package light

import (
	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowMapSize is the default width and height in texels of the shadow depth texture.
const DefaultShadowMapSize = 2048

// DefaultShadowBias is the depth offset added to a fragment's light-space depth
// before the shadow comparison. Negative values pull the fragment toward the
// light, which suppresses shadow acne on lit faces.
const DefaultShadowBias float32 = -0.001

// ShadowConfig describes the orthographic shadow camera of a directional light.
// Bounds are used verbatim: a left bound greater than the right one mirrors the
// shadow map horizontally, which does not change which fragments are shadowed.
type ShadowConfig struct {
	Bias    float32
	MapSize uint32

	Near   float32
	Far    float32
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}

// DefaultShadowConfig returns the shadow camera used by the demo scene:
// bias -0.001, a 2048 map and a 200x200 frustum reaching 500 units from the light.
//
// Returns:
//   - ShadowConfig: the default configuration
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		Bias:    DefaultShadowBias,
		MapSize: DefaultShadowMapSize,
		Near:    0.5,
		Far:     500,
		Left:    100,
		Right:   -100,
		Top:     100,
		Bottom:  -100,
	}
}

// Projection returns the orthographic projection of the shadow camera in WebGPU clip space.
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func (s ShadowConfig) Projection() mgl32.Mat4 {
	return common.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
}

// TexelSize returns the size of one shadow map texel in UV space.
func (s ShadowConfig) TexelSize() [2]float32 {
	if s.MapSize == 0 {
		return [2]float32{}
	}
	t := 1 / float32(s.MapSize)
	return [2]float32{t, t}
}
