package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSceneLight() DirectionalLight {
	return NewDirectionalLight(
		WithPosition(mgl32.Vec3{20, 100, 10}),
		WithTarget(mgl32.Vec3{0, 0, 0}),
		WithColor(common.ColorFromHex(0xFFFFFF)),
		WithIntensity(1),
		WithCastShadow(true),
	)
}

func TestNewDirectionalLightDefaults(t *testing.T) {
	l := NewDirectionalLight()
	assert.Equal(t, common.Color{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.False(t, l.CastShadow())
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.Equal(t, DefaultShadowConfig(), l.Shadow())
}

func TestDefaultShadowConfig(t *testing.T) {
	s := DefaultShadowConfig()
	assert.Equal(t, float32(-0.001), s.Bias)
	assert.Equal(t, uint32(2048), s.MapSize)
	assert.Equal(t, float32(0.5), s.Near)
	assert.Equal(t, float32(500), s.Far)
	assert.Equal(t, float32(100), s.Left)
	assert.Equal(t, float32(-100), s.Right)
	assert.Equal(t, float32(100), s.Top)
	assert.Equal(t, float32(-100), s.Bottom)
	assert.Equal(t, [2]float32{1.0 / 2048, 1.0 / 2048}, s.TexelSize())
}

func TestDirectionPointsAtTarget(t *testing.T) {
	l := newSceneLight()
	want := mgl32.Vec3{-20, -100, -10}.Normalize()
	assert.True(t, want.ApproxEqualThreshold(l.Direction(), 1e-6))
}

func TestDirectionWhenPositionIsTarget(t *testing.T) {
	l := NewDirectionalLight(WithPosition(mgl32.Vec3{1, 2, 3}), WithTarget(mgl32.Vec3{1, 2, 3}))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.NotPanics(t, func() { l.ViewProjection() })
}

func TestViewProjectionCoversGround(t *testing.T) {
	l := newSceneLight()
	vp := l.ViewProjection()

	// Every corner of the 100x1x100 ground lands inside the shadow frustum.
	for _, x := range []float32{-50, 50} {
		for _, y := range []float32{-0.5, 0.5} {
			for _, z := range []float32{-50, 50} {
				c := vp.Mul4x1(mgl32.Vec4{x, y, z, 1})
				assert.InDelta(t, 1, c[3], 1e-6, "orthographic w")
				assert.LessOrEqual(t, abs(c[0]), float32(1))
				assert.LessOrEqual(t, abs(c[1]), float32(1))
				assert.GreaterOrEqual(t, c[2], float32(0))
				assert.LessOrEqual(t, c[2], float32(1))
			}
		}
	}

	// The target sits on the light axis.
	o := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, o[0], 1e-5)
	assert.InDelta(t, 0, o[1], 1e-5)
}

func TestViewProjectionMirrorsX(t *testing.T) {
	l := newSceneLight()
	mirrored := l.ViewProjection()

	s := l.Shadow()
	s.Left, s.Right = s.Right, s.Left
	l.SetShadow(s)
	plain := l.ViewProjection()

	p := mgl32.Vec4{10, 0, -5, 1}
	a, b := mirrored.Mul4x1(p), plain.Mul4x1(p)
	assert.InDelta(t, -a[0], b[0], 1e-5)
	assert.InDelta(t, a[1], b[1], 1e-5)
	assert.InDelta(t, a[2], b[2], 1e-5)
}

func TestSetters(t *testing.T) {
	l := NewDirectionalLight()
	l.SetPosition(mgl32.Vec3{0, 10, 0})
	l.SetTarget(mgl32.Vec3{10, 0, 0})
	l.SetColor(common.SkyBlue)
	l.SetIntensity(2)
	l.SetCastShadow(true)

	assert.Equal(t, mgl32.Vec3{0, 10, 0}, l.Position())
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, l.Target())
	assert.Equal(t, common.SkyBlue, l.Color())
	assert.Equal(t, float32(2), l.Intensity())
	assert.True(t, l.CastShadow())
}

func TestGPULightMarshal(t *testing.T) {
	g := ToGPULight(newSceneLight(), 0.25)
	buf := g.Marshal()

	require.Len(t, buf, 32)
	assert.Equal(t, 32, g.Size())
	assert.Equal(t, float32(1), readF32(buf, 12))
	assert.Equal(t, float32(1), readF32(buf, 16))
	assert.Equal(t, float32(0.25), readF32(buf, 28))
	assert.Equal(t, g.Direction[1], readF32(buf, 4))
}

func TestGPUShadowData(t *testing.T) {
	l := newSceneLight()
	d := ToGPUShadowData(l)
	buf := d.Marshal()

	require.Len(t, buf, 80)
	assert.Equal(t, 80, d.Size())
	assert.Equal(t, l.ViewProjection()[0], readF32(buf, 0))
	assert.Equal(t, float32(1.0/2048), readF32(buf, 64))
	assert.Equal(t, float32(-0.001), readF32(buf, 72))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[76:]))

	l.SetCastShadow(false)
	assert.Equal(t, uint32(0), ToGPUShadowData(l).Enabled)
}

func readF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
