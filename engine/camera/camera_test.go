package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSceneCamera() Camera {
	ctrl := NewOrbitController(
		WithPosition(mgl32.Vec3{75, 20, 0}),
		WithTarget(mgl32.Vec3{0, 20, 0}),
	)
	return NewCamera(
		WithFov(mgl32.DegToRad(60)),
		WithAspect(1920.0/1080.0),
		WithNear(1),
		WithFar(1000),
		WithController(ctrl),
	)
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, mgl32.Vec3{}, c.Position())
	assert.Nil(t, c.Controller())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestSceneCameraInitialPose(t *testing.T) {
	c := newSceneCamera()

	p := c.Position()
	assert.InDelta(t, 75, p[0], 1e-4)
	assert.InDelta(t, 20, p[1], 1e-4)
	assert.InDelta(t, 0, p[2], 1e-4)

	// The target lands at the center of the view.
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 20, 0, 1})
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-5)
	depth := clip[2] / clip[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestSetAspectOnlyTouchesProjection(t *testing.T) {
	c := newSceneCamera()
	fov, near, far, pos := c.Fov(), c.Near(), c.Far(), c.Position()
	view := c.ViewMatrix()

	c.SetAspect(800.0 / 600.0)

	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
	assert.Equal(t, fov, c.Fov())
	assert.Equal(t, near, c.Near())
	assert.Equal(t, far, c.Far())
	assert.Equal(t, pos, c.Position())
	assert.Equal(t, view, c.ViewMatrix())

	proj := c.ProjectionMatrix()
	// x scale = y scale / aspect
	assert.InDelta(t, proj[5]/(800.0/600.0), proj[0], 1e-5)
}

func TestProjectionMapsClipPlanesToWebGPUDepth(t *testing.T) {
	c := NewCamera(WithNear(1), WithFar(1000))
	proj := c.ProjectionMatrix()

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestUpdateFollowsController(t *testing.T) {
	c := newSceneCamera()
	before := c.ViewMatrix()

	c.Controller().Rotate(100, 0)
	assert.Equal(t, before, c.ViewMatrix(), "view is recomputed on Update only")

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())
}

func TestOrbitControllerDerivesSphericalCoordinates(t *testing.T) {
	oc := NewOrbitController(
		WithPosition(mgl32.Vec3{75, 20, 0}),
		WithTarget(mgl32.Vec3{0, 20, 0}),
	)
	assert.InDelta(t, 75, oc.Radius(), 1e-4)
	assert.InDelta(t, math32.Pi/2, oc.Azimuth(), 1e-5)
	assert.InDelta(t, 0, oc.Elevation(), 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 20, 0}, oc.Target())
}

func TestOrbitControllerRotateKeepsRadius(t *testing.T) {
	oc := NewOrbitController(WithPosition(mgl32.Vec3{10, 0, 0}))

	oc.Rotate(50, -30)
	assert.InDelta(t, 10, oc.Position().Sub(oc.Target()).Len(), 1e-4)
	assert.InDelta(t, 10, oc.Radius(), 1e-6)
}

func TestOrbitControllerClampsElevation(t *testing.T) {
	oc := NewOrbitController(
		WithPosition(mgl32.Vec3{0, 0, 10}),
		WithElevationBounds(-0.5, 0.5),
	)
	oc.Rotate(0, 10000)
	assert.InDelta(t, 0.5, oc.Elevation(), 1e-6)
	oc.Rotate(0, -20000)
	assert.InDelta(t, -0.5, oc.Elevation(), 1e-6)
}

func TestOrbitControllerZoomClampsRadius(t *testing.T) {
	oc := NewOrbitController(
		WithRadius(10),
		WithRadiusBounds(2, 20),
		WithZoomSpeed(1),
	)
	oc.Zoom(5)
	assert.InDelta(t, 5, oc.Radius(), 1e-6)
	oc.Zoom(100)
	assert.InDelta(t, 2, oc.Radius(), 1e-6)
	oc.Zoom(-100)
	assert.InDelta(t, 20, oc.Radius(), 1e-6)
	assert.InDelta(t, 20, oc.Position().Len(), 1e-4)
}

func TestOrbitControllerPanMovesEyeAndTarget(t *testing.T) {
	oc := NewOrbitController(
		WithPosition(mgl32.Vec3{0, 0, 10}),
		WithPanSpeed(1),
	)
	oc.Pan(2, 3)

	// Looking down -Z: right is +X, up is +Y. Dragging right moves the view left.
	target := oc.Target()
	assert.InDelta(t, -2, target[0], 1e-5)
	assert.InDelta(t, 3, target[1], 1e-5)
	assert.InDelta(t, 0, target[2], 1e-5)
	assert.InDelta(t, 10, oc.Position().Sub(target).Len(), 1e-4)
}

func TestOrbitControllerSetTargetKeepsEye(t *testing.T) {
	oc := NewOrbitController(WithPosition(mgl32.Vec3{10, 0, 0}))
	oc.SetTarget(mgl32.Vec3{4, 0, 0})

	p := oc.Position()
	assert.InDelta(t, 10, p[0], 1e-5)
	assert.InDelta(t, 6, oc.Radius(), 1e-5)
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := newSceneCamera()
	u := NewGPUCameraUniform(c)

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, c.ViewProjectionMatrix()[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.InDelta(t, 75, math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])), 1e-4)
	assert.InDelta(t, 20, math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])), 1e-4)
}
