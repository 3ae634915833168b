package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, options ...WorldBuilderOption) World {
	t.Helper()
	w, err := NewWorld(append([]WorldBuilderOption{WithGravity(mgl32.Vec3{0, -10, 0}), WithWorkers(1)}, options...)...)
	require.NoError(t, err)
	return w
}

func newGround(w World) RigidBody {
	ground := NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{50, 0.5, 50})
	w.AddRigidBody(ground)
	return ground
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		option WorldBuilderOption
	}{
		{"zero time step", WithFixedTimeStep(0)},
		{"negative time step", WithFixedTimeStep(-1)},
		{"nan time step", WithFixedTimeStep(math32.NaN())},
		{"infinite gravity", WithGravity(mgl32.Vec3{0, math32.Inf(-1), 0})},
		{"no solver iterations", WithSolverIterations(0)},
		{"negative workers", WithWorkers(-2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWorld(tt.option)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, w)
		})
	}
}

func TestNewWorldDefaults(t *testing.T) {
	w, err := NewWorld()
	require.NoError(t, err)
	assert.Equal(t, DefaultGravity, w.Gravity())
	assert.Equal(t, DefaultFixedTimeStep, w.FixedTimeStep())
}

func TestFreeFallMatchesGravity(t *testing.T) {
	w := newTestWorld(t)
	b := NewSphere(1, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)

	for i := 0; i < 60; i++ {
		require.Equal(t, 1, w.StepSimulation(w.FixedTimeStep(), DefaultMaxSubSteps))
	}

	assert.InDelta(t, -10, b.LinearVelocity()[1], 1e-3)
	// semi-implicit Euler: y0 - g*dt^2 * (1 + 2 + ... + 60)
	assert.InDelta(t, 100-10.0/3600*1830, b.WorldTransform().Origin[1], 1e-2)
}

func TestStepSimulationClampsSubSteps(t *testing.T) {
	w := newTestWorld(t)
	b := NewSphere(1, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)

	steps := w.StepSimulation(1, 10)
	assert.Equal(t, 10, steps)
	assert.InDelta(t, -10*10*w.FixedTimeStep(), b.LinearVelocity()[1], 1e-4)
}

func TestStepSimulationAccumulatesPartialSteps(t *testing.T) {
	w := newTestWorld(t)
	half := w.FixedTimeStep() / 2

	assert.Equal(t, 0, w.StepSimulation(half, 10))
	assert.Equal(t, 1, w.StepSimulation(half, 10))
}

func TestStepSimulationZeroDeltaDoesNotAdvance(t *testing.T) {
	w := newTestWorld(t)
	b := NewSphere(1, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)

	assert.Equal(t, 0, w.StepSimulation(0, 10))
	assert.Equal(t, 0, w.StepSimulation(-1, 10))
	assert.Equal(t, mgl32.Vec3{0, 100, 0}, b.WorldTransform().Origin)
	assert.Equal(t, mgl32.Vec3{}, b.LinearVelocity())
}

func TestStepSimulationVariableStep(t *testing.T) {
	w := newTestWorld(t)
	b := NewSphere(1, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)

	assert.Equal(t, 1, w.StepSimulation(0.1, 0))
	assert.InDelta(t, -1, b.LinearVelocity()[1], 1e-5)
}

func TestMotionStateMatchesBodyAfterStep(t *testing.T) {
	w := newTestWorld(t)
	b := NewBox(1, mgl32.Vec3{0, 10, 0}, mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{1, 1, 1})
	b.SetAngularVelocity(mgl32.Vec3{0, 2, 0})
	w.AddRigidBody(b)

	w.StepSimulation(0.1, 10)

	var tr Transform
	b.MotionState().WorldTransform(&tr)
	assert.Equal(t, b.WorldTransform(), tr)
	assert.InDelta(t, 1, tr.Rotation.Len(), 1e-5)
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := newTestWorld(t)
	ground := newGround(w)
	w.AddRigidBody(NewBox(1, mgl32.Vec3{0, 1.4, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))

	for i := 0; i < 30; i++ {
		w.StepSimulation(w.FixedTimeStep(), 10)
	}
	assert.Equal(t, mgl32.Vec3{}, ground.WorldTransform().Origin)
	assert.Equal(t, mgl32.Vec3{}, ground.LinearVelocity())
}

func TestBoxComesToRestOnGround(t *testing.T) {
	w := newTestWorld(t)
	newGround(w)
	box := NewBox(1, mgl32.Vec3{0, 3, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	w.AddRigidBody(box)

	for i := 0; i < 180; i++ {
		w.StepSimulation(w.FixedTimeStep(), 10)
	}

	assert.InDelta(t, 1.5, box.WorldTransform().Origin[1], 0.05)
	assert.Less(t, box.LinearVelocity().Len(), float32(0.1))
	assert.NotEmpty(t, w.Manifolds())
}

func TestTiltedBoxSettlesFlat(t *testing.T) {
	w := newTestWorld(t)
	newGround(w)
	rot := mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 0.5}.Normalize())
	box := NewBox(1, mgl32.Vec3{0, 4, 0}, rot, mgl32.Vec3{1, 1, 1})
	w.AddRigidBody(box)

	for i := 0; i < 300; i++ {
		w.StepSimulation(w.FixedTimeStep(), 10)
	}

	assert.InDelta(t, 1.5, box.WorldTransform().Origin[1], 0.05)
	assert.Less(t, box.AngularVelocity().Len(), float32(0.1))
}

func TestSphereComesToRestOnGround(t *testing.T) {
	w := newTestWorld(t)
	newGround(w)
	sphere := NewSphere(1, mgl32.Vec3{0, 3, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(sphere)

	for i := 0; i < 180; i++ {
		w.StepSimulation(w.FixedTimeStep(), 10)
	}

	assert.InDelta(t, 1.5, sphere.WorldTransform().Origin[1], 0.05)
	assert.Less(t, sphere.LinearVelocity().Len(), float32(0.1))
}

func TestRestitutionMakesSphereBounce(t *testing.T) {
	w := newTestWorld(t)
	ground := newGround(w)
	ground.SetRestitution(1)
	sphere := NewSphere(1, mgl32.Vec3{0, 1.5, 0}, mgl32.QuatIdent(), 1)
	sphere.SetRestitution(0.8)
	sphere.SetLinearVelocity(mgl32.Vec3{0, -10, 0})
	w.AddRigidBody(sphere)

	w.StepSimulation(w.FixedTimeStep(), 10)

	assert.Greater(t, sphere.LinearVelocity()[1], float32(5))
}

func TestAddRigidBodyIsIdempotent(t *testing.T) {
	w := newTestWorld(t)
	b := NewSphere(1, mgl32.Vec3{}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)
	w.AddRigidBody(b)
	assert.Len(t, w.Bodies(), 1)

	w.RemoveRigidBody(b)
	assert.Empty(t, w.Bodies())
}

func TestWorldKeepsSteppingAfterClose(t *testing.T) {
	w, err := NewWorld(WithGravity(mgl32.Vec3{0, -10, 0}), WithWorkers(2))
	require.NoError(t, err)
	b := NewSphere(1, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), 1)
	w.AddRigidBody(b)

	w.Close()
	w.Close()

	assert.Equal(t, 1, w.StepSimulation(w.FixedTimeStep(), DefaultMaxSubSteps))
	assert.Less(t, b.WorldTransform().Origin.Y(), float32(100))
}
