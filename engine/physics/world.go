package physics

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConfig is returned by NewWorld when a builder option produced an unusable setting.
var ErrInvalidConfig = errors.New("physics: invalid world configuration")

const (
	DefaultFixedTimeStep     float32 = 1.0 / 60.0
	DefaultSolverIterations          = 10
	DefaultMaxSubSteps               = 10
)

// DefaultGravity is the standard earth gravity in meters per second squared.
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

// World is a discrete dynamics world: it owns bodies, integrates them under gravity,
// and resolves contacts between them.
type World interface {
	// Gravity returns the world gravity.
	//
	// Returns:
	//   - mgl32.Vec3: acceleration applied to every dynamic body
	Gravity() mgl32.Vec3

	// SetGravity replaces the world gravity.
	//
	// Parameters:
	//   - g: the new gravity
	SetGravity(g mgl32.Vec3)

	// FixedTimeStep returns the length of one internal sub-step in seconds.
	//
	// Returns:
	//   - float32: the sub-step length
	FixedTimeStep() float32

	// AddRigidBody registers a body with the world. Adding the same body twice is a no-op.
	// Panics if the body was not created by this package.
	//
	// Parameters:
	//   - b: the body to add
	AddRigidBody(b RigidBody)

	// RemoveRigidBody unregisters a body. Unknown bodies are ignored.
	//
	// Parameters:
	//   - b: the body to remove
	RemoveRigidBody(b RigidBody)

	// Bodies returns the registered bodies in insertion order.
	//
	// Returns:
	//   - []RigidBody: a copy of the body list
	Bodies() []RigidBody

	// StepSimulation advances the world by timeStep seconds using fixed sub-steps.
	// Leftover time accumulates for the next call. At most maxSubSteps sub-steps run;
	// time beyond that is dropped. A maxSubSteps of zero runs a single variable step of
	// exactly timeStep. Motion states are written after stepping, without interpolation.
	//
	// Parameters:
	//   - timeStep: elapsed time in seconds
	//   - maxSubSteps: upper bound on sub-steps for this call
	//
	// Returns:
	//   - int: the number of sub-steps simulated
	StepSimulation(timeStep float32, maxSubSteps int) int

	// Manifolds returns the contact manifolds of the last sub-step.
	//
	// Returns:
	//   - []*Manifold: the contacts
	Manifolds() []*Manifold

	// Close stops the narrow-phase worker pool. The world stays usable and
	// steps on the calling goroutine afterwards. Calling Close twice is a no-op.
	Close()
}

type world struct {
	gravity          mgl32.Vec3
	fixedTimeStep    float32
	solverIterations int
	workers          int
	localTime        float32

	bodies  []*rigidBody
	proxies []BroadphaseProxy

	broadphase Broadphase
	dispatcher *CollisionDispatcher
	solver     ConstraintSolver
	manifolds  []*Manifold
}

var _ World = &world{}

func (w *world) Gravity() mgl32.Vec3     { return w.gravity }
func (w *world) SetGravity(g mgl32.Vec3) { w.gravity = g }
func (w *world) FixedTimeStep() float32  { return w.fixedTimeStep }
func (w *world) Manifolds() []*Manifold  { return w.manifolds }
func (w *world) Close()                  { w.dispatcher.Close() }

func (w *world) AddRigidBody(b RigidBody) {
	rb, ok := b.(*rigidBody)
	if !ok {
		panic(fmt.Sprintf("physics: unsupported rigid body type %T", b))
	}
	for _, existing := range w.bodies {
		if existing == rb {
			return
		}
	}
	rb.updateAABB()
	w.bodies = append(w.bodies, rb)
}

func (w *world) RemoveRigidBody(b RigidBody) {
	for i, existing := range w.bodies {
		if RigidBody(existing) == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *world) Bodies() []RigidBody {
	out := make([]RigidBody, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

func (w *world) StepSimulation(timeStep float32, maxSubSteps int) int {
	numSteps := 0
	stepSize := w.fixedTimeStep

	if maxSubSteps > 0 {
		if timeStep > 0 {
			w.localTime += timeStep
		}
		if w.localTime >= w.fixedTimeStep {
			numSteps = int(w.localTime / w.fixedTimeStep)
			w.localTime -= float32(numSteps) * w.fixedTimeStep
		}
	} else if timeStep > 0 {
		stepSize = timeStep
		w.localTime = 0
		numSteps = 1
		maxSubSteps = 1
	}

	clamped := min(numSteps, maxSubSteps)
	for i := 0; i < clamped; i++ {
		w.internalSingleStep(stepSize)
	}
	w.synchronizeMotionStates()

	if clamped > 0 {
		common.Logger().Debug("physics: step",
			"dt", timeStep,
			"subSteps", clamped,
			"dropped", numSteps-clamped,
			"manifolds", len(w.manifolds),
		)
	}
	return clamped
}

func (w *world) internalSingleStep(dt float32) {
	w.integrateVelocities(dt)
	w.performDiscreteCollisionDetection()
	w.solver.SolveGroup(w.manifolds, dt)
	w.integrateTransforms(dt)
}

func (w *world) integrateVelocities(dt float32) {
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		accel := w.gravity.Add(b.totalForce.Mul(b.invMass))
		b.linearVelocity = b.linearVelocity.Add(accel.Mul(dt))
		b.totalForce = mgl32.Vec3{}

		b.linearVelocity = b.linearVelocity.Mul(math32.Pow(1-b.linearDamping, dt))
		b.angularVelocity = b.angularVelocity.Mul(math32.Pow(1-b.angularDamping, dt))
	}
}

func (w *world) performDiscreteCollisionDetection() {
	w.proxies = w.proxies[:0]
	for i, b := range w.bodies {
		w.proxies = append(w.proxies, BroadphaseProxy{
			Index:  i,
			Min:    b.aabbMin,
			Max:    b.aabbMax,
			Static: b.IsStatic(),
		})
	}
	pairs := w.broadphase.CalculateOverlappingPairs(w.proxies)
	w.manifolds = w.dispatcher.dispatchAllCollisionPairs(w.bodies, pairs)
}

func (w *world) integrateTransforms(dt float32) {
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		origin := b.transform.Origin.Add(b.linearVelocity.Mul(dt))

		// dq/dt = 0.5 * (0, w) * q
		q := b.transform.Rotation
		spin := mgl32.Quat{W: 0, V: b.angularVelocity}.Mul(q)
		q = mgl32.Quat{
			W: q.W + 0.5*dt*spin.W,
			V: q.V.Add(spin.V.Mul(0.5 * dt)),
		}.Normalize()

		b.transform = Transform{Origin: origin, Rotation: q}
		b.updateInertiaTensor()
		b.updateAABB()
	}
}

func (w *world) synchronizeMotionStates() {
	for _, b := range w.bodies {
		if b.IsStatic() || b.motionState == nil {
			continue
		}
		b.motionState.SetWorldTransform(b.transform)
	}
}
