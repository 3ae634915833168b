package physics

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

var bodyIDCounter atomic.Uint64

// RigidBody is a simulated solid driven by a World.
// A body with zero mass is static: it never moves and has zero inertia.
type RigidBody interface {
	// ID returns the unique identifier assigned at creation.
	//
	// Returns:
	//   - uint64: the body id
	ID() uint64

	// Shape returns the collision shape.
	//
	// Returns:
	//   - Shape: the shape
	Shape() Shape

	// Mass returns the body mass. Zero means static.
	//
	// Returns:
	//   - float32: the mass
	Mass() float32

	// InverseMass returns 1/mass, or zero for static bodies.
	//
	// Returns:
	//   - float32: the inverse mass
	InverseMass() float32

	// IsStatic reports whether the body has zero mass.
	//
	// Returns:
	//   - bool: true for static bodies
	IsStatic() bool

	// LocalInertia returns the principal moments of inertia computed at construction.
	//
	// Returns:
	//   - mgl32.Vec3: the inertia diagonal, zero for static bodies
	LocalInertia() mgl32.Vec3

	// MotionState returns the handle the world writes transforms into.
	//
	// Returns:
	//   - MotionState: the motion state
	MotionState() MotionState

	// WorldTransform returns the simulation transform of the body.
	//
	// Returns:
	//   - Transform: the current transform
	WorldTransform() Transform

	// SetWorldTransform teleports the body. The motion state is updated as well.
	//
	// Parameters:
	//   - t: the new transform
	SetWorldTransform(t Transform)

	// LinearVelocity returns the velocity of the center of mass.
	//
	// Returns:
	//   - mgl32.Vec3: the linear velocity
	LinearVelocity() mgl32.Vec3

	// SetLinearVelocity sets the velocity of the center of mass. Ignored for static bodies.
	//
	// Parameters:
	//   - v: the linear velocity
	SetLinearVelocity(v mgl32.Vec3)

	// AngularVelocity returns the angular velocity in radians per second.
	//
	// Returns:
	//   - mgl32.Vec3: the angular velocity
	AngularVelocity() mgl32.Vec3

	// SetAngularVelocity sets the angular velocity. Ignored for static bodies.
	//
	// Parameters:
	//   - w: the angular velocity
	SetAngularVelocity(w mgl32.Vec3)

	// ApplyCentralImpulse changes the linear velocity by impulse/mass.
	//
	// Parameters:
	//   - impulse: the impulse vector
	ApplyCentralImpulse(impulse mgl32.Vec3)

	// ApplyCentralForce accumulates a force applied during the next sub-step.
	//
	// Parameters:
	//   - force: the force vector
	ApplyCentralForce(force mgl32.Vec3)

	// Restitution returns the bounciness coefficient.
	Restitution() float32

	// SetRestitution sets the bounciness coefficient. The value is stored as given.
	//
	// Parameters:
	//   - r: the restitution coefficient
	SetRestitution(r float32)

	// Friction returns the sliding friction coefficient.
	Friction() float32

	// SetFriction sets the sliding friction coefficient. The value is stored as given.
	//
	// Parameters:
	//   - f: the friction coefficient
	SetFriction(f float32)

	// RollingFriction returns the rolling friction coefficient.
	RollingFriction() float32

	// SetRollingFriction sets the rolling friction coefficient. The value is stored as given.
	//
	// Parameters:
	//   - f: the rolling friction coefficient
	SetRollingFriction(f float32)

	// SetDamping sets the linear and angular velocity damping factors in [0, 1].
	//
	// Parameters:
	//   - linear: fraction of linear velocity removed per second
	//   - angular: fraction of angular velocity removed per second
	SetDamping(linear, angular float32)
}

type rigidBody struct {
	id    uint64
	shape Shape

	mass            float32
	invMass         float32
	localInertia    mgl32.Vec3
	invInertiaLocal mgl32.Vec3
	invInertiaWorld mgl32.Mat3

	transform   Transform
	motionState MotionState

	linearVelocity  mgl32.Vec3
	angularVelocity mgl32.Vec3
	totalForce      mgl32.Vec3

	restitution     float32
	friction        float32
	rollingFriction float32
	linearDamping   float32
	angularDamping  float32

	aabbMin mgl32.Vec3
	aabbMax mgl32.Vec3
}

var _ RigidBody = &rigidBody{}

func (b *rigidBody) ID() uint64                { return b.id }
func (b *rigidBody) Shape() Shape              { return b.shape }
func (b *rigidBody) Mass() float32             { return b.mass }
func (b *rigidBody) InverseMass() float32      { return b.invMass }
func (b *rigidBody) IsStatic() bool            { return b.invMass == 0 }
func (b *rigidBody) LocalInertia() mgl32.Vec3  { return b.localInertia }
func (b *rigidBody) MotionState() MotionState  { return b.motionState }
func (b *rigidBody) WorldTransform() Transform { return b.transform }

func (b *rigidBody) SetWorldTransform(t Transform) {
	b.transform = NewTransform(t.Origin, t.Rotation)
	b.updateInertiaTensor()
	b.updateAABB()
	if b.motionState != nil {
		b.motionState.SetWorldTransform(b.transform)
	}
}

func (b *rigidBody) LinearVelocity() mgl32.Vec3  { return b.linearVelocity }
func (b *rigidBody) AngularVelocity() mgl32.Vec3 { return b.angularVelocity }

func (b *rigidBody) SetLinearVelocity(v mgl32.Vec3) {
	if b.IsStatic() {
		return
	}
	b.linearVelocity = v
}

func (b *rigidBody) SetAngularVelocity(w mgl32.Vec3) {
	if b.IsStatic() {
		return
	}
	b.angularVelocity = w
}

func (b *rigidBody) ApplyCentralImpulse(impulse mgl32.Vec3) {
	b.linearVelocity = b.linearVelocity.Add(impulse.Mul(b.invMass))
}

func (b *rigidBody) ApplyCentralForce(force mgl32.Vec3) {
	b.totalForce = b.totalForce.Add(force)
}

func (b *rigidBody) Restitution() float32         { return b.restitution }
func (b *rigidBody) SetRestitution(r float32)     { b.restitution = r }
func (b *rigidBody) Friction() float32            { return b.friction }
func (b *rigidBody) SetFriction(f float32)        { b.friction = f }
func (b *rigidBody) RollingFriction() float32     { return b.rollingFriction }
func (b *rigidBody) SetRollingFriction(f float32) { b.rollingFriction = f }

func (b *rigidBody) SetDamping(linear, angular float32) {
	b.linearDamping = mgl32.Clamp(linear, 0, 1)
	b.angularDamping = mgl32.Clamp(angular, 0, 1)
}

// updateInertiaTensor recomputes R * diag(invInertiaLocal) * R^T for the current orientation.
func (b *rigidBody) updateInertiaTensor() {
	r := b.transform.Basis()
	b.invInertiaWorld = r.Mul3(mgl32.Diag3(b.invInertiaLocal)).Mul3(r.Transpose())
}

func (b *rigidBody) updateAABB() {
	b.aabbMin, b.aabbMax = b.shape.AABB(b.transform)
}

// velocityAt returns the velocity of a point at offset r from the center of mass.
func (b *rigidBody) velocityAt(r mgl32.Vec3) mgl32.Vec3 {
	return b.linearVelocity.Add(b.angularVelocity.Cross(r))
}

func (b *rigidBody) applyImpulse(impulse, r mgl32.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(impulse.Mul(b.invMass))
	b.angularVelocity = b.angularVelocity.Add(b.invInertiaWorld.Mul3x1(r.Cross(impulse)))
}

func (b *rigidBody) applyTorqueImpulse(torque mgl32.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.angularVelocity = b.angularVelocity.Add(b.invInertiaWorld.Mul3x1(torque))
}
