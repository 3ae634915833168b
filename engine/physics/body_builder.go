package physics

import (
	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RigidBodyBuilderOption configures a rigid body during construction.
type RigidBodyBuilderOption func(*rigidBody)

// WithMass sets the body mass. Zero (the default) creates a static body.
// Negative values are treated as zero.
//
// Parameters:
//   - mass: the body mass
//
// Returns:
//   - RigidBodyBuilderOption: the option
func WithMass(mass float32) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		if mass < 0 {
			mass = 0
		}
		b.mass = mass
	}
}

// WithTransform sets the starting world transform.
//
// Parameters:
//   - t: the starting transform
//
// Returns:
//   - RigidBodyBuilderOption: the option
func WithTransform(t Transform) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.transform = NewTransform(t.Origin, t.Rotation)
	}
}

// WithPosition sets the starting position, keeping the current orientation.
//
// Parameters:
//   - p: the starting position
//
// Returns:
//   - RigidBodyBuilderOption: the option
func WithPosition(p mgl32.Vec3) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.transform.Origin = p
	}
}

// WithRotation sets the starting orientation, keeping the current position.
//
// Parameters:
//   - q: the starting orientation
//
// Returns:
//   - RigidBodyBuilderOption: the option
func WithRotation(q mgl32.Quat) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.transform = NewTransform(b.transform.Origin, q)
	}
}

// WithMotionState replaces the default motion state.
//
// Parameters:
//   - ms: the motion state to use
//
// Returns:
//   - RigidBodyBuilderOption: the option
func WithMotionState(ms MotionState) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.motionState = ms
	}
}

// WithRestitution sets the bounciness coefficient.
func WithRestitution(r float32) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.restitution = r
	}
}

// WithFriction sets the sliding friction coefficient.
func WithFriction(f float32) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.friction = f
	}
}

// WithRollingFriction sets the rolling friction coefficient.
func WithRollingFriction(f float32) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.rollingFriction = f
	}
}

// WithDamping sets linear and angular damping.
func WithDamping(linear, angular float32) RigidBodyBuilderOption {
	return func(b *rigidBody) {
		b.SetDamping(linear, angular)
	}
}

// NewRigidBody creates a rigid body for the given shape.
// Panics if shape is nil.
//
// Defaults: mass 0 (static), identity transform, friction 0.5, restitution 0,
// rolling friction 0, no damping.
//
// Parameters:
//   - shape: the collision shape
//   - options: builder options
//
// Returns:
//   - RigidBody: the new body
func NewRigidBody(shape Shape, options ...RigidBodyBuilderOption) RigidBody {
	if shape == nil {
		panic("physics: NewRigidBody requires a shape")
	}

	b := &rigidBody{
		id:        bodyIDCounter.Add(1),
		shape:     shape,
		transform: IdentityTransform(),
		friction:  0.5,
	}
	for _, opt := range options {
		opt(b)
	}

	if b.mass > 0 {
		b.invMass = 1 / b.mass
		b.localInertia = shape.CalculateLocalInertia(b.mass)
		for i := 0; i < 3; i++ {
			if b.localInertia[i] > 0 {
				b.invInertiaLocal[i] = 1 / b.localInertia[i]
			}
		}
	}

	if b.motionState == nil {
		b.motionState = NewDefaultMotionState(b.transform)
	} else {
		// a caller-provided motion state seeds the body transform
		var t Transform
		b.motionState.WorldTransform(&t)
		b.transform = NewTransform(t.Origin, t.Rotation)
	}

	b.updateInertiaTensor()
	b.updateAABB()
	return b
}

// NewBox creates a box body with the fixed collision margin.
// Mass 0 makes the body static with zero inertia.
//
// Parameters:
//   - mass: the body mass
//   - position: starting world position
//   - rotation: starting orientation
//   - halfExtents: half size along each local axis
//
// Returns:
//   - RigidBody: the new body
func NewBox(mass float32, position mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3) RigidBody {
	shape := NewBoxShape(halfExtents)
	shape.SetMargin(DefaultMargin)
	common.Logger().Debug("physics: box body", "mass", mass, "halfExtents", halfExtents)
	return NewRigidBody(shape,
		WithMass(mass),
		WithTransform(NewTransform(position, rotation)),
	)
}

// NewSphere creates a sphere body with the fixed collision margin.
// Mass 0 makes the body static with zero inertia.
//
// Parameters:
//   - mass: the body mass
//   - position: starting world position
//   - rotation: starting orientation
//   - radius: the sphere radius
//
// Returns:
//   - RigidBody: the new body
func NewSphere(mass float32, position mgl32.Vec3, rotation mgl32.Quat, radius float32) RigidBody {
	shape := NewSphereShape(radius)
	shape.SetMargin(DefaultMargin)
	common.Logger().Debug("physics: sphere body", "mass", mass, "radius", radius)
	return NewRigidBody(shape,
		WithMass(mass),
		WithTransform(NewTransform(position, rotation)),
	)
}
