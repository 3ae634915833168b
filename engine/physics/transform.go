package physics

import "github.com/go-gl/mathgl/mgl32"

// Transform is a rigid transform: a translation (Origin) followed by an orientation (Rotation).
// It never carries scale.
type Transform struct {
	Origin   mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityTransform returns a transform at the world origin with no rotation.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// NewTransform builds a transform from an origin and an orientation.
// The rotation is normalized; a zero quaternion is replaced by identity.
//
// Parameters:
//   - origin: world-space position
//   - rotation: orientation quaternion
//
// Returns:
//   - Transform: the new transform
func NewTransform(origin mgl32.Vec3, rotation mgl32.Quat) Transform {
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return Transform{Origin: origin, Rotation: rotation.Normalize()}
}

// SetIdentity resets the transform in place.
func (t *Transform) SetIdentity() {
	t.Origin = mgl32.Vec3{}
	t.Rotation = mgl32.QuatIdent()
}

// Apply maps a point from local space into world space.
//
// Parameters:
//   - p: local-space point
//
// Returns:
//   - mgl32.Vec3: world-space point
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Origin.Add(t.Rotation.Rotate(p))
}

// InverseApply maps a point from world space into local space.
//
// Parameters:
//   - p: world-space point
//
// Returns:
//   - mgl32.Vec3: local-space point
func (t Transform) InverseApply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Origin))
}

// Basis returns the rotation as a 3x3 matrix whose columns are the local axes in world space.
//
// Returns:
//   - mgl32.Mat3: the rotation basis
func (t Transform) Basis() mgl32.Mat3 {
	return t.Rotation.Mat4().Mat3()
}
