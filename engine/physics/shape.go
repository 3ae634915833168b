package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeType identifies the collision primitive behind a Shape.
type ShapeType int

const (
	ShapeTypeBox ShapeType = iota
	ShapeTypeSphere
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeBox:
		return "box"
	case ShapeTypeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// DefaultMargin is the collision margin assigned to new shapes.
const DefaultMargin float32 = 0.05

// Shape is a convex collision primitive in body-local space.
type Shape interface {
	// Type reports which primitive the shape is.
	//
	// Returns:
	//   - ShapeType: the primitive kind
	Type() ShapeType

	// Margin returns the collision margin.
	//
	// Returns:
	//   - float32: the margin in world units
	Margin() float32

	// SetMargin sets the collision margin.
	//
	// Parameters:
	//   - margin: the margin in world units
	SetMargin(margin float32)

	// CalculateLocalInertia returns the principal moments of inertia for the given mass.
	// A mass of zero or less yields the zero vector.
	//
	// Parameters:
	//   - mass: the body mass
	//
	// Returns:
	//   - mgl32.Vec3: diagonal of the local inertia tensor
	CalculateLocalInertia(mass float32) mgl32.Vec3

	// AABB computes the world-space bounds of the shape under a transform, including the margin.
	//
	// Parameters:
	//   - t: the world transform
	//
	// Returns:
	//   - mgl32.Vec3: minimum corner
	//   - mgl32.Vec3: maximum corner
	AABB(t Transform) (mgl32.Vec3, mgl32.Vec3)
}

// BoxShape is an oriented box described by its half extents.
type BoxShape struct {
	halfExtents mgl32.Vec3
	margin      float32
}

var _ Shape = &BoxShape{}

// NewBoxShape creates a box shape. Negative extents are mirrored to positive.
//
// Parameters:
//   - halfExtents: half the box size along each local axis
//
// Returns:
//   - *BoxShape: the shape
func NewBoxShape(halfExtents mgl32.Vec3) *BoxShape {
	return &BoxShape{
		halfExtents: mgl32.Vec3{math32.Abs(halfExtents[0]), math32.Abs(halfExtents[1]), math32.Abs(halfExtents[2])},
		margin:      DefaultMargin,
	}
}

// HalfExtents returns the half size of the box along each local axis.
func (b *BoxShape) HalfExtents() mgl32.Vec3 { return b.halfExtents }

func (b *BoxShape) Type() ShapeType          { return ShapeTypeBox }
func (b *BoxShape) Margin() float32          { return b.margin }
func (b *BoxShape) SetMargin(margin float32) { b.margin = margin }

func (b *BoxShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	if mass <= 0 {
		return mgl32.Vec3{}
	}
	lx := 2 * b.halfExtents[0]
	ly := 2 * b.halfExtents[1]
	lz := 2 * b.halfExtents[2]
	return mgl32.Vec3{
		mass / 12 * (ly*ly + lz*lz),
		mass / 12 * (lx*lx + lz*lz),
		mass / 12 * (lx*lx + ly*ly),
	}
}

func (b *BoxShape) AABB(t Transform) (mgl32.Vec3, mgl32.Vec3) {
	basis := t.Basis()
	var ext mgl32.Vec3
	for i := 0; i < 3; i++ {
		row := basis.Row(i)
		ext[i] = math32.Abs(row[0])*b.halfExtents[0] +
			math32.Abs(row[1])*b.halfExtents[1] +
			math32.Abs(row[2])*b.halfExtents[2] + b.margin
	}
	return t.Origin.Sub(ext), t.Origin.Add(ext)
}

// SphereShape is a sphere centered on the body origin.
type SphereShape struct {
	radius float32
	margin float32
}

var _ Shape = &SphereShape{}

// NewSphereShape creates a sphere shape.
//
// Parameters:
//   - radius: the sphere radius
//
// Returns:
//   - *SphereShape: the shape
func NewSphereShape(radius float32) *SphereShape {
	return &SphereShape{radius: math32.Abs(radius), margin: DefaultMargin}
}

// Radius returns the sphere radius.
func (s *SphereShape) Radius() float32 { return s.radius }

func (s *SphereShape) Type() ShapeType          { return ShapeTypeSphere }
func (s *SphereShape) Margin() float32          { return s.margin }
func (s *SphereShape) SetMargin(margin float32) { s.margin = margin }

func (s *SphereShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	if mass <= 0 {
		return mgl32.Vec3{}
	}
	i := 0.4 * mass * s.radius * s.radius
	return mgl32.Vec3{i, i, i}
}

func (s *SphereShape) AABB(t Transform) (mgl32.Vec3, mgl32.Vec3) {
	r := s.radius + s.margin
	ext := mgl32.Vec3{r, r, r}
	return t.Origin.Sub(ext), t.Origin.Add(ext)
}
