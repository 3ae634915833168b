package mesh

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithName sets a debug name.
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithColor sets the material base color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - MeshBuilderOption: the option
func WithColor(c common.Color) MeshBuilderOption {
	return func(m *mesh) {
		m.color = c
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - MeshBuilderOption: the option
func WithPosition(p mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.position = p
	}
}

// WithRotation sets the initial orientation.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - MeshBuilderOption: the option
func WithRotation(q mgl32.Quat) MeshBuilderOption {
	return func(m *mesh) {
		m.rotation = q
	}
}

// WithScale sets the initial per-axis scale.
func WithScale(s mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.scale = s
	}
}

// WithShadows sets whether the mesh casts and receives shadows.
//
// Parameters:
//   - cast: true to draw into the shadow map
//   - receive: true to sample the shadow map when lit
//
// Returns:
//   - MeshBuilderOption: the option
func WithShadows(cast, receive bool) MeshBuilderOption {
	return func(m *mesh) {
		m.castShadow = cast
		m.receiveShadow = receive
	}
}

// NewMesh creates a visible Mesh for the given geometry.
// Panics if geometry is nil.
//
// Defaults: white, origin, identity rotation, unit scale, no shadows.
//
// Parameters:
//   - geometry: the triangle data to draw
//   - options: builder options
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(geometry *Geometry, options ...MeshBuilderOption) Mesh {
	if geometry == nil {
		panic("mesh: NewMesh requires geometry")
	}
	m := &mesh{
		mu:       &sync.Mutex{},
		id:       meshIDCounter.Add(1),
		geometry: geometry,
		color:    common.Color{1, 1, 1},
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	m.visible.Store(true)
	for _, opt := range options {
		opt(m)
	}
	if m.name == "" {
		m.name = geometry.Kind()
	}
	return m
}
