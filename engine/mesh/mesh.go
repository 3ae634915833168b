package mesh

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

var meshIDCounter atomic.Uint64

type mesh struct {
	mu            *sync.Mutex
	id            uint64
	name          string
	visible       atomic.Bool
	geometry      *Geometry
	color         common.Color
	position      mgl32.Vec3
	rotation      mgl32.Quat
	scale         mgl32.Vec3
	castShadow    bool
	receiveShadow bool
}

// Mesh is a renderable object: shared geometry, a flat material color, and a transform
// made of position, quaternion orientation and scale.
type Mesh interface {
	// ID returns the mesh's unique identifier.
	//
	// Returns:
	//   - uint64: the mesh ID
	ID() uint64

	// Name returns the debug name given at construction.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Geometry returns the triangle data drawn for this mesh.
	//
	// Returns:
	//   - *Geometry: the geometry
	Geometry() *Geometry

	// Color returns the material base color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Visible reports whether the mesh is drawn.
	//
	// Returns:
	//   - bool: true if drawn
	Visible() bool

	// SetVisible toggles drawing of the mesh.
	//
	// Parameters:
	//   - visible: true to draw
	SetVisible(visible bool)

	// Position returns the world position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the world position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Rotation returns the world orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// SetRotation sets the world orientation. The quaternion is stored as given.
	//
	// Parameters:
	//   - q: the new orientation
	SetRotation(q mgl32.Quat)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s mgl32.Vec3)

	// CastShadow reports whether the mesh is drawn into the shadow map.
	CastShadow() bool

	// ReceiveShadow reports whether the mesh samples the shadow map when lit.
	ReceiveShadow() bool

	// ModelMatrix composes position, rotation and scale (T * R * S).
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4
}

var _ Mesh = &mesh{}

func (m *mesh) ID() uint64          { return m.id }
func (m *mesh) Name() string        { return m.name }
func (m *mesh) Geometry() *Geometry { return m.geometry }
func (m *mesh) Color() common.Color { return m.color }
func (m *mesh) Visible() bool       { return m.visible.Load() }
func (m *mesh) SetVisible(v bool)   { m.visible.Store(v) }
func (m *mesh) CastShadow() bool    { return m.castShadow }
func (m *mesh) ReceiveShadow() bool { return m.receiveShadow }

func (m *mesh) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *mesh) SetPosition(p mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = p
}

func (m *mesh) Rotation() mgl32.Quat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *mesh) SetRotation(q mgl32.Quat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = q
}

func (m *mesh) Scale() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *mesh) SetScale(s mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = s
}

func (m *mesh) ModelMatrix() mgl32.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return common.ModelMatrix(m.position, m.rotation, m.scale)
}
