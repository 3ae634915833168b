package mesh

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"
)

// VertexStride is the byte size of one interleaved vertex: position (3 x float32) then normal (3 x float32).
const VertexStride = 6 * 4

var geometryIDCounter atomic.Uint64

// Vertex is one interleaved vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Geometry is immutable indexed triangle data. Meshes may share a Geometry; the renderer
// uploads each Geometry once, keyed by ID.
type Geometry struct {
	id       uint64
	kind     string
	vertices []Vertex
	indices  []uint32
}

// ID returns the unique geometry identifier.
func (g *Geometry) ID() uint64 { return g.id }

// Kind returns a short description such as "box 4x4x4".
func (g *Geometry) Kind() string { return g.kind }

// Vertices returns the vertex data. Callers must not modify it.
func (g *Geometry) Vertices() []Vertex { return g.vertices }

// Indices returns the counter-clockwise triangle indices. Callers must not modify it.
func (g *Geometry) Indices() []uint32 { return g.indices }

func newGeometry(kind string, vertices []Vertex, indices []uint32) *Geometry {
	return &Geometry{
		id:       geometryIDCounter.Add(1),
		kind:     kind,
		vertices: vertices,
		indices:  indices,
	}
}

// NewBoxGeometry builds an axis-aligned box centered on the origin with the given full
// dimensions. Each face has its own four vertices so normals stay flat.
//
// Parameters:
//   - width: size along X
//   - height: size along Y
//   - depth: size along Z
//
// Returns:
//   - *Geometry: the box geometry with 24 vertices and 36 indices
func NewBoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2

	// normal, then the two in-face axes scaled by the half size along them
	faces := [6]struct {
		n, u, v [3]float32
	}{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -hz}, [3]float32{0, hy, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, hz}, [3]float32{0, hy, 0}},
		{[3]float32{0, 1, 0}, [3]float32{hx, 0, 0}, [3]float32{0, 0, -hz}},
		{[3]float32{0, -1, 0}, [3]float32{hx, 0, 0}, [3]float32{0, 0, hz}},
		{[3]float32{0, 0, 1}, [3]float32{hx, 0, 0}, [3]float32{0, hy, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-hx, 0, 0}, [3]float32{0, hy, 0}},
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		center := [3]float32{f.n[0] * hx, f.n[1] * hy, f.n[2] * hz}
		base := uint32(len(vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for k := 0; k < 3; k++ {
				p[k] = center[k] + c[0]*f.u[k] + c[1]*f.v[k]
			}
			vertices = append(vertices, Vertex{Position: p, Normal: f.n})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return newGeometry(fmt.Sprintf("box %gx%gx%g", width, height, depth), vertices, indices)
}

// NewSphereGeometry builds a UV sphere centered on the origin.
// Segment counts below the minimum (3 around, 2 top to bottom) are raised to it.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: number of segments around the Y axis
//   - heightSegments: number of segments from pole to pole
//
// Returns:
//   - *Geometry: the sphere geometry
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertices := make([]Vertex, 0, (widthSegments+1)*(heightSegments+1))
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		theta := v * math32.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			n := [3]float32{
				-math32.Cos(phi) * math32.Sin(theta),
				math32.Cos(theta),
				math32.Sin(phi) * math32.Sin(theta),
			}
			vertices = append(vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
	}

	row := uint32(widthSegments + 1)
	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*row + uint32(x) + 1
			b := uint32(y)*row + uint32(x)
			c := uint32(y+1)*row + uint32(x)
			d := uint32(y+1)*row + uint32(x) + 1
			if y != 0 {
				indices = append(indices, a, b, d)
			}
			if y != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return newGeometry(fmt.Sprintf("sphere r%g", radius), vertices, indices)
}
