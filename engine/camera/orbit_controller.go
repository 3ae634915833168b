package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController owns the eye position of a camera orbiting a target point.
// Position is stored as spherical coordinates (radius, azimuth, elevation) around
// the target, so rotating and zooming never drift the target.
type OrbitController interface {
	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Target() mgl32.Vec3

	// SetTarget moves the pivot while keeping the eye where it is.
	// Radius, azimuth and elevation are re-derived from the new offset.
	//
	// Parameters:
	//   - target: the new pivot
	SetTarget(target mgl32.Vec3)

	// Rotate orbits the eye around the target from a pointer drag.
	// Horizontal movement changes azimuth, vertical movement changes elevation (clamped).
	//
	// Parameters:
	//   - dx: horizontal drag in pixels
	//   - dy: vertical drag in pixels
	Rotate(dx, dy float32)

	// Zoom moves the eye toward (positive delta) or away from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Pan translates both eye and target along the view's right and up axes.
	//
	// Parameters:
	//   - dx: horizontal amount scaled by the pan speed
	//   - dy: vertical amount scaled by the pan speed
	Pan(dx, dy float32)

	// Radius returns the distance between eye and target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Azimuth returns the horizontal angle around +Y, measured from +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the angle above the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32
}

type orbitController struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	hasPosition bool
	target      mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an orbit controller. When WithPosition is given, the
// spherical coordinates are derived from the position relative to the target,
// otherwise the radius/azimuth/elevation options place the eye.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitController{
		mu:           &sync.Mutex{},
		radius:       10,
		elevation:    math32.Pi / 6,
		minRadius:    1,
		maxRadius:    2000,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,
		rotateSpeed:  0.005,
		zoomSpeed:    2,
		panSpeed:     0.1,
	}
	for _, option := range options {
		option(oc)
	}

	if oc.hasPosition {
		oc.deriveSpherical()
	} else {
		oc.clamp()
		oc.updatePosition()
	}
	return oc
}

// updatePosition recomputes the eye from spherical coordinates. Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	cosElev, sinElev := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	cosAzim, sinAzim := math32.Cos(oc.azimuth), math32.Sin(oc.azimuth)
	oc.position = oc.target.Add(mgl32.Vec3{
		oc.radius * cosElev * sinAzim,
		oc.radius * sinElev,
		oc.radius * cosElev * cosAzim,
	})
}

// deriveSpherical computes spherical coordinates from the current eye and target,
// leaving the eye unchanged unless a bound had to be applied. Caller must hold the mutex.
func (oc *orbitController) deriveSpherical() {
	offset := oc.position.Sub(oc.target)
	r := offset.Len()
	if r < 1e-6 {
		oc.clamp()
		oc.updatePosition()
		return
	}
	oc.radius = r
	oc.azimuth = math32.Atan2(offset[0], offset[2])
	oc.elevation = math32.Asin(mgl32.Clamp(offset[1]/r, -1, 1))
	if oc.clamp() {
		oc.updatePosition()
	}
}

// clamp applies the radius and elevation bounds and reports whether anything changed.
func (oc *orbitController) clamp() bool {
	r := mgl32.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	e := mgl32.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	changed := r != oc.radius || e != oc.elevation
	oc.radius, oc.elevation = r, e
	return changed
}

func (oc *orbitController) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitController) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitController) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
	oc.deriveSpherical()
}

func (oc *orbitController) Rotate(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= dx * oc.rotateSpeed
	oc.elevation += dy * oc.rotateSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius -= delta * oc.zoomSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitController) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	back := oc.position.Sub(oc.target)
	if back.Len() < 1e-6 {
		return
	}
	back = back.Normalize()
	right := mgl32.Vec3{0, 1, 0}.Cross(back)
	if right.Len() < 1e-6 {
		return
	}
	right = right.Normalize()
	up := back.Cross(right)

	offset := right.Mul(-dx * oc.panSpeed).Add(up.Mul(dy * oc.panSpeed))
	oc.target = oc.target.Add(offset)
	oc.position = oc.position.Add(offset)
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}
