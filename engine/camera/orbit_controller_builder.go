package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitController)

// WithPosition places the eye explicitly. The orbit is derived from this position
// and the target once all options are applied.
//
// Parameters:
//   - p: world-space eye position
//
// Returns:
//   - OrbitControllerOption: functional option to set the eye position
func WithPosition(p mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.position = p
		oc.hasPosition = true
	}
}

// WithTarget sets the orbit pivot.
//
// Parameters:
//   - t: world-space pivot
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(t mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.target = t
	}
}

// WithRadius sets the initial orbit radius. Ignored when WithPosition is used.
func WithRadius(radius float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle. Ignored when WithPosition is used.
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle. Ignored when WithPosition is used.
func WithElevation(elevation float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.elevation = elevation
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - lo: minimum zoom distance
//   - hi: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(lo, hi float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.minRadius = lo
		oc.maxRadius = hi
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - lo: minimum vertical angle in radians
//   - hi: maximum vertical angle in radians (keep below pi/2 to avoid flipping)
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(lo, hi float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.minElevation = lo
		oc.maxElevation = hi
	}
}

// WithRotateSpeed sets radians of rotation per pixel of drag.
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.panSpeed = speed
	}
}
