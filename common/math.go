package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipSpaceCorrection remaps OpenGL clip-space depth [-1, 1] into the WebGPU
// convention [0, 1]. mgl32 projection helpers produce OpenGL matrices, so every
// projection handed to the GPU is pre-multiplied by this matrix.
var ClipSpaceCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Perspective creates a perspective projection matrix in WebGPU clip space.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return ClipSpaceCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho creates an orthographic projection matrix in WebGPU clip space.
// The bounds are used verbatim, so left > right mirrors the X axis.
//
// Parameters:
//   - left, right: horizontal bounds of the view volume
//   - bottom, top: vertical bounds of the view volume
//   - near, far: depth bounds of the view volume
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return ClipSpaceCorrection.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// LookAt creates a view matrix that positions and orients a viewer.
// Falls back to the X axis as up when the view direction is parallel to up,
// which happens for lights pointing straight down.
//
// Parameters:
//   - eye: viewer position in world space
//   - center: target point the viewer looks at
//   - up: up vector defining orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	dir := center.Sub(eye)
	if dir.Len() > 0 && dir.Normalize().Cross(up).Len() < 1e-4 {
		up = mgl32.Vec3{1, 0, 0}
	}
	return mgl32.LookAtV(eye, center, up)
}

// ModelMatrix composes translation, rotation and scale into a single matrix (T * R * S).
//
// Parameters:
//   - position: translation in world space
//   - rotation: orientation quaternion
//   - scale: scale factors along each local axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(rotation.Normalize().Mat4()).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of the model matrix's upper 3x3,
// expanded back to a 4x4 so it can share the uniform alignment of the model matrix.
//
// Parameters:
//   - model: the model matrix
//
// Returns:
//   - mgl32.Mat4: the normal matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Mat3().Inv().Transpose().Mat4()
}
