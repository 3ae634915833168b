package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Color is a linear RGB color with components in [0, 1].
type Color [3]float32

// SkyBlue is the CSS "skyblue" color (#87CEEB).
var SkyBlue = ColorFromHex(0x87CEEB)

// ColorFromHex converts a 0xRRGGBB integer into a Color.
//
// Parameters:
//   - hex: packed 24-bit RGB value
//
// Returns:
//   - Color: the unpacked color
func ColorFromHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xFF) / 255.0,
		float32((hex>>8)&0xFF) / 255.0,
		float32(hex&0xFF) / 255.0,
	}
}
