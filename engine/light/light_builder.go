package light

import (
	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a DirectionalLight during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - p: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithTarget is an option builder that sets the point the light shines toward.
//
// Parameters:
//   - t: the target position
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(t mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = t
	}
}

// WithColor is an option builder that sets the RGB color of the light.
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithCastShadow is an option builder that sets whether the light renders a shadow map.
func WithCastShadow(cast bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castShadow = cast
	}
}

// WithShadow is an option builder that replaces the shadow camera configuration.
//
// Parameters:
//   - s: the shadow configuration
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithShadow(s ShadowConfig) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow = s
	}
}
