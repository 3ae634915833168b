package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the DirectionalLight interface.
type lightImpl struct {
	mu *sync.Mutex

	position   mgl32.Vec3
	target     mgl32.Vec3
	color      common.Color
	intensity  float32
	castShadow bool
	shadow     ShadowConfig
}

// DirectionalLight is a light with parallel rays travelling from its position
// toward its target. Only the direction matters for shading; the position also
// places the orthographic shadow camera.
type DirectionalLight interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the light position
	Position() mgl32.Vec3

	// Target returns the point the light shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Direction returns the normalized direction from position to target.
	// A light sitting on its target points straight down.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized light direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// CastShadow reports whether the renderer should draw a shadow map for this light.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastShadow() bool

	// Shadow returns the shadow camera configuration.
	//
	// Returns:
	//   - ShadowConfig: the current configuration
	Shadow() ShadowConfig

	// ViewProjection returns the light-space matrix used by the shadow pass:
	// the shadow camera's orthographic projection times a look-at from position to target.
	//
	// Returns:
	//   - mgl32.Mat4: the light view-projection matrix
	ViewProjection() mgl32.Mat4

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// SetTarget sets the point the light shines toward.
	//
	// Parameters:
	//   - t: the new target
	SetTarget(t mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetCastShadow toggles shadow map rendering for this light.
	//
	// Parameters:
	//   - cast: true to enable shadow casting
	SetCastShadow(cast bool)

	// SetShadow replaces the shadow camera configuration.
	//
	// Parameters:
	//   - s: the new configuration
	SetShadow(s ShadowConfig)
}

var _ DirectionalLight = &lightImpl{}

// NewDirectionalLight creates a white directional light of intensity 1 at (0, 1, 0)
// aimed at the origin with shadows disabled, then applies the options.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - DirectionalLight: a new light instance
func NewDirectionalLight(opts ...LightBuilderOption) DirectionalLight {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		position:  mgl32.Vec3{0, 1, 0},
		color:     common.Color{1, 1, 1},
		intensity: 1.0,
		shadow:    DefaultShadowConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction()
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) CastShadow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castShadow
}

func (l *lightImpl) Shadow() ShadowConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadow
}

func (l *lightImpl) ViewProjection() mgl32.Mat4 {
	l.mu.Lock()
	defer l.mu.Unlock()
	target := l.target
	if l.position.Sub(target).Len() < 1e-6 {
		target = l.position.Sub(mgl32.Vec3{0, 1, 0})
	}
	view := common.LookAt(l.position, target, mgl32.Vec3{0, 1, 0})
	return l.shadow.Projection().Mul4(view)
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = p
}

func (l *lightImpl) SetTarget(t mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = t
}

func (l *lightImpl) SetColor(c common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetCastShadow(cast bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castShadow = cast
}

func (l *lightImpl) SetShadow(s ShadowConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shadow = s
}

// direction computes the normalized light direction. Caller must hold the mutex.
func (l *lightImpl) direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}
