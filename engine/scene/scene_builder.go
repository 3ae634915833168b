package scene

import (
	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithMeshes adds initial meshes to the scene in the given order.
// Nil meshes are skipped.
//
// Parameters:
//   - meshes: the meshes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshes(meshes ...mesh.Mesh) SceneBuilderOption {
	return func(s *scene) {
		for _, m := range meshes {
			if m != nil {
				s.add(m)
			}
		}
	}
}

// WithLight sets the scene's directional light.
func WithLight(l light.DirectionalLight) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithBackground sets the clear color.
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithAmbient sets the constant fill light, clamped to [0, 1].
func WithAmbient(a float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = clamp01(a)
	}
}
