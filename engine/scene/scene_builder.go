package scene

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithNodes attaches initial top-level nodes to the scene root.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...Node) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(nodes...)
	}
}

// WithLights registers initial lights.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithFog enables linear fog.
//
// Parameters:
//   - color: the fog color
//   - near: distance where fog starts
//   - far: distance where fog is opaque
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(color mgl32.Vec3, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.fog = Fog{Color: color, Near: near, Far: far, Enabled: true}
	}
}

// WithBackground sets the clear color.
//
// Parameters:
//   - color: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(color mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.background = color
	}
}
