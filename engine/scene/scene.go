package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Fog is linear distance fog. Fragments closer than Near are untouched and fragments past Far
// take Color entirely.
type Fog struct {
	Color   mgl32.Vec3
	Near    float32
	Far     float32
	Enabled bool
}

// Factor is the share of fog color at a view distance, in [0, 1]. Disabled or degenerate fog
// always returns 0.
func (f Fog) Factor(distance float32) float32 {
	if !f.Enabled || f.Far <= f.Near {
		return 0
	}
	return max(0, min(1, (distance-f.Near)/(f.Far-f.Near)))
}

// Scene is everything one frame renders: a node hierarchy under an unnamed root, the lights,
// the camera, and the fog and clear color. Lights are kept in a flat list next to the hierarchy
// and may still follow a node through light.WithParent.
type Scene interface {
	Name() string

	// Root returns the group that top-level nodes hang from.
	Root() Node

	// Add attaches nodes under the root.
	//
	// Parameters:
	//   - nodes: the nodes, in draw order
	Add(nodes ...Node)

	// Find returns the first node with the given name in depth-first order, or nil.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - Node: the node or nil
	Find(name string) Node

	Camera() camera.Camera

	// AddLight appends a light. The renderer packs lights in insertion order.
	AddLight(l light.Light)

	// RemoveLight drops a light by identity. Unknown lights are ignored.
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the light list.
	//
	// Returns:
	//   - []light.Light: a copy the caller may keep
	Lights() []light.Light

	// Light looks a light up by name.
	//
	// Parameters:
	//   - name: the light name
	//
	// Returns:
	//   - light.Light: the first match or nil
	Light(name string) light.Light

	Fog() Fog
	SetFog(fog Fog)

	// Background is the color the frame is cleared to. It usually matches the fog color so
	// distant geometry fades into it.
	Background() mgl32.Vec3
	SetBackground(color mgl32.Vec3)
}

type scene struct {
	mu *sync.RWMutex

	name string
	root Node
	cam  camera.Camera

	lights     []light.Light
	fog        Fog
	background mgl32.Vec3
}

var _ Scene = &scene{}

// NewScene creates an empty scene viewed through cam. It panics when cam is nil.
//
// Parameters:
//   - name: label used in logs
//   - cam: the camera
//   - options: initial contents
//
// Returns:
//   - Scene: the scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	s := &scene{mu: &sync.RWMutex{}, name: name, root: NewNode(""), cam: cam}
	for _, option := range options {
		option(s)
	}
	return s
}

// The hierarchy and the camera guard themselves.

func (s *scene) Name() string { return s.name }
func (s *scene) Root() Node { return s.root }
func (s *scene) Add(nodes ...Node) { s.root.Add(nodes...) }
func (s *scene) Find(name string) Node { return s.root.Find(name) }
func (s *scene) Camera() camera.Camera { return s.cam }

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) Light(name string) light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.lights, func(l light.Light) bool { return l.Name() == name })
	if i < 0 {
		return nil
	}
	return s.lights[i]
}

func (s *scene) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(fog Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = fog
}

func (s *scene) Background() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(color mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = color
}
