package camera

import (
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

// worldUp is the up axis of the orbit. The controller keeps elevation inside (-π/2, π/2) so
// the view direction is never parallel to it.
var worldUp = mgl32.Vec3{0, 1, 0}

// Lens is the perspective projection of a camera.
type Lens struct {
	// Fov is the vertical field of view in radians.
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

// Projection returns the lens as a WebGPU projection matrix with depth in [0, 1].
func (l Lens) Projection() mgl32.Mat4 {
	return common.Perspective(l.Fov, l.Aspect, l.Near, l.Far)
}

type cameraImpl struct {
	mu   *sync.Mutex
	lens Lens

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4

	controller CameraController
}

// Camera is a perspective camera whose eye and target come from a CameraController.
// The matrices are cached and only change on Update or SetAspect.
type Camera interface {
	// Lens returns the projection settings.
	Lens() Lens

	// Aspect returns the width / height ratio.
	Aspect() float32

	// SetAspect changes the width / height ratio and rebuilds the projection. Non-positive
	// values are ignored.
	//
	// Parameters:
	//   - aspect: the new ratio
	SetAspect(aspect float32)

	// Position returns the eye, or the origin without a controller.
	Position() mgl32.Vec3

	// Controller returns the attached controller, possibly nil.
	Controller() CameraController

	// Update recomputes the view from the controller. The render loop calls it after stepping
	// the controller.
	Update()

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the six clip planes of the current view-projection.
	Frustum() common.Frustum
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 45° lens, aspect 1 and clip planes at 0.1 and 100.
//
// Parameters:
//   - options: lens and controller options
//
// Returns:
//   - Camera: the camera, with matrices already computed
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu: &sync.Mutex{},
		lens: Lens{
			Fov:    mgl32.DegToRad(45),
			Aspect: 1,
			Near:   0.1,
			Far:    100,
		},
		view: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.rebuild()
	return c
}

func (c *cameraImpl) Lens() Lens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens
}

func (c *cameraImpl) Aspect() float32 {
	return c.Lens().Aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lens.Aspect = aspect
	c.rebuild()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	if ctrl := c.Controller(); ctrl != nil {
		return ctrl.Position()
	}
	return mgl32.Vec3{}
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller != nil {
		c.rebuild()
	}
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proj
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProj
}

func (c *cameraImpl) Frustum() common.Frustum {
	return common.ExtractFrustumFromMatrix(c.ViewProjectionMatrix())
}

// rebuild recomputes every cached matrix. Callers hold c.mu.
func (c *cameraImpl) rebuild() {
	c.proj = c.lens.Projection()
	if c.controller != nil {
		c.view = common.LookAt(c.controller.Position(), c.controller.Target(), worldUp)
	}
	c.viewProj = c.proj.Mul4(c.view)
}
