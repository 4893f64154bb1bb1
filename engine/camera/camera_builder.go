package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option applied by NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithLens replaces all projection settings at once.
func WithLens(lens Lens) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens = lens
	}
}

// WithFovDegrees sets the vertical field of view.
//
// Parameters:
//   - degrees: the field of view in degrees
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFovDegrees(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens.Fov = mgl32.DegToRad(degrees)
	}
}

// WithAspect sets the width / height ratio. The viewport resize handler keeps it current afterwards.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens.Aspect = aspect
	}
}

// WithNear sets the near clip distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens.Near = near
	}
}

// WithFar sets the far clip distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens.Far = far
	}
}

// WithController attaches the controller that supplies the eye and target.
//
// Parameters:
//   - ctrl: the orbit controller
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
