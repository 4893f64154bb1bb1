package camera

// CameraControllerOption configures a controller in NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition puts the eye at a world position. Radius, azimuth and elevation are worked out
// from its offset to the target after every option has run, so the order against WithTarget
// does not matter.
//
// Parameters:
//   - x, y, z: the eye position
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
		cc.derive = true
	}
}

// WithTarget moves the pivot the camera orbits and looks at. The default is the origin.
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithOrbit places the eye in spherical coordinates around the target.
//
// Parameters:
//   - radius: distance to the target
//   - azimuth: angle around +Y in radians, 0 looking down -Z from +Z
//   - elevation: angle above the horizontal plane in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithOrbit(radius, azimuth, elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius, cc.azimuth, cc.elevation = radius, azimuth, elevation
	}
}

// WithRadiusBounds limits how close and how far zoom can go.
func WithRadiusBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius, cc.maxRadius = lo, hi
	}
}

// WithElevationBounds limits the vertical angle. Keep both inside (-π/2, π/2).
func WithElevationBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation, cc.maxElevation = lo, hi
	}
}

// WithDamping sets how much of the pending motion each Update consumes. Motion always eases
// out over several frames, so values outside (0, 1) keep DefaultDamping.
func WithDamping(damping float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if damping > 0 && damping < 1 {
			cc.damping = damping
		}
	}
}
