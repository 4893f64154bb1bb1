package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the interface for a damped orbit controller.
// Controllers own positional state (position, target) as spherical coordinates around the target.
// Pointer input never moves the camera directly: Rotate, Zoom and Pan accumulate pending velocity
// that Update bleeds into the orbit a fraction at a time.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera at a world-space position. The spherical coordinates are derived
	// from the offset to the target and clamped to the controller bounds. Pending velocity is discarded.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Rotate adds an orbit delta to the pending angular velocity.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle delta in radians
	//   - dElevation: vertical angle delta in radians
	Rotate(dAzimuth, dElevation float32)

	// Zoom adds a radius delta to the pending zoom velocity.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Pan adds a translation along the camera's local right and up axes to the pending pan velocity.
	// Panning shifts both position and target, preserving the orbit relationship.
	//
	// Parameters:
	//   - dRight: distance along the local right axis
	//   - dUp: distance along the local up axis
	Pan(dRight, dUp float32)

	// Update advances the orbit by one damped step. It applies velocity * damping to the
	// orbit and then decays the velocity by (1 - damping). Call once per frame.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Reset restores the orbit captured at construction and clears pending velocity.
	Reset()

	// Damping returns the fraction of pending velocity applied per Update.
	//
	// Returns:
	//   - float32: the damping factor in (0, 1)
	Damping() float32

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// Velocity returns the pending angular and zoom velocity.
	//
	// Returns:
	//   - azimuth: pending horizontal angle in radians
	//   - elevation: pending vertical angle in radians
	//   - zoom: pending radius change
	Velocity() (azimuth, elevation, zoom float32)
}
