package camera

import (
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDamping is the fraction of pending velocity applied per Update.
const DefaultDamping float32 = 0.05

// restEpsilon is the velocity magnitude below which the controller snaps to rest.
const restEpsilon float32 = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
// Position is always derived from target + spherical coordinates.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	derive   bool // position was set explicitly and spherical coordinates must be derived

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // horizontal angle around Y axis, 0 = +Z
	elevation float32 // vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	damping float32

	// Pending velocity
	vAzimuth   float32
	vElevation float32
	vZoom      float32
	vPan       [2]float32

	initial orbitState
}

// orbitState is a snapshot of the orbit used by Reset.
type orbitState struct {
	target                     [3]float32
	radius, azimuth, elevation float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new damped orbit controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    10.0,
		azimuth:   0.0,
		elevation: math32.Pi / 6,

		minRadius:    1.0,
		maxRadius:    50.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		damping: DefaultDamping,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.derive {
		cc.deriveSpherical()
	}
	cc.clamp()
	cc.updatePosition()
	cc.initial = orbitState{target: cc.target, radius: cc.radius, azimuth: cc.azimuth, elevation: cc.elevation}
	return cc
}

// --- internal helpers ---

// deriveSpherical computes radius, azimuth and elevation from position relative to target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) deriveSpherical() {
	off := mgl32.Vec3(cc.position).Sub(mgl32.Vec3(cc.target))
	r := off.Len()
	if r < 1e-6 {
		return
	}
	cc.radius = r
	cc.elevation = math32.Asin(common.Clamp(off.Y()/r, -1, 1))
	cc.azimuth = math32.Atan2(off.X(), off.Z())
}

// clamp keeps radius and elevation inside the controller bounds.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// If position and target coincide both axes are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	back := mgl32.Vec3(cc.position).Sub(mgl32.Vec3(cc.target))
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	right = mgl32.Vec3{back.Z(), 0, -back.X()}
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = back.Cross(right)
	return right, up
}

// --- CameraController methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
	cc.deriveSpherical()
	cc.clamp()
	cc.updatePosition()
	cc.vAzimuth, cc.vElevation, cc.vZoom = 0, 0, 0
	cc.vPan = [2]float32{}
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.vAzimuth += dAzimuth
	cc.vElevation += dElevation
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.vZoom += delta
}

func (cc *cameraControllerImpl) Pan(dRight, dUp float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.vPan[0] += dRight
	cc.vPan[1] += dUp
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.atRest() {
		return false
	}
	d := cc.damping

	cc.azimuth += cc.vAzimuth * d
	cc.elevation += cc.vElevation * d
	cc.radius -= cc.vZoom * d
	if cc.vPan[0] != 0 || cc.vPan[1] != 0 {
		right, up := cc.localAxes()
		shift := right.Mul(cc.vPan[0] * d).Add(up.Mul(cc.vPan[1] * d))
		cc.target = mgl32.Vec3(cc.target).Add(shift)
	}
	cc.clamp()
	cc.updatePosition()

	keep := 1 - d
	cc.vAzimuth *= keep
	cc.vElevation *= keep
	cc.vZoom *= keep
	cc.vPan[0] *= keep
	cc.vPan[1] *= keep
	if cc.atRest() {
		cc.vAzimuth, cc.vElevation, cc.vZoom = 0, 0, 0
		cc.vPan = [2]float32{}
	}
	return true
}

// atRest reports whether every pending velocity is negligible.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) atRest() bool {
	return math32.Abs(cc.vAzimuth) < restEpsilon &&
		math32.Abs(cc.vElevation) < restEpsilon &&
		math32.Abs(cc.vZoom) < restEpsilon &&
		math32.Abs(cc.vPan[0]) < restEpsilon &&
		math32.Abs(cc.vPan[1]) < restEpsilon
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = cc.initial.target
	cc.radius = cc.initial.radius
	cc.azimuth = cc.initial.azimuth
	cc.elevation = cc.initial.elevation
	cc.vAzimuth, cc.vElevation, cc.vZoom = 0, 0, 0
	cc.vPan = [2]float32{}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Damping() float32 {
	return cc.damping
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) Velocity() (azimuth, elevation, zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.vAzimuth, cc.vElevation, cc.vZoom
}
