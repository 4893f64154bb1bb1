package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPositionDerivesSphericalCoordinates(t *testing.T) {
	cc := NewCameraController(WithPosition(2, 2, 10))

	assert.InDelta(t, math32.Sqrt(108), cc.Radius(), 1e-4)
	assert.InDelta(t, math32.Atan2(2, 10), cc.Azimuth(), 1e-5)
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{2, 2, 10}, 1e-4))
	assert.Equal(t, DefaultDamping, cc.Damping())
}

func TestRotateIsNotAppliedInstantly(t *testing.T) {
	cc := NewCameraController(WithPosition(2, 2, 10))
	start := cc.Azimuth()

	cc.Rotate(1, 0)
	assert.Equal(t, start, cc.Azimuth(), "rotate only queues velocity")

	require.True(t, cc.Update())
	assert.InDelta(t, start+DefaultDamping, cc.Azimuth(), 1e-6)

	vAz, _, _ := cc.Velocity()
	assert.InDelta(t, 1-DefaultDamping, vAz, 1e-6)
}

func TestDampingConvergesToFullDelta(t *testing.T) {
	cc := NewCameraController(WithPosition(2, 2, 10))
	az, el, r := cc.Azimuth(), cc.Elevation(), cc.Radius()

	cc.Rotate(0.5, 0.1)
	cc.Zoom(2)
	steps := 0
	for cc.Update() {
		steps++
		require.Less(t, steps, 10000)
	}

	assert.InDelta(t, az+0.5, cc.Azimuth(), 1e-3)
	assert.InDelta(t, el+0.1, cc.Elevation(), 1e-3)
	assert.InDelta(t, r-2, cc.Radius(), 1e-3)
	vAz, vEl, vZoom := cc.Velocity()
	assert.Zero(t, vAz)
	assert.Zero(t, vEl)
	assert.Zero(t, vZoom)
}

func TestUpdateAtRestIsNoop(t *testing.T) {
	cc := NewCameraController(WithPosition(2, 2, 10))
	before := cc.Position()
	assert.False(t, cc.Update())
	assert.Equal(t, before, cc.Position())
}

// settle steps cc until all pending motion is spent.
func settle(t *testing.T, cc CameraController) {
	t.Helper()
	steps := 0
	for cc.Update() {
		steps++
		require.Less(t, steps, 10000)
	}
}

func TestDampingOutsideOpenIntervalKeepsDefault(t *testing.T) {
	for _, d := range []float32{-1, 0, 1, 2} {
		cc := NewCameraController(WithDamping(d))
		assert.Equal(t, DefaultDamping, cc.Damping(), "damping %v", d)
	}
	assert.Equal(t, float32(0.5), NewCameraController(WithDamping(0.5)).Damping())
	assert.Equal(t, float32(0.999), NewCameraController(WithDamping(0.999)).Damping())
}

func TestElevationAndRadiusAreClamped(t *testing.T) {
	cc := NewCameraController(
		WithElevationBounds(0, 1),
		WithRadiusBounds(2, 20),
		WithOrbit(10, 0, 0.5),
	)

	cc.Rotate(0, 10)
	cc.Zoom(100)
	settle(t, cc)
	assert.Equal(t, float32(1), cc.Elevation())
	assert.Equal(t, float32(2), cc.Radius())
}

func TestResetRestoresInitialOrbit(t *testing.T) {
	cc := NewCameraController(WithPosition(2, 2, 10))
	start := cc.Position()

	cc.Rotate(1, 0.2)
	cc.Pan(1, 1)
	settle(t, cc)
	require.False(t, cc.Position().ApproxEqual(start))

	cc.Reset()
	assert.True(t, cc.Position().ApproxEqualThreshold(start, 1e-5))
	assert.Equal(t, mgl32.Vec3{}, cc.Target())
}

func TestPanMovesTargetAndPosition(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10))
	cc.Pan(2, 0)
	settle(t, cc)

	assert.True(t, cc.Target().ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, 1e-3))
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{2, 0, 10}, 1e-3))
}

func TestCameraSetAspectRebuildsProjection(t *testing.T) {
	cam := NewCamera(
		WithFovDegrees(75),
		WithNear(0.1),
		WithFar(100),
		WithController(NewCameraController(WithPosition(2, 2, 10))),
	)
	before := cam.ProjectionMatrix()

	cam.SetAspect(2)
	after := cam.ProjectionMatrix()
	assert.NotEqual(t, before, after)
	assert.InDelta(t, before[0]/2, after[0], 1e-6)

	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestCameraLooksAtTarget(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController(WithPosition(2, 2, 10))))

	// The target projects to the centre of the screen.
	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)

	f := cam.Frustum()
	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 1))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 30}, 1))
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController(WithPosition(0, 0, 5))))
	u := NewGPUCameraUniform(cam)

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.InDelta(t, 5, u.CameraPosition[2], 1e-5)
}

func TestCameraBuilderSetsLens(t *testing.T) {
	cam := NewCamera(WithFovDegrees(90), WithAspect(16.0/9.0), WithNear(0.5), WithFar(40))
	lens := cam.Lens()
	assert.InDelta(t, math32.Pi/2, lens.Fov, 1e-6)
	assert.InDelta(t, 16.0/9.0, lens.Aspect, 1e-6)
	assert.Equal(t, float32(0.5), lens.Near)
	assert.Equal(t, float32(40), lens.Far)
	assert.Equal(t, lens.Projection(), cam.ProjectionMatrix())

	// Without a controller the view stays at identity.
	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
	assert.Equal(t, mgl32.Vec3{}, cam.Position())

	cam = NewCamera(WithLens(Lens{Fov: 1, Aspect: 2, Near: 1, Far: 10}))
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestPositionIsDerivedRelativeToTarget(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 1, 10), WithTarget(0, 1, 0))

	assert.InDelta(t, 10, cc.Radius(), 1e-5)
	assert.InDelta(t, 0, cc.Elevation(), 1e-5)
	assert.InDelta(t, 1, cc.Target().Y(), 1e-6)
}
