package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveMapsNearAndFarToUnitDepth(t *testing.T) {
	p := Perspective(mgl32.DegToRad(75), 1.5, 0.1, 100)

	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestOrthographicMapsVolumeToClipSpace(t *testing.T) {
	o := Orthographic(-2, 2, -1, 1, 0.5, 7)

	corner := o.Mul4x1(mgl32.Vec4{2, 1, -7, 1})
	assert.InDelta(t, 1, corner.X(), 1e-6)
	assert.InDelta(t, 1, corner.Y(), 1e-6)
	assert.InDelta(t, 1, corner.Z(), 1e-6)

	front := o.Mul4x1(mgl32.Vec4{-2, -1, -0.5, 1})
	assert.InDelta(t, -1, front.X(), 1e-6)
	assert.InDelta(t, -1, front.Y(), 1e-6)
	assert.InDelta(t, 0, front.Z(), 1e-6)
}

func TestBuildModelMatrixAppliesScaleRotationTranslation(t *testing.T) {
	m := BuildModelMatrix(
		mgl32.Vec3{1, 2, 3},
		mgl32.Vec3{0, math.Pi / 2, 0},
		mgl32.Vec3{2, 2, 2},
	)

	// +X scaled by 2, yawed 90 degrees onto -Z, then translated.
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 1, p.Z(), 1e-5)
}

func TestNormalMatrixFallsBackToIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), NormalMatrix(mgl32.Mat4{}))
}

func TestLookAtHandlesDegenerateTarget(t *testing.T) {
	eye := mgl32.Vec3{1, 1, 1}
	v := LookAt(eye, eye, mgl32.Vec3{0, 1, 0})
	for _, f := range v {
		assert.False(t, math.IsNaN(float64(f)))
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
	assert.Equal(t, -5.0, Clamp(-7.0, -5, 5))
	assert.Equal(t, 2, Clamp(2, 0, 4))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
