package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrustumIntersectsSphere(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(75), 1, 0.1, 20)
	view := LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(proj.Mul4(view))

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 1), "origin is in front of the camera")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 20}, 1), "behind the camera")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, -40}, 1), "beyond the far plane")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{100, 0, 0}, 1), "far off to the side")
	assert.True(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 10.5}, 1), "straddles the near plane")
}
