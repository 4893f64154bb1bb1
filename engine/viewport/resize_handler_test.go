package viewport

import (
	"testing"

	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/stretchr/testify/assert"
)

type fakeTarget struct {
	width, height int
	ratio         float32
	renders       int
}

func (f *fakeTarget) SetPixelRatio(ratio float32) { f.ratio = ratio }
func (f *fakeTarget) Resize(width, height int)    { f.width, f.height = width, height }
func (f *fakeTarget) Render(scene.Scene) error {
	f.renders++
	return nil
}

func newHandler() (ResizeHandler, camera.Camera, *fakeTarget) {
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController(camera.WithPosition(2, 2, 10))))
	target := &fakeTarget{}
	return NewResizeHandler(scene.NewScene("test", cam), target), cam, target
}

func TestHandleUpdatesCameraAndTarget(t *testing.T) {
	h, cam, target := newHandler()
	h.Handle(1600, 900, 3)

	assert.InDelta(t, 1600.0/900.0, cam.Aspect(), 1e-6)
	assert.Equal(t, 1600, target.width)
	assert.Equal(t, 900, target.height)
	assert.Equal(t, MaxPixelRatio, target.ratio)
	assert.Equal(t, 1, target.renders)
}

func TestHandleIsIdempotent(t *testing.T) {
	h, cam, target := newHandler()
	h.Handle(800, 600, 1)
	proj := cam.ProjectionMatrix()
	w, hgt, ratio := target.width, target.height, target.ratio

	h.Handle(800, 600, 1)
	assert.Equal(t, proj, cam.ProjectionMatrix())
	assert.Equal(t, w, target.width)
	assert.Equal(t, hgt, target.height)
	assert.Equal(t, ratio, target.ratio)
	assert.Equal(t, float32(1), target.ratio)
}

func TestHandleIgnoresZeroSize(t *testing.T) {
	h, cam, target := newHandler()
	aspect := cam.Aspect()

	h.Handle(0, 600, 1)
	h.Handle(800, 0, 1)
	assert.Equal(t, aspect, cam.Aspect())
	assert.Zero(t, target.renders)
	assert.Zero(t, target.width)
}
