// Package viewport keeps the camera projection and the render target in step with the window size.
package viewport

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"go.uber.org/zap"
)

// MaxPixelRatio caps the device pixel ratio handed to the renderer.
const MaxPixelRatio float32 = 2

// Target is the part of a renderer the resize handler drives.
type Target interface {
	SetPixelRatio(ratio float32)
	Resize(width, height int)
	Render(s scene.Scene) error
}

// ResizeHandler reacts to window size changes.
type ResizeHandler interface {
	// Handle updates the camera aspect, the render target size and pixel ratio, and renders
	// immediately so the resized frame is never stale. Zero sizes are ignored (minimised window).
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//   - devicePixelRatio: the window content scale
	Handle(width, height int, devicePixelRatio float32)
}

type resizeHandler struct {
	cam    camera.Camera
	target Target
	s      scene.Scene
}

var _ ResizeHandler = &resizeHandler{}

// NewResizeHandler creates a ResizeHandler for a scene's camera and a render target.
//
// Parameters:
//   - s: the scene rendered after each resize; its camera receives the new aspect
//   - target: the renderer to resize
//
// Returns:
//   - ResizeHandler: the handler
func NewResizeHandler(s scene.Scene, target Target) ResizeHandler {
	return &resizeHandler{cam: s.Camera(), target: target, s: s}
}

func (h *resizeHandler) Handle(width, height int, devicePixelRatio float32) {
	if width <= 0 || height <= 0 {
		return
	}
	h.cam.SetAspect(float32(width) / float32(height))
	h.target.SetPixelRatio(min(devicePixelRatio, MaxPixelRatio))
	h.target.Resize(width, height)
	if err := h.target.Render(h.s); err != nil {
		logger.Log.Warn("render after resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
	}
}
