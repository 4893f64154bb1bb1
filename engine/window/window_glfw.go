package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// idleWait is how long, in seconds, Run blocks on events when no frame is queued.
const idleWait = 0.05

// glfwHost is the GLFW side of an engineWindow. GLFW must only be touched from the main thread.
type glfwHost struct {
	win     *glfw.Window
	closing bool
}

// openGLFW initialises GLFW and opens a window without a client API, since WebGPU brings its own.
// Input callbacks are routed into w.
func openGLFW(w *engineWindow) (*glfwHost, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(minWidth, minHeight, glfw.DontCare, glfw.DontCare)
	h := &glfwHost{win: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})
	win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		w.handleMouseButton(uint32(button), action == glfw.Press, float32(x), float32(y))
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.handleCursor(float32(x), float32(y))
	})
	// The surface is sized in framebuffer pixels, which differ from screen coordinates on
	// high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height, h.contentScale())
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return h, nil
}

func (h *glfwHost) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(h.win)
}

// contentScale is the larger axis of the monitor content scale, never below 1.
func (h *glfwHost) contentScale() float32 {
	x, y := h.win.GetContentScale()
	return max(x, y, 1)
}

func (h *glfwHost) running() bool {
	return !h.closing && !h.win.ShouldClose()
}

func (h *glfwHost) requestClose() {
	h.closing = true
	h.win.SetShouldClose(true)
}

// pump processes pending events. When nothing is queued it waits up to idleWait for input
// instead of spinning.
func (h *glfwHost) pump(busy bool) {
	if busy {
		glfw.PollEvents()
		return
	}
	glfw.WaitEventsTimeout(idleWait)
}

func (h *glfwHost) destroy() {
	h.closing = true
	h.win.Destroy()
	glfw.Terminate()
}
