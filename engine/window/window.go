package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrWindowClosed is returned by Close on a window that is already closed.
var ErrWindowClosed = errors.New("window: already closed")

// Smallest framebuffer the window can be resized to.
const (
	minWidth  = 320
	minHeight = 240
)

// Window is a desktop window that owns the main loop. It doubles as the frame scheduler of
// the render loop, and every callback it makes runs on the main thread inside Run.
type Window interface {
	// RequestFrame queues fn for the next loop iteration, after events are processed.
	//
	// Parameters:
	//   - fn: the frame callback
	RequestFrame(fn func())

	// Post queues fn to run on the main thread ahead of the next frame callbacks. Safe from any goroutine.
	//
	// Parameters:
	//   - fn: the task
	Post(fn func())

	// SetResizeCallback registers the framebuffer resize handler.
	//
	// Parameters:
	//   - callback: receives the framebuffer size in pixels and the content scale
	SetResizeCallback(callback func(width, height int, contentScale float32))

	// SetScrollCallback registers the wheel handler. Positive deltas scroll up.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback registers the key press handler. Key codes follow GLFW; see common.Key*.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetDragCallback registers the handler for cursor movement while a button is held.
	//
	// Parameters:
	//   - callback: receives the held button (see common.MouseButton*) and the cursor delta in
	//     screen coordinates
	SetDragCallback(callback func(button uint32, dx, dy float32))

	// SurfaceDescriptor returns the platform surface descriptor for WebGPU, or nil once closed.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ContentScale returns the device pixel ratio, 1 once closed.
	ContentScale() float32

	// IsRunning reports whether the window is open and no close was requested.
	IsRunning() bool

	// RequestClose makes Run return after the current iteration.
	RequestClose()

	// Close destroys the window.
	//
	// Returns:
	//   - error: ErrWindowClosed if the window is already closed
	Close() error

	// Run drives the main loop until the window closes. Each iteration processes events, runs
	// posted tasks, then runs the frame callbacks requested during the previous iteration.
	Run()

	// Width and Height return the framebuffer size in pixels.
	Width() int
	Height() int
}

type engineWindow struct {
	title         string
	width, height int

	host  *glfwHost
	queue frameQueue
	drag  dragTracker

	onResize  func(width, height int, contentScale float32)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onDrag    func(button uint32, dx, dy float32)
}

var _ Window = &engineWindow{}

// NewWindow opens a window. It must be called from the main goroutine and panics if no window
// can be created.
//
// Parameters:
//   - options: title and size options
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:  "Haunted House",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width, w.height = max(w.width, minWidth), max(w.height, minHeight)

	host, err := openGLFW(w)
	if err != nil {
		panic(fmt.Sprintf("failed to create window: %v", err))
	}
	w.host = host
	return w
}

func (w *engineWindow) RequestFrame(fn func()) {
	w.queue.RequestFrame(fn)
}

func (w *engineWindow) Post(fn func()) {
	w.queue.Post(fn)
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int, contentScale float32)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetDragCallback(callback func(button uint32, dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.host == nil {
		return nil
	}
	return w.host.surfaceDescriptor()
}

func (w *engineWindow) ContentScale() float32 {
	if w.host == nil {
		return 1
	}
	return w.host.contentScale()
}

func (w *engineWindow) IsRunning() bool {
	return w.host != nil && w.host.running()
}

func (w *engineWindow) RequestClose() {
	if w.host != nil {
		w.host.requestClose()
	}
}

func (w *engineWindow) Close() error {
	if w.host == nil {
		return ErrWindowClosed
	}
	w.host.destroy()
	w.host = nil
	return nil
}

func (w *engineWindow) Run() {
	for w.IsRunning() {
		w.host.pump(w.queue.pending())
		if !w.IsRunning() {
			return
		}
		w.queue.runIteration()
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleMouseButton feeds a button transition into the drag tracker.
func (w *engineWindow) handleMouseButton(button uint32, pressed bool, x, y float32) {
	if pressed {
		w.drag.press(button, x, y)
		return
	}
	w.drag.release(button)
}

// handleCursor forwards the drag delta produced by a cursor move, if any.
func (w *engineWindow) handleCursor(x, y float32) {
	if button, dx, dy, ok := w.drag.move(x, y); ok && w.onDrag != nil {
		w.onDrag(button, dx, dy)
	}
}
