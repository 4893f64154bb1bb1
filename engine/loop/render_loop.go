// Package loop drives the per-frame update and render sequence on top of a host frame scheduler.
package loop

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/hauntedhouse/engine/clock"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/profiler"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"go.uber.org/zap"
)

// ErrLoopStopped is returned by Start once the loop has been stopped. A stopped loop cannot restart.
var ErrLoopStopped = errors.New("loop: render loop stopped")

// State is the lifecycle state of a RenderLoop.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FrameScheduler is the host's display-refresh hook. RequestFrame queues fn to run once on the next frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Renderer draws a scene. Errors are logged by the loop and never stop it.
type Renderer interface {
	Render(s scene.Scene) error
}

// Updater advances time-driven scene state, such as orbiting lights, once per frame.
type Updater interface {
	// Update is called with the clock's elapsed seconds before the camera step and the render.
	Update(elapsed float32)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(elapsed float32)

// Update calls f(elapsed).
func (f UpdaterFunc) Update(elapsed float32) {
	f(elapsed)
}

// RenderLoop is the animation state machine. Each frame ticks the clock, runs the updaters,
// steps the camera controller, renders, then yields to the scheduler for the next frame.
type RenderLoop interface {
	// Start moves Idle to Running and schedules the first frame. Starting a running loop is a no-op.
	//
	// Returns:
	//   - error: ErrLoopStopped if the loop was stopped
	Start() error

	// Stop moves the loop to Stopped and closes Done. A frame already executing finishes; any frame
	// callback that runs afterwards returns without rendering or rescheduling. Safe to call repeatedly.
	Stop()

	// State returns the current lifecycle state.
	State() State

	// Frames returns how many frames have rendered.
	Frames() uint64

	// Done is closed when the loop stops.
	Done() <-chan struct{}
}

type renderLoop struct {
	state  atomic.Int32
	frames atomic.Uint64

	done     chan struct{}
	stopOnce sync.Once

	s         scene.Scene
	r         Renderer
	scheduler FrameScheduler

	clock    clock.Clock
	updaters []Updater
	onFrame  func(elapsed float32)
	profiler *profiler.Profiler
}

var _ RenderLoop = &renderLoop{}

// NewRenderLoop creates an idle RenderLoop. The scene, renderer and scheduler are required and
// NewRenderLoop panics if any of them is nil.
//
// Parameters:
//   - s: the scene to animate and draw
//   - r: the renderer
//   - scheduler: the host frame scheduler
//   - options: functional options to configure the loop
//
// Returns:
//   - RenderLoop: the idle loop
func NewRenderLoop(s scene.Scene, r Renderer, scheduler FrameScheduler, options ...RenderLoopBuilderOption) RenderLoop {
	if s == nil || r == nil || scheduler == nil {
		panic("loop: NewRenderLoop requires a scene, renderer and scheduler")
	}
	l := &renderLoop{
		done:      make(chan struct{}),
		s:         s,
		r:         r,
		scheduler: scheduler,
	}
	for _, option := range options {
		option(l)
	}
	if l.clock == nil {
		l.clock = clock.NewClock(nil)
	}
	return l
}

func (l *renderLoop) Start() error {
	if l.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		l.scheduler.RequestFrame(l.frame)
		return nil
	}
	if l.State() == StateStopped {
		return ErrLoopStopped
	}
	return nil
}

func (l *renderLoop) Stop() {
	l.state.Store(int32(StateStopped))
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *renderLoop) State() State {
	return State(l.state.Load())
}

func (l *renderLoop) Frames() uint64 {
	return l.frames.Load()
}

func (l *renderLoop) Done() <-chan struct{} {
	return l.done
}

// stopped reports whether Stop has been called.
func (l *renderLoop) stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// frame runs one iteration of the loop and requests the next.
func (l *renderLoop) frame() {
	if l.stopped() {
		return
	}

	t := l.clock.Tick()
	for _, u := range l.updaters {
		u.Update(t)
	}

	if cam := l.s.Camera(); cam != nil {
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Update()
		}
		cam.Update()
	}

	if err := l.r.Render(l.s); err != nil {
		logger.Log.Warn("render failed", zap.Uint64("frame", l.frames.Load()), zap.Error(err))
	}
	l.frames.Add(1)

	if l.onFrame != nil {
		l.onFrame(t)
	}
	if l.profiler != nil {
		l.profiler.Tick()
	}

	if l.stopped() {
		return
	}
	l.scheduler.RequestFrame(l.frame)
}
