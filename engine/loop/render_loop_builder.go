package loop

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/clock"
	"github.com/Carmen-Shannon/hauntedhouse/engine/profiler"
)

// RenderLoopBuilderOption is a functional option for configuring a RenderLoop.
type RenderLoopBuilderOption func(*renderLoop)

// WithClock sets the clock ticked once per frame. Defaults to a wall clock started at construction.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithClock(c clock.Clock) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.clock = c
	}
}

// WithUpdaters appends per-frame updaters. They run in order before the camera step.
//
// Parameters:
//   - updaters: the updaters to run
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithUpdaters(updaters ...Updater) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.updaters = append(l.updaters, updaters...)
	}
}

// WithOnFrame registers a hook that runs after each render.
//
// Parameters:
//   - fn: the hook, receiving the clock's elapsed seconds
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithOnFrame(fn func(elapsed float32)) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.onFrame = fn
	}
}

// WithProfiler ticks a profiler after every frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.profiler = p
	}
}
