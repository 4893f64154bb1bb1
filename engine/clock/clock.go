// Package clock provides the monotonic elapsed-time accumulator driving per-frame animation.
package clock

import (
	"sync"
	"time"
)

// TimeSource returns the current instant. time.Now is used unless a test supplies its own.
type TimeSource func() time.Time

// Clock accumulates elapsed time since construction.
// Only the render loop advances it; everything else reads the last sampled value.
type Clock interface {
	// Tick samples the time source and updates the elapsed value.
	//
	// Returns:
	//   - float32: seconds elapsed since construction or the last Reset
	Tick() float32

	// Elapsed returns the value computed by the most recent Tick without sampling the time source.
	//
	// Returns:
	//   - float32: seconds elapsed as of the last Tick
	Elapsed() float32

	// Delta returns the seconds between the two most recent ticks.
	//
	// Returns:
	//   - float32: the last frame's duration in seconds
	Delta() float32

	// Reset restarts the accumulator at zero.
	Reset()
}

type clockImpl struct {
	mu      *sync.Mutex
	now     TimeSource
	start   time.Time
	elapsed time.Duration
	delta   time.Duration
}

var _ Clock = &clockImpl{}

// NewClock creates a Clock starting at the current instant.
//
// Parameters:
//   - now: optional time source; nil selects time.Now
//
// Returns:
//   - Clock: the new clock
func NewClock(now TimeSource) Clock {
	if now == nil {
		now = time.Now
	}
	return &clockImpl{
		mu:    &sync.Mutex{},
		now:   now,
		start: now(),
	}
}

func (c *clockImpl) Tick() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	// time.Time carries a monotonic reading, so Sub is immune to wall clock jumps.
	elapsed := c.now().Sub(c.start)
	if elapsed < c.elapsed {
		elapsed = c.elapsed
	}
	c.delta = elapsed - c.elapsed
	c.elapsed = elapsed
	return float32(c.elapsed.Seconds())
}

func (c *clockImpl) Elapsed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(c.elapsed.Seconds())
}

func (c *clockImpl) Delta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(c.delta.Seconds())
}

func (c *clockImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.elapsed = 0
	c.delta = 0
}
