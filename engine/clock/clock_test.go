package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockTickAccumulates(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(ft.now)

	assert.Equal(t, float32(0), c.Elapsed())

	ft.advance(500 * time.Millisecond)
	assert.Equal(t, float32(0.5), c.Tick())
	assert.Equal(t, float32(0.5), c.Delta())

	ft.advance(250 * time.Millisecond)
	assert.Equal(t, float32(0.75), c.Tick())
	assert.Equal(t, float32(0.25), c.Delta())
	assert.Equal(t, float32(0.75), c.Elapsed())
}

func TestClockElapsedDoesNotSample(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(ft.now)

	ft.advance(time.Second)
	assert.Equal(t, float32(0), c.Elapsed())
	c.Tick()
	assert.Equal(t, float32(1), c.Elapsed())
}

func TestClockIsMonotonic(t *testing.T) {
	ft := &fakeTime{t: time.Unix(50, 0)}
	c := NewClock(ft.now)

	ft.advance(2 * time.Second)
	c.Tick()
	ft.advance(-time.Second)
	assert.Equal(t, float32(2), c.Tick())
	assert.Equal(t, float32(0), c.Delta())
}

func TestClockReset(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(ft.now)

	ft.advance(3 * time.Second)
	c.Tick()
	c.Reset()
	assert.Equal(t, float32(0), c.Elapsed())

	ft.advance(time.Second)
	assert.Equal(t, float32(1), c.Tick())
}

func TestNewClockDefaultsToWallTime(t *testing.T) {
	c := NewClock(nil)
	assert.GreaterOrEqual(t, c.Tick(), float32(0))
}
