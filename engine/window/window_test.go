package window

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/stretchr/testify/assert"
)

func TestFrameQueueRunsPostedBeforeFrames(t *testing.T) {
	var q frameQueue
	var order []string
	q.RequestFrame(func() { order = append(order, "frame") })
	q.Post(func() { order = append(order, "posted") })

	assert.Equal(t, 1, q.runIteration())
	assert.Equal(t, []string{"posted", "frame"}, order)
	assert.False(t, q.pending())
}

func TestFrameQueueDefersReRequests(t *testing.T) {
	var q frameQueue
	runs := 0
	var frame func()
	frame = func() {
		runs++
		q.RequestFrame(frame)
	}
	q.RequestFrame(frame)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, q.runIteration())
	}
	assert.Equal(t, 3, runs)
	assert.True(t, q.pending())
}

func TestFrameQueuePostIsConcurrencySafe(t *testing.T) {
	var q frameQueue
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() { count++ })
		}()
	}
	wg.Wait()
	q.runIteration()
	assert.Equal(t, 50, count)
}

func TestDragTracker(t *testing.T) {
	var d dragTracker
	_, _, _, ok := d.move(10, 10)
	assert.False(t, ok, "no drag without a press")

	d.press(common.MouseButtonLeft, 100, 100)
	d.press(common.MouseButtonRight, 0, 0)
	button, dx, dy, ok := d.move(110, 95)
	assert.True(t, ok)
	assert.Equal(t, uint32(common.MouseButtonLeft), button)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-5), dy)

	d.release(common.MouseButtonRight)
	_, _, _, ok = d.move(120, 95)
	assert.True(t, ok, "releasing another button keeps the drag")

	d.release(common.MouseButtonLeft)
	_, _, _, ok = d.move(130, 95)
	assert.False(t, ok)
}
