package window

import "sync"

// frameQueue holds work for the main loop. Posted tasks may come from any goroutine; frame
// callbacks requested during an iteration run in the following one, so a callback that
// re-requests itself runs once per iteration.
type frameQueue struct {
	mu     sync.Mutex
	posted []func()
	frames []func()
}

// Post queues fn to run on the main thread before the next batch of frame callbacks.
func (q *frameQueue) Post(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.posted = append(q.posted, fn)
}

// RequestFrame queues fn to run once in the next iteration.
func (q *frameQueue) RequestFrame(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.frames = append(q.frames, fn)
}

// pending reports whether any work is queued.
func (q *frameQueue) pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.posted) > 0 || len(q.frames) > 0
}

// runIteration drains posted tasks, then runs the frame callbacks that were queued before the call.
//
// Returns:
//   - int: the number of frame callbacks run
func (q *frameQueue) runIteration() int {
	q.mu.Lock()
	posted, frames := q.posted, q.frames
	q.posted, q.frames = nil, nil
	q.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
	for _, fn := range frames {
		fn()
	}
	return len(frames)
}
