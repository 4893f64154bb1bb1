package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), WithTimeSource(func() time.Time { return now }))

	for i := 0; i < 59; i++ {
		now = now.Add(16 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = time.Unix(1, 0)
	require.True(t, p.Tick())

	s := p.Last()
	assert.Equal(t, 60, s.WindowFrames)
	assert.InDelta(t, 60, s.FPS, 1e-9)
	assert.Positive(t, s.SysMB)

	now = now.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
}
