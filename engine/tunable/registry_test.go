package tunable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatParam(name string, v *float32, lo, hi float32) Param {
	return Param{
		Name: name,
		Get:  func() float32 { return *v },
		Set:  func(x float32) { *v = x },
		Min:  lo,
		Max:  hi,
		Step: 0.001,
	}
}

func TestSetClampsToRange(t *testing.T) {
	var intensity float32 = 0.12
	r := NewRegistry()
	require.NoError(t, r.Register(floatParam("moon.intensity", &intensity, 0, 1)))

	got, err := r.Set("moon.intensity", 3)
	require.NoError(t, err)
	assert.Equal(t, float32(1), got)
	assert.Equal(t, float32(1), intensity)

	got, err = r.Set("moon.intensity", -2)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = r.Set("moon.intensity", 0.5)
	require.NoError(t, err)
	v, err := r.Get("moon.intensity")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)
}

func TestUnknownParam(t *testing.T) {
	r := NewRegistry()
	_, err := r.Set("sun.intensity", 1)
	assert.ErrorIs(t, err, ErrUnknownParam)
	_, err = r.Get("sun.intensity")
	assert.ErrorIs(t, err, ErrUnknownParam)
	_, ok := r.Param("sun.intensity")
	assert.False(t, ok)
}

func TestRegisterValidates(t *testing.T) {
	var v float32
	r := NewRegistry()
	assert.ErrorIs(t, r.Register(Param{Name: "x"}), ErrInvalidParam)
	assert.ErrorIs(t, r.Register(floatParam("", &v, 0, 1)), ErrInvalidParam)
	assert.ErrorIs(t, r.Register(floatParam("x", &v, 1, 0)), ErrInvalidParam)
}

func TestNamesSortedAndSnapshot(t *testing.T) {
	a, b, c := float32(1), float32(2), float32(3)
	r := NewRegistry()
	require.NoError(t, r.Register(floatParam("moon.y", &b, -5, 5)))
	require.NoError(t, r.Register(floatParam("ambient.intensity", &a, 0, 1)))
	require.NoError(t, r.Register(floatParam("moon.x", &c, -5, 5)))

	assert.Equal(t, []string{"ambient.intensity", "moon.x", "moon.y"}, r.Names())
	assert.Equal(t, map[string]float32{"ambient.intensity": 1, "moon.x": 3, "moon.y": 2}, r.Snapshot())
}
