package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAnchor struct {
	m mgl32.Mat4
}

func (a fixedAnchor) WorldMatrix() mgl32.Mat4 { return a.m }

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(2), l.Decay())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
	assert.Equal(t, DefaultShadowMapSize, l.Shadow().MapSize)
}

func TestAmbientLightHasNoPositionOrShadow(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithPosition(1, 2, 3), WithCastsShadows(true))
	assert.Equal(t, mgl32.Vec3{}, l.Position())
	assert.False(t, l.CastsShadows())

	l.SetPosition(4, 5, 6)
	l.SetCastsShadows(true)
	l.SetShadow(ShadowConfig{Cast: true, MapSize: 256})
	assert.Equal(t, mgl32.Vec3{}, l.Position())
	assert.False(t, l.CastsShadows())
	assert.Equal(t, 256, l.Shadow().MapSize)
}

func TestWorldPositionFollowsParent(t *testing.T) {
	parent := fixedAnchor{m: mgl32.Translate3D(10, 0, -1)}
	l := NewLight(LightTypePoint, WithPosition(0, 2.2, 2.7), WithParent(parent))

	assert.Equal(t, mgl32.Vec3{0, 2.2, 2.7}, l.Position())
	assert.True(t, l.WorldPosition().ApproxEqual(mgl32.Vec3{10, 2.2, 1.7}))
}

func TestDirectionalLightAimsAtTarget(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(4, 5, -2))
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{-4, -5, 2}.Normalize()))

	l.SetTarget(4, 0, -2)
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{0, -1, 0}))
}

func TestShadowViewProjectionOnlyForDirectional(t *testing.T) {
	_, ok := NewLight(LightTypePoint).ShadowViewProjection()
	assert.False(t, ok)

	l := NewLight(LightTypeDirectional, WithPosition(0, 5, 0), WithShadow(ShadowConfig{
		Cast: true, MapSize: 256, Near: 0.5, Far: 7, HalfExtent: 5,
	}))
	vp, ok := l.ShadowViewProjection()
	require.True(t, ok)

	// Straight down with up=(0,0,1): the origin lands at depth (5-0.5)/(7-0.5).
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X(), 1e-5)
	assert.InDelta(t, 0, clip.Y(), 1e-5)
	assert.InDelta(t, 4.5/6.5, clip.Z(), 1e-5)
	for _, f := range vp {
		assert.False(t, math.IsNaN(float64(f)))
	}
}

func TestSettersMutateInPlace(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	l.SetIntensity(0.5)
	l.SetColor(0.1, 0.2, 0.3)
	l.SetPosition(1, 2, 3)
	l.SetEnabled(false)
	l.SetCastsShadows(true)

	assert.Equal(t, float32(0.5), l.Intensity())
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, l.Color())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())
	assert.False(t, l.Enabled())
	assert.True(t, l.CastsShadows())
}

func TestBuildGPULights(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithColor(mgl32.Vec3{1, 1, 1}), WithIntensity(0.5)),
		NewLight(LightTypeDirectional, WithPosition(0, 1, 0), WithIntensity(2), WithCastsShadows(true)),
		NewLight(LightTypeDirectional, WithPosition(1, 0, 0)),
		NewLight(LightTypePoint, WithPosition(1, 2, 3), WithRange(7)),
		NewLight(LightTypePoint, WithEnabled(false)),
		nil,
	}
	for i := 0; i < MaxGPUPointLights+2; i++ {
		lights = append(lights, NewLight(LightTypePoint))
	}

	g := BuildGPULights(lights)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0}, g.Ambient)
	assert.Equal(t, [4]float32{2, 2, 2, 1}, g.DirColor)
	assert.InDelta(t, 1, g.DirVector[1], 1e-6)
	assert.Equal(t, uint32(MaxGPUPointLights), g.Counts[0])
	assert.Equal(t, [4]float32{1, 2, 3, 7}, g.Points[0].PositionRange)

	buf := g.Marshal()
	require.Len(t, buf, 320)
	assert.Equal(t, uint32(MaxGPUPointLights), binary.LittleEndian.Uint32(buf[48:52]))
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:80])))
}

func TestLightTypeString(t *testing.T) {
	assert.Equal(t, "ambient", LightTypeAmbient.String())
	assert.Equal(t, "directional", LightTypeDirectional.String())
	assert.Equal(t, "point", LightTypePoint.String())
}
