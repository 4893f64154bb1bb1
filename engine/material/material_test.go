package material

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) texture.TextureCache {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return texture.NewTextureCache(texture.WithFS(fstest.MapFS{
		"grass/color.png":     {Data: buf.Bytes()},
		"grass/roughness.png": {Data: buf.Bytes()},
		"door/height.png":     {Data: buf.Bytes()},
	}))
}

func TestDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Equal(t, float32(0), m.Metalness())
	assert.False(t, m.Transparent())
	assert.Empty(t, m.BoundChannels())
	for _, c := range Channels {
		assert.Nil(t, m.Channel(c))
	}
	u, v := m.UVRepeat()
	assert.Equal(t, float32(1), u)
	assert.Equal(t, float32(1), v)
}

func TestOptionsAreApplied(t *testing.T) {
	cache := newCache(t)
	height := cache.Load("door/height.png")

	m := NewMaterial(
		WithName("door"),
		WithBaseColor(mgl32.Vec3{0.5, 0.25, 0}),
		WithTransparent(true),
		WithDisplacementScale(0.1),
		WithDisplacementBias(-0.05),
		WithMetalness(1),
		WithRoughness(0.3),
		WithChannel(ChannelDisplacement, height),
		WithChannel(ChannelNormal, nil),
	)

	assert.Equal(t, "door", m.Name())
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 0}, m.BaseColor())
	assert.True(t, m.Transparent())
	assert.Equal(t, float32(0.1), m.DisplacementScale())
	assert.Equal(t, float32(-0.05), m.DisplacementBias())
	assert.Equal(t, float32(1), m.Metalness())
	assert.Equal(t, float32(0.3), m.Roughness())
	assert.Same(t, height, m.Channel(ChannelDisplacement))
	assert.Equal(t, []Channel{ChannelDisplacement}, m.BoundChannels())
}

func TestChannelMapIsCopied(t *testing.T) {
	cache := newCache(t)
	channels := map[Channel]texture.Texture{
		ChannelColor:     cache.Load("grass/color.png"),
		ChannelRoughness: cache.Load("grass/roughness.png"),
	}
	m := NewMaterial(WithChannels(channels))

	delete(channels, ChannelColor)
	channels[ChannelAlpha] = cache.Load("door/height.png")

	assert.Equal(t, []Channel{ChannelColor, ChannelRoughness}, m.BoundChannels())
	assert.Nil(t, m.Channel(ChannelAlpha))
}

func TestUVRepeatFollowsColorChannel(t *testing.T) {
	cache := newCache(t)
	color := cache.Load("grass/color.png")
	rough := cache.Load("grass/roughness.png")
	cache.ConfigureRepeat(color, 8, 8, texture.WrapRepeat)
	cache.ConfigureRepeat(rough, 2, 3, texture.WrapRepeat)

	u, v := NewMaterial(WithChannel(ChannelColor, color), WithChannel(ChannelRoughness, rough)).UVRepeat()
	assert.Equal(t, float32(8), u)
	assert.Equal(t, float32(8), v)

	u, v = NewMaterial(WithChannel(ChannelRoughness, rough)).UVRepeat()
	assert.Equal(t, float32(2), u)
	assert.Equal(t, float32(3), v)
}
