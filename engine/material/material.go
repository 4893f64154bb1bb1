package material

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// Channel names a texture slot of a material.
type Channel string

const (
	ChannelColor            Channel = "color"
	ChannelAlpha            Channel = "alpha"
	ChannelNormal           Channel = "normal"
	ChannelRoughness        Channel = "roughness"
	ChannelMetalness        Channel = "metalness"
	ChannelAmbientOcclusion Channel = "ambientOcclusion"
	ChannelDisplacement     Channel = "displacement"
)

// Channels lists every channel in the order the renderer binds them.
var Channels = []Channel{
	ChannelColor,
	ChannelAlpha,
	ChannelAmbientOcclusion,
	ChannelDisplacement,
	ChannelNormal,
	ChannelRoughness,
	ChannelMetalness,
}

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         mgl32.Vec3
	metalness         float32
	roughness         float32
	transparent       bool
	displacementScale float32
	displacementBias  float32
	channels          map[Channel]texture.Texture
}

// Material is an immutable description of how a surface is shaded: scalar parameters plus an
// optional texture per channel. A Material is shared by pointer between every node that looks the same.
//
// A channel with no texture falls back to the scalar value (base color, roughness, metalness) or
// to a neutral default (opaque alpha, no occlusion, flat normal, no displacement).
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the sRGB diffuse color, multiplied with the color map when one is bound.
	//
	// Returns:
	//   - mgl32.Vec3: the base color
	BaseColor() mgl32.Vec3

	// Metalness retrieves the metalness factor, multiplied with the metalness map when one is bound.
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// Roughness retrieves the roughness factor, multiplied with the roughness map when one is bound.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Transparent reports whether the surface is alpha blended.
	//
	// Returns:
	//   - bool: true for blended surfaces
	Transparent() bool

	// DisplacementScale retrieves how far, in local units, a white displacement texel pushes a vertex along its normal.
	//
	// Returns:
	//   - float32: the displacement scale
	DisplacementScale() float32

	// DisplacementBias retrieves the constant offset added after scaling the displacement sample.
	//
	// Returns:
	//   - float32: the displacement bias
	DisplacementBias() float32

	// Channel retrieves the texture bound to a channel.
	//
	// Parameters:
	//   - c: the channel
	//
	// Returns:
	//   - texture.Texture: the bound texture, or nil
	Channel(c Channel) texture.Texture

	// BoundChannels retrieves the channels that have a texture, in binding order.
	//
	// Returns:
	//   - []Channel: the bound channels
	BoundChannels() []Channel

	// UVRepeat retrieves the UV tiling applied to every channel. It is the repeat of the color
	// map, or of the first bound channel when there is no color map, or (1, 1).
	//
	// Returns:
	//   - float32: repeat along U
	//   - float32: repeat along V
	UVRepeat() (float32, float32)
}

var _ Material = &material{}

// NewMaterial creates an immutable Material. Without options it is an untextured, opaque,
// fully rough white dielectric.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Material: the new material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: mgl32.Vec3{1, 1, 1},
		roughness: 1,
		channels:  make(map[Channel]texture.Texture),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() mgl32.Vec3 {
	return m.baseColor
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) DisplacementScale() float32 {
	return m.displacementScale
}

func (m *material) DisplacementBias() float32 {
	return m.displacementBias
}

func (m *material) Channel(c Channel) texture.Texture {
	return m.channels[c]
}

func (m *material) BoundChannels() []Channel {
	out := make([]Channel, 0, len(m.channels))
	for _, c := range Channels {
		if _, ok := m.channels[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (m *material) UVRepeat() (float32, float32) {
	if tex := m.channels[ChannelColor]; tex != nil {
		return tex.Repeat()
	}
	for _, c := range Channels {
		if tex := m.channels[c]; tex != nil {
			return tex.Repeat()
		}
	}
	return 1, 1
}
