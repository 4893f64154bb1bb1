package material

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the sRGB diffuse color of the material.
//
// Parameters:
//   - color: the base color as RGB values in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithTransparent is an option builder that marks the material as alpha blended.
//
// Parameters:
//   - transparent: whether the material is blended
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithDisplacementScale is an option builder that sets the displacement scale. Only meaningful
// together with a displacement channel on finely tessellated geometry.
//
// Parameters:
//   - scale: the displacement distance for a white texel
//
// Returns:
//   - MaterialBuilderOption: a function that applies the displacement scale to a material
func WithDisplacementScale(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.displacementScale = scale
	}
}

// WithDisplacementBias is an option builder that sets the displacement bias.
//
// Parameters:
//   - bias: the constant offset added to every displacement
//
// Returns:
//   - MaterialBuilderOption: a function that applies the displacement bias to a material
func WithDisplacementBias(bias float32) MaterialBuilderOption {
	return func(m *material) {
		m.displacementBias = bias
	}
}

// WithChannel is an option builder that binds a texture to a channel. A nil texture leaves the
// channel unbound.
//
// Parameters:
//   - c: the channel
//   - tex: the texture handle
//
// Returns:
//   - MaterialBuilderOption: a function that binds the texture
func WithChannel(c Channel, tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		if tex == nil {
			delete(m.channels, c)
			return
		}
		m.channels[c] = tex
	}
}

// WithChannels is an option builder that binds several textures at once. The map is copied.
//
// Parameters:
//   - channels: the channel to texture mapping
//
// Returns:
//   - MaterialBuilderOption: a function that binds the textures
func WithChannels(channels map[Channel]texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		for c, tex := range channels {
			WithChannel(c, tex)(m)
		}
	}
}
