package light

// DefaultShadowMapSize is the default width and height in texels of a light's shadow depth texture.
const DefaultShadowMapSize = 512

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// used for the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 5.0

// DefaultShadowNear is the default near plane of a light's shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane of a light's shadow projection.
const DefaultShadowFar float32 = 500.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.002

// ShadowConfig describes how a light renders its shadow map.
type ShadowConfig struct {
	// Cast enables shadow map generation for the light.
	Cast bool
	// MapSize is the width and height of the square shadow map in texels.
	MapSize int
	// Near and Far bound the depth range captured by the shadow map.
	Near, Far float32
	// HalfExtent is the orthographic half-width of a directional light's shadow frustum.
	HalfExtent float32
	// Bias is subtracted from the receiver depth before comparison.
	Bias float32
}

// DefaultShadowConfig returns shadow settings with casting disabled.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		MapSize:    DefaultShadowMapSize,
		Near:       DefaultShadowNear,
		Far:        DefaultShadowFar,
		HalfExtent: DefaultShadowHalfExtent,
		Bias:       DefaultShadowBias,
	}
}
