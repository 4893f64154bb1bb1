package haunted

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
)

// AppBuilderOption is a functional option applied to an App during construction via NewApp.
type AppBuilderOption func(*App)

// WithRand replaces the seeded random source used for grave placement.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithRand(rng Rand) AppBuilderOption {
	return func(a *App) {
		a.rng = rng
	}
}

// WithTextureCache replaces the texture cache rooted at the configured asset directory.
//
// Parameters:
//   - cache: the texture cache
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithTextureCache(cache texture.TextureCache) AppBuilderOption {
	return func(a *App) {
		a.Textures = cache
	}
}
