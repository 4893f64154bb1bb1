package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption configures a light in NewLight.
type LightBuilderOption func(*lightImpl)

// WithName sets the name the scene and the tunables look the light up by.
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition sets the local position. With a parent it is relative to the parent's transform.
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the point a directional light shines toward. Defaults to the origin.
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = mgl32.Vec3{x, y, z}
	}
}

// WithColor sets the light color in sRGB. The renderer linearizes it.
//
// Parameters:
//   - color: r, g and b in [0, 1]
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the distance past which a point light contributes nothing. 0 means no cutoff.
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithDecay sets the falloff exponent of a point light. 2 is inverse square.
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithParent makes the light follow an anchor, usually a scene node.
//
// Parameters:
//   - parent: the anchor; its world matrix is applied to the local position every frame
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithParent(parent Anchor) LightBuilderOption {
	return func(l *lightImpl) {
		l.parent = parent
	}
}

// WithShadow replaces the whole shadow configuration.
func WithShadow(shadow ShadowConfig) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow = shadow
	}
}

// WithCastsShadows toggles shadow casting and keeps the rest of the shadow configuration.
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow.Cast = castsShadows
	}
}
