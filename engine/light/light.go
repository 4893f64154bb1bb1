package light

import (
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents uniform fill light with no position or direction.
	// It never casts shadows.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents parallel rays from a distant source such as the moon.
	// The rays travel from the light's position toward its target.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint
)

// String returns the lowercase light kind.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// Anchor is anything with a world transform a light can be positioned relative to, such as a scene node.
type Anchor interface {
	WorldMatrix() mgl32.Mat4
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	name       string
	lightType  LightType
	position   mgl32.Vec3
	target     mgl32.Vec3
	color      mgl32.Vec3
	intensity  float32
	lightRange float32
	decay      float32
	enabled    bool
	shadow     ShadowConfig
	parent     Anchor
}

// Light defines the interface for a light source in the scene.
//
// Lights live in the scene's light list rather than in the node hierarchy. A light with a parent
// anchor has its position expressed in the anchor's local space. Only the light's position,
// intensity and color are expected to change after construction.
type Light interface {
	// Name returns the identifier of the light.
	//
	// Returns:
	//   - string: the light name
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, directional, or point)
	Type() LightType

	// Position returns the position of the light in its parent's space, or world space without a parent.
	// Always zero for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// WorldPosition returns the position transformed by the parent anchor.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	WorldPosition() mgl32.Vec3

	// Target returns the world-space point a directional light shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: the target point
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// Meaningful for directional lights only.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the sRGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the distance at which a point light's contribution reaches zero.
	// Zero means unlimited.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Decay returns the exponent of a point light's distance falloff.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Parent returns the anchor the light is positioned relative to, or nil.
	//
	// Returns:
	//   - Anchor: the parent anchor
	Parent() Anchor

	// Shadow returns the shadow configuration of the light.
	//
	// Returns:
	//   - ShadowConfig: the current shadow settings
	Shadow() ShadowConfig

	// CastsShadows returns whether this light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowViewProjection returns the light-space matrix for a directional light's shadow map.
	//
	// Returns:
	//   - mgl32.Mat4: the orthographic view-projection matrix
	//   - bool: false for light kinds without a single-view shadow map
	ShadowViewProjection() (mgl32.Mat4, bool)

	// SetPosition sets the position of the light. Ignored for ambient lights.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the world-space point a directional light aims at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the sRGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetShadow replaces the shadow configuration. Ambient lights never cast shadows, so Cast is forced off for them.
	//
	// Parameters:
	//   - shadow: the new shadow settings
	SetShadow(shadow ShadowConfig)

	// SetCastsShadows toggles shadow casting while keeping the rest of the shadow configuration.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (ambient, directional, or point)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		decay:     2,
		enabled:   true,
		shadow:    DefaultShadowConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lightType == LightTypeAmbient {
		l.position = mgl32.Vec3{}
		l.shadow.Cast = false
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) WorldPosition() mgl32.Vec3 {
	l.mu.Lock()
	pos, parent := l.position, l.parent
	l.mu.Unlock()

	if parent == nil {
		return pos
	}
	return parent.WorldMatrix().Mul4x1(pos.Vec4(1)).Vec3()
}

func (l *lightImpl) Target() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.Target().Sub(l.WorldPosition())
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) Parent() Anchor {
	return l.parent
}

func (l *lightImpl) Shadow() ShadowConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadow
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadow.Cast
}

func (l *lightImpl) ShadowViewProjection() (mgl32.Mat4, bool) {
	if l.lightType != LightTypeDirectional {
		return mgl32.Ident4(), false
	}
	shadow := l.Shadow()
	eye := l.WorldPosition()
	target := l.Target()

	up := mgl32.Vec3{0, 1, 0}
	if d := target.Sub(eye); d.Len() > 0 && math32.Abs(d.Normalize().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := common.LookAt(eye, target, up)
	h := shadow.HalfExtent
	proj := common.Orthographic(-h, h, -h, h, shadow.Near, shadow.Far)
	return proj.Mul4(view), true
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	if l.lightType == LightTypeAmbient {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = mgl32.Vec3{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetShadow(shadow ShadowConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lightType == LightTypeAmbient {
		shadow.Cast = false
	}
	l.shadow = shadow
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shadow.Cast = castsShadows && l.lightType != LightTypeAmbient
}
