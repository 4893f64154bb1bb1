package common

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses a CSS-style hex color ("#rrggbb" or "#rgb") into sRGB
// components in [0, 1].
//
// Parameters:
//   - hex: the color string, with the leading '#'
//
// Returns:
//   - mgl32.Vec3: the red, green and blue components
//   - error: an error if the string is not a valid hex color
func ParseHexColor(hex string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// MustHexColor is ParseHexColor for compile-time constants. It panics on malformed input.
func MustHexColor(hex string) mgl32.Vec3 {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// LinearColor converts an sRGB color to linear space for lighting math.
func LinearColor(srgb mgl32.Vec3) mgl32.Vec3 {
	r, g, b := colorful.Color{R: float64(srgb[0]), G: float64(srgb[1]), B: float64(srgb[2])}.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}
}

// HexString formats a color back into "#rrggbb" form.
func HexString(c mgl32.Vec3) string {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().Hex()
}
