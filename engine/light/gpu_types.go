package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/hauntedhouse/common"
)

// MaxGPUPointLights is the number of point lights the forward shader evaluates per fragment.
// Enabled point lights beyond this budget are ignored, in light-list order.
const MaxGPUPointLights = 8

// GPUPointLight is the GPU-aligned representation of a single point light.
// Size: 32 bytes.
type GPUPointLight struct {
	PositionRange [4]float32 // offset  0: world-space position, w = range (0 = unlimited)
	ColorDecay    [4]float32 // offset 16: linear RGB * intensity, w = decay exponent
}

// GPULights is the GPU-aligned light block embedded in the per-frame uniform.
// Matches the WGSL Lights struct in the lit shader.
// Size: 320 bytes.
type GPULights struct {
	Ambient   [4]float32                       // offset   0: summed linear RGB * intensity of ambient lights
	DirColor  [4]float32                       // offset  16: linear RGB * intensity, w = 1 when the light casts shadows
	DirVector [4]float32                       // offset  32: normalized direction toward the light, w = shadow bias
	Counts    [4]uint32                        // offset  48: x = point light count
	Points    [MaxGPUPointLights]GPUPointLight // offset  64: point lights
}

// Size returns the size of the GPULights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (320)
func (g *GPULights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 320-byte buffer ready for GPU upload
func (g *GPULights) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec4(buf[0:16], g.Ambient)
	putVec4(buf[16:32], g.DirColor)
	putVec4(buf[32:48], g.DirVector)
	for i, c := range g.Counts {
		binary.LittleEndian.PutUint32(buf[48+i*4:52+i*4], c)
	}
	for i, p := range g.Points {
		off := 64 + i*32
		putVec4(buf[off:off+16], p.PositionRange)
		putVec4(buf[off+16:off+32], p.ColorDecay)
	}
	return buf
}

func putVec4(dst []byte, v [4]float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(f))
	}
}

// BuildGPULights folds a light list into the GPU light block. Ambient lights are summed, the
// first enabled directional light is used, and up to MaxGPUPointLights enabled point lights
// are packed in order. Colors are converted from sRGB to linear and premultiplied by intensity.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULights: the packed light block
func BuildGPULights(lights []Light) GPULights {
	var g GPULights
	hasDirectional := false
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c := common.LinearColor(l.Color()).Mul(l.Intensity())
		switch l.Type() {
		case LightTypeAmbient:
			g.Ambient[0] += c[0]
			g.Ambient[1] += c[1]
			g.Ambient[2] += c[2]
		case LightTypeDirectional:
			if hasDirectional {
				continue
			}
			hasDirectional = true
			g.DirColor = [4]float32{c[0], c[1], c[2], 0}
			shadow := l.Shadow()
			if shadow.Cast {
				g.DirColor[3] = 1
			}
			toLight := l.Direction().Mul(-1)
			g.DirVector = [4]float32{toLight[0], toLight[1], toLight[2], shadow.Bias}
		case LightTypePoint:
			n := g.Counts[0]
			if n >= MaxGPUPointLights {
				continue
			}
			p := l.WorldPosition()
			g.Points[n] = GPUPointLight{
				PositionRange: [4]float32{p[0], p[1], p[2], l.Range()},
				ColorDecay:    [4]float32{c[0], c[1], c[2], l.Decay()},
			}
			g.Counts[0]++
		}
	}
	return g
}
