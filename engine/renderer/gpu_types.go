package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUFrameUniform is the GPU-aligned per-frame block bound at group 0 by both the lit and the
// shadow pipelines. Matches the WGSL Frame struct in assets/lit.wgsl and assets/shadow.wgsl.
// Size: 496 bytes.
type GPUFrameUniform struct {
	Camera        camera.GPUCameraUniform // offset   0: view-projection and eye position (80 bytes)
	LightViewProj [16]float32             // offset  80: shadow-casting light's view-projection
	FogColor      [4]float32              // offset 144: linear RGB fog color, w unused
	FogParams     [4]float32              // offset 160: x = near, y = far, z = 1 when enabled
	Lights        light.GPULights         // offset 176: light block (320 bytes)
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (496)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 496-byte buffer ready for GPU upload
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	copy(buf[0:80], g.Camera.Marshal())
	putFloats(buf[80:144], g.LightViewProj[:])
	putFloats(buf[144:160], g.FogColor[:])
	putFloats(buf[160:176], g.FogParams[:])
	copy(buf[176:496], g.Lights.Marshal())
	return buf
}

// NewGPUFrameUniform snapshots the scene's camera, environment and lights into the frame block.
// The light view-projection is taken from the first enabled directional light that casts shadows.
//
// Parameters:
//   - s: the scene being rendered
//
// Returns:
//   - GPUFrameUniform: the packed frame block
func NewGPUFrameUniform(s scene.Scene) GPUFrameUniform {
	var g GPUFrameUniform
	if cam := s.Camera(); cam != nil {
		g.Camera = camera.NewGPUCameraUniform(cam)
	}
	lights := s.Lights()
	g.Lights = light.BuildGPULights(lights)
	g.LightViewProj = [16]float32(shadowViewProjection(lights))

	fog := s.Fog()
	fc := common.LinearColor(fog.Color)
	g.FogColor = [4]float32{fc[0], fc[1], fc[2], 1}
	g.FogParams = [4]float32{fog.Near, fog.Far, 0, 0}
	if fog.Enabled {
		g.FogParams[2] = 1
	}
	return g
}

// Bits of GPUDrawUniform.Flags[0], one per material channel in material.Channels order.
const (
	flagColorMap uint32 = 1 << iota
	flagAlphaMap
	flagAOMap
	flagDisplacementMap
	flagNormalMap
	flagRoughnessMap
	flagMetalnessMap
)

// GPUDrawUniform is the GPU-aligned per-node block bound at group 1, binding 0.
// Matches the WGSL Draw struct in assets/lit.wgsl and assets/shadow.wgsl.
// Size: 192 bytes.
type GPUDrawUniform struct {
	Model          [16]float32 // offset   0: world matrix
	NormalMatrix   [16]float32 // offset  64: inverse-transpose of the world matrix
	BaseColor      [4]float32  // offset 128: linear RGB base color, w = opacity
	UVDisplacement [4]float32  // offset 144: x, y = UV repeat, z = displacement scale, w = displacement bias
	Surface        [4]float32  // offset 160: x = roughness, y = metalness
	Flags          [4]uint32   // offset 176: x = bound channel mask, y = receives shadows, z = transparent
}

// Size returns the size of the GPUDrawUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDrawUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:128], g.NormalMatrix[:])
	putFloats(buf[128:144], g.BaseColor[:])
	putFloats(buf[144:160], g.UVDisplacement[:])
	putFloats(buf[160:176], g.Surface[:])
	putUints(buf[176:192], g.Flags[:])
	return buf
}

// NewGPUDrawUniform packs a draw item. A nil material draws as opaque white.
//
// Parameters:
//   - item: the draw item
//
// Returns:
//   - GPUDrawUniform: the packed draw block
func NewGPUDrawUniform(item DrawItem) GPUDrawUniform {
	g := GPUDrawUniform{
		Model:          [16]float32(item.Model),
		NormalMatrix:   [16]float32(item.Normal),
		BaseColor:      [4]float32{1, 1, 1, 1},
		UVDisplacement: [4]float32{1, 1, 0, 0},
		Surface:        [4]float32{1, 0, 0, 0},
	}
	if item.ReceiveShadow {
		g.Flags[1] = 1
	}
	m := item.Material
	if m == nil {
		return g
	}
	c := common.LinearColor(m.BaseColor())
	g.BaseColor = [4]float32{c[0], c[1], c[2], 1}
	u, v := m.UVRepeat()
	g.UVDisplacement = [4]float32{u, v, m.DisplacementScale(), m.DisplacementBias()}
	g.Surface = [4]float32{m.Roughness(), m.Metalness(), 0, 0}
	g.Flags[0] = ChannelMask(m)
	if m.Transparent() {
		g.Flags[2] = 1
	}
	return g
}

// ChannelMask returns the bit set of channels bound to a real texture. Placeholder textures
// stand in for missing assets and count as unbound, so the scalar fallback is used instead.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - uint32: bit i set when material.Channels[i] is bound
func ChannelMask(m material.Material) uint32 {
	var mask uint32
	for i, ch := range material.Channels {
		if tex := m.Channel(ch); tex != nil && !tex.Placeholder() {
			mask |= 1 << i
		}
	}
	return mask
}

// clearColor converts an sRGB background into the linear clear value of the main pass.
func clearColor(srgb mgl32.Vec3) wgpu.Color {
	c := common.LinearColor(srgb)
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

func putUints(dst []byte, src []uint32) {
	for i, u := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], u)
	}
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
