package texture

import (
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// WrapMode controls how texture coordinates outside [0, 1] are resolved along one axis.
type WrapMode int

const (
	// WrapClamp clamps coordinates to the edge texels.
	WrapClamp WrapMode = iota
	// WrapRepeat tiles the image.
	WrapRepeat
)

// AddressMode returns the sampler address mode matching the wrap mode.
func (w WrapMode) AddressMode() wgpu.AddressMode {
	if w == WrapRepeat {
		return wgpu.AddressModeRepeat
	}
	return wgpu.AddressModeClampToEdge
}

// Texture is an opaque handle to decoded image data plus its repeat/wrap state.
// The pixel data is immutable; only the repeat and wrap settings change, through TextureCache.ConfigureRepeat.
type Texture interface {
	// Path returns the logical path the texture was loaded from.
	//
	// Returns:
	//   - string: the cache key
	Path() string

	// Size returns the pixel dimensions.
	//
	// Returns:
	//   - uint32: width in pixels
	//   - uint32: height in pixels
	Size() (uint32, uint32)

	// StagingData returns the RGBA pixels ready for GPU upload.
	//
	// Returns:
	//   - common.TextureStagingData: the pixel data and dimensions
	StagingData() common.TextureStagingData

	// Repeat returns how many times the image tiles across the surface along U and V.
	//
	// Returns:
	//   - float32: the U repeat factor
	//   - float32: the V repeat factor
	Repeat() (float32, float32)

	// Wrap returns the wrap mode along U (S) and V (T).
	//
	// Returns:
	//   - WrapMode: the U wrap mode
	//   - WrapMode: the V wrap mode
	Wrap() (WrapMode, WrapMode)

	// SamplerData returns the sampler configuration implied by the wrap modes.
	//
	// Returns:
	//   - common.SamplerStagingData: sampler settings for the renderer
	SamplerData() common.SamplerStagingData

	// Placeholder reports whether the asset failed to load and this handle stands in for it.
	//
	// Returns:
	//   - bool: true for a placeholder texture
	Placeholder() bool
}

type textureImpl struct {
	mu *sync.Mutex

	path        string
	pixels      []byte
	width       uint32
	height      uint32
	placeholder bool

	repeatU, repeatV float32
	wrapS, wrapT     WrapMode
}

var _ Texture = &textureImpl{}

func newTexture(path string, pixels []byte, width, height uint32) *textureImpl {
	return &textureImpl{
		mu:      &sync.Mutex{},
		path:    path,
		pixels:  pixels,
		width:   width,
		height:  height,
		repeatU: 1,
		repeatV: 1,
		wrapS:   WrapClamp,
		wrapT:   WrapClamp,
	}
}

// newPlaceholder returns an opaque white 2x2 texture standing in for a missing asset.
func newPlaceholder(path string) *textureImpl {
	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = 0xFF
	}
	t := newTexture(path, pixels, 2, 2)
	t.placeholder = true
	return t
}

func (t *textureImpl) Path() string {
	return t.path
}

func (t *textureImpl) Size() (uint32, uint32) {
	return t.width, t.height
}

func (t *textureImpl) StagingData() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: t.pixels,
		Width:  t.width,
		Height: t.height,
	}
}

func (t *textureImpl) Repeat() (float32, float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repeatU, t.repeatV
}

func (t *textureImpl) Wrap() (WrapMode, WrapMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wrapS, t.wrapT
}

func (t *textureImpl) SamplerData() common.SamplerStagingData {
	s, tt := t.Wrap()
	return common.SamplerStagingData{
		AddressModeU:  s.AddressMode(),
		AddressModeV:  tt.AddressMode(),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		MaxAnisotropy: 1,
	}
}

func (t *textureImpl) Placeholder() bool {
	return t.placeholder
}

func (t *textureImpl) setRepeat(u, v float32, wrap WrapMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repeatU, t.repeatV = u, v
	t.wrapS, t.wrapT = wrap, wrap
}
