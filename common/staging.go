// Package common holds the math, color and staging helpers shared by the engine packages.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData is a decoded RGBA8 image waiting to be uploaded.
type TextureStagingData struct {
	// Pixels are row-major, four bytes per texel, len(Pixels) == 4*Width*Height.
	Pixels []byte
	Width  uint32
	Height uint32
}

// SamplerStagingData is the CPU-side form of a sampler. Zero fields take the defaults applied by
// Descriptor: repeat addressing, linear filtering, no anisotropy and a full mip range.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	// Compare makes a comparison sampler when set. Shadow lookups use CompareFunctionLess.
	Compare       wgpu.CompareFunction
	MaxAnisotropy uint16
}

// Descriptor fills in the defaults and returns a descriptor ready for CreateSampler.
func (s SamplerStagingData) Descriptor(label string) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   Coalesce(s.LodMaxClamp, 32),
		MaxAnisotropy: Coalesce(s.MaxAnisotropy, 1),
		Compare:       s.Compare,
	}
}

// Coalesce returns the first argument that is not the zero value of T.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
