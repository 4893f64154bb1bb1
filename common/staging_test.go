package common

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSamplerDescriptorDefaults(t *testing.T) {
	d := SamplerStagingData{}.Descriptor("grass")

	assert.Equal(t, "grass", d.Label)
	assert.Equal(t, wgpu.AddressModeRepeat, d.AddressModeU)
	assert.Equal(t, wgpu.FilterModeLinear, d.MinFilter)
	assert.Equal(t, float32(32), d.LodMaxClamp)
	assert.Equal(t, uint16(1), d.MaxAnisotropy)
}

func TestSamplerDescriptorKeepsExplicitValues(t *testing.T) {
	d := SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		Compare:      wgpu.CompareFunctionLess,
	}.Descriptor("shadow")

	assert.Equal(t, wgpu.AddressModeClampToEdge, d.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, d.AddressModeV)
	assert.Equal(t, wgpu.CompareFunctionLess, d.Compare)
}
