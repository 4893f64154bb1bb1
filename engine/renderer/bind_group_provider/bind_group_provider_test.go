package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderStartsEmpty(t *testing.T) {
	p := NewBindGroupProvider("walls draw")

	assert.Equal(t, "walls draw", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(2))
	assert.Nil(t, p.Sampler(1))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestReleaseForgetsBorrowedResources(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithTextureView(2, nil), WithSampler(1, nil))
	p.SetIndexCount(36)

	p.Release()

	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.TextureView(2))
	assert.Nil(t, p.Sampler(1))
}
