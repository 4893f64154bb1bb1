package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption configures a provider in NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureView attaches a borrowed texture view.
//
// Parameters:
//   - binding: the binding index in the group layout
//   - tv: the view, owned by the texture cache
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetTextureView(binding, tv)
	}
}

// WithSampler attaches a borrowed sampler.
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetSampler(binding, s)
	}
}
