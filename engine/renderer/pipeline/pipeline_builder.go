package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a pipeline in NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexStage sets the vertex module and entry point.
//
// Parameters:
//   - source: WGSL source
//   - entryPoint: the @vertex function
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithVertexStage(source, entryPoint string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vs = Stage{Source: source, Entry: entryPoint}
	}
}

// WithFragmentStage sets the fragment module and entry point. When source equals the vertex
// source the backend compiles it once.
func WithFragmentStage(source, entryPoint string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fs = Stage{Source: source, Entry: entryPoint}
	}
}

// WithBindGroupLayouts sets the group layouts, group 0 first.
//
// Parameters:
//   - layouts: the descriptors
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBindGroupLayouts(layouts ...wgpu.BindGroupLayoutDescriptor) PipelineBuilderOption {
	return func(p *pipeline) {
		p.groups = layouts
	}
}

// WithVertexLayouts sets the vertex buffer layouts, slot 0 first.
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.buffers = layouts
	}
}

// WithDepthTest turns the depth comparison on or off. Off means every fragment passes.
func WithDepthTest(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depth.Test = enabled
	}
}

// WithDepthWrite controls whether passing fragments update the depth buffer.
func WithDepthWrite(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depth.Write = enabled
	}
}

// WithDepthBias sets the rasterizer depth offset.
//
// Parameters:
//   - bias: constant offset in depth buffer units
//   - slopeScale: offset scaled by the polygon's depth slope
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depth.Bias = bias
		p.depth.SlopeScale = slopeScale
	}
}

// WithBlend sets the blend equation. Pass &AlphaBlending for transparent surfaces, nil to disable.
func WithBlend(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = state
	}
}

// WithCullMode sets which faces are discarded.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.prim.CullMode = mode
	}
}
