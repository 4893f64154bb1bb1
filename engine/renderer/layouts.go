package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// commonSource declares the Frame and Draw structs shared by every shader module.
// Matches GPUFrameUniform and GPUDrawUniform exactly.
//
//go:embed assets/common.wgsl
var commonSource string

//go:embed assets/lit.wgsl
var litSource string

//go:embed assets/shadow.wgsl
var shadowSource string

// Pipeline keys.
const (
	PipelineKeyOpaque      = "lit_opaque"
	PipelineKeyTransparent = "lit_transparent"
	PipelineKeyShadow      = "shadow_depth"
)

// Bind group indices shared by the lit and shadow pipelines.
const (
	groupFrame  = 0
	groupDraw   = 1
	groupShadow = 2
)

// Bindings within the draw group. Texture channels follow material.Channels from bindingFirstTexture.
const (
	bindingDrawUniform  = 0
	bindingDrawSampler  = 1
	bindingFirstTexture = 2
)

// Bindings within the shadow group.
const (
	bindingShadowMap     = 0
	bindingShadowSampler = 1
)

// textureBinding returns the draw group binding index of a material channel.
func textureBinding(i int) int {
	return bindingFirstTexture + i
}

func frameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var frame GPUFrameUniform
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(frame.Size()),
				},
			},
		},
	}
}

func drawLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var draw GPUDrawUniform
	visibility := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    bindingDrawUniform,
			Visibility: visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(draw.Size()),
			},
		},
		{
			Binding:    bindingDrawSampler,
			Visibility: visibility,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
		},
	}
	for i := range material.Channels {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(textureBinding(i)),
			Visibility: visibility,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Draw Bind Group Layout",
		Entries: entries,
	}
}

func shadowLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    bindingShadowMap,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    bindingShadowSampler,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
		},
	}
}

// vertexLayout describes geometry.Vertex: position, normal, uv.
func vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: geometry.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// newScenePipelines describes the three pipelines the scene renderer registers. Transparent
// surfaces blend over opaque ones without writing depth, and shadows are rendered depth-only
// with a slope-scaled bias.
func newScenePipelines() (opaque, transparent, shadow pipeline.Pipeline) {
	lit := commonSource + litSource
	layouts := []wgpu.BindGroupLayoutDescriptor{
		frameLayoutDescriptor(),
		drawLayoutDescriptor(),
		shadowLayoutDescriptor(),
	}
	opaque = pipeline.NewPipeline(PipelineKeyOpaque, pipeline.PipelineTypeRender,
		pipeline.WithVertexStage(lit, "vs_main"),
		pipeline.WithFragmentStage(lit, "fs_main"),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithVertexLayouts(vertexLayout()),
	)
	transparent = pipeline.NewPipeline(PipelineKeyTransparent, pipeline.PipelineTypeRender,
		pipeline.WithVertexStage(lit, "vs_main"),
		pipeline.WithFragmentStage(lit, "fs_main"),
		pipeline.WithBindGroupLayouts(layouts...),
		pipeline.WithVertexLayouts(vertexLayout()),
		pipeline.WithBlend(&pipeline.AlphaBlending),
		pipeline.WithDepthWrite(false),
	)
	shadow = pipeline.NewPipeline(PipelineKeyShadow, pipeline.PipelineTypeShadow,
		pipeline.WithVertexStage(commonSource+shadowSource, "vs_shadow"),
		pipeline.WithBindGroupLayouts(layouts[groupFrame], layouts[groupDraw]),
		pipeline.WithVertexLayouts(vertexLayout()),
		pipeline.WithDepthBias(2, 2.0),
	)
	return opaque, transparent, shadow
}
