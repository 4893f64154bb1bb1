package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("lit", PipelineTypeRender)

	assert.Equal(t, "lit", p.PipelineKey())
	assert.Equal(t, PipelineTypeRender, p.Type())
	assert.Equal(t, "vs_main", p.VertexStage().Entry)
	assert.Equal(t, "fs_main", p.FragmentStage().Entry)
	assert.Equal(t, DepthState{Test: true, Write: true}, p.Depth())
	assert.Nil(t, p.Blend())
	assert.Equal(t, wgpu.CullModeNone, p.Primitive().CullMode)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Primitive().Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, p.Primitive().FrontFace)
	assert.Nil(t, p.RenderPipeline())
}

func TestBuilderOptions(t *testing.T) {
	layout := wgpu.BindGroupLayoutDescriptor{Label: "frame"}
	vertex := wgpu.VertexBufferLayout{ArrayStride: 32}
	p := NewPipeline("shadow", PipelineTypeShadow,
		WithVertexStage("src", "vs_shadow"),
		WithFragmentStage("frag", "fs_other"),
		WithBindGroupLayouts(layout, layout),
		WithVertexLayouts(vertex),
		WithDepthWrite(false),
		WithDepthTest(false),
		WithDepthBias(2, 1.5),
		WithBlend(&AlphaBlending),
		WithCullMode(wgpu.CullModeFront),
	)

	assert.Equal(t, Stage{Source: "src", Entry: "vs_shadow"}, p.VertexStage())
	assert.Equal(t, Stage{Source: "frag", Entry: "fs_other"}, p.FragmentStage())
	assert.Len(t, p.BindGroupLayouts(), 2)
	assert.Len(t, p.VertexLayouts(), 1)
	assert.Equal(t, DepthState{Bias: 2, SlopeScale: 1.5}, p.Depth())
	assert.Same(t, &AlphaBlending, p.Blend())
	assert.Equal(t, wgpu.CullModeFront, p.Primitive().CullMode)
}

func TestReleaseWithoutGPUPipeline(t *testing.T) {
	p := NewPipeline("lit", PipelineTypeRender)
	assert.NotPanics(t, p.Release)
}

func TestPipelineTypeString(t *testing.T) {
	assert.Equal(t, "render", PipelineTypeRender.String())
	assert.Equal(t, "shadow", PipelineTypeShadow.String())
	assert.Equal(t, "unknown", PipelineType(9).String())
}
