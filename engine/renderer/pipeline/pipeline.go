package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineType selects what a pipeline renders into.
type PipelineType int

const (
	// PipelineTypeRender draws shaded color into the swapchain, with vertex and fragment stages.
	PipelineTypeRender PipelineType = iota

	// PipelineTypeShadow writes depth into a shadow map. It has no fragment stage.
	PipelineTypeShadow
)

func (t PipelineType) String() string {
	switch t {
	case PipelineTypeRender:
		return "render"
	case PipelineTypeShadow:
		return "shadow"
	}
	return "unknown"
}

// Stage is one programmable stage: a WGSL module and the entry point to call in it.
type Stage struct {
	Source string
	Entry  string
}

// DepthState is the depth test configuration of a pipeline.
type DepthState struct {
	Test  bool
	Write bool
	// Bias and SlopeScale offset rasterized depth. Shadow pipelines use them against acne.
	Bias       int32
	SlopeScale float32
}

// AlphaBlending is straight alpha "over" compositing.
var AlphaBlending = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

type pipeline struct {
	key   string
	kind  PipelineType
	vs    Stage
	fs    Stage
	depth DepthState
	prim  wgpu.PrimitiveState
	blend *wgpu.BlendState

	groups  []wgpu.BindGroupLayoutDescriptor
	buffers []wgpu.VertexBufferLayout

	gpu *wgpu.RenderPipeline
}

// Pipeline is the CPU-side description of a render pipeline together with the GPU object the
// backend created from it.
type Pipeline interface {
	// Type returns render or shadow.
	Type() PipelineType

	// PipelineKey returns the name the renderer looks the pipeline up by.
	//
	// Returns:
	//   - string: the key, also used as the GPU label
	PipelineKey() string

	VertexStage() Stage

	// FragmentStage returns the fragment stage. Its Source is empty for shadow pipelines.
	FragmentStage() Stage

	// BindGroupLayouts returns one layout descriptor per group, in group order.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns one layout per vertex buffer slot.
	VertexLayouts() []wgpu.VertexBufferLayout

	Depth() DepthState
	Primitive() wgpu.PrimitiveState

	// Blend returns the blend equation, or nil when the pipeline overwrites the target.
	Blend() *wgpu.BlendState

	// RenderPipeline returns nil until the backend registers the pipeline.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline is called by the backend once the GPU pipeline exists.
	//
	// Parameters:
	//   - rp: the created pipeline, owned by this Pipeline from now on
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release frees the GPU pipeline, if any.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline describes a pipeline with depth test and write on, no blending, no culling,
// counter-clockwise triangle lists and the entry points vs_main and fs_main.
//
// Parameters:
//   - key: the lookup key and GPU label
//   - kind: render or shadow
//   - opts: stage, layout and state options
//
// Returns:
//   - Pipeline: the description, not yet registered with a backend
func NewPipeline(key string, kind PipelineType, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:   key,
		kind:  kind,
		vs:    Stage{Entry: "vs_main"},
		fs:    Stage{Entry: "fs_main"},
		depth: DepthState{Test: true, Write: true},
		prim: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Type() PipelineType { return p.kind }
func (p *pipeline) PipelineKey() string { return p.key }
func (p *pipeline) VertexStage() Stage { return p.vs }
func (p *pipeline) FragmentStage() Stage { return p.fs }
func (p *pipeline) Depth() DepthState { return p.depth }
func (p *pipeline) Primitive() wgpu.PrimitiveState { return p.prim }
func (p *pipeline) Blend() *wgpu.BlendState { return p.blend }

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.groups
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.buffers
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.gpu
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.gpu = rp
}

func (p *pipeline) Release() {
	if p.gpu == nil {
		return
	}
	p.gpu.Release()
	p.gpu = nil
}
