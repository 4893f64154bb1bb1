package renderer

import (
	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode selects how finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync presents on vertical blank. Frames are capped at the refresh rate and never tear.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as soon as a frame is ready, which may tear.
	PresentModeUncapped
)

// MSAASampleCount is the sample count of the main pass color and depth attachments.
// WebGPU guarantees 1 and 4; anything else depends on the adapter.
type MSAASampleCount uint32

const (
	// MSAAOff renders one sample per pixel.
	MSAAOff MSAASampleCount = 1

	// MSAA4x renders four samples per pixel and resolves into the swapchain. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend owns the GPU device and records the two passes of a frame: an optional
// depth-only shadow pass and the main lit pass. Only one pass is open at a time and DrawCall
// encodes into whichever is open.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and rebuilds the size-dependent MSAA and
	// depth attachments.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode records the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: PresentModeVSync or PresentModeUncapped
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the main pass clear color.
	//
	// Parameters:
	//   - c: the clear color, linear
	SetClearColor(c wgpu.Color)

	// RegisterPipeline compiles p for the pass its type targets and stores the GPU pipeline on p.
	//
	// Parameters:
	//   - p: a render or shadow pipeline
	//
	// Returns:
	//   - error: an error if a shader is missing, the type is unsupported or creation fails
	RegisterPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads a mesh and stores its vertex and index buffers on provider.
	//
	// Parameters:
	//   - provider: receives the buffers and the index count
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices in indexData
	//
	// Returns:
	//   - error: an error if a buffer cannot be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the bind group for provider. Uniform buffers that are missing are
	// created at the layout's minimum binding size; texture views and samplers must already be set.
	//
	// Parameters:
	//   - provider: holds the resources of the group
	//   - descriptor: the group's layout
	//
	// Returns:
	//   - error: an error if a texture view or sampler is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads RGBA8 pixels to a new 2D texture.
	//
	// Parameters:
	//   - label: debug label
	//   - stagingData: pixels and dimensions
	//   - format: RGBA8UnormSrgb for color maps, RGBA8Unorm for data maps
	//
	// Returns:
	//   - *wgpu.TextureView: a view of the whole texture
	//   - *wgpu.Texture: the texture; the caller releases both
	//   - error: an error if creation fails
	InitTextureView(label string, stagingData common.TextureStagingData, format wgpu.TextureFormat) (*wgpu.TextureView, *wgpu.Texture, error)

	// InitSampler creates a filtering sampler. Zero fields fall back to linear filtering and
	// repeat addressing.
	//
	// Parameters:
	//   - label: debug label
	//   - samplerStagingData: the sampler settings
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler, owned by the caller
	//   - error: an error if creation fails
	InitSampler(label string, samplerStagingData common.SamplerStagingData) (*wgpu.Sampler, error)

	// CreateShadowDepthTexture creates a single-sample Depth32Float texture that is rendered by
	// the shadow pass and sampled by the lit pass.
	//
	// Parameters:
	//   - size: width and height in texels
	//
	// Returns:
	//   - *wgpu.TextureView: the depth view
	//   - *wgpu.Texture: the texture; the caller releases both
	//   - error: an error if creation fails
	CreateShadowDepthTexture(size int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateComparisonSampler creates the clamped, linearly filtered depth comparison sampler
	// used for shadow lookups.
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// WriteBuffers queues uniform writes. Writes to providers without a buffer at the binding are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginShadowPass opens a depth-only pass that clears and stores depthView.
	//
	// Parameters:
	//   - depthView: the shadow map
	//
	// Returns:
	//   - error: an error if another pass is open or the encoder cannot be created
	BeginShadowPass(depthView *wgpu.TextureView) error

	// EndShadowPass closes the shadow pass and submits it.
	EndShadowPass()

	// BeginFrame acquires the next swapchain image and opens the main pass.
	//
	// Returns:
	//   - error: an error if another pass is open, the previous image was not presented or
	//     acquisition fails
	BeginFrame() error

	// DrawCall encodes one indexed draw into the open pass. Without an open pass it does nothing.
	//
	// Parameters:
	//   - p: a registered pipeline matching the open pass
	//   - meshProvider: holds the vertex and index buffers
	//   - bindGroups: set at groups 0, 1, ... in order
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the main pass and submits it. Present shows the result.
	EndFrame()

	// Present shows the acquired swapchain image and releases it.
	Present()

	// Release frees the attachments, layouts, device, surface and instance.
	Release()
}
