package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ErrRendererReleased is returned by Render after Release.
var ErrRendererReleased = errors.New("renderer: released")

// Stats summarises the most recent frame.
type Stats struct {
	// Frames is the number of frames submitted since creation.
	Frames uint64
	// Drawn is the number of draw calls in the main pass.
	Drawn int
	// Culled is the number of items rejected by the camera frustum.
	Culled int
	// ShadowDraws is the number of draw calls in the shadow pass.
	ShadowDraws int
	// Meshes, Textures and Samplers count the GPU resources currently cached.
	Meshes   int
	Textures int
	Samplers int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backend   RendererBackend
	resources *resourceCache

	width, height int
	pixelRatio    float32

	stats    Stats
	last     DrawList
	released bool

	// Settings read once when the backend is created.
	software    bool
	presentMode PresentMode
	msaa        MSAASampleCount
}

// Renderer draws a scene graph with a forward lit pass preceded by a directional shadow pass.
//
// Each Render call extracts a DrawList from the scene, uploads the per-frame and per-node uniform
// blocks, renders shadow casters into the shadow map, then draws opaque items followed by
// transparent items sorted back to front. GPU resources for geometries, textures and samplers
// are created on first use and shared across nodes.
type Renderer interface {
	// Render draws one frame of the scene and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: an error if a GPU resource could not be created or the swapchain texture could not be acquired
	Render(s scene.Scene) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPixelRatio records the device pixel ratio the surface size was derived from.
	//
	// Parameters:
	//   - ratio: the clamped device pixel ratio
	SetPixelRatio(ratio float32)

	// PixelRatio returns the last ratio passed to SetPixelRatio, 1 by default.
	PixelRatio() float32

	// Size returns the surface size in pixels.
	Size() (int, int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Pipeline retrieves the registered Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Stats returns counters for the most recent frame.
	Stats() Stats

	// LastDrawList returns the draw list of the most recent frame.
	LastDrawList() DrawList

	// Release frees every GPU resource. Render fails afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on the given surface and registers the scene pipelines.
// The surface descriptor is platform-specific and is typically obtained from Window.SurfaceDescriptor().
// It panics if no GPU adapter or device is available.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor for WebGPU surface creation
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if a pipeline could not be created
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		pixelRatio:    1,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	r.backend = newWGPUBackend(surfaceDescriptor, r.software, r.msaa)
	r.backend.SetPresentMode(r.presentMode)

	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
	r.resources = newResourceCache(r.backend)

	opaque, transparent, shadow := newScenePipelines()
	if err := r.registerPipelines(opaque, transparent, shadow); err != nil {
		r.backend.Release()
		return nil, err
	}

	logger.Log.Info("renderer ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Uint32("msaa", uint32(r.msaa)),
		zap.Bool("software", r.software),
	)
	return r, nil
}

// registerPipelines creates the GPU pipeline objects and caches them by PipelineKey.
// Keys already registered are skipped.
func (r *renderer) registerPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) LastDrawList() DrawList {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *renderer) Render(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrRendererReleased
	}

	list := BuildDrawList(s)
	live := make(map[scene.Node]struct{})
	s.Root().Traverse(func(n scene.Node) bool {
		live[n] = struct{}{}
		return true
	})
	r.resources.prune(live)

	bg := s.Background()
	r.backend.SetClearColor(clearColor(bg))

	// Frame-wide groups: group 0 (camera, fog, lights) and group 2 (shadow map).
	frame, err := r.resources.frameGroup()
	if err != nil {
		return err
	}
	shadowLight := ShadowLight(s.Lights())
	shadowSize := 1
	if shadowLight != nil {
		shadowSize = max(shadowLight.Shadow().MapSize, 1)
	}
	shadowGroup, err := r.resources.shadowGroup(shadowSize)
	if err != nil {
		return err
	}

	frameUniform := NewGPUFrameUniform(s)
	writes := []bind_group_provider.BufferWrite{
		{Provider: frame, Binding: 0, Offset: 0, Data: frameUniform.Marshal()},
	}

	// Per-node groups for every item in either pass.
	draws := make(map[scene.Node]drawResources, len(list.Opaque)+len(list.Transparent)+len(list.Casters))
	prepare := func(items []DrawItem) error {
		for _, item := range items {
			if _, done := draws[item.Node]; done {
				continue
			}
			res, err := r.resources.drawResources(item)
			if err != nil {
				return err
			}
			draws[item.Node] = res
			u := NewGPUDrawUniform(item)
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: res.draw,
				Binding:  bindingDrawUniform,
				Offset:   0,
				Data:     u.Marshal(),
			})
		}
		return nil
	}
	for _, items := range [][]DrawItem{list.Casters, list.Opaque, list.Transparent} {
		if err := prepare(items); err != nil {
			return err
		}
	}
	r.backend.WriteBuffers(writes)

	shadowDraws := 0
	if shadowLight != nil && len(list.Casters) > 0 {
		p := r.pipelineCache[PipelineKeyShadow]
		if err := r.backend.BeginShadowPass(r.resources.shadowView); err != nil {
			return fmt.Errorf("failed to begin shadow pass: %w", err)
		}
		for _, item := range list.Casters {
			res := draws[item.Node]
			r.backend.DrawCall(p, res.mesh, []bind_group_provider.BindGroupProvider{frame, res.draw})
			shadowDraws++
		}
		r.backend.EndShadowPass()
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	opaque := r.pipelineCache[PipelineKeyOpaque]
	for _, item := range list.Opaque {
		res := draws[item.Node]
		r.backend.DrawCall(opaque, res.mesh, []bind_group_provider.BindGroupProvider{frame, res.draw, shadowGroup})
	}
	transparent := r.pipelineCache[PipelineKeyTransparent]
	for _, item := range list.Transparent {
		res := draws[item.Node]
		r.backend.DrawCall(transparent, res.mesh, []bind_group_provider.BindGroupProvider{frame, res.draw, shadowGroup})
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.last = list
	r.stats.Frames++
	r.stats.Drawn = list.Len()
	r.stats.Culled = list.Culled
	r.stats.ShadowDraws = shadowDraws
	r.stats.Meshes, r.stats.Textures, r.stats.Samplers = r.resources.counts()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.resources.release()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}

// meshBytes packs a mesh into little-endian vertex and index buffers.
func meshBytes(m *geometry.Mesh) ([]byte, []byte) {
	vertices := make([]byte, len(m.Vertices)*int(geometry.VertexStride))
	for i, v := range m.Vertices {
		dst := vertices[i*int(geometry.VertexStride):]
		putFloats(dst[0:12], v.Position[:])
		putFloats(dst[12:24], v.Normal[:])
		putFloats(dst[24:32], v.UV[:])
	}
	indices := make([]byte, len(m.Indices)*4)
	putUints(indices, m.Indices)
	return vertices, indices
}
