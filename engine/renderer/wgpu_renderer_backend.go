package renderer

import (
	"errors"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	errPassOpen        = errors.New("renderer: a pass is already open")
	errImageNotPresent = errors.New("renderer: previous swapchain image not presented")
)

// openPass is the pass currently being recorded together with its encoder.
type openPass struct {
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

// finish ends the pass and submits its command buffer.
func (o *openPass) finish(queue *wgpu.Queue) error {
	defer o.encoder.Release()
	o.pass.End()
	o.pass.Release()
	commands, err := o.encoder.Finish(nil)
	if err != nil {
		return err
	}
	queue.Submit(commands)
	commands.Release()
	return nil
}

// attachments are the size-dependent targets of the main pass.
type attachments struct {
	msaa      *wgpu.Texture
	msaaView  *wgpu.TextureView
	depth     *wgpu.Texture
	depthView *wgpu.TextureView
}

func (a *attachments) release() {
	for _, v := range []*wgpu.TextureView{a.msaaView, a.depthView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{a.msaa, a.depth} {
		if t != nil {
			t.Release()
		}
	}
	*a = attachments{}
}

type wgpuBackend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	format      wgpu.TextureFormat
	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color
	targets     attachments

	// Layouts are keyed by descriptor label so that groups built for one pipeline bind on another.
	layouts map[string]*wgpu.BindGroupLayout

	current   *openPass
	image     *wgpu.Texture
	imageView *wgpu.TextureView
}

var _ RendererBackend = &wgpuBackend{}

// newWGPUBackend acquires an adapter and device compatible with the window surface. Failing to
// get a GPU is not recoverable, so it panics.
func newWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) *wgpuBackend {
	runtime.LockOSThread()

	b := &wgpuBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: max(sampleCount, MSAAOff),
		clearColor:  wgpu.Color{A: 1},
		layouts:     make(map[string]*wgpu.BindGroupLayout),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "haunted house device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		panic(err)
	}
	b.device = device
	b.queue = device.GetQueue()
	return b
}

// renderTarget creates a single-mip 2D texture and a view of it.
func (b *wgpuBackend) renderTarget(label string, width, height int, samples uint32, format wgpu.TextureFormat, usage wgpu.TextureUsage) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

func (b *wgpuBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	caps := b.surface.GetCapabilities(b.adapter)
	b.format = caps.Formats[0]
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})

	b.targets.release()
	samples := uint32(b.sampleCount)
	var err error
	if samples > 1 {
		b.targets.msaa, b.targets.msaaView, err = b.renderTarget("msaa color", width, height, samples, b.format, wgpu.TextureUsageRenderAttachment)
		if err != nil {
			panic(err)
		}
	}
	b.targets.depth, b.targets.depthView, err = b.renderTarget("main depth", width, height, samples, wgpu.TextureFormatDepth24Plus, wgpu.TextureUsageRenderAttachment)
	if err != nil {
		panic(err)
	}
}

func (b *wgpuBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mode == PresentModeUncapped {
		b.presentMode = wgpu.PresentModeImmediate
		return
	}
	b.presentMode = wgpu.PresentModeFifo
}

func (b *wgpuBackend) SetClearColor(c wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = c
}

func (b *wgpuBackend) BeginShadowPass(depthView *wgpu.TextureView) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		return errPassOpen
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	b.current = &openPass{encoder: encoder, pass: pass}
	return nil
}

func (b *wgpuBackend) EndShadowPass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endPass()
}

// endPass submits the open pass. Callers hold b.mu.
func (b *wgpuBackend) endPass() {
	if b.current == nil {
		return
	}
	o := b.current
	b.current = nil
	// A failed Finish drops the pass; the next frame starts clean.
	_ = o.finish(b.queue)
}

func (b *wgpuBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil {
		return errPassOpen
	}
	// wgpu-native refuses to hand out a second image before the first is presented.
	if b.image != nil {
		return errImageNotPresent
	}

	image, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := image.CreateView(nil)
	if err != nil {
		image.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		image.Release()
		return err
	}

	color := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.targets.msaaView != nil {
		// Draw into the multisampled target and resolve into the swapchain image.
		color.View = b.targets.msaaView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.targets.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1,
		},
	})

	b.current = &openPass{encoder: encoder, pass: pass}
	b.image, b.imageView = image, view
	return nil
}

func (b *wgpuBackend) DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return
	}

	pass := b.current.pass
	pass.SetPipeline(p.RenderPipeline())
	for group, provider := range bindGroups {
		pass.SetBindGroup(uint32(group), provider.BindGroup(), nil)
	}
	pass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(meshProvider.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endPass()
}

func (b *wgpuBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.image == nil {
		return
	}
	b.surface.Present()
	b.imageView.Release()
	b.image.Release()
	b.image, b.imageView = nil, nil
}

func (b *wgpuBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.targets.release()
	for label, layout := range b.layouts {
		layout.Release()
		delete(b.layouts, label)
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.queue, b.device, b.adapter, b.surface, b.instance = nil, nil, nil, nil, nil
}
