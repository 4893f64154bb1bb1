package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

const shadowDepthFormat = wgpu.TextureFormatDepth32Float

// layout returns the cached layout for descriptor, creating it on first use. Callers hold b.mu.
func (b *wgpuBackend) layout(descriptor wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	if l, ok := b.layouts[descriptor.Label]; ok {
		return l, nil
	}
	l, err := b.device.CreateBindGroupLayout(&descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group layout %q: %w", descriptor.Label, err)
	}
	b.layouts[descriptor.Label] = l
	return l, nil
}

// shaderModule compiles WGSL source. Callers hold b.mu.
func (b *wgpuBackend) shaderModule(label, code string) (*wgpu.ShaderModule, error) {
	return b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
}

func (b *wgpuBackend) RegisterPipeline(p pipeline.Pipeline) error {
	vs, fs := p.VertexStage(), p.FragmentStage()
	switch p.Type() {
	case pipeline.PipelineTypeRender:
		if vs.Source == "" || fs.Source == "" {
			return errors.New("render pipeline needs vertex and fragment shaders")
		}
	case pipeline.PipelineTypeShadow:
		if vs.Source == "" {
			return errors.New("shadow pipeline needs a vertex shader")
		}
	default:
		return fmt.Errorf("unsupported pipeline type %s", p.Type())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := p.PipelineKey()
	descriptors := p.BindGroupLayouts()
	groups := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g, d := range descriptors {
		l, err := b.layout(d)
		if err != nil {
			return fmt.Errorf("group %d: %w", g, err)
		}
		groups[g] = l
	}
	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            key,
		BindGroupLayouts: groups,
	})
	if err != nil {
		return err
	}
	defer layout.Release()

	vsModule, err := b.shaderModule(key+" vs", vs.Source)
	if err != nil {
		return err
	}
	defer vsModule.Release()

	depth := p.Depth()
	desc := wgpu.RenderPipelineDescriptor{
		Label:  key,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vsModule,
			EntryPoint: vs.Entry,
			Buffers:    p.VertexLayouts(),
		},
		Primitive:   p.Primitive(),
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              shadowDepthFormat,
			DepthWriteEnabled:   true,
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           depth.Bias,
			DepthBiasSlopeScale: depth.SlopeScale,
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	}

	if p.Type() == pipeline.PipelineTypeRender {
		fsModule := vsModule
		if fs.Source != vs.Source {
			if fsModule, err = b.shaderModule(key+" fs", fs.Source); err != nil {
				return err
			}
			defer fsModule.Release()
		}
		desc.Fragment = &wgpu.FragmentState{
			Module:     fsModule,
			EntryPoint: fs.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    b.format,
				Blend:     p.Blend(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
		desc.Multisample.Count = uint32(b.sampleCount)
		desc.DepthStencil.Format = wgpu.TextureFormatDepth24Plus
		desc.DepthStencil.DepthWriteEnabled = depth.Write
		if !depth.Test {
			desc.DepthStencil.DepthCompare = wgpu.CompareFunctionAlways
		}
	}

	created, err := b.device.CreateRenderPipeline(&desc)
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

// uploadBuffer creates a buffer sized to data and queues data into it. Callers hold b.mu.
func (b *wgpuBackend) uploadBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.uploadBuffer(provider.Label()+" vertices", wgpu.BufferUsageVertex, vertexData)
		if err != nil {
			return err
		}
		provider.SetVertexBuffer(buf)
	}
	if len(indexData) > 0 {
		buf, err := b.uploadBuffer(provider.Label()+" indices", wgpu.BufferUsageIndex, indexData)
		if err != nil {
			return err
		}
		provider.SetIndexBuffer(buf)
	}
	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	if len(descriptor.Entries) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	layout, err := b.layout(descriptor)
	if err != nil {
		return err
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(descriptor.Entries))
	for _, le := range descriptor.Entries {
		binding := int(le.Binding)
		entry := wgpu.BindGroupEntry{Binding: le.Binding}
		switch {
		case le.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if entry.TextureView = provider.TextureView(binding); entry.TextureView == nil {
				return fmt.Errorf("%s: binding %d has no texture view", provider.Label(), binding)
			}
		case le.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if entry.Sampler = provider.Sampler(binding); entry.Sampler == nil {
				return fmt.Errorf("%s: binding %d has no sampler", provider.Label(), binding)
			}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s uniform %d", provider.Label(), binding),
					Size:  le.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			entry.Buffer = buf
			entry.Size = wgpu.WholeSize
		}
		entries = append(entries, entry)
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label(),
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(group)
	return nil
}

func (b *wgpuBackend) InitTextureView(label string, stagingData common.TextureStagingData, format wgpu.TextureFormat) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, h := stagingData.Width, stagingData.Height
	tex, view, err := b.renderTarget(label, int(w), int(h), 1, format, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create texture %q: %w", label, err)
	}
	extent := wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, Aspect: wgpu.TextureAspectAll},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&extent,
	)
	return view, tex, nil
}

func (b *wgpuBackend) InitSampler(label string, samplerStagingData common.SamplerStagingData) (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateSampler(samplerStagingData.Descriptor(label))
}

func (b *wgpuBackend) CreateShadowDepthTexture(size int) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, view, err := b.renderTarget("shadow map", size, size, 1, shadowDepthFormat,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %dx%d shadow map: %w", size, size, err)
	}
	return view, tex, nil
}

func (b *wgpuBackend) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "shadow comparison",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comparison sampler: %w", err)
	}
	return s, nil
}

func (b *wgpuBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range writes {
		if buf := w.Provider.Buffer(w.Binding); buf != nil {
			b.queue.WriteBuffer(buf, w.Offset, w.Data)
		}
	}
}
