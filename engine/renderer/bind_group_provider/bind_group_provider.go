package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// slot is what sits at one binding index of a group. Exactly one field is set.
type slot struct {
	buffer  *wgpu.Buffer
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

// meshBuffers are the vertex and index buffers of one geometry.
type meshBuffers struct {
	vertex *wgpu.Buffer
	index  *wgpu.Buffer
	count  int
}

type bindGroupProvider struct {
	label string
	group *wgpu.BindGroup
	slots map[int]slot
	mesh  meshBuffers
}

// BindGroupProvider carries the GPU objects behind either a mesh or a bind group.
//
// The renderer keeps one provider per geometry, holding only the mesh buffers, and one per
// bind group (the frame uniforms, the shadow map, and the draw uniforms of every visible node).
// Uniform buffers are created and owned by the provider. Texture views and samplers are
// borrowed from the texture cache and shared, so they outlive any single provider.
type BindGroupProvider interface {
	// Release frees the owned buffers and the bind group. Borrowed bindings are dropped.
	Release()

	Label() string

	// BindGroup returns nil until the backend has built the group.
	BindGroup() *wgpu.BindGroup

	// Buffer, TextureView and Sampler return the resource at a binding index, or nil.
	Buffer(binding int) *wgpu.Buffer
	TextureView(binding int) *wgpu.TextureView
	Sampler(binding int) *wgpu.Sampler

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer

	// IndexCount is the number of uint32 indices in IndexBuffer.
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a uniform buffer the provider will own.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a borrowed view.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the view
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a borrowed sampler.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler
	SetSampler(binding int, s *wgpu.Sampler)

	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a provider with no GPU objects yet.
//
// Parameters:
//   - label: used to name every GPU object created for the provider
//   - options: borrowed bindings to attach up front
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{label: label, slots: make(map[int]slot)}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup { return p.group }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer { return p.mesh.vertex }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer { return p.mesh.index }
func (p *bindGroupProvider) IndexCount() int { return p.mesh.count }
func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) { p.group = bg }
func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) { p.mesh.vertex = buf }
func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) { p.mesh.index = buf }
func (p *bindGroupProvider) SetIndexCount(count int) { p.mesh.count = count }

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.slots[binding].buffer
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.slots[binding].view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.slots[binding].sampler
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.slots[binding] = slot{buffer: buf}
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.slots[binding] = slot{view: tv}
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.slots[binding] = slot{sampler: s}
}

func (p *bindGroupProvider) Release() {
	for _, s := range p.slots {
		if s.buffer != nil {
			s.buffer.Release()
		}
	}
	clear(p.slots)

	if p.group != nil {
		p.group.Release()
	}
	if p.mesh.vertex != nil {
		p.mesh.vertex.Release()
	}
	if p.mesh.index != nil {
		p.mesh.index.Release()
	}
	p.group = nil
	p.mesh = meshBuffers{}
}
