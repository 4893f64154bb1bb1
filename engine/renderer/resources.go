package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// textureKey identifies one uploaded image. The same file may be uploaded twice when it is used
// both as a color map (sRGB) and as a data map (linear).
type textureKey struct {
	path string
	srgb bool
}

type gpuTexture struct {
	view    *wgpu.TextureView
	texture *wgpu.Texture
}

func (t gpuTexture) release() {
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// drawResources are the providers bound for one draw item.
type drawResources struct {
	mesh bind_group_provider.BindGroupProvider
	draw bind_group_provider.BindGroupProvider
}

// drawEntry remembers what a node's draw group was built from so it can be rebuilt when the
// material's textures or wrap settings change.
type drawEntry struct {
	provider bind_group_provider.BindGroupProvider
	material material.Material
	sampler  common.SamplerStagingData
	textures [len(channelOrder)]texture.Texture
}

// channelOrder is material.Channels as a fixed-size array so it can size per-channel arrays.
var channelOrder = [7]material.Channel{
	material.ChannelColor,
	material.ChannelAlpha,
	material.ChannelAmbientOcclusion,
	material.ChannelDisplacement,
	material.ChannelNormal,
	material.ChannelRoughness,
	material.ChannelMetalness,
}

// resourceCache owns every GPU object the renderer creates for scene content.
// Callers hold the renderer's lock.
type resourceCache struct {
	backend RendererBackend

	frame bind_group_provider.BindGroupProvider

	shadow        bind_group_provider.BindGroupProvider
	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView
	shadowSampler *wgpu.Sampler
	shadowSize    int

	meshes   map[geometry.Geometry]bind_group_provider.BindGroupProvider
	draws    map[scene.Node]*drawEntry
	textures map[textureKey]gpuTexture
	defaults map[material.Channel]gpuTexture
	samplers map[common.SamplerStagingData]*wgpu.Sampler
}

func newResourceCache(backend RendererBackend) *resourceCache {
	return &resourceCache{
		backend:  backend,
		meshes:   make(map[geometry.Geometry]bind_group_provider.BindGroupProvider),
		draws:    make(map[scene.Node]*drawEntry),
		textures: make(map[textureKey]gpuTexture),
		defaults: make(map[material.Channel]gpuTexture),
		samplers: make(map[common.SamplerStagingData]*wgpu.Sampler),
	}
}

func (c *resourceCache) frameGroup() (bind_group_provider.BindGroupProvider, error) {
	if c.frame != nil {
		return c.frame, nil
	}
	frame := bind_group_provider.NewBindGroupProvider("Frame")
	if err := c.backend.InitBindGroup(frame, frameLayoutDescriptor()); err != nil {
		frame.Release()
		return nil, fmt.Errorf("failed to init frame bind group: %w", err)
	}
	c.frame = frame
	return frame, nil
}

// shadowGroup returns the shadow map bind group, recreating the depth texture when the
// requested size changes.
func (c *resourceCache) shadowGroup(size int) (bind_group_provider.BindGroupProvider, error) {
	if c.shadow != nil && c.shadowSize == size {
		return c.shadow, nil
	}

	if c.shadowSampler == nil {
		samp, err := c.backend.CreateComparisonSampler()
		if err != nil {
			return nil, err
		}
		c.shadowSampler = samp
	}

	view, tex, err := c.backend.CreateShadowDepthTexture(size)
	if err != nil {
		return nil, err
	}

	group := bind_group_provider.NewBindGroupProvider("Shadow",
		bind_group_provider.WithTextureView(bindingShadowMap, view),
		bind_group_provider.WithSampler(bindingShadowSampler, c.shadowSampler),
	)
	if err := c.backend.InitBindGroup(group, shadowLayoutDescriptor()); err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("failed to init shadow bind group: %w", err)
	}

	c.releaseShadowMap()
	c.shadow = group
	c.shadowView = view
	c.shadowTexture = tex
	c.shadowSize = size
	logger.Log.Debug("shadow map allocated", zap.Int("size", size))
	return group, nil
}

func (c *resourceCache) releaseShadowMap() {
	if c.shadow != nil {
		c.shadow.Release()
		c.shadow = nil
	}
	if c.shadowView != nil {
		c.shadowView.Release()
		c.shadowView = nil
	}
	if c.shadowTexture != nil {
		c.shadowTexture.Release()
		c.shadowTexture = nil
	}
	c.shadowSize = 0
}

func (c *resourceCache) mesh(geo geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := c.meshes[geo]; ok {
		return p, nil
	}
	m := geo.Mesh()
	vertices, indices := meshBytes(m)
	p := bind_group_provider.NewBindGroupProvider(geo.Label())
	if err := c.backend.InitMeshBuffers(p, vertices, indices, len(m.Indices)); err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to upload mesh %q: %w", geo.Label(), err)
	}
	c.meshes[geo] = p
	return p, nil
}

// drawResources returns the mesh and draw providers for an item, creating or rebuilding them as needed.
func (c *resourceCache) drawResources(item DrawItem) (drawResources, error) {
	mesh, err := c.mesh(item.Geometry)
	if err != nil {
		return drawResources{}, err
	}

	textures := boundTextures(item.Material)
	samplerData := drawSamplerData(textures)

	entry, ok := c.draws[item.Node]
	if ok && entry.material == item.Material && entry.textures == textures && entry.sampler == samplerData {
		return drawResources{mesh: mesh, draw: entry.provider}, nil
	}
	if ok {
		entry.provider.Release()
		delete(c.draws, item.Node)
	}

	samp, err := c.sampler(samplerData)
	if err != nil {
		return drawResources{}, err
	}
	provider := bind_group_provider.NewBindGroupProvider(item.Node.Name(),
		bind_group_provider.WithSampler(bindingDrawSampler, samp),
	)
	for i, ch := range channelOrder {
		view, err := c.channelView(ch, textures[i])
		if err != nil {
			provider.Release()
			return drawResources{}, err
		}
		provider.SetTextureView(textureBinding(i), view)
	}
	if err := c.backend.InitBindGroup(provider, drawLayoutDescriptor()); err != nil {
		provider.Release()
		return drawResources{}, fmt.Errorf("failed to init draw bind group for %q: %w", item.Node.Name(), err)
	}

	c.draws[item.Node] = &drawEntry{
		provider: provider,
		material: item.Material,
		sampler:  samplerData,
		textures: textures,
	}
	return drawResources{mesh: mesh, draw: provider}, nil
}

// channelView returns the view bound for one channel: the uploaded texture, or the channel's
// neutral default when tex is nil.
func (c *resourceCache) channelView(ch material.Channel, tex texture.Texture) (*wgpu.TextureView, error) {
	if tex == nil {
		return c.defaultView(ch)
	}
	key := textureKey{path: tex.Path(), srgb: ch == material.ChannelColor}
	if t, ok := c.textures[key]; ok {
		return t.view, nil
	}
	view, gpuTex, err := c.backend.InitTextureView(tex.Path(), tex.StagingData(), textureFormat(key.srgb))
	if err != nil {
		return nil, err
	}
	c.textures[key] = gpuTexture{view: view, texture: gpuTex}
	return view, nil
}

func (c *resourceCache) defaultView(ch material.Channel) (*wgpu.TextureView, error) {
	if t, ok := c.defaults[ch]; ok {
		return t.view, nil
	}
	px := neutralPixel(ch)
	srgb := ch == material.ChannelColor
	view, gpuTex, err := c.backend.InitTextureView("default "+string(ch), common.TextureStagingData{
		Pixels: px[:],
		Width:  1,
		Height: 1,
	}, textureFormat(srgb))
	if err != nil {
		return nil, err
	}
	c.defaults[ch] = gpuTexture{view: view, texture: gpuTex}
	return view, nil
}

func (c *resourceCache) sampler(data common.SamplerStagingData) (*wgpu.Sampler, error) {
	if s, ok := c.samplers[data]; ok {
		return s, nil
	}
	s, err := c.backend.InitSampler("Draw", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	c.samplers[data] = s
	return s, nil
}

// prune releases the draw groups of nodes that are no longer in the scene.
func (c *resourceCache) prune(live map[scene.Node]struct{}) {
	for n, entry := range c.draws {
		if _, ok := live[n]; !ok {
			entry.provider.Release()
			delete(c.draws, n)
		}
	}
}

func (c *resourceCache) counts() (meshes, textures, samplers int) {
	return len(c.meshes), len(c.textures) + len(c.defaults), len(c.samplers)
}

func (c *resourceCache) release() {
	for n, entry := range c.draws {
		entry.provider.Release()
		delete(c.draws, n)
	}
	for g, p := range c.meshes {
		p.Release()
		delete(c.meshes, g)
	}
	for k, t := range c.textures {
		t.release()
		delete(c.textures, k)
	}
	for k, t := range c.defaults {
		t.release()
		delete(c.defaults, k)
	}
	for k, s := range c.samplers {
		s.Release()
		delete(c.samplers, k)
	}
	if c.frame != nil {
		c.frame.Release()
		c.frame = nil
	}
	c.releaseShadowMap()
	if c.shadowSampler != nil {
		c.shadowSampler.Release()
		c.shadowSampler = nil
	}
}

// boundTextures returns the texture for each channel in binding order. Missing and placeholder
// textures are nil so the neutral default is bound in their place.
func boundTextures(m material.Material) [len(channelOrder)]texture.Texture {
	var out [len(channelOrder)]texture.Texture
	if m == nil {
		return out
	}
	for i, ch := range channelOrder {
		if tex := m.Channel(ch); tex != nil && !tex.Placeholder() {
			out[i] = tex
		}
	}
	return out
}

// drawSamplerData takes the wrap settings of the first bound texture. All channels of a
// material share one sampler.
func drawSamplerData(textures [len(channelOrder)]texture.Texture) common.SamplerStagingData {
	for _, tex := range textures {
		if tex != nil {
			return tex.SamplerData()
		}
	}
	return common.SamplerStagingData{}
}

// neutralPixel is the RGBA texel bound to an empty channel. It leaves the shading unchanged:
// full color, opacity, occlusion and roughness, no displacement or metalness, and a flat
// tangent-space normal.
func neutralPixel(ch material.Channel) [4]byte {
	switch ch {
	case material.ChannelDisplacement, material.ChannelMetalness:
		return [4]byte{0, 0, 0, 255}
	case material.ChannelNormal:
		return [4]byte{128, 128, 255, 255}
	default:
		return [4]byte{255, 255, 255, 255}
	}
}

func textureFormat(srgb bool) wgpu.TextureFormat {
	if srgb {
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}
