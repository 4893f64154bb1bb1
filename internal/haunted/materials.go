package haunted

import (
	"path"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
)

// grassRepeat is how many times the grass maps tile across the floor.
const grassRepeat = 8

// doorDisplacementScale lifts the door's height map off the plane.
const doorDisplacementScale = 0.1

// textureSet maps a material's channels to the file names under its asset directory.
type textureSet struct {
	dir   string
	files map[material.Channel]string
}

func (s textureSet) paths() []string {
	out := make([]string, 0, len(s.files))
	for _, ch := range material.Channels {
		if f, ok := s.files[ch]; ok {
			out = append(out, path.Join(s.dir, f))
		}
	}
	return out
}

func (s textureSet) load(cache texture.TextureCache) map[material.Channel]texture.Texture {
	out := make(map[material.Channel]texture.Texture, len(s.files))
	for ch, f := range s.files {
		out[ch] = cache.Load(path.Join(s.dir, f))
	}
	return out
}

var (
	bricksTextures = textureSet{
		dir: "bricks",
		files: map[material.Channel]string{
			material.ChannelColor:            "color.jpg",
			material.ChannelAmbientOcclusion: "ambientOcclusion.jpg",
			material.ChannelNormal:           "normal.jpg",
			material.ChannelRoughness:        "roughness.jpg",
		},
	}
	doorTextures = textureSet{
		dir: "door",
		files: map[material.Channel]string{
			material.ChannelColor:            "color.jpg",
			material.ChannelAlpha:            "alpha.jpg",
			material.ChannelAmbientOcclusion: "ambientOcclusion.jpg",
			material.ChannelDisplacement:     "height.jpg",
			material.ChannelNormal:           "normal.jpg",
			material.ChannelMetalness:        "metalness.jpg",
			material.ChannelRoughness:        "roughness.jpg",
		},
	}
	grassTextures = textureSet{
		dir: "grass",
		files: map[material.Channel]string{
			material.ChannelColor:            "color.jpg",
			material.ChannelAmbientOcclusion: "ambientOcclusion.jpg",
			material.ChannelNormal:           "normal.jpg",
			material.ChannelRoughness:        "roughness.jpg",
		},
	}
)

// AssetPaths lists every texture the scene loads, relative to the asset root.
func AssetPaths() []string {
	var out []string
	for _, s := range []textureSet{bricksTextures, doorTextures, grassTextures} {
		out = append(out, s.paths()...)
	}
	return out
}

// Materials holds every shared material of the scene.
type Materials struct {
	Bricks material.Material
	Door   material.Material
	Grass  material.Material
	Roof   material.Material
	Bush   material.Material
	Grave  material.Material
}

// NewMaterials preloads the scene textures in parallel and builds the materials. Missing files
// become placeholders and the affected channels fall back to the material's scalar values.
//
// Parameters:
//   - cache: the texture cache rooted at the asset directory
//
// Returns:
//   - Materials: the scene materials
func NewMaterials(cache texture.TextureCache) Materials {
	cache.Preload(AssetPaths()...)

	grass := grassTextures.load(cache)
	for _, tex := range grass {
		cache.ConfigureRepeat(tex, grassRepeat, grassRepeat, texture.WrapRepeat)
	}

	return Materials{
		Bricks: material.NewMaterial(
			material.WithName("bricks"),
			material.WithChannels(bricksTextures.load(cache)),
		),
		Door: material.NewMaterial(
			material.WithName("door"),
			material.WithChannels(doorTextures.load(cache)),
			material.WithTransparent(true),
			material.WithDisplacementScale(doorDisplacementScale),
		),
		Grass: material.NewMaterial(
			material.WithName("grass"),
			material.WithChannels(grass),
		),
		Roof: material.NewMaterial(
			material.WithName("roof"),
			material.WithBaseColor(common.MustHexColor("#b35f45")),
		),
		Bush: material.NewMaterial(
			material.WithName("bush"),
			material.WithBaseColor(common.MustHexColor("#89c854")),
		),
		Grave: material.NewMaterial(
			material.WithName("grave"),
			material.WithBaseColor(common.MustHexColor("#b2b6b1")),
		),
	}
}
