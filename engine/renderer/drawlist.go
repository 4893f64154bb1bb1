package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one geometry-bearing node resolved to world space for a single frame.
type DrawItem struct {
	Node          scene.Node
	Geometry      geometry.Geometry
	Material      material.Material
	Model         mgl32.Mat4
	Normal        mgl32.Mat4
	CastShadow    bool
	ReceiveShadow bool

	// Center and Radius bound the item in world space.
	Center mgl32.Vec3
	Radius float32
	// Distance is measured from the camera to Center.
	Distance float32
}

// DrawList is the per-frame work extracted from a scene.
type DrawList struct {
	// Opaque items are drawn first, in scene traversal order.
	Opaque []DrawItem
	// Transparent items are drawn after every opaque item, farthest first.
	Transparent []DrawItem
	// Casters are rendered into the shadow map. They are not frustum culled because an object
	// outside the view can still shadow one inside it.
	Casters []DrawItem
	// Culled counts the visible-pass items rejected by the camera frustum.
	Culled int
}

// Len returns the number of items drawn in the main pass.
func (d DrawList) Len() int {
	return len(d.Opaque) + len(d.Transparent)
}

// BuildDrawList walks the scene depth-first and resolves every node that carries geometry.
// Items whose bounding sphere lies outside the camera frustum are dropped from the main pass.
// A scene without a camera is not culled.
//
// Parameters:
//   - s: the scene to extract
//
// Returns:
//   - DrawList: the items for the shadow and main passes
func BuildDrawList(s scene.Scene) DrawList {
	var list DrawList

	cam := s.Camera()
	var frustum common.Frustum
	var eye mgl32.Vec3
	if cam != nil {
		frustum = cam.Frustum()
		eye = cam.Position()
	}

	s.Root().Traverse(func(n scene.Node) bool {
		geo := n.Geometry()
		if geo == nil {
			return true
		}
		model := n.WorldMatrix()
		item := DrawItem{
			Node:          n,
			Geometry:      geo,
			Material:      n.Material(),
			Model:         model,
			Normal:        common.NormalMatrix(model),
			CastShadow:    n.CastShadow(),
			ReceiveShadow: n.ReceiveShadow(),
			Center:        model.Col(3).Vec3(),
			Radius:        geo.BoundingRadius() * maxAxisScale(model),
		}
		item.Distance = item.Center.Sub(eye).Len()

		if item.CastShadow {
			list.Casters = append(list.Casters, item)
		}
		if cam != nil && !frustum.IntersectsSphere(item.Center, item.Radius) {
			list.Culled++
			return true
		}
		if item.Material != nil && item.Material.Transparent() {
			list.Transparent = append(list.Transparent, item)
		} else {
			list.Opaque = append(list.Opaque, item)
		}
		return true
	})

	sort.SliceStable(list.Transparent, func(i, j int) bool {
		return list.Transparent[i].Distance > list.Transparent[j].Distance
	})
	return list
}

// maxAxisScale returns the largest scale applied by the upper 3x3 of m.
func maxAxisScale(m mgl32.Mat4) float32 {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return math32.Max(sx, math32.Max(sy, sz))
}

// ShadowLight returns the first enabled directional light that casts shadows, or nil.
// Point-light shadow settings are kept on the light but no cube map is rendered for them.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - light.Light: the shadow-casting light, or nil
func ShadowLight(lights []light.Light) light.Light {
	for _, l := range lights {
		if l == nil || !l.Enabled() || l.Type() != light.LightTypeDirectional {
			continue
		}
		if l.CastsShadows() {
			return l
		}
	}
	return nil
}

func shadowViewProjection(lights []light.Light) mgl32.Mat4 {
	if l := ShadowLight(lights); l != nil {
		if vp, ok := l.ShadowViewProjection(); ok {
			return vp
		}
	}
	return mgl32.Ident4()
}
