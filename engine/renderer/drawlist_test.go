package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene(nodes ...scene.Node) scene.Scene {
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController(camera.WithPosition(0, 0, 10))))
	return scene.NewScene("test", cam, scene.WithNodes(nodes...))
}

func itemNames(items []DrawItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Node.Name()
	}
	return out
}

func TestBuildDrawListSkipsGroups(t *testing.T) {
	box := geometry.NewBox(1, 1, 1)
	group := scene.NewNode("house", scene.WithChildren(
		scene.NewMesh("walls", box, nil),
		scene.NewMesh("roof", geometry.NewCone(1, 1, 4), nil),
	))

	list := BuildDrawList(testScene(group))

	assert.Equal(t, []string{"walls", "roof"}, itemNames(list.Opaque))
	assert.Empty(t, list.Transparent)
	assert.Equal(t, 2, list.Len())
}

func TestBuildDrawListCullsOutsideFrustum(t *testing.T) {
	box := geometry.NewBox(1, 1, 1)
	visible := scene.NewMesh("visible", box, nil)
	behind := scene.NewMesh("behind", box, nil,
		scene.WithPosition(0, 0, 50),
		scene.WithCastShadow(true),
	)

	list := BuildDrawList(testScene(visible, behind))

	assert.Equal(t, []string{"visible"}, itemNames(list.Opaque))
	assert.Equal(t, 1, list.Culled)
	// Casters are collected before culling.
	assert.Equal(t, []string{"behind"}, itemNames(list.Casters))
}

func TestBuildDrawListSortsTransparentFarthestFirst(t *testing.T) {
	plane := geometry.NewPlane(1, 1)
	glass := material.NewMaterial(material.WithTransparent(true))
	near := scene.NewMesh("near", plane, glass, scene.WithPosition(0, 0, 2))
	far := scene.NewMesh("far", plane, glass, scene.WithPosition(0, 0, -5))
	mid := scene.NewMesh("mid", plane, glass)

	list := BuildDrawList(testScene(near, far, mid))

	require.Len(t, list.Transparent, 3)
	assert.Equal(t, []string{"far", "mid", "near"}, itemNames(list.Transparent))
	assert.InDelta(t, 15, list.Transparent[0].Distance, 1e-4)
	assert.Empty(t, list.Opaque)
}

func TestBuildDrawListScalesBoundingRadius(t *testing.T) {
	sphere := geometry.NewSphere(1, 8, 8)
	n := scene.NewMesh("big", sphere, nil, scene.WithScale(1, 3, 2))

	list := BuildDrawList(testScene(n))

	require.Len(t, list.Opaque, 1)
	assert.InDelta(t, 3*sphere.BoundingRadius(), list.Opaque[0].Radius, 1e-5)
}

func TestBuildDrawListResolvesWorldSpace(t *testing.T) {
	box := geometry.NewBox(1, 1, 1)
	child := scene.NewMesh("child", box, nil, scene.WithPosition(1, 0, 0), scene.WithReceiveShadow(true))
	parent := scene.NewNode("parent", scene.WithPosition(0, 2, 0), scene.WithChildren(child))

	list := BuildDrawList(testScene(parent))

	require.Len(t, list.Opaque, 1)
	item := list.Opaque[0]
	assert.True(t, item.Center.ApproxEqualThreshold(mgl32.Vec3{1, 2, 0}, 1e-5))
	assert.True(t, item.ReceiveShadow)
	assert.False(t, item.CastShadow)
}

func TestShadowLightPicksFirstCastingDirectional(t *testing.T) {
	ambient := light.NewLight(light.LightTypeAmbient)
	point := light.NewLight(light.LightTypePoint, light.WithCastsShadows(true))
	off := light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true), light.WithEnabled(false))
	plain := light.NewLight(light.LightTypeDirectional)
	moon := light.NewLight(light.LightTypeDirectional, light.WithName("moon"), light.WithCastsShadows(true))

	assert.Nil(t, ShadowLight(nil))
	assert.Nil(t, ShadowLight([]light.Light{ambient, point, off, plain}))
	assert.Equal(t, moon, ShadowLight([]light.Light{ambient, point, off, plain, moon}))
}

func TestShadowViewProjectionDefaultsToIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), shadowViewProjection(nil))

	moon := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(4, 6, -2),
		light.WithCastsShadows(true),
	)
	vp, ok := moon.ShadowViewProjection()
	require.True(t, ok)
	assert.Equal(t, vp, shadowViewProjection([]light.Light{moon}))
}
