package scene

import (
	"testing"

	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestWorldMatrixComposesParent(t *testing.T) {
	group := NewNode("group", WithPosition(10, 0, 0), WithRotation(0, math32.Pi/2, 0))
	child := NewNode("child", WithPosition(0, 0, 1))
	group.Add(child)

	// Yaw of 90 degrees maps local +Z onto world +X.
	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{11, 0, 0}, 1e-5))
	assert.Equal(t, group, child.Parent())
}

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []string{"c"}, names(b.Children()))
	assert.Equal(t, b, c.Parent())
}

func TestAddRejectsCycles(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.Add(b)
	assert.Panics(t, func() { b.Add(a) })
	assert.Panics(t, func() { a.Add(a) })
}

func TestRemoveDetachesSubtree(t *testing.T) {
	root := NewNode("root")
	house := NewNode("house", WithChildren(NewNode("roof"), NewNode("walls")))
	root.Add(house)

	require.True(t, root.Remove(house))
	assert.Nil(t, house.Parent())
	assert.Nil(t, root.Find("roof"))
	assert.NotNil(t, house.Find("roof"))
	assert.False(t, root.Remove(house))
}

func TestTraverseDepthFirstInChildOrder(t *testing.T) {
	root := NewNode("root", WithChildren(
		NewNode("a", WithChildren(NewNode("a1"), NewNode("a2"))),
		NewNode("b"),
	))

	var visited []string
	root.Traverse(func(n Node) bool {
		visited = append(visited, n.Name())
		return n.Name() != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, visited)

	visited = nil
	root.Traverse(func(n Node) bool {
		visited = append(visited, n.Name())
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, visited)
}

func TestMeshNodeIsNotGroup(t *testing.T) {
	geo := geometry.NewBox(1, 1, 1)
	mat := material.NewMaterial()
	mesh := NewMesh("box", geo, mat, WithCastShadow(true))

	assert.False(t, mesh.IsGroup())
	assert.True(t, NewNode("group").IsGroup())
	assert.Same(t, geo, mesh.Geometry())
	assert.Same(t, mat, mesh.Material())
	assert.True(t, mesh.CastShadow())
	assert.False(t, mesh.ReceiveShadow())
}

func TestNodeIsLightAnchor(t *testing.T) {
	house := NewNode("house", WithPosition(0, 0, -3))
	door := light.NewLight(light.LightTypePoint, light.WithPosition(0, 2.2, 2.7), light.WithParent(house))
	assert.True(t, door.WorldPosition().ApproxEqual(mgl32.Vec3{0, 2.2, -0.3}))
}

func TestSceneAggregate(t *testing.T) {
	cam := camera.NewCamera()
	ambient := light.NewLight(light.LightTypeAmbient, light.WithName("ambient"))
	moon := light.NewLight(light.LightTypeDirectional, light.WithName("moon"))
	s := NewScene("haunted", cam,
		WithNodes(NewNode("floor"), NewNode("house")),
		WithLights(ambient, moon),
		WithFog(mgl32.Vec3{0.1, 0.1, 0.2}, 2, 15),
		WithBackground(mgl32.Vec3{0.1, 0.1, 0.2}),
	)

	assert.Equal(t, []string{"floor", "house"}, names(s.Root().Children()))
	assert.Same(t, moon, s.Light("moon"))
	assert.Nil(t, s.Light("sun"))
	assert.Same(t, cam, s.Camera())
	assert.NotNil(t, s.Find("house"))

	s.RemoveLight(ambient)
	assert.Len(t, s.Lights(), 1)

	fog := s.Fog()
	assert.True(t, fog.Enabled)
	assert.Zero(t, fog.Factor(1))
	assert.InDelta(t, 0.5, fog.Factor(8.5), 1e-6)
	assert.Equal(t, float32(1), fog.Factor(40))
}

func TestNewSceneRequiresCamera(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil) })
}
