package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsRejectInvalidDimensions(t *testing.T) {
	cases := map[string]func(){
		"box zero width":       func() { NewBox(0, 1, 1) },
		"box negative depth":   func() { NewBox(1, 1, -2) },
		"cone zero height":     func() { NewCone(1, 0, 4) },
		"cone two segments":    func() { NewCone(1, 1, 2) },
		"plane negative":       func() { NewPlane(-1, 1) },
		"plane zero segments":  func() { NewPlane(1, 1, WithSegments(0, 1)) },
		"sphere zero radius":   func() { NewSphere(0, 16, 16) },
		"sphere one ring":      func() { NewSphere(1, 16, 1) },
		"box NaN height":       func() { NewBox(1, math32.NaN(), 1) },
		"box infinite width":   func() { NewBox(math32.Inf(1), 1, 1) },
		"box zero depth slice": func() { NewBox(1, 1, 1, WithDepthSegments(0)) },
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected a panic")
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, ErrInvalidGeometryParameter))
			}()
			build()
		})
	}
}

func TestValidateReturnsAllProblems(t *testing.T) {
	err := Validate(KindBox, Params{Width: -1, Height: 0, Depth: 1, WidthSegments: 1, HeightSegments: 1, DepthSegments: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGeometryParameter)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "height")

	assert.NoError(t, Validate(KindPlane, Params{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1}))
	assert.ErrorIs(t, Validate(Kind(42), Params{}), ErrInvalidGeometryParameter)
}

func TestMeshSizes(t *testing.T) {
	box := NewBox(4, 2.5, 4).Mesh()
	assert.Len(t, box.Vertices, 24)
	assert.Len(t, box.Indices, 36)

	door := NewPlane(2, 2, WithSegments(100, 100)).Mesh()
	assert.Len(t, door.Vertices, 101*101)
	assert.Len(t, door.Indices, 100*100*6)

	sphere := NewSphere(1, 16, 16).Mesh()
	assert.Len(t, sphere.Vertices, 17*17)
	assert.Equal(t, 16*16*2-32, sphere.TriangleCount())

	roof := NewCone(3.5, 1, 4).Mesh()
	assert.Len(t, roof.Vertices, 10+4+5)
	assert.Equal(t, 8, roof.TriangleCount())
}

func TestMeshIsMemoised(t *testing.T) {
	g := NewSphere(1, 8, 6)
	assert.Same(t, g.Mesh(), g.Mesh())
}

func TestBoxVerticesStayWithinExtents(t *testing.T) {
	m := NewBox(0.6, 0.8, 0.2).Mesh()
	for _, v := range m.Vertices {
		assert.InDelta(t, 0.3, math32.Abs(v.Position[0]), 1e-6)
		assert.InDelta(t, 0.4, math32.Abs(v.Position[1]), 1e-6)
		assert.InDelta(t, 0.1, math32.Abs(v.Position[2]), 1e-6)
	}
}

func TestSphereVerticesLieOnSurface(t *testing.T) {
	m := NewSphere(2, 12, 8).Mesh()
	for _, v := range m.Vertices {
		p := v.Position
		assert.InDelta(t, 2, math32.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]), 1e-4)
	}
}

func TestConeApexAndBase(t *testing.T) {
	m := NewCone(3.5, 1, 4).Mesh()
	var top, bottom float32 = -10, 10
	for _, v := range m.Vertices {
		top = max(top, v.Position[1])
		bottom = min(bottom, v.Position[1])
	}
	assert.InDelta(t, 0.5, top, 1e-6)
	assert.InDelta(t, -0.5, bottom, 1e-6)
}

func TestTrianglesFaceOutward(t *testing.T) {
	meshes := map[string]*Mesh{
		"box":    NewBox(1, 2, 3, WithSegments(2, 3), WithDepthSegments(2)).Mesh(),
		"plane":  NewPlane(2, 2, WithSegments(4, 4)).Mesh(),
		"cone":   NewCone(1, 2, 8).Mesh(),
		"sphere": NewSphere(1, 16, 12).Mesh(),
	}
	for name, m := range meshes {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < len(m.Indices); i += 3 {
				a := m.Vertices[m.Indices[i]]
				b := m.Vertices[m.Indices[i+1]]
				c := m.Vertices[m.Indices[i+2]]
				n := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
				if dot(n, n) < 1e-12 {
					continue
				}
				avg := [3]float32{
					a.Normal[0] + b.Normal[0] + c.Normal[0],
					a.Normal[1] + b.Normal[1] + c.Normal[1],
					a.Normal[2] + b.Normal[2] + c.Normal[2],
				}
				require.Greater(t, dot(n, avg), float32(0), "triangle %d winds inward", i/3)
			}
		})
	}
}

func TestBoundingRadius(t *testing.T) {
	assert.InDelta(t, 1, NewSphere(1, 16, 16).BoundingRadius(), 1e-6)
	assert.InDelta(t, math32.Sqrt(2)*10, NewPlane(20, 20).BoundingRadius(), 1e-4)
	assert.InDelta(t, math32.Sqrt(3)/2, NewBox(1, 1, 1).BoundingRadius(), 1e-6)
}

func TestKindAndLabel(t *testing.T) {
	g := NewPlane(1, 1, WithLabel("floor"))
	assert.Equal(t, KindPlane, g.Kind())
	assert.Equal(t, "floor", g.Label())
	assert.Equal(t, "cone", NewCone(1, 1, 4).Label())
	assert.Equal(t, VertexStride, uint64(32))
}

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}
