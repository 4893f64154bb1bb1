package haunted

import (
	"math"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constRand always returns the same value.
type constRand float64

func (c constRand) Float64() float64 {
	return float64(c)
}

// seqRand replays vals in order and wraps around.
type seqRand struct {
	vals []float64
	next int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

func testMaterials(t *testing.T) Materials {
	t.Helper()
	cache := texture.NewTextureCache(texture.WithFS(fstest.MapFS{}))
	return NewMaterials(cache)
}

func names(nodes []scene.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestBuildGraphTopology(t *testing.T) {
	g := BuildGraph(testMaterials(t), rand.New(rand.NewSource(1)), 30)

	assert.Equal(t, []string{"floor", "house", "graveyard"}, names(g.Roots()))
	assert.Equal(t, []string{"roof", "walls", "door", "bush1", "bush2", "bush3", "bush4"}, names(g.House.Children()))
	assert.True(t, g.House.IsGroup())
	assert.True(t, g.Graveyard.IsGroup())
	assert.Len(t, g.Graveyard.Children(), 30)
	assert.Equal(t, "grave00", g.Graves[0].Name())
	assert.Equal(t, "grave29", g.Graves[29].Name())

	assert.InDelta(t, -math32.Pi/2, g.Floor.Rotation().X(), 1e-6)
	assert.InDelta(t, 1.25, g.Walls.Position().Y(), 1e-6)
	assert.InDelta(t, 3, g.Roof.Position().Y(), 1e-6)
	assert.InDelta(t, 2.01, g.Door.Position().Z(), 1e-6)
}

func TestBuildGraphSharesGeometryAndMaterial(t *testing.T) {
	mats := testMaterials(t)
	g := BuildGraph(mats, rand.New(rand.NewSource(7)), 5)

	for _, b := range g.Bushes[1:] {
		assert.Same(t, g.Bushes[0].Geometry(), b.Geometry())
		assert.Same(t, mats.Bush, b.Material())
	}
	for _, grave := range g.Graves[1:] {
		assert.Same(t, g.Graves[0].Geometry(), grave.Geometry())
		assert.Same(t, mats.Grave, grave.Material())
	}
}

func TestGravePlacementStaysInRing(t *testing.T) {
	mats := testMaterials(t)
	for _, seed := range []int64{1, 2, 42, 1234, 99999} {
		g := BuildGraph(mats, rand.New(rand.NewSource(seed)), 50)
		require.Len(t, g.Graves, 50)
		for _, grave := range g.Graves {
			p := grave.Position()
			r := math32.Hypot(p.X(), p.Z())
			assert.GreaterOrEqual(t, r, float32(graveInnerRadius), "seed %d %s", seed, grave.Name())
			assert.Less(t, r, float32(graveInnerRadius+graveRingWidth), "seed %d %s", seed, grave.Name())
			assert.Equal(t, float32(graveY), p.Y())

			rot := grave.Rotation()
			assert.Zero(t, rot.X())
			assert.LessOrEqual(t, math32.Abs(rot.Y()), float32(graveMaxTilt/2))
			assert.LessOrEqual(t, math32.Abs(rot.Z()), float32(graveMaxTilt/2))
		}
	}
}

func TestGraveRingEdges(t *testing.T) {
	mats := testMaterials(t)
	const steps = 3600
	for name, draw := range map[string]float64{
		"inner": 0,
		"outer": math.Nextafter(1, 0),
	} {
		t.Run(name, func(t *testing.T) {
			vals := make([]float64, 0, steps*4)
			for i := range steps {
				vals = append(vals, float64(i)/steps, draw, 0.5, 0.5)
			}
			g := BuildGraph(mats, &seqRand{vals: vals}, steps)
			for _, grave := range g.Graves {
				p := grave.Position()
				r := math32.Hypot(p.X(), p.Z())
				assert.GreaterOrEqual(t, r, float32(graveInnerRadius), grave.Name())
				assert.Less(t, r, float32(graveInnerRadius+graveRingWidth), grave.Name())
			}
		})
	}
}

func TestConstantDrawsStayInRing(t *testing.T) {
	mats := testMaterials(t)
	for _, draw := range []float64{0, math.Nextafter(1, 0)} {
		g := BuildGraph(mats, constRand(draw), 3)
		for _, grave := range g.Graves {
			p := grave.Position()
			r := math32.Hypot(p.X(), p.Z())
			assert.GreaterOrEqual(t, r, float32(graveInnerRadius), "draw %v", draw)
			assert.Less(t, r, float32(graveInnerRadius+graveRingWidth), "draw %v", draw)
		}
	}
}

func TestGravePositionPullsBackIntoRing(t *testing.T) {
	x, z := gravePosition(0, graveInnerRadius+graveRingWidth)
	assert.Less(t, math32.Hypot(x, z), float32(graveInnerRadius+graveRingWidth))
	assert.InDelta(t, 10, z, 1e-5)

	x, z = gravePosition(math.Pi/4, graveInnerRadius-1e-9)
	assert.GreaterOrEqual(t, math32.Hypot(x, z), float32(graveInnerRadius))
	assert.InDelta(t, x, z, 1e-5)
}

func TestBuildGraphIsDeterministic(t *testing.T) {
	mats := testMaterials(t)
	a := BuildGraph(mats, rand.New(rand.NewSource(5)), 10)
	b := BuildGraph(mats, rand.New(rand.NewSource(5)), 10)
	for i := range a.Graves {
		assert.Equal(t, a.Graves[i].Position(), b.Graves[i].Position())
		assert.Equal(t, a.Graves[i].Rotation(), b.Graves[i].Rotation())
	}
}

func TestBuildGraphZeroGraves(t *testing.T) {
	g := BuildGraph(testMaterials(t), rand.New(rand.NewSource(1)), 0)
	assert.Empty(t, g.Graves)
	assert.Empty(t, g.Graveyard.Children())
}

func TestUnitNeverReachesOne(t *testing.T) {
	assert.Less(t, unit(constRand(0.99999999999)), float32(1))
	assert.Equal(t, float32(0), unit(constRand(0)))
	assert.InDelta(t, 0.5, unit(constRand(0.5)), 1e-7)
}
