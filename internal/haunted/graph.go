package haunted

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/chewxy/math32"
)

// Rand is the random source used for grave placement. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// House dimensions.
const (
	wallWidth   = 4.0
	wallHeight  = 2.5
	wallDepth   = 4.0
	roofRadius  = 3.5
	roofHeight  = 1.0
	doorSize    = 2
	doorSegment = 100
	floorSize   = 20
)

// Graveyard ring.
const (
	graveInnerRadius = 4
	graveRingWidth   = 6
	graveY           = 0.2
	graveMaxTilt     = 0.4
)

// bushPlacement is one bush's uniform scale and position.
type bushPlacement struct {
	scale   float32
	x, y, z float32
}

var bushPlacements = [4]bushPlacement{
	{scale: 0.5, x: 0.8, y: 0.2, z: 2.2},
	{scale: 0.25, x: 1.4, y: 0.1, z: 2.1},
	{scale: 0.4, x: -0.8, y: 0.1, z: 2.2},
	{scale: 0.15, x: -1, y: 0.05, z: 2.6},
}

// Graph is the assembled scene graph with direct handles on the nodes the rest of the
// application configures.
type Graph struct {
	Floor scene.Node

	House  scene.Node
	Walls  scene.Node
	Roof   scene.Node
	Door   scene.Node
	Bushes []scene.Node

	Graveyard scene.Node
	Graves    []scene.Node
}

// Roots returns the top-level nodes in the order they are added to the scene.
func (g Graph) Roots() []scene.Node {
	return []scene.Node{g.Floor, g.House, g.Graveyard}
}

// BuildGraph composes the floor, the house and the graveyard. Given the same random sequence it
// always produces the same graph.
//
// Parameters:
//   - mats: the shared materials
//   - rng: the random source for grave placement
//   - graves: how many graves to place
//
// Returns:
//   - Graph: the composed nodes
func BuildGraph(mats Materials, rng Rand, graves int) Graph {
	g := Graph{
		Floor: scene.NewMesh("floor",
			geometry.NewPlane(floorSize, floorSize, geometry.WithLabel("floor")),
			mats.Grass,
			scene.WithRotation(-math32.Pi/2, 0, 0),
		),
	}

	g.Walls = scene.NewMesh("walls",
		geometry.NewBox(wallWidth, wallHeight, wallDepth, geometry.WithLabel("walls")),
		mats.Bricks,
		scene.WithPosition(0, wallHeight/2, 0),
	)
	g.Roof = scene.NewMesh("roof",
		geometry.NewCone(roofRadius, roofHeight, 4, geometry.WithLabel("roof")),
		mats.Roof,
		scene.WithPosition(0, wallHeight+roofHeight/2, 0),
		scene.WithRotation(0, math32.Pi/4, 0),
	)
	g.Door = scene.NewMesh("door",
		geometry.NewPlane(doorSize, doorSize,
			geometry.WithSegments(doorSegment, doorSegment),
			geometry.WithLabel("door"),
		),
		mats.Door,
		scene.WithPosition(0, 0.9, wallDepth/2+0.01),
	)

	bushGeometry := geometry.NewSphere(1, 16, 16, geometry.WithLabel("bush"))
	g.Bushes = make([]scene.Node, len(bushPlacements))
	for i, b := range bushPlacements {
		g.Bushes[i] = scene.NewMesh(fmt.Sprintf("bush%d", i+1), bushGeometry, mats.Bush,
			scene.WithUniformScale(b.scale),
			scene.WithPosition(b.x, b.y, b.z),
		)
	}

	g.House = scene.NewNode("house")
	g.House.Add(g.Roof, g.Walls, g.Door)
	g.House.Add(g.Bushes...)

	g.Graveyard = scene.NewNode("graveyard")
	graveGeometry := geometry.NewBox(0.6, 0.8, 0.2, geometry.WithLabel("grave"))
	g.Graves = make([]scene.Node, graves)
	for i := range g.Graves {
		theta := rng.Float64() * 2 * math.Pi
		r := graveInnerRadius + rng.Float64()*graveRingWidth
		x, z := gravePosition(theta, r)
		yaw := (unit(rng) - 0.5) * graveMaxTilt
		roll := (unit(rng) - 0.5) * graveMaxTilt

		g.Graves[i] = scene.NewMesh(fmt.Sprintf("grave%02d", i), graveGeometry, mats.Grave,
			scene.WithPosition(x, graveY, z),
			scene.WithRotation(0, yaw, roll),
		)
	}
	g.Graveyard.Add(g.Graves...)

	return g
}

// gravePosition converts polar ring coordinates to a float32 ground position. Rounding can push
// the length of (x, z) onto or past either ring edge, so the coordinates are stepped one ulp at
// a time until graveInnerRadius <= hypot(x, z) < graveInnerRadius+graveRingWidth.
func gravePosition(theta, r float64) (x, z float32) {
	x = float32(math.Sin(theta) * r)
	z = float32(math.Cos(theta) * r)
	for math32.Hypot(x, z) >= graveInnerRadius+graveRingWidth {
		x = math.Nextafter32(x, 0)
		z = math.Nextafter32(z, 0)
	}
	for math32.Hypot(x, z) < graveInnerRadius {
		x = awayFromZero(x)
		z = awayFromZero(z)
	}
	return x, z
}

func awayFromZero(v float32) float32 {
	if v < 0 {
		return math.Nextafter32(v, -math.MaxFloat32)
	}
	return math.Nextafter32(v, math.MaxFloat32)
}

// unit draws a float32 in [0, 1). Converting a float64 just below 1 rounds up to 1, so the
// result is clamped to the largest float32 below 1.
func unit(rng Rand) float32 {
	u := float32(rng.Float64())
	if u >= 1 {
		return 0x1.fffffep-1
	}
	return u
}
