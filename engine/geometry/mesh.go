package geometry

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Vertex is the interleaved vertex layout consumed by the renderer: position, normal and uv,
// 32 bytes per vertex. UV v=0 is the top row of the image.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// Mesh is triangulated geometry with counter-clockwise front faces.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func buildBox(p Params) *Mesh {
	m := &Mesh{}
	// Each face is a grid in the (u, v) axes pushed out along w.
	m.boxFace(2, 1, 0, -1, -1, p.Depth, p.Height, p.Width, p.DepthSegments, p.HeightSegments)
	m.boxFace(2, 1, 0, 1, -1, p.Depth, p.Height, -p.Width, p.DepthSegments, p.HeightSegments)
	m.boxFace(0, 2, 1, 1, 1, p.Width, p.Depth, p.Height, p.WidthSegments, p.DepthSegments)
	m.boxFace(0, 2, 1, 1, -1, p.Width, p.Depth, -p.Height, p.WidthSegments, p.DepthSegments)
	m.boxFace(0, 1, 2, 1, -1, p.Width, p.Height, p.Depth, p.WidthSegments, p.HeightSegments)
	m.boxFace(0, 1, 2, -1, -1, p.Width, p.Height, -p.Depth, p.WidthSegments, p.HeightSegments)
	return m
}

func (m *Mesh) boxFace(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	segmentWidth := width / float32(gridX)
	segmentHeight := height / float32(gridY)
	widthHalf, heightHalf, depthHalf := width/2, height/2, depth/2
	normal := float32(1)
	if depth < 0 {
		normal = -1
	}

	start := uint32(len(m.Vertices))
	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segmentHeight - heightHalf
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segmentWidth - widthHalf

			var vert Vertex
			vert.Position[u] = x * udir
			vert.Position[v] = y * vdir
			vert.Position[w] = depthHalf
			vert.Normal[w] = normal
			vert.UV = [2]float32{float32(ix) / float32(gridX), float32(iy) / float32(gridY)}
			m.Vertices = append(m.Vertices, vert)
		}
	}
	m.gridIndices(start, gridX, gridY)
}

// gridIndices triangulates a (gridX+1) x (gridY+1) vertex grid beginning at start.
func (m *Mesh) gridIndices(start uint32, gridX, gridY int) {
	row := uint32(gridX + 1)
	for iy := 0; iy < gridY; iy++ {
		for ix := 0; ix < gridX; ix++ {
			a := start + uint32(ix) + row*uint32(iy)
			b := start + uint32(ix) + row*uint32(iy+1)
			c := start + uint32(ix+1) + row*uint32(iy+1)
			d := start + uint32(ix+1) + row*uint32(iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
}

func buildPlane(p Params) *Mesh {
	m := &Mesh{}
	gridX, gridY := p.WidthSegments, p.HeightSegments
	segmentWidth := p.Width / float32(gridX)
	segmentHeight := p.Height / float32(gridY)
	widthHalf, heightHalf := p.Width/2, p.Height/2

	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segmentHeight - heightHalf
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segmentWidth - widthHalf
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{float32(ix) / float32(gridX), float32(iy) / float32(gridY)},
			})
		}
	}
	m.gridIndices(0, gridX, gridY)
	return m
}

func buildSphere(p Params) *Mesh {
	m := &Mesh{}
	widthSegments, heightSegments := p.WidthSegments, p.HeightSegments
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinV, cosV := math32.Sincos(v * math32.Pi)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)

			pos := [3]float32{
				-p.Radius * cosU * sinV,
				p.Radius * cosV,
				p.Radius * sinU * sinV,
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   normalize(pos),
				UV:       [2]float32{u, v},
			})
			row[ix] = uint32(len(m.Vertices) - 1)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// Pole rows collapse to a single point, so only one triangle per quad there.
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

func buildCone(p Params) *Mesh {
	m := &Mesh{}
	radialSegments, heightSegments := p.RadialSegments, p.HeightSegments
	halfHeight := p.Height / 2
	slope := p.Radius / p.Height
	grid := make([][]uint32, heightSegments+1)

	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		radius := v * p.Radius
		row := make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			sinT, cosT := math32.Sincos(u * 2 * math32.Pi)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{radius * sinT, -v*p.Height + halfHeight, radius * cosT},
				Normal:   normalize([3]float32{sinT, slope, cosT}),
				UV:       [2]float32{u, v},
			})
			row[x] = uint32(len(m.Vertices) - 1)
		}
		grid[y] = row
	}

	for x := 0; x < radialSegments; x++ {
		for y := 0; y < heightSegments; y++ {
			a := grid[y][x]
			b := grid[y+1][x]
			c := grid[y+1][x+1]
			d := grid[y][x+1]
			// The apex row has zero radius.
			if y != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			m.Indices = append(m.Indices, b, c, d)
		}
	}

	// Base cap facing -Y.
	centerStart := uint32(len(m.Vertices))
	for x := 0; x < radialSegments; x++ {
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{0, -halfHeight, 0},
			Normal:   [3]float32{0, -1, 0},
			UV:       [2]float32{0.5, 0.5},
		})
	}
	rimStart := uint32(len(m.Vertices))
	for x := 0; x <= radialSegments; x++ {
		u := float32(x) / float32(radialSegments)
		sinT, cosT := math32.Sincos(u * 2 * math32.Pi)
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{p.Radius * sinT, -halfHeight, p.Radius * cosT},
			Normal:   [3]float32{0, -1, 0},
			UV:       [2]float32{cosT*0.5 + 0.5, sinT*0.5 + 0.5},
		})
	}
	for x := uint32(0); x < uint32(radialSegments); x++ {
		c := centerStart + x
		i := rimStart + x
		m.Indices = append(m.Indices, i+1, i, c)
	}
	return m
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
