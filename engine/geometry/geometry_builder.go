package geometry

// GeometryBuilderOption is a function that configures a Geometry during construction.
type GeometryBuilderOption func(*geometryImpl)

// WithSegments sets the subdivision counts along the first two axes of a box or plane,
// and the vertical subdivision of a cone. Displacement-mapped surfaces need high counts.
//
// Parameters:
//   - widthSegments: subdivisions along the width
//   - heightSegments: subdivisions along the height
//
// Returns:
//   - GeometryBuilderOption: a function that applies the segment counts
func WithSegments(widthSegments, heightSegments int) GeometryBuilderOption {
	return func(g *geometryImpl) {
		if g.kind != KindCone {
			g.params.WidthSegments = widthSegments
		}
		g.params.HeightSegments = heightSegments
	}
}

// WithDepthSegments sets the subdivision count along the depth of a box.
//
// Parameters:
//   - depthSegments: subdivisions along the depth
//
// Returns:
//   - GeometryBuilderOption: a function that applies the depth segment count
func WithDepthSegments(depthSegments int) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.params.DepthSegments = depthSegments
	}
}

// WithLabel sets the debug label for the geometry.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - GeometryBuilderOption: a function that applies the label
func WithLabel(label string) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.label = label
	}
}
