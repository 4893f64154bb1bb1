package geometry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
)

// ErrInvalidGeometryParameter is returned (or carried by a panic) when a primitive is
// constructed with a zero or negative dimension or segment count.
var ErrInvalidGeometryParameter = errors.New("invalid geometry parameter")

// Kind identifies the primitive shape of a Geometry.
type Kind int

const (
	KindBox Kind = iota
	KindCone
	KindPlane
	KindSphere
)

// String returns the lowercase primitive name.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCone:
		return "cone"
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Params holds the shape parameters of a primitive. Fields that do not apply to a kind are zero.
type Params struct {
	Width, Height, Depth float32
	Radius               float32

	WidthSegments, HeightSegments, DepthSegments int
	RadialSegments                               int
}

// Geometry is an immutable primitive shape. A single Geometry may be shared read-only by any
// number of scene nodes.
type Geometry interface {
	// Kind returns the primitive shape.
	//
	// Returns:
	//   - Kind: the primitive kind
	Kind() Kind

	// Params returns a copy of the shape parameters.
	//
	// Returns:
	//   - Params: the dimensions and segment counts
	Params() Params

	// Label returns the debug label used for GPU resources built from this geometry.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Mesh returns the triangulated vertex and index data, generating it on first use.
	//
	// Returns:
	//   - *Mesh: the shared mesh; callers must not modify it
	Mesh() *Mesh

	// BoundingRadius returns the radius of a sphere centered at the local origin enclosing the shape.
	//
	// Returns:
	//   - float32: the bounding radius in local units
	BoundingRadius() float32
}

type geometryImpl struct {
	kind   Kind
	params Params
	label  string

	meshOnce *sync.Once
	mesh     *Mesh
}

var _ Geometry = &geometryImpl{}

// NewBox creates an axis-aligned box centered at the origin.
// It panics with ErrInvalidGeometryParameter if any dimension is not positive.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//   - options: optional segment and label options
//
// Returns:
//   - Geometry: the box geometry
func NewBox(width, height, depth float32, options ...GeometryBuilderOption) Geometry {
	g := newGeometry(KindBox, Params{
		Width: width, Height: height, Depth: depth,
		WidthSegments: 1, HeightSegments: 1, DepthSegments: 1,
	}, options)
	return g
}

// NewCone creates a cone with its base centered below the origin and its apex above it.
// With four radial segments the cone is a square pyramid.
// It panics with ErrInvalidGeometryParameter if a dimension or the segment count is not positive.
//
// Parameters:
//   - radius: base radius
//   - height: distance from base to apex
//   - radialSegments: number of segments around the circumference
//   - options: optional segment and label options
//
// Returns:
//   - Geometry: the cone geometry
func NewCone(radius, height float32, radialSegments int, options ...GeometryBuilderOption) Geometry {
	return newGeometry(KindCone, Params{
		Radius: radius, Height: height,
		RadialSegments: radialSegments, HeightSegments: 1,
	}, options)
}

// NewPlane creates a plane in the XY plane facing +Z.
// It panics with ErrInvalidGeometryParameter if a dimension is not positive.
//
// Parameters:
//   - width, height: extents along X and Y
//   - options: optional segment and label options; use WithSegments for displacement-mapped planes
//
// Returns:
//   - Geometry: the plane geometry
func NewPlane(width, height float32, options ...GeometryBuilderOption) Geometry {
	return newGeometry(KindPlane, Params{
		Width: width, Height: height,
		WidthSegments: 1, HeightSegments: 1,
	}, options)
}

// NewSphere creates a UV sphere centered at the origin.
// It panics with ErrInvalidGeometryParameter if the radius or a segment count is out of range.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: number of horizontal segments (at least 3)
//   - heightSegments: number of vertical segments (at least 2)
//   - options: optional label options
//
// Returns:
//   - Geometry: the sphere geometry
func NewSphere(radius float32, widthSegments, heightSegments int, options ...GeometryBuilderOption) Geometry {
	return newGeometry(KindSphere, Params{
		Radius:        radius,
		WidthSegments: widthSegments, HeightSegments: heightSegments,
	}, options)
}

func newGeometry(kind Kind, params Params, options []GeometryBuilderOption) *geometryImpl {
	g := &geometryImpl{
		kind:     kind,
		params:   params,
		label:    kind.String(),
		meshOnce: &sync.Once{},
	}
	for _, opt := range options {
		opt(g)
	}
	if err := Validate(g.kind, g.params); err != nil {
		panic(err)
	}
	return g
}

// Validate checks that the parameters describe a buildable mesh for the given kind.
//
// Parameters:
//   - kind: the primitive kind
//   - p: the shape parameters
//
// Returns:
//   - error: an error wrapping ErrInvalidGeometryParameter, or nil
func Validate(kind Kind, p Params) error {
	positive := func(name string, v float32) error {
		if !(v > 0) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %s must be positive, got %v", ErrInvalidGeometryParameter, kind, name, v)
		}
		return nil
	}
	atLeast := func(name string, v, lo int) error {
		if v < lo {
			return fmt.Errorf("%w: %s %s must be at least %d, got %d", ErrInvalidGeometryParameter, kind, name, lo, v)
		}
		return nil
	}

	var errs []error
	switch kind {
	case KindBox:
		errs = append(errs,
			positive("width", p.Width), positive("height", p.Height), positive("depth", p.Depth),
			atLeast("widthSegments", p.WidthSegments, 1),
			atLeast("heightSegments", p.HeightSegments, 1),
			atLeast("depthSegments", p.DepthSegments, 1),
		)
	case KindCone:
		errs = append(errs,
			positive("radius", p.Radius), positive("height", p.Height),
			atLeast("radialSegments", p.RadialSegments, 3),
			atLeast("heightSegments", p.HeightSegments, 1),
		)
	case KindPlane:
		errs = append(errs,
			positive("width", p.Width), positive("height", p.Height),
			atLeast("widthSegments", p.WidthSegments, 1),
			atLeast("heightSegments", p.HeightSegments, 1),
		)
	case KindSphere:
		errs = append(errs,
			positive("radius", p.Radius),
			atLeast("widthSegments", p.WidthSegments, 3),
			atLeast("heightSegments", p.HeightSegments, 2),
		)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidGeometryParameter, int(kind))
	}
	return errors.Join(errs...)
}

func (g *geometryImpl) Kind() Kind {
	return g.kind
}

func (g *geometryImpl) Params() Params {
	return g.params
}

func (g *geometryImpl) Label() string {
	return g.label
}

func (g *geometryImpl) Mesh() *Mesh {
	g.meshOnce.Do(func() {
		switch g.kind {
		case KindBox:
			g.mesh = buildBox(g.params)
		case KindCone:
			g.mesh = buildCone(g.params)
		case KindPlane:
			g.mesh = buildPlane(g.params)
		case KindSphere:
			g.mesh = buildSphere(g.params)
		}
	})
	return g.mesh
}

func (g *geometryImpl) BoundingRadius() float32 {
	p := g.params
	switch g.kind {
	case KindBox:
		return 0.5 * math32.Sqrt(p.Width*p.Width+p.Height*p.Height+p.Depth*p.Depth)
	case KindCone:
		return math32.Sqrt(p.Radius*p.Radius + 0.25*p.Height*p.Height)
	case KindPlane:
		return 0.5 * math32.Sqrt(p.Width*p.Width+p.Height*p.Height)
	case KindSphere:
		return p.Radius
	}
	return 0
}
