package scene

import (
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is an element of the scene graph: a local transform plus optional geometry and material,
// and an ordered list of exclusively owned children. A node without geometry is a pure grouping
// transform. Node satisfies light.Anchor so lights can be positioned relative to it.
type Node interface {
	// Name returns the node's identifier.
	Name() string

	// Position returns the translation relative to the parent.
	//
	// Returns:
	//   - mgl32.Vec3: local position
	Position() mgl32.Vec3

	// SetPosition sets the translation relative to the parent.
	//
	// Parameters:
	//   - x, y, z: local position components
	SetPosition(x, y, z float32)

	// Rotation returns the Euler rotation in radians, applied in X, Y, Z order.
	//
	// Returns:
	//   - mgl32.Vec3: rotation about the x, y and z axes
	Rotation() mgl32.Vec3

	// SetRotation sets the Euler rotation in radians, applied in X, Y, Z order.
	//
	// Parameters:
	//   - x, y, z: rotation about each axis in radians
	SetRotation(x, y, z float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: local scale
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float32)

	// Geometry returns the shared geometry, or nil for a group node.
	Geometry() geometry.Geometry

	// Material returns the shared material, or nil for a group node.
	Material() material.Material

	// CastShadow returns whether the node renders into shadow maps.
	CastShadow() bool

	// SetCastShadow sets whether the node renders into shadow maps.
	SetCastShadow(cast bool)

	// ReceiveShadow returns whether the node samples shadow maps when lit.
	ReceiveShadow() bool

	// SetReceiveShadow sets whether the node samples shadow maps when lit.
	SetReceiveShadow(receive bool)

	// IsGroup reports whether the node carries no geometry.
	IsGroup() bool

	// Parent returns the owning node, or nil for a detached or root node.
	Parent() Node

	// Children returns a copy of the ordered child list.
	//
	// Returns:
	//   - []Node: the children in insertion order
	Children() []Node

	// Add appends children to this node. A child that already has a parent is detached from it first.
	// Adding a node to itself or to one of its descendants panics.
	//
	// Parameters:
	//   - children: nodes created by NewNode
	Add(children ...Node)

	// Remove detaches a direct child together with its subtree.
	//
	// Parameters:
	//   - child: the child to remove
	//
	// Returns:
	//   - bool: false if child is not a direct child of this node
	Remove(child Node) bool

	// Find searches this node and its subtree depth-first for a node with the given name.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - Node: the first match, or nil
	Find(name string) Node

	// Traverse calls fn for this node and every descendant, depth-first in child order.
	// Returning false from fn skips that node's children.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(Node) bool)

	// LocalMatrix returns T * Rx * Ry * Rz * S for this node.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns parent.WorldMatrix() * LocalMatrix().
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldMatrix() mgl32.Mat4
}

type node struct {
	mu *sync.RWMutex

	name     string
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	geo geometry.Geometry
	mat material.Material

	castShadow    bool
	receiveShadow bool

	parent   *node
	children []*node
}

var _ Node = &node{}

// NewNode creates a scene graph node with identity transform and any provided options applied.
//
// Parameters:
//   - name: the node's identifier
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(name string, options ...NodeBuilderOption) Node {
	n := &node{
		mu:    &sync.RWMutex{},
		name:  name,
		scale: mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(n)
	}
	return n
}

// NewMesh creates a renderable node from a geometry and material.
//
// Parameters:
//   - name: the node's identifier
//   - geo: the geometry to draw
//   - mat: the material to shade with
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewMesh(name string, geo geometry.Geometry, mat material.Material, options ...NodeBuilderOption) Node {
	return NewNode(name, append([]NodeBuilderOption{WithGeometry(geo), WithMaterial(mat)}, options...)...)
}

// asNode unwraps the package's own implementation. Nodes from other packages cannot own a parent pointer.
func asNode(n Node) *node {
	impl, ok := n.(*node)
	if !ok {
		panic("scene: Node must be created with NewNode")
	}
	return impl
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) SetPosition(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = mgl32.Vec3{x, y, z}
}

func (n *node) Rotation() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *node) SetRotation(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = mgl32.Vec3{x, y, z}
}

func (n *node) Scale() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *node) SetScale(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = mgl32.Vec3{x, y, z}
}

func (n *node) Geometry() geometry.Geometry {
	return n.geo
}

func (n *node) Material() material.Material {
	return n.mat
}

func (n *node) CastShadow() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.castShadow
}

func (n *node) SetCastShadow(cast bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.castShadow = cast
}

func (n *node) ReceiveShadow() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.receiveShadow
}

func (n *node) SetReceiveShadow(receive bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receiveShadow = receive
}

func (n *node) IsGroup() bool {
	return n.geo == nil
}

func (n *node) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Add(children ...Node) {
	for _, c := range children {
		child := asNode(c)
		for p := n; p != nil; p = p.parentNode() {
			if p == child {
				panic("scene: cannot add a node to its own subtree")
			}
		}
		if old := child.parentNode(); old != nil {
			old.Remove(child)
		}

		n.mu.Lock()
		n.children = append(n.children, child)
		n.mu.Unlock()

		child.mu.Lock()
		child.parent = n
		child.mu.Unlock()
	}
}

func (n *node) Remove(c Node) bool {
	child, ok := c.(*node)
	if !ok {
		return false
	}

	n.mu.Lock()
	idx := -1
	for i, existing := range n.children {
		if existing == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	n.mu.Unlock()

	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	return true
}

func (n *node) Find(name string) Node {
	var found Node
	n.Traverse(func(v Node) bool {
		if found != nil {
			return false
		}
		if v.Name() == name {
			found = v
			return false
		}
		return true
	})
	return found
}

func (n *node) Traverse(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	n.mu.RLock()
	children := make([]*node, len(n.children))
	copy(children, n.children)
	n.mu.RUnlock()
	for _, c := range children {
		c.Traverse(fn)
	}
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return common.BuildModelMatrix(n.position, n.rotation, n.scale)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	local := n.LocalMatrix()
	if p := n.parentNode(); p != nil {
		return p.WorldMatrix().Mul4(local)
	}
	return local
}

// parentNode returns the concrete parent without the interface nil trap.
func (n *node) parentNode() *node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}
