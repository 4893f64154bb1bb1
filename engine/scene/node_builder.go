package scene

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/geometry"
	"github.com/Carmen-Shannon/hauntedhouse/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(n *node)

// WithGeometry sets the geometry the node draws.
//
// Parameters:
//   - geo: the shared geometry
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithGeometry(geo geometry.Geometry) NodeBuilderOption {
	return func(n *node) {
		n.geo = geo
	}
}

// WithMaterial sets the material the node is shaded with.
//
// Parameters:
//   - mat: the shared material
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMaterial(mat material.Material) NodeBuilderOption {
	return func(n *node) {
		n.mat = mat
	}
}

// WithPosition sets the local translation.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the local Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the local per-axis scale.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = mgl32.Vec3{x, y, z}
	}
}

// WithUniformScale sets the same scale on every axis.
//
// Parameters:
//   - s: scale factor
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithUniformScale(s float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = mgl32.Vec3{s, s, s}
	}
}

// WithCastShadow sets whether the node renders into shadow maps.
//
// Parameters:
//   - cast: true to cast shadows
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithCastShadow(cast bool) NodeBuilderOption {
	return func(n *node) {
		n.castShadow = cast
	}
}

// WithReceiveShadow sets whether the node samples shadow maps.
//
// Parameters:
//   - receive: true to receive shadows
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithReceiveShadow(receive bool) NodeBuilderOption {
	return func(n *node) {
		n.receiveShadow = receive
	}
}

// WithChildren attaches children at construction.
//
// Parameters:
//   - children: nodes created by NewNode
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		n.Add(children...)
	}
}
