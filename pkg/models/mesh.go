// Package models loads and represents triangle meshes for termrast.
package models

import (
	"math"

	"github.com/quells/termrast/pkg/math3d"
)

// Mesh is an indexed triangle mesh. The render package consumes it as a
// flat sequence of vertex triples through Triangle.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     [][3]int // Indices into Positions

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// TriangleCount returns the number of triangles.
// Implements render.Mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Triangle returns the three vertex positions of face i in winding order.
// Implements render.Mesh.
func (m *Mesh) Triangle(i int) [3]math3d.Vec3 {
	f := m.Faces[i]
	return [3]math3d.Vec3{m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]}
}

// Bounds returns the axis-aligned bounding box.
// Implements render.BoundedMesh.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// CalculateBounds recomputes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}
	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices and updates
// the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Positions {
		m.Positions[i] = mat.MulVec3(m.Positions[i])
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales its largest
// dimension to size, so models of any scale frame the same on screen.
// A degenerate (zero-size) mesh is only centered.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	center := m.Center()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))

	xform := math3d.Translate(center.Negate())
	if maxDim > 0 {
		xform = math3d.ScaleUniform(size / maxDim).Mul(xform)
	}
	m.Transform(xform)
}
