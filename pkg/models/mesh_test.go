package models

import (
	"math"
	"testing"

	"github.com/quells/termrast/pkg/math3d"
)

// boxMesh builds a mesh spanning the given extents; faces are not needed
// for bounds tests.
func boxMesh(min, max math3d.Vec3) *Mesh {
	m := NewMesh("box")
	m.Positions = []math3d.Vec3{
		min,
		max,
		math3d.V3(min.X, max.Y, min.Z),
	}
	m.Faces = [][3]int{{0, 1, 2}}
	m.CalculateBounds()
	return m
}

func TestMeshBounds(t *testing.T) {
	m := boxMesh(math3d.V3(-1, -2, -3), math3d.V3(3, 2, 1))

	if c := m.Center(); c.X != 1 || c.Y != 0 || c.Z != -1 {
		t.Errorf("Center = %v, want (1, 0, -1)", c)
	}
	if s := m.Size(); s.X != 4 || s.Y != 4 || s.Z != 4 {
		t.Errorf("Size = %v, want (4, 4, 4)", s)
	}
}

func TestMeshEmptyBounds(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()

	min, max := m.Bounds()
	if min != math3d.Zero3() || max != math3d.Zero3() {
		t.Errorf("empty mesh bounds = %v, %v, want zero", min, max)
	}
}

func TestMeshTransform(t *testing.T) {
	m := boxMesh(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))
	m.Transform(math3d.Translate(math3d.V3(5, 0, 0)))

	min, max := m.Bounds()
	if min.X != 5 || max.X != 6 {
		t.Errorf("translated bounds X = [%v, %v], want [5, 6]", min.X, max.X)
	}
	if m.Positions[0].X != 5 {
		t.Errorf("Positions[0].X = %v, want 5", m.Positions[0].X)
	}
}

func TestMeshNormalize(t *testing.T) {
	m := boxMesh(math3d.V3(10, 10, 10), math3d.V3(14, 12, 11))
	m.Normalize(2.0)

	c := m.Center()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 || math.Abs(c.Z) > 1e-9 {
		t.Errorf("normalized center = %v, want origin", c)
	}

	s := m.Size()
	maxDim := math.Max(s.X, math.Max(s.Y, s.Z))
	if math.Abs(maxDim-2.0) > 1e-9 {
		t.Errorf("normalized max dimension = %v, want 2.0", maxDim)
	}
}

func TestMeshNormalizeDegenerate(t *testing.T) {
	m := NewMesh("point")
	m.Positions = []math3d.Vec3{math3d.V3(7, 7, 7)}
	m.Normalize(2.0)

	if p := m.Positions[0]; p.X != 0 || p.Y != 0 || p.Z != 0 {
		t.Errorf("degenerate mesh should center on the origin, got %v", p)
	}
}

func TestMeshTriangle(t *testing.T) {
	m := NewMesh("tri")
	m.Positions = []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
	}
	m.Faces = [][3]int{{2, 0, 1}}

	tri := m.Triangle(0)
	if tri[0].Y != 1 || tri[1].X != 0 || tri[2].X != 1 {
		t.Errorf("Triangle(0) = %v does not follow face indices", tri)
	}
}
