package models

import (
	"strings"
	"testing"
)

const triangleOBJ = `
# simple triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(triangleOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if mesh.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}

	// OBJ winding is reversed on load to match the renderer's convention.
	if mesh.Faces[0] != [3]int{0, 2, 1} {
		t.Errorf("Faces[0] = %v, want [0 2 1]", mesh.Faces[0])
	}

	tri := mesh.Triangle(0)
	if tri[0].X != 0 || tri[1].Y != 1 || tri[2].X != 1 {
		t.Errorf("Triangle(0) = %v has wrong vertices", tri)
	}
}

func TestParseOBJSlashForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1/10 2/20/30 3//40
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
}

func TestParseOBJIgnoresUnknownLines(t *testing.T) {
	src := `
mtllib scene.mtl
o Triangle
vn 0 0 1
vt 0.5 0.5
v 0 0 0
v 1 0 0
v 0 1 0
s off
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if mesh.VertexCount() != 3 || mesh.TriangleCount() != 1 {
		t.Errorf("got %d vertices, %d triangles, want 3 and 1",
			mesh.VertexCount(), mesh.TriangleCount())
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"quad face", "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3 4\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 7\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad coordinate", "v 0 zero 0\n"},
		{"short vertex", "v 1 2\n"},
		{"bad face index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tc.src)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParseOBJBounds(t *testing.T) {
	src := `
v -2 0 1
v 3 -1 0
v 0 5 -4
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	min, max := mesh.Bounds()
	if min.X != -2 || min.Y != -1 || min.Z != -4 {
		t.Errorf("bounds min = %v, want (-2, -1, -4)", min)
	}
	if max.X != 3 || max.Y != 5 || max.Z != 1 {
		t.Errorf("bounds max = %v, want (3, 5, 1)", max)
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
