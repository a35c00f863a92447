package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

// testDocument builds an embedded-buffer document holding three VEC3
// float positions followed by three ushort indices.
func testDocument(t *testing.T) *gltf.Document {
	t.Helper()

	var data []byte
	for _, f := range []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	} {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	indexOffset := len(data)
	for _, i := range []uint16{0, 1, 2} {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	posView := 0
	idxView := 1
	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: indexOffset},
			{Buffer: 0, ByteOffset: indexOffset, ByteLength: len(data) - indexOffset},
		},
		Accessors: []*gltf.Accessor{
			{
				BufferView:    &posView,
				ComponentType: gltf.ComponentFloat,
				Type:          gltf.AccessorVec3,
				Count:         3,
			},
			{
				BufferView:    &idxView,
				ComponentType: gltf.ComponentUshort,
				Type:          gltf.AccessorScalar,
				Count:         3,
			},
		},
	}
}

func TestReadPositions(t *testing.T) {
	doc := testDocument(t)

	positions, err := readPositions(doc, 0)
	if err != nil {
		t.Fatalf("readPositions failed: %v", err)
	}
	if len(positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(positions))
	}
	if positions[1].X != 1 || positions[2].Y != 1 {
		t.Errorf("positions = %v have wrong coordinates", positions)
	}
}

func TestReadIndices(t *testing.T) {
	doc := testDocument(t)

	indices, err := readIndices(doc, 1)
	if err != nil {
		t.Fatalf("readIndices failed: %v", err)
	}
	if len(indices) != 3 || indices[0] != 0 || indices[1] != 1 || indices[2] != 2 {
		t.Errorf("indices = %v, want [0 1 2]", indices)
	}
}

func TestAppendGLTFMeshWinding(t *testing.T) {
	doc := testDocument(t)
	indices := 1
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: 0},
			Indices:    &indices,
		}},
	}}

	mesh := NewMesh("test")
	if err := appendGLTFMesh(doc, doc.Meshes[0], mesh); err != nil {
		t.Fatalf("appendGLTFMesh failed: %v", err)
	}

	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	// Winding is reversed on load to match the renderer's convention.
	if mesh.Faces[0] != [3]int{0, 2, 1} {
		t.Errorf("Faces[0] = %v, want [0 2 1]", mesh.Faces[0])
	}
}

func TestReadPositionsWrongType(t *testing.T) {
	doc := testDocument(t)
	if _, err := readPositions(doc, 1); err == nil {
		t.Error("scalar accessor should be rejected as positions")
	}
}

func TestAccessorBytesRangeCheck(t *testing.T) {
	doc := testDocument(t)
	doc.Accessors[0].Count = 100

	if _, _, err := accessorBytes(doc, doc.Accessors[0], 12); err == nil {
		t.Error("accessor exceeding the buffer should be rejected")
	}
}

func TestAccessorBytesEmptyAccessor(t *testing.T) {
	doc := testDocument(t)
	doc.Accessors[0].Count = 0
	// An interleaved stride wider than the element makes the slice bounds
	// run backwards for a zero-count accessor; it must error, not panic.
	doc.BufferViews[0].ByteStride = 24

	if _, _, err := accessorBytes(doc, doc.Accessors[0], 12); err == nil {
		t.Error("zero-count accessor should be rejected")
	}
}
