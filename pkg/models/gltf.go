package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/quells/termrast/pkg/math3d"
)

// LoadGLTF loads a glTF or binary GLB file. Only triangle geometry is
// read; materials, textures, and animations are ignored.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// appendGLTFMesh extracts the triangle primitives of one glTF mesh.
func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines, points, strips, and fans are out of scope.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Positions)
		mesh.Positions = append(mesh.Positions, positions...)

		// glTF fronts faces counter-clockwise; the renderer's front winding
		// is clockwise in screen space, so the last two indices swap.
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					base + indices[i],
					base + indices[i+2],
					base + indices[i+1],
				})
			}
		} else {
			// No index buffer: vertices form sequential triangles.
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{base + i, base + i + 2, base + i + 1})
			}
		}
	}
	return nil
}

// readPositions reads a VEC3 float accessor as Vec3 values.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		off := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return out, nil
}

// readIndices reads a scalar index accessor as ints, accepting the three
// component widths glTF allows.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range accessor.Count {
		off := i * stride
		switch width {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		case 4:
			out[i] = int(uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24)
		}
	}
	return out, nil
}

// accessorBytes returns the raw little-endian bytes backing an accessor
// along with the element stride. Only embedded (GLB) buffers are
// supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]

	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers are not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	if accessor.Count == 0 {
		return nil, 0, fmt.Errorf("accessor has no elements")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	start := view.ByteOffset + accessor.ByteOffset
	end := start + (accessor.Count-1)*stride + defaultStride
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor range exceeds buffer size")
	}
	return buffer.Data[start:end], stride, nil
}

// readFloat32 decodes a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
