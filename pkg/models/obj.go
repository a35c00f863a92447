package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quells/termrast/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Only vertex positions and
// triangular faces are read; normals, texture coordinates, groups, and
// materials are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads OBJ data from r. Faces must be triangles; indices are
// 1-based and may carry /texture/normal suffixes, which are dropped.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := range 3 {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad vertex coordinate %q", lineNo, fields[i+1])
				}
				coords[i] = c
			}
			mesh.Positions = append(mesh.Positions, math3d.V3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: only triangular faces are supported (got %d vertices)", lineNo, len(fields)-1)
			}
			var face [3]int
			for i := range 3 {
				idx, err := parseFaceIndex(fields[i+1])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				// OBJ indices are 1-based.
				idx--
				if idx < 0 || idx >= len(mesh.Positions) {
					return nil, fmt.Errorf("line %d: vertex index %d out of range", lineNo, idx+1)
				}
				face[i] = idx
			}
			// OBJ fronts faces counter-clockwise; the renderer's front
			// winding is clockwise in screen space.
			face[1], face[2] = face[2], face[1]
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// parseFaceIndex extracts the vertex index from an OBJ face element,
// which may be "v", "v/vt", "v//vn", or "v/vt/vn".
func parseFaceIndex(s string) (int, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", s)
	}
	return idx, nil
}
