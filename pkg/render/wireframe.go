package render

import (
	"github.com/quells/termrast/pkg/math3d"
)

// WireGlyph is the glyph wireframe edges are drawn with.
const WireGlyph = '#'

// RenderWireframe draws the mesh as edge lines instead of shaded faces,
// the original front end of this renderer. Lines carry no depth; the mode
// is exclusive with shaded rendering within a frame.
func (r *Rasterizer) RenderWireframe(mesh Mesh, frame Frame) {
	r.buf.Clear()
	r.CullStats = CullStats{}

	if r.cullMesh(mesh, frame.Model) {
		return
	}

	viewProj := r.camera.ViewProjectionMatrix()
	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		var world [3]math3d.Vec3
		for j := range 3 {
			world[j] = frame.Model.MulVec3(tri[j])
		}
		r.drawEdge(world[0], world[1], viewProj)
		r.drawEdge(world[1], world[2], viewProj)
		r.drawEdge(world[2], world[0], viewProj)
	}
}

// drawEdge projects a world-space segment and rasterizes it with
// Bresenham's algorithm. Segments with an endpoint at or behind the
// camera are dropped whole, matching the triangle near-plane policy.
func (r *Rasterizer) drawEdge(a, b math3d.Vec3, viewProj math3d.Mat4) {
	ca := viewProj.MulVec4(math3d.V4FromV3(a, 1))
	cb := viewProj.MulVec4(math3d.V4FromV3(b, 1))
	if ca.W <= 0 || cb.W <= 0 {
		return
	}

	width := float64(r.buf.Width)
	height := float64(r.buf.Height)
	if width < 1 || height < 1 {
		return
	}
	na := ca.PerspectiveDivide()
	nb := cb.PerspectiveDivide()
	x0 := (na.X + 1) * 0.5 * width
	y0 := (1 - na.Y) * 0.5 * height
	x1 := (nb.X + 1) * 0.5 * width
	y1 := (1 - nb.Y) * 0.5 * height

	// A vertex barely in front of the eye plane projects arbitrarily far
	// off screen, so the segment must be clipped to the grid before the
	// walk, which otherwise covers every cell between the endpoints.
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, width-1, height-1)
	if !ok {
		return
	}

	r.drawLine(int(x0), int(y0), int(x1), int(y1))
}

// clipSegment clips a segment to the rectangle [0, xMax] × [0, yMax] with
// the Liang-Barsky algorithm. ok is false when the segment lies entirely
// outside.
func clipSegment(x0, y0, x1, y1, xMax, yMax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, xMax - x0},
		{-dy, y0},
		{dy, yMax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawLine is Bresenham's algorithm over the character grid. Out-of-grid
// cells are dropped by the buffer's bounds check.
func (r *Rasterizer) drawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		r.buf.Set(x0, y0, WireGlyph, 0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
