package render

import (
	"math"

	"github.com/quells/termrast/pkg/math3d"
)

// degenerateArea is the threshold on the barycentric denominator below
// which a screen-space triangle is treated as zero-area and skipped.
const degenerateArea = 1e-5

// Mesh is the triangle source consumed by the rasterizer: a finite
// sequence of independent triangles, each as three positions in winding
// order. Implementations live in the models package or in tests.
type Mesh interface {
	TriangleCount() int
	Triangle(i int) [3]math3d.Vec3
}

// BoundedMesh is a Mesh that knows its local-space bounding box, which
// lets the rasterizer reject whole meshes against the view frustum before
// touching any triangle.
type BoundedMesh interface {
	Mesh
	Bounds() (min, max math3d.Vec3)
}

// TriangleList is the simplest Mesh: a flat slice of vertex triples.
type TriangleList [][3]math3d.Vec3

// TriangleCount returns the number of triangles.
func (t TriangleList) TriangleCount() int { return len(t) }

// Triangle returns triangle i.
func (t TriangleList) Triangle(i int) [3]math3d.Vec3 { return t[i] }

// Frame is the per-frame context passed into the pipeline. The frame loop
// owns and mutates it between frames; the pipeline only reads it.
type Frame struct {
	// Model is the object-to-world matrix for this frame, typically an
	// accumulated rotation.
	Model math3d.Mat4
}

// CullStats counts frustum-culling decisions, reset each frame.
type CullStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// Rasterizer renders meshes into a CharBuffer. One frame is a pure
// sequential compute pass: transform, cull and shade, rasterize. Re-running
// it on identical inputs reproduces the same buffer exactly, and the depth
// test makes the output independent of triangle submission order.
type Rasterizer struct {
	camera *Camera
	buf    *CharBuffer

	// Ramp maps shading intensity to glyphs. Must hold at least 2 symbols.
	Ramp Ramp
	// Light is the direction light travels, normalized on use.
	Light math3d.Vec3
	// Ambient floors the shading intensity so unlit faces stay visible.
	Ambient float64
	// Workers > 1 splits rasterization into that many horizontal screen
	// bands processed concurrently. Output is identical to sequential.
	Workers int

	CullStats CullStats
}

// NewRasterizer creates a rasterizer drawing into buf through camera.
func NewRasterizer(camera *Camera, buf *CharBuffer) *Rasterizer {
	return &Rasterizer{
		camera:  camera,
		buf:     buf,
		Ramp:    DefaultRamp,
		Light:   math3d.V3(0, 0, -1),
		Ambient: 0.1,
		Workers: 1,
	}
}

// Buffer returns the frame buffer. It is owned by the pipeline during
// Render and read-only for presentation afterward.
func (r *Rasterizer) Buffer() *CharBuffer {
	return r.buf
}

// SetBuffer swaps the output buffer, e.g. after a terminal resize.
func (r *Rasterizer) SetBuffer(buf *CharBuffer) {
	r.buf = buf
}

// Render rasterizes one frame of the mesh: clears the buffer, then
// transforms, culls, shades, and depth-tests every triangle. If the mesh
// reports bounds and they fall outside the view frustum the whole mesh is
// skipped after the clear.
func (r *Rasterizer) Render(mesh Mesh, frame Frame) {
	r.buf.Clear()
	r.CullStats = CullStats{}

	if r.cullMesh(mesh, frame.Model) {
		return
	}

	if r.Workers > 1 {
		r.renderBands(mesh, frame)
		return
	}
	r.renderBand(mesh, frame, 0, r.buf.Height)
}

// cullMesh reports whether the whole mesh can be rejected against the view
// frustum using its transformed bounding box.
func (r *Rasterizer) cullMesh(mesh Mesh, model math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMesh)
	if !ok {
		return false
	}
	r.CullStats.MeshesTested++

	bmin, bmax := bounded.Bounds()
	world := AABB{Min: bmin, Max: bmax}.Transform(model)
	frustum := ExtractFrustum(r.camera.ViewProjectionMatrix())
	if !frustum.IntersectAABB(world) {
		r.CullStats.MeshesCulled++
		return true
	}
	r.CullStats.MeshesDrawn++
	return false
}

// renderBand rasterizes every triangle of the mesh, restricted to rows
// yMin (inclusive) through yMax (exclusive).
func (r *Rasterizer) renderBand(mesh Mesh, frame Frame, yMin, yMax int) {
	viewProj := r.camera.ViewProjectionMatrix()
	eye := r.camera.Eye
	light := r.Light.Normalize()

	for i := 0; i < mesh.TriangleCount(); i++ {
		r.rasterizeTriangle(mesh.Triangle(i), frame.Model, viewProj, eye, light, yMin, yMax)
	}
}

// rasterizeTriangle runs one triangle through the full pipeline: world
// transform, backface cull, flat shade, clip rejection, perspective
// divide, viewport mapping, and the barycentric inner loop with
// reciprocal-w depth testing. Only rows in [yMin, yMax) are written.
func (r *Rasterizer) rasterizeTriangle(tri [3]math3d.Vec3, model, viewProj math3d.Mat4, eye, light math3d.Vec3, yMin, yMax int) {
	var world [3]math3d.Vec3
	for i := range 3 {
		world[i] = model.MulVec3(tri[i])
	}

	// Backface cull in world space, before projection. The view vector
	// runs from the first vertex to the camera; a zero normal from a
	// degenerate triangle also lands in the discard branch.
	normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Normalize()
	if normal.Dot(eye.Sub(world[0])) >= 0 {
		return
	}

	// Flat shading: one glyph for the entire triangle.
	intensity := normal.Dot(light.Negate())
	if intensity < r.Ambient {
		intensity = r.Ambient
	}
	glyph := r.Ramp.Glyph(intensity)

	// To clip space. A vertex at or behind the camera plane drops the
	// whole triangle; there is no partial clipping.
	var clip [3]math3d.Vec4
	for i := range 3 {
		clip[i] = viewProj.MulVec4(math3d.V4FromV3(world[i], 1))
		if clip[i].W <= 0 {
			return
		}
	}

	// Perspective divide and viewport mapping. Reciprocal w rides along
	// for perspective-correct depth.
	width := float64(r.buf.Width)
	height := float64(r.buf.Height)
	var sx, sy, invW [3]float64
	for i := range 3 {
		invW[i] = 1 / clip[i].W
		ndcX := clip[i].X * invW[i]
		ndcY := clip[i].Y * invW[i]
		sx[i] = (ndcX + 1) * 0.5 * width
		sy[i] = (1 - ndcY) * 0.5 * height // screen rows grow downward
	}

	minX := int(math.Max(0, math.Floor(min3(sx[0], sx[1], sx[2]))))
	maxX := int(math.Min(width-1, math.Ceil(max3(sx[0], sx[1], sx[2]))))
	minY := int(math.Max(float64(yMin), math.Floor(min3(sy[0], sy[1], sy[2]))))
	maxY := int(math.Min(float64(yMax-1), math.Ceil(max3(sy[0], sy[1], sy[2]))))
	if minX > maxX || minY > maxY {
		return
	}

	bary, ok := newBarycentric(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	if !ok {
		return // zero-area triangle contributes no pixels
	}

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			b0, b1, b2 := bary.at(px, py)

			// Closed edges: pixels exactly on an edge belong to the triangle.
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*invW[0] + b1*invW[1] + b2*invW[2]
			if z > r.buf.Depth(x, y) {
				r.buf.Set(x, y, glyph, z)
			}
		}
	}
}

// barycentric holds the per-triangle constants of the two-edge dot-product
// formulation, so the inner loop only computes the pixel-dependent terms.
type barycentric struct {
	x0, y0   float64
	e0x, e0y float64
	e1x, e1y float64
	dot00    float64
	dot01    float64
	dot11    float64
	invDenom float64
}

// newBarycentric prepares barycentric evaluation for a screen-space
// triangle. ok is false when the denominator (twice the signed area,
// squared) is below the degeneracy threshold.
func newBarycentric(x0, y0, x1, y1, x2, y2 float64) (barycentric, bool) {
	b := barycentric{x0: x0, y0: y0}
	b.e0x, b.e0y = x2-x0, y2-y0
	b.e1x, b.e1y = x1-x0, y1-y0
	b.dot00 = b.e0x*b.e0x + b.e0y*b.e0y
	b.dot01 = b.e0x*b.e1x + b.e0y*b.e1y
	b.dot11 = b.e1x*b.e1x + b.e1y*b.e1y

	denom := b.dot00*b.dot11 - b.dot01*b.dot01
	if denom < degenerateArea {
		return barycentric{}, false
	}
	b.invDenom = 1 / denom
	return b, true
}

// at evaluates the barycentric weights of point (px, py) with respect to
// the triangle's vertices 0, 1, 2.
func (b barycentric) at(px, py float64) (b0, b1, b2 float64) {
	e2x, e2y := px-b.x0, py-b.y0
	dot02 := b.e0x*e2x + b.e0y*e2y
	dot12 := b.e1x*e2x + b.e1y*e2y

	b2 = (b.dot11*dot02 - b.dot01*dot12) * b.invDenom
	b1 = (b.dot00*dot12 - b.dot01*dot02) * b.invDenom
	b0 = 1 - b1 - b2
	return b0, b1, b2
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
