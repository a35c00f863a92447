package render

import (
	"golang.org/x/sync/errgroup"
)

// renderBands fans rasterization out over r.Workers horizontal screen
// bands. Each worker walks the full triangle list but only writes rows
// inside its own band, so no two goroutines ever touch the same pixel and
// the depth-test invariant needs no locking. The result is identical to a
// sequential pass: the depth test alone decides per-pixel visibility, so
// neither triangle order nor band boundaries can change the output.
func (r *Rasterizer) renderBands(mesh Mesh, frame Frame) {
	workers := r.Workers
	if workers > r.buf.Height {
		workers = r.buf.Height
	}
	if workers <= 1 {
		r.renderBand(mesh, frame, 0, r.buf.Height)
		return
	}

	// Computing the cached matrices once up front keeps the workers
	// read-only on shared state.
	r.camera.ViewProjectionMatrix()

	rows := r.buf.Height
	var g errgroup.Group
	for w := range workers {
		yMin := w * rows / workers
		yMax := (w + 1) * rows / workers
		g.Go(func() error {
			r.renderBand(mesh, frame, yMin, yMax)
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()
}
