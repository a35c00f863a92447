// Package render implements the software rasterization pipeline for
// termrast: object-to-clip transformation, perspective divide, screen-space
// triangle rasterization with barycentric interpolation, reciprocal-w depth
// testing, and flat-shaded luminance-to-glyph mapping.
package render

import "strings"

// Background is the glyph an empty cell resets to.
const Background = ' '

// CharBuffer is the frame buffer: a character grid plus a parallel
// reciprocal-w depth grid. Larger depth values are nearer to the camera;
// the grid clears to 0, which is farther than any reciprocal-w a visible
// triangle can produce.
type CharBuffer struct {
	Width  int
	Height int

	glyphs []rune
	depth  []float64
}

// NewCharBuffer allocates a cleared buffer with the given grid dimensions.
func NewCharBuffer(width, height int) *CharBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &CharBuffer{
		Width:  width,
		Height: height,
		glyphs: make([]rune, width*height),
		depth:  make([]float64, width*height),
	}
	b.Clear()
	return b
}

// Clear resets every cell to the background glyph and the far depth
// sentinel. Call once at the start of each frame.
func (b *CharBuffer) Clear() {
	n := len(b.glyphs)
	if n == 0 {
		return
	}
	b.glyphs[0] = Background
	b.depth[0] = 0
	for i := 1; i < n; i *= 2 {
		copy(b.glyphs[i:], b.glyphs[:i])
		copy(b.depth[i:], b.depth[:i])
	}
}

// Set writes a glyph and its reciprocal-w depth at (x, y). Writes outside
// the grid are silently dropped.
func (b *CharBuffer) Set(x, y int, glyph rune, invW float64) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.glyphs[y*b.Width+x] = glyph
	b.depth[y*b.Width+x] = invW
}

// Glyph returns the glyph at (x, y), or the background glyph out of bounds.
func (b *CharBuffer) Glyph(x, y int) rune {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Background
	}
	return b.glyphs[y*b.Width+x]
}

// Depth returns the reciprocal-w depth at (x, y), or the far sentinel out
// of bounds.
func (b *CharBuffer) Depth(x, y int) float64 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.depth[y*b.Width+x]
}

// Row returns row y of the character grid as a string.
func (b *CharBuffer) Row(y int) string {
	if y < 0 || y >= b.Height {
		return ""
	}
	return string(b.glyphs[y*b.Width : (y+1)*b.Width])
}

// String renders the whole grid, one row per line. Mostly useful for
// debugging and tests.
func (b *CharBuffer) String() string {
	var sb strings.Builder
	sb.Grow((b.Width + 1) * b.Height)
	for y := 0; y < b.Height; y++ {
		sb.WriteString(b.Row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}
