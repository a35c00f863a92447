package render

import (
	"fmt"
	"math"
)

// Ramp is an ordered glyph ramp from visually sparse (dark) to dense
// (bright) characters, used to encode surface brightness as text.
type Ramp []rune

// DefaultRamp is the classic luminance ramp.
var DefaultRamp = Ramp(".,-~:;=!*#$@")

// NewRamp builds a ramp from a string. A usable ramp needs at least two
// distinct symbols.
func NewRamp(s string) (Ramp, error) {
	r := Ramp(s)
	distinct := make(map[rune]struct{}, len(r))
	for _, g := range r {
		distinct[g] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("glyph ramp %q needs at least 2 distinct symbols", s)
	}
	return r, nil
}

// Glyph maps a light intensity onto the ramp. The index is
// round(intensity * (len-1)) clamped to the valid range, so any input is
// safe, including out-of-range intensities.
func (r Ramp) Glyph(intensity float64) rune {
	idx := int(math.Round(intensity * float64(len(r)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r) {
		idx = len(r) - 1
	}
	return r[idx]
}
