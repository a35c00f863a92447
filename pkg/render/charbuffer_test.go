package render

import (
	"strings"
	"testing"
)

func TestCharBufferClear(t *testing.T) {
	buf := NewCharBuffer(10, 5)

	buf.Set(3, 2, '@', 0.5)
	buf.Set(9, 4, '#', 1.2)

	buf.Clear()
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if g := buf.Glyph(x, y); g != Background {
				t.Fatalf("Glyph(%d,%d) = %q after Clear, want background", x, y, g)
			}
			if d := buf.Depth(x, y); d != 0 {
				t.Fatalf("Depth(%d,%d) = %v after Clear, want 0", x, y, d)
			}
		}
	}
}

func TestCharBufferSetGet(t *testing.T) {
	buf := NewCharBuffer(10, 5)

	buf.Set(3, 2, '@', 0.5)
	if g := buf.Glyph(3, 2); g != '@' {
		t.Errorf("Glyph(3,2) = %q, want '@'", g)
	}
	if d := buf.Depth(3, 2); d != 0.5 {
		t.Errorf("Depth(3,2) = %v, want 0.5", d)
	}
}

func TestCharBufferBounds(t *testing.T) {
	buf := NewCharBuffer(10, 5)

	// Out-of-bounds writes are dropped, reads return the cleared state.
	buf.Set(-1, 0, '@', 1)
	buf.Set(10, 0, '@', 1)
	buf.Set(0, -1, '@', 1)
	buf.Set(0, 5, '@', 1)

	if g := buf.Glyph(-1, 0); g != Background {
		t.Errorf("out-of-bounds Glyph = %q, want background", g)
	}
	if d := buf.Depth(100, 100); d != 0 {
		t.Errorf("out-of-bounds Depth = %v, want 0", d)
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if buf.Glyph(x, y) != Background {
				t.Fatalf("in-bounds pixel (%d,%d) written by out-of-bounds Set", x, y)
			}
		}
	}
}

func TestCharBufferString(t *testing.T) {
	buf := NewCharBuffer(4, 2)
	buf.Set(0, 0, 'a', 1)
	buf.Set(3, 1, 'b', 1)

	if row := buf.Row(0); row != "a   " {
		t.Errorf("Row(0) = %q, want %q", row, "a   ")
	}

	s := buf.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() has %d lines, want 2", len(lines))
	}
	if lines[1] != "   b" {
		t.Errorf("line 1 = %q, want %q", lines[1], "   b")
	}
}
