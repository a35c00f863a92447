package math3d

import "testing"

func TestPerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2).PerspectiveDivide()
	if v != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v, want (1, 2, 3)", v)
	}

	// W of zero leaves the components untouched rather than dividing.
	z := V4(2, 4, 6, 0).PerspectiveDivide()
	if z != V3(2, 4, 6) {
		t.Errorf("PerspectiveDivide with w=0 = %v, want (2, 4, 6)", z)
	}
}

func TestVec4FromV3(t *testing.T) {
	v := V4FromV3(V3(1, 2, 3), 1)
	if v.X != 1 || v.Y != 2 || v.Z != 3 || v.W != 1 {
		t.Errorf("V4FromV3 = %v, want (1, 2, 3, 1)", v)
	}
	if v.Vec3() != V3(1, 2, 3) {
		t.Errorf("Vec3() = %v, want (1, 2, 3)", v.Vec3())
	}
}
