package occlcull

import "testing"

func TestF32Eq(t *testing.T) {
	cases := []struct {
		a, b float32
		want bool
	}{
		{1.0, 1.0, true},
		{1.0, 1.00005, true},
		{1.0, 1.001, false},
		{0, 0, true},
		{0, 1e-5, true},
	}
	for _, c := range cases {
		if got := F32Eq(c.a, c.b); got != c.want {
			t.Errorf("F32Eq(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestF32EqCustomEpsilon(t *testing.T) {
	if !F32Eq(1.0, 1.4, 0.5) {
		t.Error("F32Eq with epsilon 0.5 should treat 1.0 and 1.4 as equal")
	}
	if F32Eq(1.0, 1.6, 0.5) {
		t.Error("F32Eq with epsilon 0.5 should not treat 1.0 and 1.6 as equal")
	}
}

func TestF32Compare(t *testing.T) {
	if f32Compare(1, 1.00001) != 0 {
		t.Error("nearly-equal values should compare equal")
	}
	if f32Compare(1, 2) != -1 {
		t.Error("1 should compare less than 2")
	}
	if f32Compare(2, 1) != 1 {
		t.Error("2 should compare greater than 1")
	}
}

func TestPtLeftOf(t *testing.T) {
	pt := Point{X: 0, Y: 0}
	// p then q, both on positive X axis, q further out: should be collinear.
	if c := ptLeftOf(pt, Point{X: 1, Y: 0}, Point{X: 2, Y: 0}); c != 0 {
		t.Errorf("collinear points should compare equal, got %d", c)
	}
}

func TestIsNaN32(t *testing.T) {
	if !isNaN32(NaN32) {
		t.Error("isNaN32(NaN32) should be true")
	}
	if isNaN32(0) {
		t.Error("isNaN32(0) should be false")
	}
}
