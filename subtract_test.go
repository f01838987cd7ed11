package occlcull

import "testing"

func sumArea(tris []Triangle) float32 {
	var total float32
	for _, t := range tris {
		total += TriArea(t)
	}
	return total
}

func TestSubtractTrianglesDisjoint(t *testing.T) {
	minuend := NewTriangle(Point{0, 0}, Point{1, 0}, Point{0, 1})
	subtrahend := NewTriangle(Point{10, 10}, Point{11, 10}, Point{10, 11})

	out := SubtractTriangles(minuend, subtrahend, nil)
	if len(out) != 1 {
		t.Fatalf("disjoint subtraction should return the minuend unchanged, got %d triangles: %v", len(out), out)
	}
	if !F32Eq(sumArea(out), TriArea(minuend), 1e-3) {
		t.Errorf("disjoint subtraction should preserve area, got %v want %v", sumArea(out), TriArea(minuend))
	}
}

func TestSubtractTrianglesMinuendFullyCovered(t *testing.T) {
	minuend := NewTriangle(Point{1, 1}, Point{2, 1}, Point{1, 2})
	subtrahend := NewTriangle(Point{0, 0}, Point{10, 0}, Point{0, 10})

	out := SubtractTriangles(minuend, subtrahend, nil)
	if len(out) != 0 {
		t.Errorf("fully covered minuend should vanish entirely, got %d triangles: %v", len(out), out)
	}
}

func TestSubtractTrianglesSubtrahendFullyCovered(t *testing.T) {
	minuend := NewTriangle(Point{0, 0}, Point{10, 0}, Point{0, 10})
	subtrahend := NewTriangle(Point{1, 1}, Point{2, 1}, Point{1, 2})

	out := SubtractTriangles(minuend, subtrahend, nil)
	if len(out) == 0 {
		t.Fatal("subtracting a small interior triangle should leave residual area")
	}
	if sumArea(out) >= TriArea(minuend) {
		t.Errorf("residual area should be smaller than the original minuend: got %v, minuend %v", sumArea(out), TriArea(minuend))
	}
	expected := TriArea(minuend) - TriArea(subtrahend)
	if !F32Eq(sumArea(out), expected, 1e-2) {
		t.Errorf("residual area should equal minuend area minus subtrahend area: got %v, want %v", sumArea(out), expected)
	}
}

func TestSubtractTrianglesNonCCWIsNoOp(t *testing.T) {
	cwMinuend := NewTriangle(Point{0, 0}, Point{0, 1}, Point{1, 0})
	subtrahend := NewTriangle(Point{10, 10}, Point{11, 10}, Point{10, 11})

	out := SubtractTriangles(cwMinuend, subtrahend, nil)
	if len(out) != 0 {
		t.Errorf("non-CCW minuend should be a silent no-op, got %v", out)
	}
}

func TestSubtractTrianglesContextMatchesSubtractTrianglesOnDisjoint(t *testing.T) {
	minuend := NewTriangle(Point{0, 0}, Point{1, 0}, Point{0, 1})
	subtrahend := NewTriangle(Point{10, 10}, Point{11, 10}, Point{10, 11})

	out := SubtractTrianglesContext(DefaultContext, minuend, subtrahend, nil)
	if len(out) != 1 {
		t.Errorf("SubtractTrianglesContext should behave like SubtractTriangles when ctx is a no-op, got %d triangles", len(out))
	}
}

// vertexSet collects every vertex across out, for point-level checks that
// shouldn't depend on which triangle a vertex ended up in.
func vertexSet(out []Triangle) []Point {
	var pts []Point
	for _, tri := range out {
		pts = append(pts, tri.Pts[0], tri.Pts[1], tri.Pts[2])
	}
	return pts
}

func hasPointNear(pts []Point, want Point, eps float32) bool {
	for _, p := range pts {
		if distSq2(p, want) < eps*eps {
			return true
		}
	}
	return false
}

// TestSubtractTrianglesCornerClip exercises caseM1S0 end to end: subtr
// covers two of minuend's three corners, leaving a single outside corner
// that gets clipped to the two boundary crossings.
func TestSubtractTrianglesCornerClip(t *testing.T) {
	minuend := NewTriangle(Point{0, 0}, Point{4, 0}, Point{0, 4})
	// subtr's hypotenuse is the line 5x+2y=13, so it covers (0,0) and (0,4)
	// but leaves (4,0) outside.
	subtrahend := NewTriangle(Point{-1, -1}, Point{3, -1}, Point{-1, 9})

	out := SubtractTriangles(minuend, subtrahend, nil)
	if len(out) != 1 {
		t.Fatalf("corner clip should produce exactly one triangle, got %d: %v", len(out), out)
	}
	if !TriIsWindingCCW(out[0]) {
		t.Errorf("output triangle should be wound CCW, got %v", out[0])
	}

	const expectedArea = float32(49.0 / 30.0)
	if !F32Eq(TriArea(out[0]), expectedArea, 1e-2) {
		t.Errorf("clipped corner area = %v, want %v", TriArea(out[0]), expectedArea)
	}

	pts := vertexSet(out)
	for _, want := range []Point{{4, 0}, {2.6, 0}, {5.0 / 3.0, 7.0 / 3.0}} {
		if !hasPointNear(pts, want, 1e-2) {
			t.Errorf("expected output vertex near %v, got vertices %v", want, pts)
		}
	}
}

// TestSubtractTrianglesStraightAcrossCut exercises caseM2S0I2 end to end:
// subtr's hypotenuse (x+y=1) slices off the corner at the origin, leaving
// both other minuend vertices outside it and a quadrilateral residual.
func TestSubtractTrianglesStraightAcrossCut(t *testing.T) {
	minuend := NewTriangle(Point{0, 0}, Point{4, 0}, Point{0, 4})
	subtrahend := NewTriangle(Point{-1, -1}, Point{2, -1}, Point{-1, 2})

	out := SubtractTriangles(minuend, subtrahend, nil)
	if len(out) != 2 {
		t.Fatalf("straight-across cut should produce two triangles, got %d: %v", len(out), out)
	}
	for _, tri := range out {
		if !TriIsWindingCCW(tri) {
			t.Errorf("output triangle should be wound CCW, got %v", tri)
		}
	}

	const expectedArea = float32(7.5)
	if !F32Eq(sumArea(out), expectedArea, 1e-2) {
		t.Errorf("residual area = %v, want %v", sumArea(out), expectedArea)
	}

	pts := vertexSet(out)
	for _, want := range []Point{{4, 0}, {0, 4}, {0, 1}, {1, 0}} {
		if !hasPointNear(pts, want, 1e-2) {
			t.Errorf("expected output vertex near %v, got vertices %v", want, pts)
		}
	}
}

// TestFindSubtrInsideCornerStopsAtFirstMatch is a regression test for the
// caseM1S2 corner-hit disambiguation: when both inters points happen to
// coincide with both subtrahend inside vertices (a corner/edge-sharing
// degeneracy), the first match found must win, not the last one scanned.
func TestFindSubtrInsideCornerStopsAtFirstMatch(t *testing.T) {
	inters := segment{{0, 0}, {10, 0}}
	subtr := NewTriangle(Point{0.003, 0.003}, Point{10.003, 0.003}, Point{500, 500})
	subtrInsideIndices := []int{0, 1}

	got := findSubtrInsideCorner(subtr, subtrInsideIndices, inters)
	want := Point{10.003, 0.003}
	if !F32Eq(got.X, want.X, 1e-4) || !F32Eq(got.Y, want.Y, 1e-4) {
		t.Errorf("findSubtrInsideCorner = %v, want %v (the first match's paired vertex, not the later one)", got, want)
	}
}

// TestCaseM1S2CornerClip exercises caseM1S2 directly: a minuend corner
// clipped against a subtrahend whose two inside vertices sit within
// findSubtrInsideCorner's tolerance of the two boundary crossings, widening the cutoff triangle into a quadrilateral
// via the non-touching subtrahend vertex.
func TestCaseM1S2CornerClip(t *testing.T) {
	minuend := NewTriangle(Point{1, 1}, Point{50, 50}, Point{0, 5})
	var facArr [9]float32 // facArr[0] and facArr[3] are both 0, so the
	// two intersection points fall exactly on minuend.Pts[0] and
	// minuend.Pts[1].
	intersIndices := []int{0, 3}
	minuendOutsideIndices := []int{2}

	subtr := NewTriangle(Point{1.003, 1.003}, Point{50.003, 50.003}, Point{999, 999})
	subtrInsideIndices := []int{0, 1}

	out := caseM1S2(minuend, subtr, facArr, intersIndices, minuendOutsideIndices, subtrInsideIndices, nil)
	if len(out) != 2 {
		t.Fatalf("caseM1S2 should produce a quadrilateral split into two triangles, got %d: %v", len(out), out)
	}

	pts := vertexSet(out)
	for _, want := range []Point{{0, 5}, {1, 1}, {50, 50}} {
		if !hasPointNear(pts, want, 1e-2) {
			t.Errorf("expected output vertex near %v, got vertices %v", want, pts)
		}
	}
	if !hasPointNear(pts, Point{50.003, 50.003}, 1e-4) {
		t.Errorf("expected the widened quad to include the non-touching subtrahend vertex near (50.003, 50.003), got vertices %v", pts)
	}
	if hasPointNear(pts, Point{1.003, 1.003}, 1e-4) {
		t.Errorf("widened quad should not use the subtrahend vertex that coincides with the first boundary crossing, got vertices %v", pts)
	}
}
