package occlcull

import "testing"

func TestOcclCullContextAddAndGetFlags(t *testing.T) {
	clip := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	ctx := NewOcclCullContext(4, clip)

	idx := ctx.AddMesh(*meshAt(0, 0, 1))
	if ctx.GetFlags(idx) != 0 {
		t.Errorf("freshly added mesh should have no flags set, got %#02x", ctx.GetFlags(idx))
	}

	ctx.FlagMesh(idx, FlagDrawn)
	if ctx.GetFlags(idx)&uint8(FlagDrawn) == 0 {
		t.Error("FlagMesh should set FlagDrawn")
	}
}

func TestOcclCullContextFastPathPropagation(t *testing.T) {
	clip := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	ctx := NewOcclCullContext(4, clip)

	smallIdx := ctx.AddMesh(*meshAt(10, 10, 1))
	bigIdx := ctx.AddMesh(*meshAt(0, 0, 50))

	ctx.FlagMesh(bigIdx, FlagOccluded)

	if ctx.GetFlags(smallIdx)&uint8(FlagOccluded) == 0 {
		t.Error("a mesh wholly contained in a newly occluded mesh should be fast-path flagged occluded")
	}

	occluded, fast, slow := ctx.Stats()
	if occluded != 1 {
		t.Errorf("expected 1 direct occlusion, got %d", occluded)
	}
	if fast != 1 {
		t.Errorf("expected 1 fast-path propagation, got %d (slow=%d)", fast, slow)
	}
}

func TestOcclCullContextUnaffectedMeshStaysUnflagged(t *testing.T) {
	clip := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	ctx := NewOcclCullContext(4, clip)

	farIdx := ctx.AddMesh(*meshAt(90, 90, 1))
	occluderIdx := ctx.AddMesh(*meshAt(0, 0, 1))

	ctx.FlagMesh(occluderIdx, FlagOccluded)

	if ctx.GetFlags(farIdx) != 0 {
		t.Error("a mesh far from the occluder should not be flagged occluded")
	}
}

func TestOcclCullContextGetTotalTriCount(t *testing.T) {
	clip := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	ctx := NewOcclCullContext(4, clip)

	ctx.AddMesh(*meshAt(0, 0, 1))
	ctx.AddMesh(*meshAt(10, 10, 1))

	// Each mesh is a 4-point convex hull, fan-triangulated into 2 triangles.
	if got := ctx.GetTotalTriCount(); got != 4 {
		t.Errorf("GetTotalTriCount = %d, want 4", got)
	}
}
