package occlcull

import "testing"

func meshAt(minX, minY, size float32) *OcclMesh {
	hull := []Point{
		{minX, minY}, {minX + size, minY}, {minX + size, minY + size}, {minX, minY + size},
	}
	return NewOcclMesh(hull)
}

func TestQuadtreeInsertAndIntersect(t *testing.T) {
	root := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	tree := NewQuadtree(64, root)

	big := meshAt(-50, -50, 100)
	tree.Insert(big)

	small := meshAt(-1, -1, 2)
	insides, inters := tree.Intersect(small)

	if len(insides) != 0 {
		t.Errorf("InsideFast test is from the query item's perspective, big mesh shouldn't be fast-inside small, got %d", len(insides))
	}
	if len(inters) != 1 {
		t.Fatalf("expected the big mesh to be reported as intersecting, got %d", len(inters))
	}
	if inters[0] != QuadItem(big) {
		t.Error("intersecting item should be the big mesh")
	}
}

func TestQuadtreeIntersectFindsInsideFast(t *testing.T) {
	root := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	tree := NewQuadtree(64, root)

	small := meshAt(-1, -1, 2)
	tree.Insert(small)

	big := meshAt(-50, -50, 100)
	insides, _ := tree.Intersect(big)

	if len(insides) != 1 {
		t.Fatalf("expected the small mesh to be reported InsideFast of the big query mesh, got %d", len(insides))
	}
}

func TestQuadtreeIntersectDisjoint(t *testing.T) {
	root := BBox{TL: Point{X: -100, Y: -100}, BR: Point{X: 100, Y: 100}}
	tree := NewQuadtree(64, root)

	tree.Insert(meshAt(-50, -50, 1))

	far := meshAt(40, 40, 1)
	insides, inters := tree.Intersect(far)
	if len(insides) != 0 || len(inters) != 0 {
		t.Errorf("disjoint meshes should report neither inside nor intersecting, got insides=%d inters=%d", len(insides), len(inters))
	}
}
