package occlcull

import "testing"

func TestTriInMeshNoCoveringTriangles(t *testing.T) {
	tri := NewTriangle(Point{0, 0}, Point{1, 0}, Point{0, 1})
	if TriInMesh(tri, nil) {
		t.Error("a triangle with nothing covering it should not be reported as inside the mesh")
	}
}

func TestTriInMeshCoveredByLargerTriangle(t *testing.T) {
	tri := NewTriangle(Point{1, 1}, Point{2, 1}, Point{1, 2})
	cover := []Triangle{NewTriangle(Point{0, 0}, Point{10, 0}, Point{0, 10})}

	if !TriInMesh(tri, cover) {
		t.Error("a triangle wholly inside a single covering triangle should be reported as inside the mesh")
	}
}

func TestTriInMeshCoveredByTwoHalves(t *testing.T) {
	tri := NewTriangle(Point{0, 0}, Point{2, 0}, Point{0, 2})
	cover := []Triangle{
		NewTriangle(Point{0, 0}, Point{2, 0}, Point{1, 1}),
		NewTriangle(Point{2, 0}, Point{0, 2}, Point{1, 1}),
		NewTriangle(Point{0, 2}, Point{0, 0}, Point{1, 1}),
	}

	if !TriInMesh(tri, cover) {
		t.Error("a triangle should be reported covered when a fan of triangles exactly tiles it")
	}
}

func newUnitSquareMesh(minX, minY float32) *OcclMesh {
	hull := []Point{
		{minX, minY}, {minX + 1, minY}, {minX + 1, minY + 1}, {minX, minY + 1},
	}
	return NewOcclMesh(hull)
}

func TestOcclMeshInsideFast(t *testing.T) {
	big := newUnitSquareMesh(0, 0)
	big.ConvexHull = []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	big.BBox = boundingBoxOf(big.ConvexHull)

	small := newUnitSquareMesh(2, 2)

	if !small.InsideFast(big) {
		t.Error("small mesh wholly inside big mesh's hull should report InsideFast")
	}
	if big.InsideFast(small) {
		t.Error("big mesh should not report InsideFast relative to a smaller mesh")
	}
}

func TestOcclMeshIntersectIsBBoxOnly(t *testing.T) {
	a := newUnitSquareMesh(0, 0)
	b := newUnitSquareMesh(0.5, 0.5)
	c := newUnitSquareMesh(100, 100)

	if !a.Intersect(b) {
		t.Error("overlapping bboxes should report Intersect")
	}
	if a.Intersect(c) {
		t.Error("disjoint bboxes should not report Intersect")
	}
}
