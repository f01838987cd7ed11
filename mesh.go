package occlcull

// TriInMesh reports whether tri is (within tolerance) fully covered by the
// union of tris. It iteratively subtracts every triangle of tris from every
// remaining residual of tri, accumulating the residual area after each full
// pass; it converges to "covered" once the residual area drops below
// minRemArea, and bails out to "not covered" the moment a full pass fails to
// shrink the residual by at least minRemArea (stall detection) — without
// that check, a residual that is genuinely uncovered but has near-zero area
// would loop until the queue starves instead of terminating promptly.
//
// minRemArea defaults to 1e-3 when omitted.
func TriInMesh(tri Triangle, tris []Triangle, minRemArea ...float32) bool {
	return TriInMeshContext(DefaultContext, tri, tris, minRemArea...)
}

// TriInMeshContext is TriInMesh with an explicit diagnostic Context, threaded
// down into every SubtractTriangles call so a caller that wants the
// subtraction engine's verbose tracing (see DebugContext) gets it for every
// residual, not just the top-level call.
func TriInMeshContext(ctx Context, tri Triangle, tris []Triangle, minRemArea ...float32) bool {
	const defaultMinRemArea = 1e-3
	minArea := float32(defaultMinRemArea)
	if len(minRemArea) > 0 {
		minArea = minRemArea[0]
	}

	residualArea := TriArea(tri)
	residuals := []Triangle{tri}

	for residualArea >= minArea {
		lastResidualArea := residualArea

		initial := residuals[0]
		residuals = residuals[1:]
		residualArea -= TriArea(initial)

		currRemainders := []Triangle{initial}
		for i := range tris {
			var nextRemainders []Triangle
			for _, rem := range currRemainders {
				nextRemainders = SubtractTrianglesContext(ctx, rem, tris[i], nextRemainders)
			}
			currRemainders = nextRemainders
		}

		for _, rem := range currRemainders {
			residualArea += TriArea(rem)
			residuals = append(residuals, rem)
		}

		if lastResidualArea-residualArea < minArea {
			return false
		}
	}

	return true
}

// OcclMesh is a convex polygon (its convex hull) projected into a CCW
// triangle fan for subtraction, plus the axis-aligned bbox used to index it
// in a Quadtree. It implements QuadItem.
type OcclMesh struct {
	BBox       BBox
	ConvexHull []Point
	MeshProj   []Triangle

	// index is this mesh's slot in the OcclCullContext that owns it, if
	// any. It lets a context recover a mesh's index from the QuadItem
	// pointers a Quadtree query hands back, without resorting to pointer
	// arithmetic over the backing slice.
	index int
}

// NewOcclMesh builds an OcclMesh from a CCW convex hull, computing its bbox
// and fan-triangulating it around hull[0].
func NewOcclMesh(convexHull []Point) *OcclMesh {
	m := &OcclMesh{
		BBox:       boundingBoxOf(convexHull),
		ConvexHull: convexHull,
	}
	for i := 2; i < len(convexHull); i++ {
		m.MeshProj = append(m.MeshProj, NewTriangle(convexHull[i-1], convexHull[i], convexHull[0]))
	}
	return m
}

// Compare reports whether m lies below, straddles, or lies above value
// along axis dim, per QuadItem.
func (m *OcclMesh) Compare(value float32, dim int) int {
	br, tl := m.BBox.BR.X, m.BBox.TL.X
	if dim == 1 {
		br, tl = m.BBox.BR.Y, m.BBox.TL.Y
	}
	switch {
	case br < value:
		return -1
	case value < tl:
		return 1
	default:
		return 0
	}
}

// InsideFast reports whether m lies entirely inside other's convex hull, by
// checking every vertex of m against every half-plane of other. It can
// return a false negative for a pair that do overlap through non-convex
// combination of meshes, which is why FlagMesh falls back to TriInMesh when
// this returns false but the bboxes still intersect.
func (m *OcclMesh) InsideFast(other QuadItem) bool {
	o, ok := other.(*OcclMesh)
	if !ok {
		return false
	}
	n := len(o.ConvexHull)
	for i := 0; i < n; i++ {
		curr := o.ConvexHull[i]
		next := o.ConvexHull[(i+1)%n]
		normal := orth(next.Sub(curr))

		for _, p := range m.ConvexHull {
			d := p.Sub(curr)
			if d.X*normal.X+d.Y*normal.Y > 0 {
				return false
			}
		}
	}
	return true
}

// Intersect reports whether m and other's bboxes overlap. This is
// deliberately not a true polygon intersection test — the original source
// this mirrors only ever calls it as a coarse prefilter ahead of the
// triangle-level TriInMesh check, so a cheap bbox test is all it needs to
// be.
func (m *OcclMesh) Intersect(other QuadItem) bool {
	o, ok := other.(*OcclMesh)
	if !ok {
		return false
	}
	return bboxIntersect(m.BBox, o.BBox)
}

// BBoxIntersect reports whether m's bbox overlaps bbox.
func (m *OcclMesh) BBoxIntersect(bbox BBox) bool {
	return bboxIntersect(m.BBox, bbox)
}

// Inside reports whether m is fully covered by the meshes already recorded
// in tree. It first walks the tree breadth-first trying InsideFast against
// every mesh it finds upon a split line — the cheap convex-containment
// path. Only if that fails for every candidate does it fall back to
// TriInMesh, run per mesh-triangle against the union of every candidate
// mesh's triangle fan collected along the way.
func (m *OcclMesh) Inside(tree *Quadtree) bool {
	return m.InsideContext(DefaultContext, tree)
}

// InsideContext is Inside with an explicit diagnostic Context, passed down to
// the TriInMesh slow path.
func (m *OcclMesh) InsideContext(ctx Context, tree *Quadtree) bool {
	queue := []int{tree.root}
	var interNodes []int

	for len(queue) > 0 {
		nodeIdx := queue[0]
		queue = queue[1:]
		node := &tree.nodes[nodeIdx]

		for _, upon := range node.uponLine {
			if m.InsideFast(upon) {
				return true
			}
		}

		interNodes = append(interNodes, nodeIdx)

		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				child := node.children[i][j]
				if child != noChild && m.BBoxIntersect(tree.nodes[child].bbox) {
					queue = append(queue, child)
				}
			}
		}
	}

	var intersTris []Triangle
	for _, nodeIdx := range interNodes {
		for _, upon := range tree.nodes[nodeIdx].uponLine {
			if !m.Intersect(upon) {
				continue
			}
			other := upon.(*OcclMesh)
			intersTris = append(intersTris, other.MeshProj...)
		}
	}

	for _, tri := range m.MeshProj {
		if !TriInMeshContext(ctx, tri, intersTris) {
			return false
		}
	}
	return true
}
