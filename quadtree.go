package occlcull

import (
	assert "github.com/arl/assertgo"

	"github.com/theblobinthesky/occlcull/internal/bumpalloc"
)

// QuadItem is the contract a type must satisfy to live in a Quadtree: a
// total order along each of the two axes (Compare), a cheap convex
// containment test (InsideFast), a cheap intersection test (Intersect), and
// a bbox overlap test used to prune subtree traversal (BBoxIntersect).
type QuadItem interface {
	// Compare returns -1, 0 or +1 depending on whether the item lies
	// entirely below, straddles, or lies entirely above value along axis
	// dim (0 for X, 1 for Y).
	Compare(value float32, dim int) int
	InsideFast(other QuadItem) bool
	Intersect(other QuadItem) bool
	BBoxIntersect(bbox BBox) bool
}

const noChild = -1

type quadNode struct {
	bbox     BBox
	uponLine []QuadItem
	children [2][2]int
}

// Quadtree is a 2-level-per-step binary spatial index over QuadItem values:
// each node splits its bbox at the midpoint along both axes at once,
// producing up to 4 children, and an item that straddles the split on
// either axis is kept on that node's upon_line list instead of being pushed
// down. Children are created lazily as Insert first needs them.
type Quadtree struct {
	alloc *bumpalloc.Cursor
	nodes []quadNode
	root  int
}

// NewQuadtree creates a Quadtree covering rootBBox, backed by an arena
// pre-sized for capacity nodes.
func NewQuadtree(capacity int, rootBBox BBox) *Quadtree {
	t := &Quadtree{
		alloc: bumpalloc.NewCursor(capacity),
		nodes: make([]quadNode, 0, capacity),
	}
	t.root = t.newNode(rootBBox)
	return t
}

func (t *Quadtree) newNode(bbox BBox) int {
	idx := t.alloc.Alloc()
	t.nodes = append(t.nodes, quadNode{
		bbox:     bbox,
		children: [2][2]int{{noChild, noChild}, {noChild, noChild}},
	})
	return idx
}

func childBBox(parent BBox, i, j int) BBox {
	middle := parent.Middle()
	switch {
	case i == 0 && j == 0:
		return BBox{TL: parent.TL, BR: middle}
	case i == 1 && j == 0:
		return BBox{TL: Point{X: middle.X, Y: parent.TL.Y}, BR: Point{X: parent.BR.X, Y: middle.Y}}
	case i == 0 && j == 1:
		return BBox{TL: Point{X: parent.TL.X, Y: middle.Y}, BR: Point{X: middle.X, Y: parent.BR.Y}}
	default:
		return BBox{TL: middle, BR: parent.BR}
	}
}

// Insert adds t into the tree. t must intersect the tree's root bbox; this
// is an invariant the caller is expected to uphold (e.g. every mesh lives
// inside the scene's clip box) and is checked only in debug builds.
func (q *Quadtree) Insert(t QuadItem) {
	assertBBoxIntersects(t, q.nodes[q.root].bbox)

	nodeIdx := q.root
	for {
		middle := q.nodes[nodeIdx].bbox.Middle()
		cmpX := t.Compare(middle.X, 0)
		cmpY := t.Compare(middle.Y, 1)

		if cmpX == 0 || cmpY == 0 {
			q.nodes[nodeIdx].uponLine = append(q.nodes[nodeIdx].uponLine, t)
			return
		}

		i, j := boolToIdx(cmpX >= 0), boolToIdx(cmpY >= 0)
		child := q.nodes[nodeIdx].children[i][j]
		if child == noChild {
			child = q.newNode(childBBox(q.nodes[nodeIdx].bbox, i, j))
			q.nodes[nodeIdx].children[i][j] = child
		}
		nodeIdx = child
	}
}

func boolToIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Intersect visits every node whose bbox overlaps t's, via a breadth-first
// walk seeded at the root, and classifies every item found along the way:
// items that lie inside t go to insides, items that merely overlap t go to
// inters.
func (q *Quadtree) Intersect(t QuadItem) (insides, inters []QuadItem) {
	assertBBoxIntersects(t, q.nodes[q.root].bbox)

	queue := []int{q.root}
	for len(queue) > 0 {
		nodeIdx := queue[0]
		queue = queue[1:]
		node := &q.nodes[nodeIdx]

		for _, upon := range node.uponLine {
			if upon.InsideFast(t) {
				insides = append(insides, upon)
			} else if upon.Intersect(t) {
				inters = append(inters, upon)
			}
		}

		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				child := node.children[i][j]
				if child != noChild && t.BBoxIntersect(q.nodes[child].bbox) {
					queue = append(queue, child)
				}
			}
		}
	}
	return insides, inters
}

func assertBBoxIntersects(t QuadItem, bbox BBox) {
	assert.True(t.BBoxIntersect(bbox), "quadtree: item does not intersect node bbox")
}
