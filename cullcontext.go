package occlcull

import assert "github.com/arl/assertgo"

// OcclCullFlag marks the visibility state of a mesh tracked by an
// OcclCullContext. DRAWN and OCCLUDED are independent bits — a mesh can be
// flagged drawn in one frame and later found occluded without losing the
// drawn bit, since flags only ever accumulate within a context's lifetime.
type OcclCullFlag uint8

const (
	FlagDrawn    OcclCullFlag = 1 << iota // The mesh was submitted for drawing.
	FlagOccluded                          // The mesh is known to be fully hidden.
)

// OcclCullContext tracks a scene's meshes across two quadtrees — one of
// everything drawn this frame, one of everything already confirmed
// occluded — so that flagging a new mesh occluded can both fast-path every
// mesh it fully contains and widen the occluded set for anything it merely
// overlaps.
type OcclCullContext struct {
	drawTree     *Quadtree
	occludedTree *Quadtree

	flags    []uint8
	meshes   []OcclMesh
	reserved int
	ctx      Context

	totalOccluded, totalFast, totalSlow int
}

// NewOcclCullContext creates a context pre-sized for reserve meshes, with
// both quadtrees covering clipBox, diagnostics logged to DefaultContext (a
// no-op). Use NewOcclCullContextWithLog to capture logging/tracing.
func NewOcclCullContext(reserve int, clipBox BBox) *OcclCullContext {
	return NewOcclCullContextWithLog(DefaultContext, reserve, clipBox)
}

// NewOcclCullContextWithLog is NewOcclCullContext with an explicit Context,
// used both for the odd-intersection-count/unmatched-case warnings raised
// deep in the subtraction engine and, if ctx also implements DebugContext,
// for that engine's verbose per-step tracing.
func NewOcclCullContextWithLog(ctx Context, reserve int, clipBox BBox) *OcclCullContext {
	return &OcclCullContext{
		drawTree:     NewQuadtree(4*reserve+64, clipBox),
		occludedTree: NewQuadtree(4*reserve+64, clipBox),
		flags:        make([]uint8, 0, reserve),
		meshes:       make([]OcclMesh, 0, reserve),
		reserved:     reserve,
		ctx:          ctx,
	}
}

// AddMesh registers mesh under a new index (returned) and inserts it into
// the draw tree. Exceeding the context's reservation is a precondition
// violation — the caller under-reserved when constructing the context — and
// is only checked in debug builds, since checking it unconditionally would
// cost a bounds check on every mesh in a release build's hot path.
func (c *OcclCullContext) AddMesh(mesh OcclMesh) int {
	c.flags = append(c.flags, 0)
	c.meshes = append(c.meshes, mesh)
	assert.True(len(c.meshes) <= c.reserved, "occlcull: mesh count %d exceeds reservation %d", len(c.meshes), c.reserved)

	index := len(c.meshes) - 1
	c.meshes[index].index = index
	c.drawTree.Insert(&c.meshes[index])
	return index
}

// FlagMesh ORs flag into the mesh at index's flag byte. Flagging a mesh
// FlagOccluded additionally tries to widen occlusion: if the mesh isn't
// already covered by the occluded set, it's added to it, and every other
// unflagged mesh the draw tree reports as either contained in or merely
// overlapping the newly occluded mesh gets a chance to also be marked
// occluded — contained meshes for free (FastPath), overlapping ones only if
// they individually pass the same Inside check (SlowPath).
func (c *OcclCullContext) FlagMesh(index int, flag OcclCullFlag) {
	c.flags[index] |= uint8(flag)
	if flag != FlagOccluded {
		return
	}

	occlMesh := &c.meshes[index]
	if occlMesh.InsideContext(c.ctx, c.occludedTree) {
		return
	}
	c.occludedTree.Insert(occlMesh)

	insideMeshes, affectedMeshes := c.drawTree.Intersect(occlMesh)
	c.totalOccluded++

	for _, item := range insideMeshes {
		i := c.meshIndex(item)
		if c.flags[i] != 0 {
			continue
		}
		c.flags[i] |= uint8(FlagOccluded)
		c.totalFast++
	}

	for _, item := range affectedMeshes {
		i := c.meshIndex(item)
		if c.flags[i] != 0 {
			continue
		}
		if item.(*OcclMesh).InsideContext(c.ctx, c.occludedTree) {
			c.flags[i] |= uint8(FlagOccluded)
			c.totalSlow++
		}
	}
}

// meshIndex recovers a mesh's index, stamped into it by AddMesh.
func (c *OcclCullContext) meshIndex(item QuadItem) int {
	i := item.(*OcclMesh).index
	assert.True(i >= 0 && i < len(c.meshes), "occlcull: mesh does not belong to this context")
	return i
}

// GetFlags returns the accumulated flag byte for the mesh at index.
func (c *OcclCullContext) GetFlags(index int) uint8 {
	return c.flags[index]
}

// GetTotalTriCount returns the sum of mesh_proj triangle counts across every
// registered mesh.
func (c *OcclCullContext) GetTotalTriCount() int {
	total := 0
	for i := range c.meshes {
		total += len(c.meshes[i].MeshProj)
	}
	return total
}

// Stats returns the running occlusion-propagation counters: how many meshes
// were flagged occluded directly, how many were widened for free via the
// fast (contained-in) path, and how many required the slow TriInMesh-backed
// path.
func (c *OcclCullContext) Stats() (occluded, fast, slow int) {
	return c.totalOccluded, c.totalFast, c.totalSlow
}
