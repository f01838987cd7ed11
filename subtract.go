package occlcull

import "github.com/arl/math32"

// segment is two points, used while a side pair is being reassembled out of
// fac_arr before it is classified into one of the subtraction cases.
type segment [2]Point

const (
	proxInside  = 0
	proxOutside = 1
)

func minuendSide(i int) int { return i / 3 }
func subtrSide(i int) int   { return i % 3 }

// lineGetIntersFactor solves for the parameters (facM, facS) at which the ray
// p1+t*d1 meets p2+t*d2. Returns (NaN, NaN) when the two lines are parallel
// (determinant small relative to |d1|*|d2|) or when either parameter falls
// outside [-1e-4, 1+1e-4] — i.e. the intersection does not lie on either
// segment.
func lineGetIntersFactor(p1, d1, p2, d2 Point) (facM, facS float32) {
	lenMul := math32.Sqrt(d1.X*d1.X+d1.Y*d1.Y) * math32.Sqrt(d2.X*d2.X+d2.Y*d2.Y)
	det := d1.Y*d2.X - d1.X*d2.Y
	if F32Eq(det, 0, lenMul*1e-3) {
		return NaN32, NaN32
	}

	diff := p2.Sub(p1)
	invDet := 1 / det
	facM = invDet * (-d2.Y*diff.X + d2.X*diff.Y)
	facS = invDet * (-d1.Y*diff.X + d1.X*diff.Y)

	const e = 1e-4
	if facM < -e || facM > 1+e || facS < -e || facS > 1+e {
		return NaN32, NaN32
	}
	return facM, facS
}

// trisGetInters computes, for every one of the 9 (minuend side, subtrahend
// side) pairs, the parameter along the minuend side at which the two sides
// cross — NaN when they don't. The raw per-pair result is then canonicalized
// so a shared corner hit is attributed to exactly one pair: first any
// subtrahend-side double-hit is folded onto its neighbour (loop 1), then any
// minuend-vertex hit is repaired onto the adjacent minuend side it also
// touches, unless that side already carries an equal hit (loop 2). The
// repair order matters — it must run after the subtrahend-side fold, not
// before it.
func trisGetInters(minuend, subtr Triangle) (facArr [9]float32, intersIndices []int) {
	var minuendSides, subtrSides [3]Point
	for i := 0; i < 3; i++ {
		minuendSides[i] = minuend.Pts[(i+1)%3].Sub(minuend.Pts[i])
		subtrSides[i] = subtr.Pts[(i+1)%3].Sub(subtr.Pts[i])
	}

	var full [9][2]float32
	for i := 0; i < 9; i++ {
		m, s := minuendSide(i), subtrSide(i)
		full[i][0], full[i][1] = lineGetIntersFactor(minuend.Pts[m], minuendSides[m], subtr.Pts[s], subtrSides[s])
	}

	for i := 0; i < 9; i++ {
		n := 3*minuendSide(i) + (subtrSide(i)+1)%3
		if F32Eq(full[i][1], 1) && F32Eq(full[n][1], 0) {
			full[n][0] = NaN32
		}
	}

	for i := 0; i < 9; i++ {
		var otherM int
		var fac float32
		switch {
		case F32Eq(full[i][0], 0):
			otherM, fac = (minuendSide(i)+2)%3, 1
		case F32Eq(full[i][0], 1):
			otherM, fac = (minuendSide(i)+1)%3, 0
		default:
			continue
		}

		test := true
		for s := 0; s < 3; s++ {
			if F32Eq(full[3*otherM+s][0], fac) {
				test = false
				break
			}
		}
		if test {
			other := 3*otherM + subtrSide(i)
			full[other][0], full[other][1] = fac, full[i][1]
		}
	}

	for i := 0; i < 9; i++ {
		facArr[i] = full[i][0]
		if !isNaN32(facArr[i]) {
			intersIndices = append(intersIndices, i)
		}
	}
	return facArr, intersIndices
}

func triGetIntersPoint(pts [3]Point, facArr [9]float32, idx int) Point {
	side := minuendSide(idx)
	return pts[side].Add(pts[(side+1)%3].Sub(pts[side]).Scale(facArr[idx]))
}

func triNextTwoIntersPoints(pts [3]Point, facArr [9]float32, indices []int) segment {
	return segment{triGetIntersPoint(pts, facArr, indices[0]), triGetIntersPoint(pts, facArr, indices[1])}
}

func triGetRemIndex(indices [2]int) int { return 3 - indices[0] - indices[1] }

// commonPointTable[side0][side1] is the triangle-local vertex index shared by
// the two given sides (sides are indexed by their start vertex, 0/1/2).
var commonPointTable = [3][3]int{
	{0, 1, 0},
	{1, 1, 2},
	{0, 2, 2},
}

func triCommonPointOfSides(side0, side1 int) int { return commonPointTable[side0][side1] }

// triAlignAsCommonSide0Side1 rotates tri so that pts[0] is the vertex shared
// by side0 and side1, pts[1] is side0's other endpoint and pts[2] is side1's
// other endpoint. The result may be wound either way; callers fix the winding
// afterwards with trisFirstToCCWindingOthersSimult.
func triAlignAsCommonSide0Side1(tri Triangle, side0, side1 int) Triangle {
	common := triCommonPointOfSides(side0, side1)
	other0, other1 := side0, side1
	if side0 == common {
		other0 = (side0 + 1) % 3
	}
	if side1 == common {
		other1 = (side1 + 1) % 3
	}
	return NewTriangle(tri.Pts[common], tri.Pts[other0], tri.Pts[other1])
}

// triAlignCorners rotates b's points so that the one nearest a.Pts[0] comes
// first, so that b.Pts[i] corresponds to a's i'th point when both are convex
// and one contains the other — used to turn a fully-interior subtrahend into
// a per-side trapezoid ring around it.
func triAlignCorners(a, b Triangle) Triangle {
	minDist := float32(9999999.0)
	off := 0
	for i := 0; i < 3; i++ {
		if d := distSq2(a.Pts[0], b.Pts[i]); d < minDist {
			minDist = d
			off = i
		}
	}
	return NewTriangle(b.Pts[off], b.Pts[(off+1)%3], b.Pts[(off+2)%3])
}

// triAlignAsOtherFac0Fac1 rotates tri so that pts[1]/pts[2] are the two
// endpoints of side, ordered by increasing parameter (fac0, fac1), and
// pts[0] is the remaining vertex.
func triAlignAsOtherFac0Fac1(tri Triangle, side int, fac0, fac1 float32) Triangle {
	var indices [2]int
	if fac0 <= fac1 {
		indices[0], indices[1] = side, (side+1)%3
	} else {
		indices[0], indices[1] = (side+1)%3, side
	}
	other := triGetRemIndex(indices)
	return NewTriangle(tri.Pts[other], tri.Pts[indices[0]], tri.Pts[indices[1]])
}

// getNearAndFarMinuend4Inters orders the 4 surviving intersections of a
// double-side cutoff into (near0, near1, far0, far1) so that near and far
// each bound a single quadrilateral strip of the minuend.
func getNearAndFarMinuend4Inters(facArr [9]float32, intersIndices []int) [4]int {
	side0 := minuendSide(intersIndices[0])
	commonPoint := triCommonPointOfSides(side0, minuendSide(intersIndices[2]))
	off := 0
	if (side0 != commonPoint) != (facArr[intersIndices[0]] > facArr[intersIndices[1]]) {
		off = 2
	}
	var indices [4]int
	indices[(0+off)%4] = intersIndices[0]
	indices[(1+off)%4] = intersIndices[2]
	indices[(2+off)%4] = intersIndices[1]
	indices[(3+off)%4] = intersIndices[3]
	return indices
}

// trisFirstToCCWindingOthersSimult flips tri's last two vertices if it isn't
// wound CCW, applying the same flip to every paired segment so they stay
// consistent with tri's sides.
func trisFirstToCCWindingOthersSimult(tri *Triangle, lines ...*segment) {
	if TriIsWindingCCW(*tri) {
		return
	}
	tri.Pts[1], tri.Pts[2] = tri.Pts[2], tri.Pts[1]
	for _, l := range lines {
		l[0], l[1] = l[1], l[0]
	}
}

// triInside reports whether a point whose proximity to some triangle is
// proximity lies inside that triangle, within tolerance.
func triInside(proximity float32) bool { return proximity < 1e-4 }

// quadToTriangles splits the convex, CCW quadrilateral q into two triangles
// along whichever diagonal keeps both halves non-self-intersecting.
func quadToTriangles(out []Triangle, q Quadrilateral) []Triangle {
	if triInside(triProximityTo(NewTriangle(q.Pts[0], q.Pts[1], q.Pts[3]), q.Pts[2])) {
		out = append(out, NewTriangle(q.Pts[0], q.Pts[1], q.Pts[2]))
		out = append(out, NewTriangle(q.Pts[0], q.Pts[2], q.Pts[3]))
	} else {
		out = append(out, NewTriangle(q.Pts[0], q.Pts[1], q.Pts[3]))
		out = append(out, NewTriangle(q.Pts[1], q.Pts[2], q.Pts[3]))
	}
	return out
}

// triChooseStartPoint picks the vertex of tri that sits farthest from ref's
// boundary — inside or outside, whichever extreme is stronger — to seed the
// CCW classification walk. confident is false when neither extreme clears
// the noise floor, meaning the caller should treat tri as entirely inside
// ref rather than trust the walk.
func triChooseStartPoint(tri, ref Triangle) (startPt, startFlag int, confident bool) {
	innerProx, outerProx := float32(-999999.0), float32(-999999.0)
	innerPt, outerPt := 0, 0
	for i := 0; i < 3; i++ {
		prox := triProximityTo(ref, tri.Pts[i])
		if prox <= 0 && -prox > innerProx {
			innerProx, innerPt = -prox, i
		}
		if prox >= 0 && prox > outerProx {
			outerProx, outerPt = prox, i
		}
	}

	if innerProx < outerProx {
		startPt, startFlag = outerPt, proxOutside
	} else {
		startPt, startFlag = innerPt, proxInside
	}

	const e = 1e-6
	confident = math32.Max(innerProx, outerProx) >= e
	return startPt, startFlag, confident
}

// getSideToInters groups intersIndices by the side each one falls on,
// according to sideFn (minuendSide or subtrSide).
func getSideToInters(sideFn func(int) int, intersIndices []int) (sideInters [3][2]int, sideICount [3]int) {
	for _, idx := range intersIndices {
		side := sideFn(idx)
		sideInters[side][sideICount[side]] = idx
		sideICount[side]++
	}
	return sideInters, sideICount
}

// sortSideInters orders the two intersections recorded for side by ascending
// minuend-side parameter, so consumers can rely on sideInters[side][0] being
// the one closer to that side's start vertex. With force false it only sorts
// when out of order; with force true it always swaps, used to re-derive the
// order after the intersections were replaced by their midpoint-toggle
// survivors. Returns whether a swap happened.
func sortSideInters(force bool, side int, facArr [9]float32, sideInters *[3][2]int, sideICount [3]int) bool {
	if sideICount[side] != 2 {
		return false
	}
	inters := &sideInters[side]
	if force || facArr[inters[0]] > facArr[inters[1]] {
		inters[0], inters[1] = inters[1], inters[0]
		return true
	}
	return false
}

// walkMinuend walks the minuend's 3 sides CCW starting from its most
// confidently classified vertex, keeping from each side's raw intersections
// only the ones that actually toggle inside/outside (a midpoint-sampling
// test against subtr decides each candidate). It returns the surviving
// intersections grouped by minuend side in side-index order (0, 1, 2), and
// the minuend vertices that ended up classified outside, in walk order.
func walkMinuend(ctx Context, minuend, subtr Triangle, facArr [9]float32, rawIntersIndices []int) (mllIntersIndices []int, minuendOutsideIndices []int) {
	sideInters, sideICount := getSideToInters(minuendSide, rawIntersIndices)

	initPt, initFlag, confident := triChooseStartPoint(minuend, subtr)
	if !confident {
		debugTrace(ctx, "walkMinuend: low-confidence start, treating minuend as fully inside")
		return nil, nil
	}

	var mllSideInters [3][2]int
	var mllSideICount [3]int
	ptProxFlag := initFlag

	for i := 0; i < 3; i++ {
		pt := (initPt + i) % 3

		wasSorted := sortSideInters(false, pt, facArr, &sideInters, sideICount)

		icount := sideICount[pt]
		var proxSamples [2]float32
		if icount > 0 {
			var intersPts [2]Point
			for k := 0; k < icount; k++ {
				intersPts[k] = triGetIntersPoint(minuend.Pts, facArr, sideInters[pt][k])
			}
			for k := 0; k < icount-1; k++ {
				proxSamples[k] = triProximityTo(subtr, intersPts[k].Mid(intersPts[k+1]))
			}
			proxSamples[icount-1] = triProximityTo(subtr, intersPts[icount-1].Mid(minuend.Pts[(pt+1)%3]))
		}

		proxPrevKnown := ptProxFlag
		for k := 0; k < icount; k++ {
			const e = 1e-7
			var proxAfterInters int
			if proxPrevKnown == proxInside {
				if proxSamples[k] >= e {
					proxAfterInters = proxOutside
				} else {
					proxAfterInters = proxInside
				}
			} else {
				if proxSamples[k] <= -e {
					proxAfterInters = proxInside
				} else {
					proxAfterInters = proxOutside
				}
			}
			if proxPrevKnown != proxAfterInters {
				mllSideInters[pt][mllSideICount[pt]] = sideInters[pt][k]
				mllSideICount[pt]++
			} else {
				debugTrace(ctx, "walkMinuend: side %d candidate %d dropped (no toggle)", pt, sideInters[pt][k])
			}
			proxPrevKnown = proxAfterInters
		}

		if mllSideICount[pt] == 2 && wasSorted {
			sortSideInters(true, pt, facArr, &mllSideInters, mllSideICount)
		}

		if ptProxFlag == proxOutside {
			minuendOutsideIndices = append(minuendOutsideIndices, pt)
		}

		ptProxFlag = (ptProxFlag + mllSideICount[pt]) % 2
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < mllSideICount[i]; j++ {
			mllIntersIndices = append(mllIntersIndices, mllSideInters[i][j])
		}
	}
	return mllIntersIndices, minuendOutsideIndices
}

// walkSubtrahend walks the subtrahend's 3 sides CCW, classifying each vertex
// inside/outside the minuend by toggling across the (already-classified)
// intersections from walkMinuend. The start vertex's confidence is
// deliberately not checked here — unlike walkMinuend, a low-confidence start
// still produces a usable toggle sequence because every side's intersection
// count was already settled by the minuend walk.
func walkSubtrahend(subtr, minuend Triangle, intersIndices []int) (subtrInsideIndices []int, sideInters [3][2]int, sideICount [3]int) {
	sideInters, sideICount = getSideToInters(subtrSide, intersIndices)

	initPt, proxFlag, _ := triChooseStartPoint(subtr, minuend)
	for i := 0; i < 3; i++ {
		pt := (initPt + i) % 3
		if proxFlag == proxInside {
			subtrInsideIndices = append(subtrInsideIndices, pt)
		}
		proxFlag = (proxFlag + sideICount[pt]) % 2
	}
	return subtrInsideIndices, sideInters, sideICount
}
