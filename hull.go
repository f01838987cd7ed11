package occlcull

import "sort"

// ConvexHullInPlace computes the counter-clockwise convex hull of pts and
// returns it as a prefix of pts; the remaining elements of the backing array
// are left in an unspecified state. The returned slice shares storage with
// pts.
//
// Empty input returns empty output. One or two points pass through
// unchanged — the Graham-scan loop never runs for fewer than 3 points.
// Callers that need a true hull should only pass 3 or more distinct points.
func ConvexHullInPlace(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}

	minIdx := 0
	for i := 1; i < len(pts); i++ {
		if ptCompare(pts[i], pts[minIdx]) <= 0 {
			minIdx = i
		}
	}
	p0 := pts[minIdx]
	pts[0], pts[minIdx] = pts[minIdx], pts[0]

	pts = sortAndFilterAroundP0(p0, pts)
	return grahamScan(pts)
}

// sortAndFilterAroundP0 sorts pts[1:] by polar angle around p0 (ties broken
// by ascending squared distance from p0), then collapses any run of points
// collinear with p0 down to the single farthest one, in place.
func sortAndFilterAroundP0(p0 Point, pts []Point) []Point {
	rest := pts[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		p, q := rest[i], rest[j]
		c := ptLeftOf(p0, p, q)
		if c == 0 {
			c = f32Compare(distSq2(p0, p), distSq2(p0, q))
		}
		return c < 0
	})

	if len(pts) <= 1 {
		return pts
	}

	j := 1
	for i := 1; i < len(pts)-1; i++ {
		curr, next := pts[i], pts[i+1]
		pts[j] = curr
		if ptLeftOf(p0, curr, next) != 0 {
			j++
		}
	}
	pts[j] = pts[len(pts)-1]

	return pts[:j+1]
}

// grahamScan runs the in-place Graham scan over pts (which must already be
// p0-anchored, angularly sorted and collinear-filtered) and returns the
// resulting CCW hull as a prefix of pts.
func grahamScan(pts []Point) []Point {
	if len(pts) < 3 {
		return pts
	}

	stackTop := 2
	for i := 3; i < len(pts); i++ {
		candidate := pts[i]
		for stackTop >= 2 && ptLeftOf(candidate, pts[stackTop-1], pts[stackTop]) >= 0 {
			stackTop--
		}
		stackTop++
		pts[stackTop] = candidate
	}

	return pts[:stackTop+1]
}
