package occlcull

// SubtractTriangles computes minuend \ subtrahend and appends the resulting
// triangles to out, returning the extended slice. Both inputs must be wound
// CCW; a non-CCW input is a silent no-op, not an error — the caller is
// expected to have normalized winding upstream (e.g. via ConvexHullInPlace).
func SubtractTriangles(minuend, subtrahend Triangle, out []Triangle) []Triangle {
	return SubtractTrianglesContext(DefaultContext, minuend, subtrahend, out)
}

// SubtractTrianglesContext is SubtractTriangles with explicit diagnostics:
// ctx.Log is called when the intersection count comes out odd (a numerical
// inconsistency) or when no case in the dispatch table matches the observed
// (M, S, I) triple — in both situations the minuend is emitted unchanged
// rather than dropped, so a caller never silently loses area to a bug here.
func SubtractTrianglesContext(ctx Context, minuend, subtrahend Triangle, out []Triangle) []Triangle {
	if !TriIsWindingCCW(minuend) || !TriIsWindingCCW(subtrahend) {
		return out
	}

	startIdx := len(out)
	out = internalSubtractTriangles(ctx, minuend, subtrahend, out)

	kept := out[:startIdx]
	for _, tri := range out[startIdx:] {
		if IsDegenerateTriangle(tri) || !TriIsWindingCCW(tri) {
			continue
		}
		kept = append(kept, tri)
	}
	return kept
}

func internalSubtractTriangles(ctx Context, minuend, subtr Triangle, out []Triangle) []Triangle {
	facArr, rawIntersIndices := trisGetInters(minuend, subtr)
	mllIntersIndices, minuendOutsideIndices := walkMinuend(ctx, minuend, subtr, facArr, rawIntersIndices)
	subtrInsideIndices, subtrSideInters, subtrSideICount := walkSubtrahend(subtr, minuend, mllIntersIndices)

	M, S, I := len(minuendOutsideIndices), len(subtrInsideIndices), len(mllIntersIndices)

	if I%2 != 0 {
		ctx.Log(LogWarning, "odd intersection count (%d) subtracting triangle", I)
		return append(out, minuend)
	}

	minuendOutside := M == 3
	subtrOutside := S == 0

	switch {
	case M == 0:
		return out
	case S == 3:
		return caseS3(minuend, subtr, out)
	case I == 0:
		return append(out, minuend)

	case minuendOutside && subtrOutside && I == 4:
		return caseM3S0I4(minuend, facArr, mllIntersIndices, out)
	case minuendOutside && subtrOutside && I == 6:
		return caseM3S0I6(minuend, facArr, subtrSideInters, out)
	case minuendOutside && S == 1 && I == 2:
		return caseM3S1I2(minuend, subtr, facArr, mllIntersIndices, subtrInsideIndices, out)
	case minuendOutside && S == 1 && I == 4:
		return caseM3S1I4(minuend, subtr, facArr, mllIntersIndices, subtrInsideIndices, out)
	case minuendOutside && S == 2 && I == 2:
		return caseM3S2I2(minuend, subtr, facArr, mllIntersIndices, out)

	case M == 2 && subtrOutside && I == 2:
		return caseM2S0I2(minuend, facArr, mllIntersIndices, out)
	case M == 2 && subtrOutside && I == 4:
		return caseM2S0I4(minuend, facArr, subtrSideInters, subtrSideICount, out)
	case M == 2 && S == 1 && I == 2:
		return caseM2S1I2(minuend, subtr, facArr, mllIntersIndices, subtrInsideIndices, out)
	case M == 2 && S == 1 && I == 4:
		return caseM2S1I4(minuend, subtr, facArr, subtrSideInters, subtrSideICount, subtrInsideIndices, out)
	case M == 2 && S == 2 && I == 2:
		return caseM2S2I2(minuend, subtr, facArr, mllIntersIndices, out)

	case M == 1 && subtrOutside && I == 2:
		return caseM1S0(minuend, facArr, mllIntersIndices, minuendOutsideIndices, out)
	case M == 1 && S == 2 && I == 2:
		return caseM1S2(minuend, subtr, facArr, mllIntersIndices, minuendOutsideIndices, subtrInsideIndices, out)
	case M == 1 && S == 1 && I == 2:
		return caseM1S1(minuend, subtr, facArr, mllIntersIndices, subtrInsideIndices, out)

	default:
		ctx.Log(LogWarning, "unmatched subtraction case M=%d S=%d I=%d", M, S, I)
		return append(out, minuend)
	}
}

// caseS3 handles a subtrahend wholly interior to the minuend, touching none
// of its sides: the result is a ring of three trapezoids, one per minuend
// side paired with the corresponding (corner-aligned) subtrahend side.
func caseS3(minuend, subtr Triangle, out []Triangle) []Triangle {
	subtrAligned := triAlignCorners(minuend, subtr)
	for i := 0; i < 3; i++ {
		out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
			minuend.Pts[i], minuend.Pts[(i+1)%3], subtrAligned.Pts[(i+1)%3], subtrAligned.Pts[i],
		}})
	}
	return out
}

// caseM3S0I4: the subtrahend cuts across two minuend sides, leaving a near
// triangle and a far quadrilateral strip of the minuend.
func caseM3S0I4(minuend Triangle, facArr [9]float32, intersIndices []int, out []Triangle) []Triangle {
	indices := getNearAndFarMinuend4Inters(facArr, intersIndices)
	nearInters := triNextTwoIntersPoints(minuend.Pts, facArr, indices[:2])
	farInters := triNextTwoIntersPoints(minuend.Pts, facArr, indices[2:])

	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(indices[0]), minuendSide(indices[1]))
	trisFirstToCCWindingOthersSimult(&minuendWinded, &nearInters, &farInters)

	out = append(out, NewTriangle(minuendWinded.Pts[0], nearInters[0], nearInters[1]))
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
		minuendWinded.Pts[1], minuendWinded.Pts[2], farInters[1], farInters[0],
	}})
	return out
}

// caseM3S0I6: the subtrahend cuts off a corner at each of the minuend's
// three sides, leaving three corner triangles.
func caseM3S0I6(minuend Triangle, facArr [9]float32, subtrSideInters [3][2]int, out []Triangle) []Triangle {
	for i := 0; i < 3; i++ {
		commonPoint := triCommonPointOfSides(minuendSide(subtrSideInters[i][0]), minuendSide(subtrSideInters[i][1]))
		intersLine := triNextTwoIntersPoints(minuend.Pts, facArr, subtrSideInters[i][:])
		tri := NewTriangle(minuend.Pts[commonPoint], intersLine[0], intersLine[1])
		trisFirstToCCWindingOthersSimult(&tri)
		out = append(out, tri)
	}
	return out
}

// caseM3S1I2: one subtrahend vertex lies inside the minuend, which it slices
// into two quadrilaterals meeting at that vertex.
func caseM3S1I2(minuend, subtr Triangle, facArr [9]float32, intersIndices, subtrInsideIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsOtherFac0Fac1(minuend, minuendSide(intersIndices[0]), facArr[intersIndices[0]], facArr[intersIndices[1]])
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters)

	subtrInsidePt := subtr.Pts[subtrInsideIndices[0]]
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{minuendWinded.Pts[0], minuendWinded.Pts[1], inters[0], subtrInsidePt}})
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{minuendWinded.Pts[0], subtrInsidePt, inters[1], minuendWinded.Pts[2]}})
	return out
}

// caseM3S1I4: one subtrahend vertex lies inside the minuend and the
// subtrahend also cuts across two minuend sides, leaving a near triangle and
// a three-triangle fan around the inside vertex (four triangles in all).
func caseM3S1I4(minuend, subtr Triangle, facArr [9]float32, intersIndices, subtrInsideIndices []int, out []Triangle) []Triangle {
	indices := getNearAndFarMinuend4Inters(facArr, intersIndices)
	nearInters := triNextTwoIntersPoints(minuend.Pts, facArr, indices[:2])
	farInters := triNextTwoIntersPoints(minuend.Pts, facArr, indices[2:])

	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(indices[0]), minuendSide(indices[1]))
	trisFirstToCCWindingOthersSimult(&minuendWinded, &nearInters, &farInters)

	subtrInsidePt := subtr.Pts[subtrInsideIndices[0]]
	out = append(out, NewTriangle(minuendWinded.Pts[0], nearInters[0], nearInters[1]))
	out = append(out, NewTriangle(subtrInsidePt, farInters[0], minuendWinded.Pts[1]))
	out = append(out, NewTriangle(subtrInsidePt, minuendWinded.Pts[1], minuendWinded.Pts[2]))
	out = append(out, NewTriangle(minuendWinded.Pts[2], farInters[1], subtrInsidePt))
	return out
}

// caseM3S2I2: two subtrahend vertices lie inside the minuend and the two
// subtrahend sides meeting at the outside vertex each cross the same minuend
// side once, leaving two quadrilaterals flanking the inside edge and the
// triangle between that edge and the opposite minuend vertex.
func caseM3S2I2(minuend, subtr Triangle, facArr [9]float32, intersIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsOtherFac0Fac1(minuend, minuendSide(intersIndices[0]), facArr[intersIndices[0]], facArr[intersIndices[1]])
	subtrWinded := triAlignAsCommonSide0Side1(subtr, subtrSide(intersIndices[0]), subtrSide(intersIndices[1]))
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	subtrInsides := segment{subtrWinded.Pts[1], subtrWinded.Pts[2]}
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters, &subtrInsides)

	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{minuendWinded.Pts[0], minuendWinded.Pts[1], inters[0], subtrInsides[0]}})
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{minuendWinded.Pts[0], subtrInsides[1], inters[1], minuendWinded.Pts[2]}})
	out = append(out, NewTriangle(minuendWinded.Pts[0], subtrInsides[0], subtrInsides[1]))
	return out
}

// caseM2S0I2: the subtrahend cuts straight across the two minuend sides
// meeting at one corner, clipping that corner off and leaving a single
// quadrilateral.
func caseM2S0I2(minuend Triangle, facArr [9]float32, intersIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(intersIndices[0]), minuendSide(intersIndices[1]))
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters)
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{minuendWinded.Pts[1], minuendWinded.Pts[2], inters[1], inters[0]}})
	return out
}

// caseM2S0I4: the subtrahend cuts off two separate corners of the minuend.
func caseM2S0I4(minuend Triangle, facArr [9]float32, subtrSideInters [3][2]int, subtrSideICount [3]int, out []Triangle) []Triangle {
	var sides [2]int
	n := 0
	for i := 0; i < 3; i++ {
		if subtrSideICount[i] != 0 {
			sides[n] = i
			n++
		}
	}

	commonPoints := [2]int{
		triCommonPointOfSides(minuendSide(subtrSideInters[sides[0]][0]), minuendSide(subtrSideInters[sides[0]][1])),
		triCommonPointOfSides(minuendSide(subtrSideInters[sides[1]][0]), minuendSide(subtrSideInters[sides[1]][1])),
	}

	intersCutoff0 := triNextTwoIntersPoints(minuend.Pts, facArr, subtrSideInters[sides[0]][:])
	intersCutoff1 := triNextTwoIntersPoints(minuend.Pts, facArr, subtrSideInters[sides[1]][:])

	minuendCutoff0 := NewTriangle(minuend.Pts[commonPoints[0]], intersCutoff0[0], intersCutoff0[1])
	trisFirstToCCWindingOthersSimult(&minuendCutoff0)

	minuendCutoff1 := NewTriangle(minuend.Pts[commonPoints[1]], intersCutoff1[1], intersCutoff1[0])
	trisFirstToCCWindingOthersSimult(&minuendCutoff1)

	return append(out, minuendCutoff0, minuendCutoff1)
}

// caseM2S1I2: one subtrahend vertex lies inside the minuend and one minuend
// corner lies inside the subtrahend; the two minuend sides at that corner are
// each crossed once, and the remainder is split into three triangles sharing
// the inside subtrahend vertex.
func caseM2S1I2(minuend, subtr Triangle, facArr [9]float32, intersIndices, subtrInsideIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(intersIndices[0]), minuendSide(intersIndices[1]))
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters)

	subtrInsidePt := subtr.Pts[subtrInsideIndices[0]]
	out = append(out, NewTriangle(minuendWinded.Pts[1], subtrInsidePt, inters[0]))
	out = append(out, NewTriangle(minuendWinded.Pts[2], inters[1], subtrInsidePt))
	out = append(out, NewTriangle(minuendWinded.Pts[2], subtrInsidePt, minuendWinded.Pts[1]))
	return out
}

// caseM2S1I4: one subtrahend vertex lies inside the minuend and the
// subtrahend crosses the minuend boundary on two further, non-adjacent
// sides.
func caseM2S1I4(minuend, subtr Triangle, facArr [9]float32, subtrSideInters [3][2]int, subtrSideICount [3]int, subtrInsideIndices []int, out []Triangle) []Triangle {
	twoPtSide := -1
	var otherSides [2]int
	n := 0
	for i := 0; i < 3; i++ {
		if subtrSideICount[i] == 2 {
			twoPtSide = i
		} else if subtrSideICount[i] == 1 {
			otherSides[n] = i
			n++
		}
	}

	commonPoints := [2]int{
		triCommonPointOfSides(minuendSide(subtrSideInters[twoPtSide][0]), minuendSide(subtrSideInters[twoPtSide][1])),
		triCommonPointOfSides(minuendSide(subtrSideInters[otherSides[0]][0]), minuendSide(subtrSideInters[otherSides[1]][0])),
	}

	subtrInsidePt := subtr.Pts[subtrInsideIndices[0]]

	twoPtLine := triNextTwoIntersPoints(minuend.Pts, facArr, subtrSideInters[twoPtSide][:])
	otherPtLine := segment{
		triGetIntersPoint(minuend.Pts, facArr, subtrSideInters[otherSides[1]][0]),
		triGetIntersPoint(minuend.Pts, facArr, subtrSideInters[otherSides[0]][0]),
	}

	minuendCutoff0 := NewTriangle(minuend.Pts[commonPoints[0]], twoPtLine[0], twoPtLine[1])
	trisFirstToCCWindingOthersSimult(&minuendCutoff0, &otherPtLine)

	out = append(out, minuendCutoff0)
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
		minuend.Pts[commonPoints[1]], otherPtLine[0], subtrInsidePt, otherPtLine[1],
	}})
	return out
}

// caseM2S2I2: the minuend and subtrahend cross each other's boundary twice,
// through two adjacent sides of each, producing two corner triangles and a
// quadrilateral strip.
func caseM2S2I2(minuend, subtr Triangle, facArr [9]float32, intersIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(intersIndices[0]), minuendSide(intersIndices[1]))
	subtrWinded := triAlignAsCommonSide0Side1(subtr, subtrSide(intersIndices[0]), subtrSide(intersIndices[1]))
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	subtrInsides := segment{subtrWinded.Pts[1], subtrWinded.Pts[2]}
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters, &subtrInsides)

	out = append(out, NewTriangle(minuendWinded.Pts[1], subtrInsides[0], inters[0]))
	out = append(out, NewTriangle(minuendWinded.Pts[2], inters[1], subtrInsides[1]))
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
		minuendWinded.Pts[1], minuendWinded.Pts[2], subtrInsides[1], subtrInsides[0],
	}})
	return out
}

// caseM1S0 clips a single outside corner of the minuend.
func caseM1S0(minuend Triangle, facArr [9]float32, intersIndices, minuendOutsideIndices []int, out []Triangle) []Triangle {
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	minuendCutoff := NewTriangle(minuend.Pts[minuendOutsideIndices[0]], inters[0], inters[1])
	trisFirstToCCWindingOthersSimult(&minuendCutoff)
	return append(out, minuendCutoff)
}

// findSubtrInsideCorner picks the subtrahend-inside vertex that does not sit
// on the minuend boundary crossing: it scans inters against the two
// candidate vertices and, on the first near-coincidence, returns the other
// one via the global-index flip subtr.Pts[1-j]. The scan stops at the first
// match; a degenerate configuration where both inters points coincide with
// both candidates must not let a later match overwrite the first.
func findSubtrInsideCorner(subtr Triangle, subtrInsideIndices []int, inters segment) Point {
	for i := 0; i < 2; i++ {
		p := inters[i]
		for j := 0; j < 2; j++ {
			if distSq2(subtr.Pts[subtrInsideIndices[j]], p) < 1e-4 {
				return subtr.Pts[1-j]
			}
		}
	}
	return Point{}
}

// caseM1S2 clips the single outside minuend corner while two subtrahend
// vertices remain inside; the second inside vertex widens the cutoff into a
// quadrilateral.
func caseM1S2(minuend, subtr Triangle, facArr [9]float32, intersIndices, minuendOutsideIndices, subtrInsideIndices []int, out []Triangle) []Triangle {
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	subtrInsidePt := findSubtrInsideCorner(subtr, subtrInsideIndices, inters)

	minuendCutoff := NewTriangle(minuend.Pts[minuendOutsideIndices[0]], inters[0], inters[1])
	trisFirstToCCWindingOthersSimult(&minuendCutoff)
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
		minuendCutoff.Pts[0], minuendCutoff.Pts[1], subtrInsidePt, minuendCutoff.Pts[2],
	}})
	return out
}

// caseM1S1 clips the single outside minuend corner against the single
// subtrahend vertex that lies inside it.
func caseM1S1(minuend, subtr Triangle, facArr [9]float32, intersIndices, subtrInsideIndices []int, out []Triangle) []Triangle {
	minuendWinded := triAlignAsCommonSide0Side1(minuend, minuendSide(intersIndices[0]), minuendSide(intersIndices[1]))
	inters := triNextTwoIntersPoints(minuend.Pts, facArr, intersIndices)
	trisFirstToCCWindingOthersSimult(&minuendWinded, &inters)

	subtrInsidePt := subtr.Pts[subtrInsideIndices[0]]
	out = quadToTriangles(out, Quadrilateral{Pts: [4]Point{
		minuendWinded.Pts[0], inters[0], subtrInsidePt, inters[1],
	}})
	return out
}
