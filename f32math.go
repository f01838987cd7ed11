package occlcull

import (
	"math"

	"github.com/arl/math32"
)

// NaN32 is the float32 NaN sentinel used by the subtraction engine to mark
// a side pair with no intersection.
var NaN32 = float32(math.NaN())

func isNaN32(v float32) bool {
	return v != v
}

// F32Eq is the tolerance-based float32 equality predicate the rest of the
// package is built on. epsilon defaults to 1e-4 when omitted.
func F32Eq(a, b float32, epsilon ...float32) bool {
	eps := float32(1e-4)
	if len(epsilon) > 0 {
		eps = epsilon[0]
	}
	return math32.Abs(a-b) < eps
}

// f32Compare returns -1, 0 or +1 depending on whether a is less than, equal
// to (within F32Eq's tolerance) or greater than b.
func f32Compare(a, b float32) int {
	if F32Eq(a, b) {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// orth returns v rotated -90 degrees: (x, y) -> (y, -x). Used throughout to
// turn a side vector of a CCW polygon into its outward-pointing normal.
func orth(v Point) Point {
	return Point{X: v.Y, Y: -v.X}
}

// ptLeftOf returns the sign of the cross product (q-pt) x (p-pt): +1 if p is
// to the left of the ray pt->q (counter-clockwise turn), -1 if to the right,
// 0 if collinear. Every orientation decision in the package is built on this
// single predicate.
func ptLeftOf(pt, p, q Point) int {
	a := (q.X - pt.X) * (p.Y - pt.Y)
	b := (p.X - pt.X) * (q.Y - pt.Y)
	return f32Compare(a, b)
}

// ptCompare orders points lexicographically by (X, Y), within F32Eq
// tolerance.
func ptCompare(a, b Point) int {
	if c := f32Compare(a.X, b.X); c != 0 {
		return c
	}
	return f32Compare(a.Y, b.Y)
}

// signedTriHeight returns the signed length of the projection of side onto
// the direction orthogonal to ground, normalized by |ground|. Returns 0 when
// ground is (near) zero length.
func signedTriHeight(side, ground Point) float32 {
	o := orth(ground)
	dot := side.X*o.X + side.Y*o.Y
	groundLen := math32.Sqrt(ground.X*ground.X + ground.Y*ground.Y)
	if F32Eq(groundLen, 0) {
		return 0
	}
	return dot / groundLen
}

// distSq2 returns the squared Euclidean distance between a and b.
func distSq2(a, b Point) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
