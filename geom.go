package occlcull

import (
	"github.com/arl/gogeo/f32"
	"github.com/arl/math32"
)

// Point is an ordered pair of 32-bit floats.
type Point struct {
	X, Y float32
}

// Sub returns a - b.
func (a Point) Sub(b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// Add returns a + b.
func (a Point) Add(b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Scale returns a scaled by s.
func (a Point) Scale(s float32) Point {
	return Point{X: a.X * s, Y: a.Y * s}
}

// Mid returns the midpoint of a and b.
func (a Point) Mid(b Point) Point {
	return a.Add(b).Scale(0.5)
}

// BBox is an axis-aligned bounding box, tl.X <= br.X and tl.Y <= br.Y.
type BBox struct {
	TL, BR Point
}

// Middle returns the center point of the box.
func (b BBox) Middle() Point {
	return b.TL.Mid(b.BR)
}

// bboxIntersect reports whether a and b overlap, inclusive of touching edges.
func bboxIntersect(a, b BBox) bool {
	return !(b.TL.X > a.BR.X || b.BR.X < a.TL.X ||
		b.TL.Y > a.BR.Y || b.BR.Y < a.TL.Y)
}

// Intersects reports whether b and o overlap, inclusive of touching edges.
func (b BBox) Intersects(o BBox) bool {
	return bboxIntersect(b, o)
}

// boundingBoxOf returns the tight axis-aligned box enclosing pts.
func boundingBoxOf(pts []Point) BBox {
	bb := BBox{
		TL: Point{X: math32.MaxFloat32, Y: math32.MaxFloat32},
		BR: Point{X: -math32.MaxFloat32, Y: -math32.MaxFloat32},
	}
	for _, p := range pts {
		f32.SetMin(&bb.TL.X, p.X)
		f32.SetMin(&bb.TL.Y, p.Y)
		f32.SetMax(&bb.BR.X, p.X)
		f32.SetMax(&bb.BR.Y, p.Y)
	}
	return bb
}

// Triangle is three points in counter-clockwise order.
type Triangle struct {
	Pts [3]Point
}

// NewTriangle builds a Triangle from three points, in the order given.
func NewTriangle(a, b, c Point) Triangle {
	return Triangle{Pts: [3]Point{a, b, c}}
}

// Quadrilateral is four points in counter-clockwise order.
type Quadrilateral struct {
	Pts [4]Point
}

// TriIsWindingCCW reports whether tri's vertices are wound
// counter-clockwise.
func TriIsWindingCCW(tri Triangle) bool {
	v1 := tri.Pts[1].Sub(tri.Pts[0])
	v2 := tri.Pts[2].Sub(tri.Pts[0])
	return v1.X*v2.Y-v1.Y*v2.X >= 0
}

// TriArea returns the unsigned area of tri.
func TriArea(tri Triangle) float32 {
	v1 := tri.Pts[1].Sub(tri.Pts[0])
	v2 := tri.Pts[2].Sub(tri.Pts[0])
	det := v1.X*v2.Y - v1.Y*v2.X
	return 0.5 * math32.Abs(det)
}

// triMinHeightToGroundRatio returns the minimum, over the triangle's three
// sides, of the ratio of the opposite vertex's height to that side's length.
// Used by the degeneracy filter to reject thin slivers.
func triMinHeightToGroundRatio(tri Triangle) float32 {
	minRatio := float32(999999.0)
	for i := 0; i < 3; i++ {
		ground := tri.Pts[(i+1)%3].Sub(tri.Pts[i])
		groundLen := math32.Sqrt(ground.X*ground.X + ground.Y*ground.Y)
		height := math32.Abs(signedTriHeight(tri.Pts[(i+2)%3].Sub(tri.Pts[i]), ground))
		ratio := height / groundLen
		if ratio < minRatio {
			minRatio = ratio
		}
	}
	return minRatio
}

// triProximityTo returns the maximum, over tri's three CCW sides, of the
// signed perpendicular distance of pt from that side. pt lies inside tri
// (inclusive) iff the result is <= 0.
func triProximityTo(tri Triangle, pt Point) float32 {
	max := float32(-99999.0)
	for i := 0; i < 3; i++ {
		height := signedTriHeight(pt.Sub(tri.Pts[i]), tri.Pts[(i+1)%3].Sub(tri.Pts[i]))
		if height > max {
			max = height
		}
	}
	return max
}

// IsDegenerateTriangle reports whether tri's area or aspect ratio falls
// below the thresholds used by the subtraction engine's degeneracy filter.
func IsDegenerateTriangle(tri Triangle) bool {
	const areaEps = 1e-7
	const minRatio = 1e-2
	return TriArea(tri) < areaEps || triMinHeightToGroundRatio(tri) < minRatio
}
