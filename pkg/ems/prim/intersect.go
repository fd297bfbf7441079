package prim

import "math"

const crossEpsilon = 1e-12

// SegmentsIntersect reports whether the closed segments a1-a2 and b1-b2
// share at least one point.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// orient returns the sign of the turn a->b->c: 1 left, -1 right, 0 straight.
func orient(a, b, c Point) float64 {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(v) < crossEpsilon {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

// onSegment reports whether c, collinear with a-b, lies between them.
func onSegment(a, b, c Point) bool {
	return c.X >= math.Min(a.X, b.X)-crossEpsilon && c.X <= math.Max(a.X, b.X)+crossEpsilon &&
		c.Y >= math.Min(a.Y, b.Y)-crossEpsilon && c.Y <= math.Max(a.Y, b.Y)+crossEpsilon
}
