// Package prim models a board as extruded polygons: trace segments, vias,
// copper zones and the board outline. Each primitive can describe itself as
// solver script text, hand its polygons to a material-filtered callback and
// propose grid lines.
package prim

import (
	"math"
	"slices"

	"github.com/jbeda/geom"
)

// Point is a planar position in millimetres with Y pointing up.
type Point = geom.Coord

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rotate turns p counter-clockwise by rad around the origin.
func Rotate(p Point, rad float64) Point {
	s, c := math.Sincos(rad)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Polar returns the point at distance r and angle rad from the origin.
func Polar(r, rad float64) Point {
	s, c := math.Sincos(rad)
	return Point{X: r * c, Y: r * s}
}

// Arg returns the angle of p.
func Arg(p Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// Dot returns the dot product of a and b.
func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Direction returns the unit vector from a to b, or +X when they coincide.
func Direction(a, b Point) Point {
	if a == b {
		return Pt(1, 0)
	}
	return b.Minus(a).Unit()
}

// RoundTo rounds v to n decimal digits.
func RoundTo(v float64, n int) float64 {
	scale := math.Pow(10, float64(n))
	return math.Round(v*scale) / scale
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

const pointEpsilon = 1e-6

// Near reports whether a and b are within a nanometre of each other.
func Near(a, b Point) bool {
	return math.Abs(a.X-b.X) < pointEpsilon && math.Abs(a.Y-b.Y) < pointEpsilon
}

// IsClockwise reports the winding of a closed outline in a Y-up frame.
func IsClockwise(pts []Point) bool {
	sum := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += (b.X - a.X) * (b.Y + a.Y)
	}
	return sum > 0
}

// Area returns the unsigned area enclosed by pts.
func Area(pts []Point) float64 {
	sum := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Clockwise returns pts, reversed when needed so that it winds clockwise.
func Clockwise(pts []Point) []Point {
	if IsClockwise(pts) {
		return pts
	}
	out := slices.Clone(pts)
	slices.Reverse(out)
	return out
}

// Compact drops consecutive duplicates, including a closing point that
// repeats the first.
func Compact(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// Bounds returns the smallest rectangle holding pts.
func Bounds(pts []Point) (geom.Rect, bool) {
	if len(pts) == 0 {
		return geom.Rect{}, false
	}
	r := geom.Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.ExpandToContainCoord(p)
	}
	return r, true
}
