package prim

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

// Segment is a straight trace of constant width with rounded ends. With
// zero corner approximation the ends are square and the outline is a
// rectangle.
type Segment struct {
	Start, End Point
	Width      float64
	Polygon
}

// NewSegment builds the trace outline from start to end. approx is the
// number of extra points placed on each semicircular end cap.
func NewSegment(start, end Point, z, width, thickness float64, priority, approx int, m *material.Material) *Segment {
	dir := Direction(start, end)
	r := width / 2
	left := Rotate(dir, -math.Pi/2).Times(r)
	right := Rotate(dir, math.Pi/2).Times(r)

	outline := make([]Point, 0, 2*(approx+2))
	outline = appendArc(outline, start, right, approx)
	outline = appendArc(outline, end, left, approx)

	return &Segment{
		Start: start,
		End:   end,
		Width: width,
		Polygon: Polygon{
			Outline:   outline,
			Elevation: z,
			Thickness: thickness,
			Priority:  priority,
			Material:  m,
		},
	}
}

// appendArc adds a half turn around center starting at center+from, split
// into approx+1 equal steps.
func appendArc(pts []Point, center, from Point, approx int) []Point {
	step := math.Pi / float64(approx+1)
	pts = append(pts, center.Plus(from))
	for i := 1; i <= approx+1; i++ {
		pts = append(pts, center.Plus(Rotate(from, step*float64(i))))
	}
	return pts
}
