package prim

import (
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

// Line is one straight piece of the board edge, in no particular direction.
type Line struct {
	Start, End Point
}

// ChainOutline joins edge fragments into a single clockwise vertex loop,
// starting from the first fragment and repeatedly taking the first unused
// fragment that touches the current tail. complete is false when the chain
// breaks before every fragment is used; the partial loop is still returned.
func ChainOutline(frags []Line) (pts []Point, complete bool) {
	if len(frags) == 0 {
		return nil, false
	}

	used := make([]bool, len(frags))
	used[0] = true
	pts = []Point{frags[0].Start, frags[0].End}
	complete = true

	for len(pts) < len(frags) {
		tail := pts[len(pts)-1]
		found := false
		for i, f := range frags {
			if used[i] {
				continue
			}
			switch {
			case Near(f.Start, tail):
				pts = append(pts, f.End)
			case Near(f.End, tail):
				pts = append(pts, f.Start)
			default:
				continue
			}
			used[i] = true
			found = true
			break
		}
		if !found {
			complete = false
			break
		}
	}

	if complete && len(frags) > 1 && !closes(frags, used, pts) {
		complete = false
	}
	return Clockwise(pts), complete
}

// closes reports whether the one fragment left over joins the tail of pts
// back to its head.
func closes(frags []Line, used []bool, pts []Point) bool {
	head, tail := pts[0], pts[len(pts)-1]
	for i, f := range frags {
		if used[i] {
			continue
		}
		return (Near(f.Start, tail) && Near(f.End, head)) || (Near(f.End, tail) && Near(f.Start, head))
	}
	return Near(head, tail)
}

// NewBoardPolygon turns the chained outline into the substrate: a full
// height solid whose fill sits exactly on the outline.
func NewBoardPolygon(pts []Point, height float64, priority int, m *material.Material) (*Zone, error) {
	return NewZone(pts, 0, 0, height, priority, m, true)
}
