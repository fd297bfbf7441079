package pcb

import (
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// Transform rotates then translates a point.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Rotate     float64 // degrees, counter-clockwise
}

// Apply applies the transformation to a position
func (t Transform) Apply(p prim.Point) prim.Point {
	if t.Rotate != 0 {
		p = prim.Rotate(p, prim.Radians(t.Rotate))
	}
	return prim.Pt(p.X+t.TranslateX, p.Y+t.TranslateY)
}
