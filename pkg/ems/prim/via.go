package prim

import (
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
)

// Via is a plated hole: an annular metal ring and a mill (hole fill) of the
// drill width inside it. The mill has the higher priority so it cuts the
// ring. The ring is dropped when the drill is at least as wide as the metal.
type Via struct {
	Ring *Segment
	Mill *Segment
}

// NewVia builds a via whose ring runs from start to end. Corner
// approximation is at least 1 so the ring is never square.
func NewVia(start, end Point, z, width, thickness float64, priority, approx int, drill float64, ring, mill *material.Material) *Via {
	if approx == 0 {
		approx = 1
	}
	return &Via{
		Ring: NewSegment(start, end, z, width, thickness, priority, approx, ring),
		Mill: NewSegment(start, end, z, drill, thickness, priority+1, approx, mill),
	}
}

// RingVisible reports whether any metal remains around the drill.
func (v *Via) RingVisible() bool {
	return v.Mill.Width < v.Ring.Width
}

func (v *Via) Script() string {
	if !v.RingVisible() {
		return v.Mill.Script()
	}
	return v.Ring.Script() + v.Mill.Script()
}

func (v *Via) EmitPolygons(materialName string, emit func(*Polygon)) {
	v.Mill.EmitPolygons(materialName, emit)
	if v.RingVisible() {
		v.Ring.EmitPolygons(materialName, emit)
	}
}

func (v *Via) MeshLines() mesh.Lines {
	l := v.Ring.MeshLines()
	l.Merge(v.Mill.MeshLines())
	return l
}
