// Package mesh builds the rectilinear simulation grid: per-axis sets of
// line positions seeded by primitives, thinned, smoothed and checked.
package mesh

import (
	"math"
	"slices"
)

// AxisID selects one of the three grid axes.
type AxisID int

const (
	X AxisID = iota
	Y
	Z
)

func (a AxisID) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return "?"
}

// Axes lists the three axes in order.
var Axes = [3]AxisID{X, Y, Z}

// Axis is a strictly increasing set of line positions.
type Axis []float64

// Insert adds v unless an equal value is already present. NaN is ignored.
func (a *Axis) Insert(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	i, found := slices.BinarySearch(*a, v)
	if found {
		return false
	}
	*a = slices.Insert(*a, i, v)
	return true
}

// InsertAll adds every value of vs.
func (a *Axis) InsertAll(vs ...float64) {
	for _, v := range vs {
		a.Insert(v)
	}
}

// Gaps returns the distance between each pair of neighbouring lines.
func (a Axis) Gaps() []float64 {
	if len(a) < 2 {
		return nil
	}
	gaps := make([]float64, len(a)-1)
	for i := 1; i < len(a); i++ {
		gaps[i-1] = a[i] - a[i-1]
	}
	return gaps
}

// Lines holds one Axis per grid axis, indexed by AxisID.
type Lines [3]Axis

// Add inserts values on one axis.
func (l *Lines) Add(id AxisID, vs ...float64) {
	l[id].InsertAll(vs...)
}

// Merge adds every line of o.
func (l *Lines) Merge(o Lines) {
	for _, id := range Axes {
		l[id].InsertAll(o[id]...)
	}
}

// Len returns the total number of lines.
func (l Lines) Len() int {
	return len(l[X]) + len(l[Y]) + len(l[Z])
}

// Seeder is anything that proposes grid lines, typically a primitive.
type Seeder interface {
	MeshLines() Lines
}
