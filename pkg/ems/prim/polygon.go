package prim

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
)

// Primitive is one solid of the board model.
type Primitive interface {
	mesh.Seeder

	// Script returns the solver script statements that add the primitive.
	Script() string
	// EmitPolygons calls emit for each polygon made of the named material.
	EmitPolygons(materialName string, emit func(*Polygon))
}

// Polygon is a planar outline extruded along +Z from Elevation by Thickness.
// A zero thickness yields a flat sheet.
type Polygon struct {
	Outline   []Point
	Elevation float64
	Thickness float64
	Priority  int
	Material  *material.Material
}

// Vertices returns the outline without consecutive duplicate points.
func (p *Polygon) Vertices() []Point {
	out := make([]Point, 0, len(p.Outline))
	for i, pt := range p.Outline {
		if i > 0 && pt == out[len(out)-1] {
			continue
		}
		out = append(out, pt)
	}
	return out
}

// Script renders the polygon as a point matrix followed by an AddLinPoly
// (or AddPolygon for flat sheets) call.
func (p *Polygon) Script() string {
	verts := p.Vertices()
	if len(verts) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "p=zeros(2,%d);\n", len(verts))
	for i, v := range verts {
		fmt.Fprintf(&b, "p(1,%d)=%.6f;p(2,%d)=%.6f;\n", i+1, v.X, i+1, v.Y)
	}
	if p.Thickness == 0 {
		fmt.Fprintf(&b, "CSX = AddPolygon(CSX, '%s', %d, 2, %g, p);\n",
			p.Material.Name, p.Priority, p.Elevation)
	} else {
		fmt.Fprintf(&b, "CSX = AddLinPoly(CSX, '%s', %d, 2, %g, p, %g);\n",
			p.Material.Name, p.Priority, p.Elevation, p.Thickness)
	}
	return b.String()
}

func (p *Polygon) EmitPolygons(materialName string, emit func(*Polygon)) {
	if p.Material.Name == materialName && len(p.Outline) > 0 {
		emit(p)
	}
}

// MeshLines of a bare polygon are its vertices plus its Z extent.
func (p *Polygon) MeshLines() mesh.Lines {
	var l mesh.Lines
	for _, v := range p.Outline {
		l.Add(mesh.X, RoundTo(v.X, 6))
		l.Add(mesh.Y, RoundTo(v.Y, 6))
	}
	addZ(&l, p.Elevation, p.Thickness)
	return l
}

func addZ(l *mesh.Lines, z, t float64) {
	l.Add(mesh.Z, z)
	if t != 0 {
		l.Add(mesh.Z, z+t)
	}
}
