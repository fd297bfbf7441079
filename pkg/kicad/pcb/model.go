package pcb

import (
	"github.com/jbeda/geom"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// Model is the converted board: every primitive in emission order plus the
// findings made on the way.
type Model struct {
	Version    int
	Primitives []prim.Primitive
	Warnings   []Warning

	// Origin is the auxiliary axis origin (Y already flipped) the model was
	// rebased on, valid when HasOrigin is set.
	Origin    prim.Point
	HasOrigin bool

	// Outline is the chained board edge; OutlineComplete is false when the
	// edge fragments did not close.
	Outline         []prim.Point
	OutlineComplete bool

	Materials *material.Catalog
	Stats     Stats
}

// Stats counts converted records.
type Stats struct {
	Segments      int
	Vias          int
	Zones         int
	Pads          int
	EdgeFragments int
}

// Seeders returns the primitives as mesh seeders.
func (m *Model) Seeders() []mesh.Seeder {
	out := make([]mesh.Seeder, len(m.Primitives))
	for i, p := range m.Primitives {
		out[i] = p
	}
	return out
}

// Polygons returns every polygon made of the named material.
func (m *Model) Polygons(materialName string) []*prim.Polygon {
	var out []*prim.Polygon
	for _, p := range m.Primitives {
		p.EmitPolygons(materialName, func(poly *prim.Polygon) {
			out = append(out, poly)
		})
	}
	return out
}

// Bounds returns the planar extent of every polygon in the model.
func (m *Model) Bounds() (geom.Rect, bool) {
	var pts []prim.Point
	for _, mat := range m.Materials.All() {
		for _, poly := range m.Polygons(mat.Name) {
			pts = append(pts, poly.Outline...)
		}
	}
	return prim.Bounds(pts)
}
