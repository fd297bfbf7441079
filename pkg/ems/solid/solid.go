// Package solid turns a board model into a triangle mesh for 3D viewers.
package solid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// ErrEmpty is returned when no polygon was selected.
var ErrEmpty = errors.New("solid: no polygons to build")

// Options controls solid construction and tessellation.
type Options struct {
	// Cells is the number of marching cubes cells along the longest side.
	Cells int
	// MinThickness is used for flat sheets.
	MinThickness float64
	// Materials limits the build to the named materials. Empty selects all.
	Materials []string
}

// DefaultOptions returns a 200 cell tessellation with 10 um sheets.
func DefaultOptions() Options {
	return Options{Cells: 200, MinThickness: 0.01}
}

// Build unions every selected polygon, extruded along Z, into one solid.
func Build(prims []prim.Primitive, cat *material.Catalog, opts Options) (sdf.SDF3, error) {
	var parts []sdf.SDF3
	for _, m := range cat.All() {
		if !selected(opts.Materials, m.Name) {
			continue
		}
		var err error
		for _, p := range prims {
			p.EmitPolygons(m.Name, func(poly *prim.Polygon) {
				if err != nil {
					return
				}
				s, e := extrude(poly, opts.MinThickness)
				if e != nil {
					err = fmt.Errorf("solid: %s polygon: %w", m.Name, e)
					return
				}
				if s != nil {
					parts = append(parts, s)
				}
			})
			if err != nil {
				return nil, err
			}
		}
	}
	if len(parts) == 0 {
		return nil, ErrEmpty
	}
	return sdf.Union3D(parts...), nil
}

func selected(names []string, name string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// extrude returns nil for polygons with fewer than three distinct vertices.
func extrude(p *prim.Polygon, minThickness float64) (sdf.SDF3, error) {
	verts := prim.Compact(p.Vertices())
	if len(verts) < 3 {
		return nil, nil
	}
	vs := make([]v2.Vec, len(verts))
	for i, v := range verts {
		vs[i] = v2.Vec{X: v.X, Y: v.Y}
	}
	outline, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, err
	}

	t := math.Max(p.Thickness, minThickness)
	s := sdf.Extrude3D(outline, t)
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: p.Elevation + t/2})), nil
}

type stlTriangle struct {
	Normal [3]float32
	V      [3][3]float32
	Attr   uint16
}

// WriteSTL tessellates s and writes it as binary STL. It returns the number
// of triangles written.
func WriteSTL(w io.Writer, s sdf.SDF3, cells int) (int, error) {
	if cells <= 0 {
		cells = DefaultOptions().Cells
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	var header [80]byte
	copy(header[:], "OpenTraceEMS board model")
	if _, err := w.Write(header[:]); err != nil {
		return 0, fmt.Errorf("solid: write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return 0, fmt.Errorf("solid: write count: %w", err)
	}

	for i, tri := range tris {
		n := tri.Normal()
		rec := stlTriangle{Normal: [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}}
		for j := 0; j < 3; j++ {
			rec.V[j] = [3]float32{float32(tri[j].X), float32(tri[j].Y), float32(tri[j].Z)}
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return i, fmt.Errorf("solid: write triangle %d: %w", i, err)
		}
	}
	return len(tris), nil
}
