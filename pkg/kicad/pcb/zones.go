package pcb

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp"
)

// zoneCopper is like copper but only accepts the two outer layers.
func (e *extractor) zoneCopper(layerName string) (float64, *material.Material, bool) {
	switch layerName {
	case "F.Cu":
		return e.opts.PCBHeight, e.opts.Materials.MetalTop, true
	case "B.Cu":
		return -e.opts.MetalThickness, e.opts.Materials.MetalBot, true
	}
	return 0, nil, false
}

// zoneLayer reads (layer X), falling back to the first entry of (layers ...).
func zoneLayer(rec sexp.Cursor) (string, bool, error) {
	if _, ok := rec.ChildNamed("layer"); ok {
		name, err := layer(rec)
		return name, err == nil, err
	}
	if _, ok := rec.ChildNamed("layers"); ok {
		l, err := field(rec, "layers")
		if err != nil {
			return "", false, err
		}
		name, err := sexp.GetString(l, 1)
		if err != nil {
			return "", false, badField(rec, "layers", err)
		}
		return name, true, nil
	}
	return "", false, nil
}

func (e *extractor) zone(rec sexp.Cursor) error {
	defLayer, hasLayer, err := zoneLayer(rec)
	if err != nil {
		return err
	}
	width, err := value(rec, "min_thickness")
	if err != nil {
		return err
	}

	for fp, ok := rec.ChildNamed("filled_polygon"); ok; fp, ok = fp.NextNamed("filled_polygon") {
		name := defLayer
		if _, own := fp.ChildNamed("layer"); own {
			if name, err = layer(fp); err != nil {
				return err
			}
		} else if !hasLayer {
			return &ParseError{Record: rec.Name(), Field: "layer", Offset: rec.Offset(), Err: ErrMissingField}
		}

		z, m, ok := e.zoneCopper(name)
		if !ok {
			continue
		}

		pts, err := e.polygonPoints(fp)
		if err != nil {
			return err
		}
		if e.opts.ZoneTolerance > 0 {
			pts = prim.Simplify(pts, e.opts.ZoneTolerance)
		}

		zone, err := prim.NewZone(pts, z, width, e.opts.MetalThickness, PriorityMetal, m, false)
		if errors.Is(err, prim.ErrDegenerate) {
			e.warn(WarnFormat, fp, "skipping zone fill with %d vertices", len(pts))
			continue
		}
		if err != nil {
			return err
		}
		e.add(zone)
		e.model.Stats.Zones++
	}
	return nil
}

// polygonPoints reads (pts (xy X Y) ...) below rec, dropping a closing point
// that repeats the first.
func (e *extractor) polygonPoints(rec sexp.Cursor) ([]prim.Point, error) {
	l, err := field(rec, "pts")
	if err != nil {
		return nil, err
	}
	var pts []prim.Point
	for _, xy := range l.Lists("xy") {
		x, y, err := sexp.GetXY(xy)
		if err != nil {
			return nil, badField(rec, "pts", err)
		}
		pts = append(pts, e.place(x, y))
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts, nil
}
