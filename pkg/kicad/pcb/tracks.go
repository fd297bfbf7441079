package pcb

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp"
)

// copper returns the elevation and material of a copper layer. Front copper
// sits on top of the substrate; every other layer hangs below it.
func (e *extractor) copper(layerName string) (float64, *material.Material) {
	if layerName == "F.Cu" {
		return e.opts.PCBHeight, e.opts.Materials.MetalTop
	}
	return -e.opts.MetalThickness, e.opts.Materials.MetalBot
}

func (e *extractor) segment(rec sexp.Cursor) error {
	start, err := e.point(rec, "start")
	if err != nil {
		return err
	}
	end, err := e.point(rec, "end")
	if err != nil {
		return err
	}
	width, err := value(rec, "width")
	if err != nil {
		return err
	}
	name, err := layer(rec)
	if err != nil {
		return err
	}

	z, m := e.copper(name)
	e.add(prim.NewSegment(start, end, z, width, e.opts.MetalThickness, PriorityMetal, e.opts.CornerApprox, m))
	e.model.Stats.Segments++
	return nil
}

// trackArc splits a curved trace into straight segments.
func (e *extractor) trackArc(rec sexp.Cursor) error {
	start, err := e.point(rec, "start")
	if err != nil {
		return err
	}
	mid, err := e.point(rec, "mid")
	if err != nil {
		return err
	}
	end, err := e.point(rec, "end")
	if err != nil {
		return err
	}
	width, err := value(rec, "width")
	if err != nil {
		return err
	}
	name, err := layer(rec)
	if err != nil {
		return err
	}

	z, m := e.copper(name)
	pts := threePointArc(start, mid, end, e.opts.CornerApprox)
	for i := 1; i < len(pts); i++ {
		e.add(prim.NewSegment(pts[i-1], pts[i], z, width, e.opts.MetalThickness, PriorityMetal, e.opts.CornerApprox, m))
		e.model.Stats.Segments++
	}
	return nil
}

func (e *extractor) via(rec sexp.Cursor) error {
	at, err := e.point(rec, "at")
	if err != nil {
		return err
	}
	size, err := value(rec, "size")
	if err != nil {
		return err
	}
	drill, err := value(rec, "drill")
	switch {
	case err == nil:
		e.lastDrill = drill
	case e.opts.RescueViaDrill && errors.Is(err, ErrMissingField):
		drill = e.lastDrill
		e.warn(WarnFormat, rec, "via without drill, using %g", drill)
	default:
		return err
	}

	t, h := e.opts.MetalThickness, e.opts.PCBHeight
	mats := e.opts.Materials
	e.add(prim.NewVia(at, at, -t, size, h+2*t, PriorityMetal, e.opts.CornerApprox, drill, mats.MetalTop, mats.HoleFill))
	e.model.Stats.Vias++
	return nil
}
