package pcb

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp/kicadsexp"
)

// footprint converts the pads of a module. Everything else in a footprint
// (silkscreen, courtyard, text) has no electrical meaning.
func (e *extractor) footprint(rec sexp.Cursor) error {
	l, err := field(rec, "at")
	if err != nil {
		return err
	}
	x, y, rot, err := sexp.GetXYAngle(l)
	if err != nil {
		return badField(rec, "at", err)
	}
	place := Transform{TranslateX: x, TranslateY: -y, Rotate: rot}

	for pad, ok := rec.ChildNamed("pad"); ok; pad, ok = pad.NextNamed("pad") {
		if err := e.pad(pad, place); err != nil {
			return err
		}
	}
	return nil
}

// padShape is the part of a pad header that decides its primitive.
type padShape struct {
	kind  string // smd, thru_hole, np_thru_hole, connect
	shape string // rect, roundrect, circle, oval, trapezoid, custom
}

func padHeader(rec sexp.Cursor) (padShape, error) {
	l, err := rec.Record()
	if err != nil {
		return padShape{}, badField(rec, "pad", err)
	}
	atoms := l.Atoms()
	if len(atoms) < 3 {
		return padShape{}, badField(rec, "pad", fmt.Errorf("header has %d atoms, want id, type and shape", len(atoms)))
	}
	return padShape{kind: atoms[1], shape: atoms[2]}, nil
}

// rounded reports whether the pad ends are semicircles. Every shape except
// rect and roundrect is drawn rounded.
func (s padShape) rounded() bool {
	return !strings.Contains(s.shape, "rect")
}

func (e *extractor) pad(rec sexp.Cursor, module Transform) error {
	hdr, err := padHeader(rec)
	if err != nil {
		return err
	}

	l, err := field(rec, "at")
	if err != nil {
		return err
	}
	px, py, prot, err := sexp.GetXYAngle(l)
	if err != nil {
		return badField(rec, "at", err)
	}
	l, err = field(rec, "size")
	if err != nil {
		return err
	}
	w, h, err := sexp.GetXY(l)
	if err != nil {
		return badField(rec, "size", err)
	}
	layers, err := field(rec, "layers")
	if err != nil {
		return err
	}

	// Pad angles in the file already include the footprint rotation.
	local := Transform{TranslateX: px, TranslateY: -py, Rotate: prot - module.Rotate}
	place := func(p prim.Point) prim.Point {
		return e.rebase(module.Apply(local.Apply(p)))
	}

	// The pad becomes a stroke along its long side, as wide as its short side.
	var start, end prim.Point
	short := min(w, h)
	if w >= h {
		start, end = prim.Pt(-(w-h)/2, 0), prim.Pt((w-h)/2, 0)
	} else {
		start, end = prim.Pt(0, -(h-w)/2), prim.Pt(0, (h-w)/2)
	}

	t, height := e.opts.MetalThickness, e.opts.PCBHeight
	mats := e.opts.Materials
	z, m := -t, mats.MetalBot
	if onFront(layers) {
		z, m = height, mats.MetalTop
	}
	approx := e.opts.CornerApprox
	if approx == 0 {
		approx = 1
	}

	switch hdr.kind {
	case "smd", "connect":
		if hdr.rounded() {
			e.add(prim.NewSegment(place(start), place(end), z, short, t, PriorityMetal, approx, m))
		} else {
			half := prim.Pt(w/2, 0)
			e.add(prim.NewSegment(place(half.Times(-1)), place(half), z, h, t, PriorityMetal, 0, m))
		}

	case "thru_hole", "np_thru_hole":
		dx, dy, err := padDrill(rec)
		if err != nil {
			return err
		}
		drill := dx
		if w > h {
			drill = dy
		}
		ring := short
		if hdr.kind == "np_thru_hole" {
			ring = drill
		}
		e.add(prim.NewVia(place(start), place(end), -t, ring, height+2*t, PriorityMetal, approx, drill, m, mats.HoleFill))

	default:
		e.warn(WarnUnsupported, rec, "pad type %q", hdr.kind)
		return nil
	}
	e.model.Stats.Pads++
	return nil
}

// onFront reports whether a pad's layer list reaches the front copper.
func onFront(layers *kicadsexp.List) bool {
	for _, name := range layers.Atoms() {
		if strings.Contains(name, "F.Cu") || name == "*.Cu" {
			return true
		}
	}
	return false
}

// padDrill reads (drill D) or (drill oval DX DY).
func padDrill(rec sexp.Cursor) (dx, dy float64, err error) {
	l, err := field(rec, "drill")
	if err != nil {
		return 0, 0, err
	}
	idx := 1
	oval := sexp.HasAtom(l, "oval")
	if oval {
		idx = 2
	}
	if dx, err = sexp.GetFloat(l, idx); err != nil {
		return 0, 0, badField(rec, "drill", err)
	}
	dy = dx
	if oval {
		if dy, err = sexp.GetFloat(l, idx+1); err != nil {
			return 0, 0, badField(rec, "drill", err)
		}
	}
	return dx, dy, nil
}
