// Package pcb converts a KiCad board file into solver primitives: copper
// traces, vias, pads and zones, and the substrate bounded by the board edge.
// Coordinates are flipped to a Y-up frame and optionally rebased on the
// board's auxiliary axis origin.
package pcb

import (
	"errors"
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp/kicadsexp"
)

// Oldest dated file format accepted without a warning (KiCad 5).
const MinDatedVersion = 20171130

// ExtractFile reads and converts a KiCad board file.
func ExtractFile(filename string, opts Options) (*Model, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	return Extract(buf, opts)
}

type extractor struct {
	opts      Options
	model     *Model
	origin    prim.Point
	lastDrill float64
	edges     []prim.Line
}

// Extract converts a board held in memory. A malformed mandatory field
// aborts the conversion with a *ParseError; softer problems end up in
// Model.Warnings.
func Extract(buf []byte, opts Options) (*Model, error) {
	if opts.Materials == nil {
		return nil, errors.New("pcb: options carry no material catalog")
	}

	e := &extractor{
		opts:      opts,
		lastDrill: DefaultViaDrill,
		model:     &Model{Materials: opts.Materials},
	}

	if box := opts.BoxFill; box != nil {
		e.boxFill(box)
	}

	root, ok := sexp.Open(buf).Next()
	if !ok {
		return nil, ErrEmpty
	}
	if root.Name() != "kicad_pcb" {
		e.warn(WarnFormat, root, "top-level record is %q, expected kicad_pcb", root.Name())
	}
	e.checkVersion(root)

	if opts.UseAuxOrigin {
		if err := e.readOrigin(root); err != nil {
			return nil, err
		}
	}

	for rec, ok := root.Child(); ok; rec, ok = rec.Next() {
		var err error
		switch rec.Name() {
		case "segment":
			err = e.segment(rec)
		case "arc":
			err = e.trackArc(rec)
		case "via":
			err = e.via(rec)
		case "zone":
			err = e.zone(rec)
		case "module", "footprint":
			err = e.footprint(rec)
		case "gr_line", "gr_arc", "gr_circle", "gr_rect", "gr_poly":
			err = e.edge(rec)
		}
		if err != nil {
			return nil, err
		}
	}

	e.boardOutline()
	return e.model, nil
}

func (e *extractor) add(p prim.Primitive) {
	e.model.Primitives = append(e.model.Primitives, p)
}

func (e *extractor) warn(kind WarningKind, rec sexp.Cursor, format string, args ...any) {
	e.model.Warnings = append(e.model.Warnings, Warning{
		Kind:    kind,
		Offset:  rec.Offset(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *extractor) checkVersion(root sexp.Cursor) {
	rec, ok := root.Child()
	if !ok || rec.Name() != "version" {
		e.warn(WarnFormat, root, "first record is not a version")
		return
	}
	l, err := rec.Record()
	if err != nil {
		e.warn(WarnFormat, rec, "unreadable version: %v", err)
		return
	}
	v, err := sexp.GetInt(l, 1)
	if err != nil {
		e.warn(WarnFormat, rec, "unreadable version: %v", err)
		return
	}
	e.model.Version = v
	if v != 3 && v != 4 && v < MinDatedVersion {
		e.warn(WarnFormat, rec, "unexpected file version %d", v)
	}
}

func (e *extractor) readOrigin(root sexp.Cursor) error {
	setup, ok := root.ChildNamed("setup")
	if !ok {
		return nil
	}
	if _, ok := setup.ChildNamed("aux_axis_origin"); !ok {
		return nil
	}
	l, err := field(setup, "aux_axis_origin")
	if err != nil {
		return err
	}
	x, y, err := sexp.GetXY(l)
	if err != nil {
		return badField(setup, "aux_axis_origin", err)
	}
	e.origin = prim.Pt(x, -y)
	e.model.Origin = e.origin
	e.model.HasOrigin = true
	return nil
}

// boxFill adds the block of box material spanning the simulation box.
func (e *extractor) boxFill(box *BoxFill) {
	midY := (box.Min[1] + box.Max[1]) / 2
	e.add(prim.NewSegment(
		prim.Pt(box.Min[0], midY), prim.Pt(box.Max[0], midY),
		box.Min[2], box.Max[1]-box.Min[1], box.Max[2]-box.Min[2],
		PriorityBox, 0, e.opts.Materials.Box))
}

// field decodes the child record called name of rec.
func field(rec sexp.Cursor, name string) (*kicadsexp.List, error) {
	c, ok := rec.ChildNamed(name)
	if !ok {
		return nil, &ParseError{Record: rec.Name(), Field: name, Offset: rec.Offset(), Err: ErrMissingField}
	}
	l, err := c.Record()
	if err != nil {
		return nil, badField(rec, name, err)
	}
	return l, nil
}

func badField(rec sexp.Cursor, name string, err error) error {
	return &ParseError{
		Record: rec.Name(),
		Field:  name,
		Offset: rec.Offset(),
		Err:    fmt.Errorf("%w: %v", ErrBadField, err),
	}
}

// place flips a file coordinate into the Y-up frame and rebases it.
func (e *extractor) place(x, y float64) prim.Point {
	return e.rebase(prim.Pt(x, -y))
}

func (e *extractor) rebase(p prim.Point) prim.Point {
	if e.model.HasOrigin {
		return p.Minus(e.origin)
	}
	return p
}

// point reads (name X Y) from rec as a model coordinate.
func (e *extractor) point(rec sexp.Cursor, name string) (prim.Point, error) {
	l, err := field(rec, name)
	if err != nil {
		return prim.Point{}, err
	}
	x, y, err := sexp.GetXY(l)
	if err != nil {
		return prim.Point{}, badField(rec, name, err)
	}
	return e.place(x, y), nil
}

// value reads the first number of (name V ...).
func value(rec sexp.Cursor, name string) (float64, error) {
	l, err := field(rec, name)
	if err != nil {
		return 0, err
	}
	v, err := sexp.GetFloat(l, 1)
	if err != nil {
		return 0, badField(rec, name, err)
	}
	return v, nil
}

// layer reads (layer NAME).
func layer(rec sexp.Cursor) (string, error) {
	l, err := field(rec, "layer")
	if err != nil {
		return "", err
	}
	s, err := sexp.GetString(l, 1)
	if err != nil {
		return "", badField(rec, "layer", err)
	}
	return s, nil
}
