package pcb

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp"
)

// edge collects board-edge fragments from graphic records on Edge.Cuts.
func (e *extractor) edge(rec sexp.Cursor) error {
	name, err := layer(rec)
	if err != nil {
		return err
	}
	if name != "Edge.Cuts" {
		return nil
	}

	var pts []prim.Point
	closed := false

	switch rec.Name() {
	case "gr_line":
		if pts, err = e.points(rec, "start", "end"); err != nil {
			return err
		}

	case "gr_arc":
		if _, ok := rec.ChildNamed("mid"); ok {
			p, err := e.points(rec, "start", "mid", "end")
			if err != nil {
				return err
			}
			pts = threePointArc(p[0], p[1], p[2], e.opts.CornerApprox)
			break
		}
		// Older files give the centre as start, the arc start as end and
		// a clockwise sweep in degrees.
		p, err := e.points(rec, "start", "end")
		if err != nil {
			return err
		}
		sweep, err := value(rec, "angle")
		if err != nil {
			return err
		}
		pts = arcPoints(p[0], p[1], -prim.Radians(sweep), e.opts.CornerApprox)

	case "gr_rect":
		p, err := e.points(rec, "start", "end")
		if err != nil {
			return err
		}
		a, b := p[0], p[1]
		pts = []prim.Point{a, prim.Pt(b.X, a.Y), b, prim.Pt(a.X, b.Y)}
		closed = true

	case "gr_poly":
		if pts, err = e.polygonPoints(rec); err != nil {
			return err
		}
		closed = true

	case "gr_circle":
		e.warn(WarnUnsupported, rec, "circular board edge is not converted")
		return nil
	}

	for i := 1; i < len(pts); i++ {
		e.edges = append(e.edges, prim.Line{Start: pts[i-1], End: pts[i]})
	}
	if closed && len(pts) > 2 {
		e.edges = append(e.edges, prim.Line{Start: pts[len(pts)-1], End: pts[0]})
	}
	return nil
}

// points reads several (name X Y) fields in order.
func (e *extractor) points(rec sexp.Cursor, names ...string) ([]prim.Point, error) {
	out := make([]prim.Point, len(names))
	for i, name := range names {
		p, err := e.point(rec, name)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// arcPoints walks sweep radians around center starting at from, in steps of
// at most pi/(approx+1). The first point is from itself.
func arcPoints(center, from prim.Point, sweep float64, approx int) []prim.Point {
	maxStep := math.Pi / float64(approx+1)
	count := int(math.Ceil(math.Abs(sweep) / maxStep))
	if count == 0 {
		return []prim.Point{from}
	}
	step := sweep / float64(count)
	radius := from.Minus(center)

	pts := make([]prim.Point, 0, count+1)
	pts = append(pts, from)
	for i := 1; i <= count; i++ {
		pts = append(pts, center.Plus(prim.Rotate(radius, step*float64(i))))
	}
	return pts
}

// threePointArc subdivides the arc from start through mid to end. The last
// point is end exactly so that neighbouring fragments still meet.
func threePointArc(start, mid, end prim.Point, approx int) []prim.Point {
	center, ok := circumcenter(start, mid, end)
	if !ok {
		return []prim.Point{start, end}
	}
	a1 := prim.Arg(start.Minus(center))
	am := prim.Arg(mid.Minus(center))
	a2 := prim.Arg(end.Minus(center))

	sweep := normAngle(a2 - a1)
	if normAngle(am-a1) > sweep {
		sweep -= 2 * math.Pi
	}

	pts := arcPoints(center, start, sweep, approx)
	pts[len(pts)-1] = end
	return pts
}

// normAngle maps a to [0, 2pi).
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func circumcenter(a, b, c prim.Point) (prim.Point, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return prim.Point{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return prim.Pt(
		(a2*(b.Y-c.Y)+b2*(c.Y-a.Y)+c2*(a.Y-b.Y))/d,
		(a2*(c.X-b.X)+b2*(a.X-c.X)+c2*(b.X-a.X))/d,
	), true
}

// boardOutline chains the collected edge fragments into the substrate.
func (e *extractor) boardOutline() {
	e.model.Stats.EdgeFragments = len(e.edges)
	if len(e.edges) == 0 {
		return
	}

	pts, complete := prim.ChainOutline(e.edges)
	e.model.Outline = pts
	e.model.OutlineComplete = complete
	if !complete {
		e.model.Warnings = append(e.model.Warnings, Warning{
			Kind:    WarnOutline,
			Message: "failed to generate complete PCB outline",
		})
	}

	board, err := prim.NewBoardPolygon(pts, e.opts.PCBHeight, PriorityPCB, e.opts.Materials.PCB)
	if err != nil {
		e.model.Warnings = append(e.model.Warnings, Warning{
			Kind:    WarnOutline,
			Message: "board outline: " + err.Error(),
		})
		return
	}
	e.add(board)
}
