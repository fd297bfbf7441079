package prim

import (
	"errors"
	"math"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
)

// ErrDegenerate is returned for outlines with fewer than three distinct
// vertices.
var ErrDegenerate = errors.New("outline needs at least 3 distinct vertices")

const (
	// innerOffset pulls the fill polygon slightly inside the stroke centre
	// line so that fill and fillers overlap.
	innerOffset = 0.001
	// minHalfCos bounds the miter length at very sharp spikes.
	minHalfCos = 0.01
	// axisTolerance is how far (in radians) an edge may lean and still count
	// as axis aligned for mesh seeding.
	axisTolerance = 0.01745
)

// Zone is a filled copper area whose outline is stroked with a round pen of
// Width. The fill is the Inner polygon; the stroke band between Inner and
// the outer (real) outline is covered by one quadrilateral filler per edge.
type Zone struct {
	// Center is the clockwise stroke centre line.
	Center []Point
	// Real is the outer boundary, offset Width/2 outward.
	Real    []Point
	Inner   *Polygon
	Fillers []*Polygon
	Width   float64
}

// NewZone offsets pts into the inner fill and the real outline and builds
// the fillers. When outlineIsCenter is set the inner polygon sits exactly on
// pts, as for the board outline.
func NewZone(pts []Point, z, width, thickness float64, priority int, m *material.Material, outlineIsCenter bool) (*Zone, error) {
	center := Clockwise(Compact(pts))
	n := len(center)
	if n < 3 {
		return nil, ErrDegenerate
	}

	in := innerOffset
	if outlineIsCenter {
		in = 0
	}
	out := width / 2

	inner := make([]Point, n)
	outer := make([]Point, n)
	for i := 0; i < n; i++ {
		prev, c, next := center[i], center[(i+1)%n], center[(i+2)%n]
		n1 := Rotate(Direction(prev, c), -math.Pi/2)
		n2 := Rotate(Direction(c, next), -math.Pi/2)

		angle := math.Acos(math.Max(-1, math.Min(1, Dot(n1, n2))))
		halfCos := math.Max(math.Cos(angle/2), minHalfCos)
		dir := Arg(n1.Plus(n2))
		if n1.Plus(n2) == Pt(0, 0) {
			dir = Arg(n1)
		}

		k := (i + 1) % n
		inner[k] = c.Plus(Polar(in/halfCos, dir))
		outer[k] = c.Plus(Polar(out/halfCos, dir-math.Pi))
	}

	zone := &Zone{
		Center: center,
		Real:   outer,
		Width:  width,
		Inner: &Polygon{
			Outline:   inner,
			Elevation: z,
			Thickness: thickness,
			Priority:  priority,
			Material:  m,
		},
	}

	if width > 0 {
		for i := 1; i <= n; i++ {
			a, b := i%n, i-1
			quad := []Point{outer[a], inner[a], inner[b], outer[b]}
			if SegmentsIntersect(outer[a], inner[a], outer[b], inner[b]) {
				quad[1], quad[2] = inner[b], inner[a]
			}
			zone.Fillers = append(zone.Fillers, &Polygon{
				Outline:   quad,
				Elevation: z,
				Thickness: thickness,
				Priority:  priority,
				Material:  m,
			})
		}
	}
	return zone, nil
}

func (z *Zone) Script() string {
	s := ""
	for _, f := range z.Fillers {
		s += f.Script()
	}
	return s + z.Inner.Script()
}

func (z *Zone) EmitPolygons(materialName string, emit func(*Polygon)) {
	z.Inner.EmitPolygons(materialName, emit)
	for _, f := range z.Fillers {
		f.EmitPolygons(materialName, emit)
	}
}

// MeshLines places lines along the axis-aligned edges of the real outline,
// following the material's boundary hints.
func (z *Zone) MeshLines() mesh.Lines {
	var l mesh.Lines
	m := z.Inner.Material
	d := m.RuleDistance

	n := len(z.Real)
	for i := 1; i <= n; i++ {
		p := Pt(round6(z.Real[i%n].X), round6(z.Real[i%n].Y))
		angle := Arg(z.Real[i%n].Minus(z.Real[i-1]))
		abs := math.Abs(angle)

		switch {
		case math.Abs(abs-math.Pi/2) < axisTolerance:
			up := angle > 0
			switch {
			case m.OneThirdRule && up:
				l.Add(mesh.X, round6(p.X+d*0.333), round6(p.X-d*0.667))
			case m.OneThirdRule:
				l.Add(mesh.X, round6(p.X-d*0.333), round6(p.X+d*0.667))
			default:
				l.Add(mesh.X, p.X)
				if m.AdditionalLines {
					l.Add(mesh.X, round6(p.X-d), round6(p.X+d))
				}
			}
		case abs < axisTolerance || abs > math.Pi-axisTolerance:
			fwd := abs < axisTolerance
			switch {
			case m.OneThirdRule && fwd:
				l.Add(mesh.Y, round6(p.Y-d*0.333), round6(p.Y+d*0.667))
			case m.OneThirdRule:
				l.Add(mesh.Y, round6(p.Y+d*0.333), round6(p.Y-d*0.667))
			default:
				l.Add(mesh.Y, p.Y)
				if m.AdditionalLines {
					l.Add(mesh.Y, round6(p.Y-d), round6(p.Y+d))
				}
			}
		}
	}
	addZ(&l, z.Inner.Elevation, z.Inner.Thickness)
	return l
}

func round6(v float64) float64 {
	return RoundTo(v, 6)
}

// Simplify drops vertices that deviate from the line through their
// neighbours by less than maxErr. pts is treated as an open chain.
func Simplify(pts []Point, maxErr float64) []Point {
	out := append([]Point(nil), pts...)
	for i := 2; i < len(out); {
		a := out[i-1].Minus(out[i-2])
		b := out[i].Minus(out[i-2])
		if deviation(a, b) < maxErr {
			out = append(out[:i-1], out[i:]...)
			continue
		}
		i++
	}
	return out
}

// deviation is the distance of the tip of a from the line along b.
func deviation(a, b Point) float64 {
	lb := b.DistanceFrom(Pt(0, 0))
	if lb == 0 {
		return a.DistanceFrom(Pt(0, 0))
	}
	return math.Abs(a.X*b.Y-a.Y*b.X) / lb
}
