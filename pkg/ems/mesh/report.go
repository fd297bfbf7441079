package mesh

import (
	"fmt"
	"strings"
)

// Limits are the configured bounds a finished grid is checked against.
type Limits struct {
	MinCell [3]float64
	MaxCell [3]float64
	Ratio   float64
}

// ViolationKind classifies a grid quality problem.
type ViolationKind int

const (
	GapTooSmall ViolationKind = iota
	GapTooLarge
	RatioExceeded
)

func (k ViolationKind) String() string {
	switch k {
	case GapTooSmall:
		return "gap too small"
	case GapTooLarge:
		return "gap too large"
	case RatioExceeded:
		return "gap ratio exceeded"
	}
	return "unknown"
}

// Violation is one offending gap (or pair of gaps for ratios).
type Violation struct {
	Axis AxisID
	Kind ViolationKind
	// Index is the gap index; for ratios it is the first gap of the pair.
	Index int
	// At is the position of the line opening the gap.
	At    float64
	Value float64
	Limit float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s at %.6f (gap %d): %.6f, limit %.6f",
		v.Axis, v.Kind, v.At, v.Index, v.Value, v.Limit)
}

// Report collects grid quality violations. It never stops generation.
type Report struct {
	Limits     Limits
	Violations []Violation
}

// Check measures every gap and neighbour ratio of lines. A non-positive
// limit disables that check.
func Check(lines Lines, lim Limits) *Report {
	r := &Report{Limits: lim}
	for _, id := range Axes {
		axis := lines[id]
		gaps := axis.Gaps()
		for i, g := range gaps {
			if lim.MaxCell[id] > 0 && g > lim.MaxCell[id] {
				r.add(id, GapTooLarge, i, axis[i], g, lim.MaxCell[id])
			}
			if lim.MinCell[id] > 0 && g < lim.MinCell[id] {
				r.add(id, GapTooSmall, i, axis[i], g, lim.MinCell[id])
			}
			if i == 0 || lim.Ratio <= 0 {
				continue
			}
			if ratio := GapRatio(gaps[i-1], g); ratio > lim.Ratio {
				r.add(id, RatioExceeded, i-1, axis[i-1], ratio, lim.Ratio)
			}
		}
	}
	return r
}

// GapRatio returns the larger of a/b and b/a.
func GapRatio(a, b float64) float64 {
	if a < b {
		return b / a
	}
	return a / b
}

func (r *Report) add(id AxisID, kind ViolationKind, index int, at, value, limit float64) {
	r.Violations = append(r.Violations, Violation{
		Axis: id, Kind: kind, Index: index, At: at, Value: value, Limit: limit,
	})
}

// OK reports whether the grid met every limit.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Axis returns the violations found on one axis.
func (r *Report) Axis(id AxisID) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Axis == id {
			out = append(out, v)
		}
	}
	return out
}

// Flagged reports whether gap index i on axis id violates a size limit.
func (r *Report) Flagged(id AxisID, kind ViolationKind, i int) bool {
	for _, v := range r.Violations {
		if v.Axis == id && v.Kind == kind && v.Index == i {
			return true
		}
	}
	return false
}

func (r *Report) String() string {
	if r.OK() {
		return "mesh quality ok"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d mesh quality violations:\n", len(r.Violations))
	for _, v := range r.Violations {
		b.WriteString("  ")
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FlaggedLines returns the indices of lines on axis id that bound a
// violating gap. A ratio violation marks all three lines of the pair.
func (r *Report) FlaggedLines(id AxisID) map[int]bool {
	bad := make(map[int]bool)
	if r == nil {
		return bad
	}
	for _, v := range r.Axis(id) {
		last := v.Index + 1
		if v.Kind == RatioExceeded {
			last++
		}
		for i := v.Index; i <= last; i++ {
			bad[i] = true
		}
	}
	return bad
}
