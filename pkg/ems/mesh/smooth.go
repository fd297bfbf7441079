package mesh

import (
	"math"
	"slices"
)

// Smooth inserts lines wherever two neighbouring gaps differ by more than
// ratio, growing cells geometrically from the smaller gap up to maxGap. A
// transition that would leave more ratio violations around the triple than
// it had before is not inserted, so smoothing never adds violations.
func Smooth(a Axis, maxGap, ratio float64) Axis {
	out := slices.Clone(a)
	mul := max(ratio, 1)

	for i2 := 2; i2 < len(out); i2++ {
		i0, i1 := i2-2, i2-1
		dl := out[i1] - out[i0]
		dr := out[i2] - out[i1]

		var added []float64
		switch {
		case dl > dr*mul:
			prev := math.MaxFloat64
			if i0 > 0 {
				prev = out[i0] - out[i0-1]
			}
			added = Transition(out[i0], out[i1], prev, dr, maxGap, ratio)
		case dl*mul < dr:
			next := math.MaxFloat64
			if i2+1 < len(out) {
				next = out[i2+1] - out[i2]
			}
			added = Transition(out[i1], out[i2], dl, next, maxGap, ratio)
		}

		if len(added) == 0 {
			continue
		}
		lo, hi := max(i0-1, 0), min(i2+1, len(out)-1)
		window := slices.Clone(out[lo : hi+1])
		before := ratioViolations(window, mul)
		window.InsertAll(added...)
		if ratioViolations(window, mul) > before {
			continue
		}

		n := len(out)
		out.InsertAll(added...)
		i2 += len(out) - n
	}
	return out
}

// ratioViolations counts neighbouring gaps of a whose size ratio exceeds
// ratio, as Check does.
func ratioViolations(a Axis, ratio float64) int {
	gaps := a.Gaps()
	n := 0
	for i := 1; i < len(gaps); i++ {
		if GapRatio(gaps[i-1], gaps[i]) > ratio {
			n++
		}
	}
	return n
}

// Transition returns the lines to insert strictly inside (lo, hi) so the
// cells grow from the outer gaps dLeft (below lo) and dRight (above hi)
// toward the middle of the interval by at most ratio per step, capped at
// maxGap. A remainder too small for another geometric step is split evenly.
func Transition(lo, hi, dLeft, dRight, maxGap, ratio float64) []float64 {
	if maxGap <= 0 {
		maxGap = math.Inf(1)
	}
	mul := ratio - ratio*0.0001
	if mul < 1 {
		mul = 1
	}

	var out []float64
	delta := hi - lo
	shrunkRight := false

	for dLeft > dRight*mul {
		shrunkRight = true
		need := min(mul*dRight, maxGap)
		if delta >= 2*need {
			hi -= need
			dRight = need
			out = append(out, hi)
		} else {
			if delta*mul/2 >= dRight {
				out = append(out, lo+delta/2)
			}
			return out
		}
		delta = hi - lo
	}

	for !shrunkRight && dLeft < dRight/mul {
		need := min(mul*dLeft, maxGap)
		if delta >= 2*need {
			lo += need
			dLeft = need
			out = append(out, lo)
		} else {
			if delta*mul/2 >= dLeft {
				out = append(out, lo+delta/2)
			}
			return out
		}
		delta = hi - lo
	}

	for {
		delta = hi - lo
		needL := min(mul*dLeft, maxGap)
		needR := min(mul*dRight, maxGap)
		if delta >= 2*(needL+needR) {
			lo += needL
			hi -= needR
			dLeft, dRight = needL, needR
			out = append(out, lo, hi)
			continue
		}

		cell := min((dLeft+dRight)/2, maxGap)
		count := math.Floor(delta / cell)
		size := delta / count
		if count < 1 || size > maxGap {
			count = math.Ceil(delta / maxGap)
			size = delta / count
		}
		for i := 1.0; i < count; i++ {
			out = append(out, lo+i*size)
		}
		return out
	}
}
