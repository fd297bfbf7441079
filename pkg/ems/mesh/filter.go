package mesh

import "slices"

// Filter merges lines closer than minGap. A close pair is replaced by its
// midpoint and the sweep carries on comparing that midpoint with the line
// after it. The sweep runs once, so a midpoint may land closer than minGap to
// the line before it.
func Filter(a Axis, minGap float64) Axis {
	out := slices.Clone(a)
	if minGap <= 0 {
		return out
	}
	for i := 1; i < len(out); {
		if out[i]-out[i-1] < minGap {
			out[i-1] = (out[i-1] + out[i]) / 2
			out = slices.Delete(out, i, i+1)
			continue
		}
		i++
	}
	return out
}
