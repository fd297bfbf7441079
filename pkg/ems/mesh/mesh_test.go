package mesh

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisInsertKeepsOrderAndDedupes(t *testing.T) {
	var a Axis
	a.InsertAll(3, 1, 2, 1, 3)
	assert.Equal(t, Axis{1, 2, 3}, a)
	assert.Equal(t, []float64{1, 1}, a.Gaps())
}

func TestFilterMergesClosePairs(t *testing.T) {
	got := Filter(Axis{0, 0.05, 1, 1.02, 3}, 0.1)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.025, got[0], 1e-12)
	assert.InDelta(t, 1.01, got[1], 1e-12)
	assert.Equal(t, 3.0, got[2])
}

func TestFilterComparesMidpointWithNextLine(t *testing.T) {
	// 0 and 0.08 merge to 0.04, which is then merged with 0.1
	got := Filter(Axis{0, 0.08, 0.1, 5}, 0.1)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.07, got[0], 1e-12)
}

func TestFilterLastGap(t *testing.T) {
	got := Filter(Axis{0, 1, 1.05}, 0.1)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.025, got[1], 1e-12)
}

func TestFilterDisabled(t *testing.T) {
	in := Axis{0, 0.01, 0.02}
	assert.Equal(t, in, Filter(in, 0))
}

func assertSmooth(t *testing.T, a Axis, maxGap, ratio float64) {
	t.Helper()
	gaps := a.Gaps()
	for i, g := range gaps {
		assert.LessOrEqual(t, g, maxGap+1e-9, "gap %d", i)
		if i > 0 {
			assert.LessOrEqual(t, GapRatio(gaps[i-1], g), ratio+1e-9, "ratio at gap %d", i)
		}
	}
}

func TestSmoothFillsLargeGap(t *testing.T) {
	got := Smooth(Axis{0, 1, 50, 51}, 10, 2)
	assert.Greater(t, len(got), 4)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 51.0, got[len(got)-1])
	assertSmooth(t, got, 10, 2)
}

func TestSmoothIsIdempotent(t *testing.T) {
	compliant := Axis{0, 1, 2, 3.5, 5}
	assert.Equal(t, compliant, Smooth(compliant, 10, 2))

	once := Smooth(Axis{0, 1, 50, 51}, 10, 2)
	assert.Equal(t, once, Smooth(once, 10, 2))
}

func countRatioViolations(a Axis, ratio float64) int {
	rep := Check(Lines{a}, Limits{Ratio: ratio})
	n := 0
	for _, v := range rep.Violations {
		if v.Kind == RatioExceeded {
			n++
		}
	}
	return n
}

func TestSmoothNeverAddsRatioViolations(t *testing.T) {
	cases := []struct {
		in            Axis
		maxGap, ratio float64
	}{
		{Axis{6.34, 57.76, 70.96}, 9.512, 1.273},
		{Axis{3.08, 8.27, 13.22, 14.24}, 20, 1.246},
		{Axis{0, 1, 50, 51}, 10, 2},
	}
	for _, c := range cases {
		got := Smooth(c.in, c.maxGap, c.ratio)
		assert.LessOrEqual(t, countRatioViolations(got, c.ratio), countRatioViolations(c.in, c.ratio), "in %v", c.in)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 5000; n++ {
		var in Axis
		for range 3 + rng.IntN(5) {
			in.Insert(rng.Float64() * 100)
		}
		ratio := 1 + rng.Float64()*2
		maxGap := 1 + rng.Float64()*20

		got := Smooth(in, maxGap, ratio)
		require.LessOrEqual(t, countRatioViolations(got, ratio), countRatioViolations(in, ratio),
			"in %v ratio %g max gap %g out %v", in, ratio, maxGap, got)
		for _, v := range in {
			_, found := slices.BinarySearch(got, v)
			require.True(t, found, "line %g kept", v)
		}
	}
}

func TestTransitionStaysInside(t *testing.T) {
	got := Transition(0, 100, 1, 1, 10, 2)
	require.NotEmpty(t, got)

	var a Axis
	a.InsertAll(-1, 0, 100, 101)
	a.InsertAll(got...)
	for _, v := range got {
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 100.0)
	}
	assertSmooth(t, a, 10, 2)
}

func TestTransitionFromOneSide(t *testing.T) {
	// a fine cell on the right only: lines crowd toward hi
	got := Transition(0, 20, 5, 0.5, 5, 2)
	require.NotEmpty(t, got)
	assert.InDelta(t, 20-0.5*1.9998, got[0], 1e-9)
}

type seed Lines

func (s seed) MeshLines() Lines { return Lines(s) }

func TestGenerate(t *testing.T) {
	manual := Lines{}
	manual.Add(X, 100)

	p := Params{
		Box:       &Box{Min: [3]float64{-10, -10, -5}, Max: [3]float64{10, 10, 5}},
		Automatic: true,
		PCBHeight: 1.6,
		ZLines:    3,
		Ratio:     2,
		MaxCell:   [3]float64{50, 50, 50},
		Manual:    &manual,
	}
	s := seed{}
	(*Lines)(&s).Add(X, 0, 1)
	(*Lines)(&s).Add(Z, 0, 1.6)

	lines, report := Generate(p, []Seeder{s})
	assert.Equal(t, Axis{-10, 0, 1, 10, 100}, lines[X])
	assert.Equal(t, Axis{-10, 10}, lines[Y])
	require.Len(t, lines[Z], 7)
	assert.InDelta(t, 0.4, lines[Z][2], 1e-12)
	assert.InDelta(t, 1.2, lines[Z][4], 1e-12)

	// manual line at 100 leaves a 90 mm gap
	assert.True(t, report.Flagged(X, GapTooLarge, 3))
	assert.False(t, report.OK())
}

func TestGenerateWithoutAutomaticIgnoresSeeds(t *testing.T) {
	s := seed{}
	(*Lines)(&s).Add(X, 3)
	lines, _ := Generate(Params{}, []Seeder{s})
	assert.Zero(t, lines.Len())
}

func TestCheck(t *testing.T) {
	var l Lines
	l.Add(X, 0, 1, 4, 4.1)
	r := Check(l, Limits{MinCell: [3]float64{0.5}, MaxCell: [3]float64{2}, Ratio: 2})

	assert.True(t, r.Flagged(X, GapTooLarge, 1))
	assert.True(t, r.Flagged(X, GapTooSmall, 2))
	assert.True(t, r.Flagged(X, RatioExceeded, 0))
	assert.True(t, r.Flagged(X, RatioExceeded, 1))
	assert.Len(t, r.Axis(X), 4)
	assert.Empty(t, r.Axis(Y))
	assert.Contains(t, r.String(), "gap too large")
}

func TestFlaggedLines(t *testing.T) {
	var lines Lines
	lines.Add(X, 0, 1, 2, 10)
	rep := Check(lines, Limits{MaxCell: [3]float64{5, 5, 5}, Ratio: 2})

	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, rep.FlaggedLines(X))
	assert.Empty(t, rep.FlaggedLines(Y))

	var none *Report
	assert.Empty(t, none.FlaggedLines(X))
}
