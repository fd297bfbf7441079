package sexp

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp/kicadsexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, s string) *kicadsexp.List {
	t.Helper()
	l, err := kicadsexp.ParseRecord(s)
	require.NoError(t, err)
	return l
}

func TestGetXYAngle(t *testing.T) {
	x, y, a, err := GetXYAngle(mustRecord(t, "(at 1.5 -2 90)"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 90}, []float64{x, y, a})

	_, _, a, err = GetXYAngle(mustRecord(t, "(at 1 2)"))
	require.NoError(t, err)
	assert.Zero(t, a)

	_, _, _, err = GetXYAngle(mustRecord(t, "(at 1)"))
	assert.Error(t, err)
}

func TestGetFloatErrors(t *testing.T) {
	l := mustRecord(t, "(width abc (x))")
	_, err := GetFloat(l, 1)
	assert.Error(t, err)
	_, err = GetFloat(l, 2)
	assert.Error(t, err)
	_, err = GetFloat(l, 5)
	assert.Error(t, err)
}

func TestLayerHelpers(t *testing.T) {
	l := mustRecord(t, `(layers "F.Cu" F.Paste F.Mask)`)
	assert.True(t, HasAtom(l, "F.Cu"))
	assert.False(t, HasAtom(l, "B.Cu"))
	assert.True(t, ContainsAtom(l, "Paste"))

	s, err := GetString(l, 1)
	require.NoError(t, err)
	assert.Equal(t, "F.Cu", s)

	n, err := GetInt(mustRecord(t, "(version 20221018)"), 1)
	require.NoError(t, err)
	assert.Equal(t, 20221018, n)
}

func TestFindList(t *testing.T) {
	l := mustRecord(t, "(drill oval 1 2 (offset 0 0))")
	off, ok := FindList(l, "offset")
	require.True(t, ok)
	assert.Equal(t, "offset", off.Name())
	_, ok = FindList(l, "size")
	assert.False(t, ok)
}
