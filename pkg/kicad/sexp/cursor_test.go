package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const board = `(kicad_pcb (version 4)
  (setup (aux_axis_origin 10 20))
  (segment (start 0 0) (end 10 0) (width 0.25) (layer F.Cu))
  (gr_text "has (parens) and \"quotes\"" (at 1 1))
  (via (at 5 5) (size 0.8) (drill 0.4))
  (segment (start 1 1) (end 2 2) (width 0.2) (layer B.Cu))
)`

func root(t *testing.T) Cursor {
	t.Helper()
	c, ok := Open([]byte(board)).Next()
	require.True(t, ok)
	require.Equal(t, "kicad_pcb", c.Name())
	return c
}

func TestCursorWalksSiblings(t *testing.T) {
	var names []string
	for c, ok := root(t).Child(); ok; c, ok = c.Next() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"version", "setup", "segment", "gr_text", "via", "segment"}, names)
}

func TestCursorExhaustion(t *testing.T) {
	c, ok := root(t).ChildNamed("via")
	require.True(t, ok)
	c, ok = c.Next()
	require.True(t, ok)
	assert.False(t, c.AtEnd())

	end, ok := c.Next()
	assert.False(t, ok)
	assert.True(t, end.AtEnd())
	assert.Equal(t, "", end.Name())

	_, ok = end.Next()
	assert.False(t, ok)
}

func TestCursorNamedSearchRestores(t *testing.T) {
	first, ok := root(t).Child()
	require.True(t, ok)

	same, ok := first.NextNamed("zone")
	assert.False(t, ok)
	assert.Equal(t, first, same)
	assert.False(t, same.AtEnd())

	via, ok := first.NextNamed("via")
	require.True(t, ok)
	assert.Equal(t, "(via (at 5 5) (size 0.8) (drill 0.4))", via.Text())
}

func TestCursorChildNamed(t *testing.T) {
	seg, ok := root(t).ChildNamed("segment")
	require.True(t, ok)

	layer, ok := seg.ChildNamed("layer")
	require.True(t, ok)
	assert.Equal(t, "(layer F.Cu)", layer.Text())

	missing, ok := seg.ChildNamed("net")
	assert.False(t, ok)
	assert.Equal(t, seg, missing)

	// a leaf record has no children
	_, ok = layer.Child()
	assert.False(t, ok)
}

func TestCursorQuotedParens(t *testing.T) {
	text, ok := root(t).ChildNamed("gr_text")
	require.True(t, ok)
	assert.Equal(t, `(gr_text "has (parens) and \"quotes\"" (at 1 1))`, text.Text())

	at, ok := text.Child()
	require.True(t, ok)
	assert.Equal(t, "at", at.Name())

	next, ok := text.Next()
	require.True(t, ok)
	assert.Equal(t, "via", next.Name())
}

func TestCursorRecord(t *testing.T) {
	seg, ok := root(t).ChildNamed("segment")
	require.True(t, ok)
	end, ok := seg.ChildNamed("end")
	require.True(t, ok)

	rec, err := end.Record()
	require.NoError(t, err)
	x, y, err := GetXY(rec)
	require.NoError(t, err)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 0.0, y)
}

func TestCursorUnterminated(t *testing.T) {
	c, ok := Open([]byte("(kicad_pcb (version 4")).Next()
	require.True(t, ok)
	assert.Equal(t, "(kicad_pcb (version 4", c.Text())

	_, ok = c.Next()
	assert.False(t, ok)
}

func TestCursorEmptyBuffer(t *testing.T) {
	c, ok := Open(nil).Next()
	assert.False(t, ok)
	assert.True(t, c.AtEnd())
}
