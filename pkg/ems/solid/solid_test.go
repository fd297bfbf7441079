package solid

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

func block(cat *material.Catalog) prim.Primitive {
	return prim.NewSegment(prim.Pt(0, 0), prim.Pt(10, 0), 1, 4, 2, 1, 0, cat.MetalTop)
}

func TestBuild(t *testing.T) {
	cat := material.NewCatalog()
	s, err := Build([]prim.Primitive{block(cat)}, cat, DefaultOptions())
	require.NoError(t, err)

	bb := s.BoundingBox()
	assert.InDelta(t, 0, bb.Min.X, 1e-9)
	assert.InDelta(t, 10, bb.Max.X, 1e-9)
	assert.InDelta(t, -2, bb.Min.Y, 1e-9)
	assert.InDelta(t, 1, bb.Min.Z, 1e-9)
	assert.InDelta(t, 3, bb.Max.Z, 1e-9)
}

func TestBuildSheet(t *testing.T) {
	cat := material.NewCatalog()
	sheet := prim.NewSegment(prim.Pt(0, 0), prim.Pt(10, 0), 0.5, 4, 0, 1, 0, cat.MetalBot)
	s, err := Build([]prim.Primitive{sheet}, cat, DefaultOptions())
	require.NoError(t, err)
	bb := s.BoundingBox()
	assert.InDelta(t, 0.5, bb.Min.Z, 1e-9)
	assert.InDelta(t, 0.51, bb.Max.Z, 1e-9)
}

func TestBuildEmpty(t *testing.T) {
	cat := material.NewCatalog()
	_, err := Build(nil, cat, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmpty)

	opts := DefaultOptions()
	opts.Materials = []string{material.NameMetalBot}
	_, err = Build([]prim.Primitive{block(cat)}, cat, opts)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWriteSTL(t *testing.T) {
	cat := material.NewCatalog()
	s, err := Build([]prim.Primitive{block(cat)}, cat, DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := WriteSTL(&buf, s, 40)
	require.NoError(t, err)
	require.Positive(t, n)

	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), 84)
	assert.Equal(t, uint32(n), binary.LittleEndian.Uint32(data[80:84]))
	assert.Len(t, data, 84+50*n)
}
