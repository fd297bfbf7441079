package renderer

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer/palette"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/pcb"
)

func TestRenderModel(t *testing.T) {
	cat := material.NewCatalog()
	outline := []prim.Point{prim.Pt(0, 0), prim.Pt(0, 10), prim.Pt(20, 10), prim.Pt(20, 0)}
	board, err := prim.NewBoardPolygon(outline, 1.6, pcb.PriorityPCB, cat.PCB)
	if err != nil {
		t.Fatal(err)
	}
	model := &pcb.Model{
		Primitives: []prim.Primitive{board},
		Outline:    outline,
		Materials:  cat,
	}
	var lines mesh.Lines
	lines.Add(mesh.X, 0, 5, 20)
	lines.Add(mesh.Y, 0, 10)

	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 200)),
	}
	cam := NewCamera(400, 200)
	r, _ := model.Bounds()
	cam.Fit(r)

	rep := mesh.Check(lines, mesh.Limits{MaxCell: [3]float64{10, 10, 10}})
	if rep.OK() {
		t.Fatal("expected a flagged gap for the warning colour path")
	}
	RenderModel(gtx, cam, &Scene{Model: model, Lines: &lines, Report: rep}, nil, palette.For(palette.ThemeNord))

	lc := NewLayerConfig()
	lc.ShowCopperOnly()
	gtx.Ops.Reset()
	RenderModel(gtx, cam, &Scene{Model: model}, lc, palette.For(palette.ThemeEagle))

	// a nil scene still paints the background
	gtx.Ops.Reset()
	RenderModel(gtx, cam, nil, nil, palette.For(palette.ThemeClassic))
}
