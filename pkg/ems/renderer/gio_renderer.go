package renderer

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer/palette"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/pcb"
)

// Scene is what the viewer shows: the model and optionally its grid.
type Scene struct {
	Model  *pcb.Model
	Lines  *mesh.Lines
	Report *mesh.Report
}

// RenderModel draws the scene using Gio operations
func RenderModel(gtx layout.Context, camera *Camera, scene *Scene, config *LayerConfig, pal palette.Palette) {
	if config == nil {
		config = NewLayerConfig()
	}
	paint.Fill(gtx.Ops, pal.Background)
	if scene == nil || scene.Model == nil {
		return
	}

	for _, name := range palette.DrawOrder {
		if !config.IsVisible(name) {
			continue
		}
		c := pal.Material(name)
		for _, poly := range scene.Model.Polygons(name) {
			renderPolygon(gtx, camera, poly.Vertices(), c)
		}
	}

	if config.IsVisible(LayerOutline) && len(scene.Model.Outline) > 1 {
		renderOutline(gtx, camera, scene.Model.Outline, pal.Outline)
	}

	if scene.Lines != nil && config.IsVisible(LayerMesh) {
		renderMeshLines(gtx, camera, *scene.Lines, scene.Report, pal)
	}
}

func renderPolygon(gtx layout.Context, camera *Camera, pts []prim.Point, fill color.NRGBA) {
	if len(pts) < 3 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	for i, pt := range pts {
		x, y := camera.WorldToScreen(pt)
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	path.Close()

	paint.FillShape(gtx.Ops, fill, clip.Outline{Path: path.End()}.Op())
}

func renderOutline(gtx layout.Context, camera *Camera, pts []prim.Point, c color.NRGBA) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		x1, y1 := camera.WorldToScreen(a)
		x2, y2 := camera.WorldToScreen(b)
		renderLine(gtx, x1, y1, x2, y2, 1.5, c)
	}
}

// renderMeshLines draws X and Y grid lines across the visible area. Lines
// bounding a flagged gap use the warning colour.
func renderMeshLines(gtx layout.Context, camera *Camera, lines mesh.Lines, rep *mesh.Report, pal palette.Palette) {
	view := camera.VisibleBounds()

	for _, id := range []mesh.AxisID{mesh.X, mesh.Y} {
		bad := rep.FlaggedLines(id)
		for i, v := range lines[id] {
			var a, b prim.Point
			if id == mesh.X {
				if v < view.Min.X || v > view.Max.X {
					continue
				}
				a, b = prim.Pt(v, view.Min.Y), prim.Pt(v, view.Max.Y)
			} else {
				if v < view.Min.Y || v > view.Max.Y {
					continue
				}
				a, b = prim.Pt(view.Min.X, v), prim.Pt(view.Max.X, v)
			}
			c := pal.Mesh
			if bad[i] {
				c = pal.MeshWarning
			}
			x1, y1 := camera.WorldToScreen(a)
			x2, y2 := camera.WorldToScreen(b)
			renderLine(gtx, x1, y1, x2, y2, 1, c)
		}
	}
}

func renderLine(gtx layout.Context, x1, y1, x2, y2, width float64, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()

	paint.FillShape(gtx.Ops, lineColor, stroke)
}
