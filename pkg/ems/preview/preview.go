// Package preview rasterises a top view of a board model with its grid lines.
package preview

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer/palette"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/pcb"
)

// ErrEmpty is returned for a model without polygons.
var ErrEmpty = errors.New("preview: model has no polygons")

// Options controls the preview image.
type Options struct {
	// Width of the output image in pixels; the height follows the board.
	Width int
	// Supersample renders at this multiple and scales down.
	Supersample int
	// Margin around the board as a fraction of its larger side.
	Margin float64
	Theme  palette.Theme

	// Lines, when set, are drawn over the board. Lines touching a gap
	// flagged in Report use the warning colour.
	Lines  *mesh.Lines
	Report *mesh.Report
}

// DefaultOptions returns a 1024 px wide, 2x supersampled preview.
func DefaultOptions() Options {
	return Options{Width: 1024, Supersample: 2, Margin: 0.02}
}

type view struct {
	minX, maxY float64
	scale      float64
}

func (v view) project(p prim.Point) (float32, float32) {
	return float32((p.X - v.minX) * v.scale), float32((v.maxY - p.Y) * v.scale)
}

// Render draws the model's polygons material by material in
// palette.DrawOrder.
func Render(model *pcb.Model, opts Options) (*image.RGBA, error) {
	bounds, ok := model.Bounds()
	if !ok || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, ErrEmpty
	}
	if opts.Width <= 0 {
		return nil, fmt.Errorf("preview: width must be positive, got %d", opts.Width)
	}
	ss := max(opts.Supersample, 1)

	margin := opts.Margin * math.Max(bounds.Width(), bounds.Height())
	minX, maxX := bounds.Min.X-margin, bounds.Max.X+margin
	minY, maxY := bounds.Min.Y-margin, bounds.Max.Y+margin

	w := opts.Width * ss
	v := view{minX: minX, maxY: maxY, scale: float64(w) / (maxX - minX)}
	h := max(int(math.Ceil((maxY-minY)*v.scale)), 1)

	pal := palette.For(opts.Theme)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for _, name := range palette.DrawOrder {
		src := image.NewUniform(pal.Material(name))
		for _, poly := range model.Polygons(name) {
			verts := poly.Vertices()
			if len(verts) < 3 {
				continue
			}
			z.Reset(w, h)
			z.DrawOp = draw.Over
			z.MoveTo(v.project(verts[0]))
			for _, p := range verts[1:] {
				z.LineTo(v.project(p))
			}
			z.ClosePath()
			z.Draw(dst, dst.Bounds(), src, image.Point{})
		}
	}

	if opts.Lines != nil {
		drawLines(dst, v, *opts.Lines, opts.Report, pal, ss)
	}

	if ss == 1 {
		return dst, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, max(h/ss, 1)))
	draw.CatmullRom.Scale(out, out.Bounds(), dst, dst.Bounds(), draw.Src, nil)
	return out, nil
}

func drawLines(dst *image.RGBA, v view, lines mesh.Lines, rep *mesh.Report, pal palette.Palette, width int) {
	normal := image.NewUniform(pal.Mesh)
	warn := image.NewUniform(pal.MeshWarning)
	b := dst.Bounds()

	for _, id := range []mesh.AxisID{mesh.X, mesh.Y} {
		bad := rep.FlaggedLines(id)
		for i, c := range lines[id] {
			src := normal
			if bad[i] {
				src = warn
			}
			var r image.Rectangle
			if id == mesh.X {
				x, _ := v.project(prim.Pt(c, 0))
				r = image.Rect(int(x), b.Min.Y, int(x)+width, b.Max.Y)
			} else {
				_, y := v.project(prim.Pt(0, c))
				r = image.Rect(b.Min.X, int(y), b.Max.X, int(y)+width)
			}
			draw.Draw(dst, r.Intersect(b), src, image.Point{}, draw.Over)
		}
	}
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: WebP encode: %w", err)
	}
	return nil
}
