package renderer

import (
	"math"
	"testing"

	"github.com/jbeda/geom"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 10, 5
	c.Zoom = 4
	c.Rotation = 90
	c.FlipView = true
	c.RotationCenterX, c.RotationCenterY = 3, 2

	for _, p := range []prim.Point{prim.Pt(0, 0), prim.Pt(12.5, -3), prim.Pt(-7, 40)} {
		x, y := c.WorldToScreen(p)
		got := c.ScreenToWorld(x, y)
		if !near(got.X, p.X) || !near(got.Y, p.Y) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestInvertY(t *testing.T) {
	c := NewCamera(100, 100)
	_, yUp := c.WorldToScreen(prim.Pt(0, 1))
	_, yDown := c.WorldToScreen(prim.Pt(0, -1))
	if yUp >= yDown {
		t.Errorf("model +Y should be higher on screen: %v vs %v", yUp, yDown)
	}
}

func TestFit(t *testing.T) {
	c := NewCamera(1000, 500)
	c.Fit(geom.Rect{Min: prim.Pt(0, 0), Max: prim.Pt(100, 20)})

	if !near(c.CenterX, 50) || !near(c.CenterY, 10) {
		t.Errorf("center = %v,%v", c.CenterX, c.CenterY)
	}
	if !near(c.Zoom, 9) {
		t.Errorf("zoom = %v, want 9", c.Zoom)
	}

	before := *c
	c.Fit(geom.Rect{Min: prim.Pt(1, 1), Max: prim.Pt(1, 5)})
	if *c != before {
		t.Error("fitting an empty rect should not move the camera")
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	c := NewCamera(640, 480)
	before := c.ScreenToWorld(100, 50)
	c.ZoomAt(100, 50, 2.5)
	after := c.ScreenToWorld(100, 50)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("cursor point moved from %v to %v", before, after)
	}

	c.ZoomAt(0, 0, 1e9)
	if c.Zoom != maxZoom {
		t.Errorf("zoom = %v, want clamp at %v", c.Zoom, maxZoom)
	}
}

func TestPan(t *testing.T) {
	c := NewCamera(100, 100)
	c.Pan(20, 10)
	if !near(c.CenterX, -2) || !near(c.CenterY, 1) {
		t.Errorf("center after pan = %v,%v", c.CenterX, c.CenterY)
	}
}

func TestRotateNormalises(t *testing.T) {
	c := NewCamera(1, 1)
	c.Rotate(-90)
	if c.Rotation != 270 {
		t.Errorf("rotation = %v, want 270", c.Rotation)
	}
	c.Rotate(450)
	if c.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", c.Rotation)
	}
}

func TestVisibleBounds(t *testing.T) {
	c := NewCamera(200, 100)
	c.Zoom = 10
	r := c.VisibleBounds()
	if !near(r.Min.X, -10) || !near(r.Max.X, 10) || !near(r.Min.Y, -5) || !near(r.Max.Y, 5) {
		t.Errorf("visible bounds = %+v", r)
	}
}
