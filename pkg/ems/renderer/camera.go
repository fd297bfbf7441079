package renderer

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// Zoom limits in pixels per mm.
const (
	minZoom = 0.1
	maxZoom = 5000.0
)

// Camera is a viewport onto the model plane. Model Y grows upward, so the
// camera flips it for the screen unless InvertY is cleared.
type Camera struct {
	// Center position in model coordinates (mm)
	CenterX float64
	CenterY float64

	// Zoom level (pixels per mm)
	Zoom float64

	ScreenWidth  int
	ScreenHeight int

	FlipView bool    // mirror X
	Rotation float64 // degrees
	InvertY  bool

	// View rotates and flips around this point.
	RotationCenterX float64
	RotationCenterY float64
}

// NewCamera creates a camera at 10 pixels per mm.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		InvertY:      true,
	}
}

// WorldToScreen converts model coordinates (mm) to screen pixels.
func (c *Camera) WorldToScreen(pos prim.Point) (float64, float64) {
	pos = c.applyViewTransform(pos)

	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0

	if c.InvertY {
		y = float64(c.ScreenHeight) - y
	}
	return x, y
}

// ScreenToWorld converts screen pixels to model coordinates (mm).
func (c *Camera) ScreenToWorld(screenX, screenY float64) prim.Point {
	y := screenY
	if c.InvertY {
		y = float64(c.ScreenHeight) - screenY
	}

	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y = (y-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY

	return c.applyInverseViewTransform(prim.Pt(x, y))
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	if c.InvertY {
		c.CenterY += deltaY / c.Zoom
	} else {
		c.CenterY -= deltaY / c.Zoom
	}
}

// ZoomAt zooms by factor keeping the model point under the cursor fixed.
// factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Min(math.Max(c.Zoom*factor, minZoom), maxZoom)

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centres r and zooms so it fills 90% of the screen.
func (c *Camera) Fit(r geom.Rect) {
	width, height := r.Width(), r.Height()
	if width <= 0 || height <= 0 {
		return
	}

	c.CenterX = (r.Min.X + r.Max.X) / 2.0
	c.CenterY = (r.Min.Y + r.Max.Y) / 2.0
	c.RotationCenterX = c.CenterX
	c.RotationCenterY = c.CenterY

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = math.Min(zoomX, zoomY)
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Flip toggles the mirrored view.
func (c *Camera) Flip() {
	c.FlipView = !c.FlipView
}

// Rotate rotates the view by degrees, normalised to [0, 360).
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

func (c *Camera) applyViewTransform(pos prim.Point) prim.Point {
	center := prim.Pt(c.RotationCenterX, c.RotationCenterY)
	p := pos.Minus(center)
	if c.Rotation != 0 {
		p = prim.Rotate(p, prim.Radians(c.Rotation))
	}
	if c.FlipView {
		p.X = -p.X
	}
	return p.Plus(center)
}

func (c *Camera) applyInverseViewTransform(pos prim.Point) prim.Point {
	center := prim.Pt(c.RotationCenterX, c.RotationCenterY)
	p := pos.Minus(center)
	if c.FlipView {
		p.X = -p.X
	}
	if c.Rotation != 0 {
		p = prim.Rotate(p, -prim.Radians(c.Rotation))
	}
	return p.Plus(center)
}

// VisibleBounds returns the model area currently on screen.
func (c *Camera) VisibleBounds() geom.Rect {
	corners := []prim.Point{
		c.ScreenToWorld(0, 0),
		c.ScreenToWorld(float64(c.ScreenWidth), 0),
		c.ScreenToWorld(0, float64(c.ScreenHeight)),
		c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight)),
	}
	r, _ := prim.Bounds(corners)
	return r
}
