// Package palette holds the colour themes shared by the viewer and the
// preview renderer.
package palette

import (
	"image/color"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

// Theme selects a colour set.
type Theme int

const (
	ThemeClassic Theme = iota
	ThemeKiCad2020
	ThemeBlueTone
	ThemeEagle
	ThemeNord
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[Theme]string{
	ThemeClassic:   "Classic",
	ThemeKiCad2020: "KiCad 2020",
	ThemeBlueTone:  "Blue Tone",
	ThemeEagle:     "Eagle",
	ThemeNord:      "Nord",
}

// ParseTheme looks a theme up by display name, ignoring case and spaces.
func ParseTheme(name string) (Theme, bool) {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	for t, n := range ThemeNames {
		if strings.ReplaceAll(strings.ToLower(n), " ", "") == key {
			return t, true
		}
	}
	return ThemeClassic, false
}

// DrawOrder paints the substrate first and drills last.
var DrawOrder = []string{
	material.NameBox,
	material.NamePCB,
	material.NameMetalBot,
	material.NameMetalTop,
	material.NameHoleFill,
}

// Palette is the resolved colour set of one theme.
type Palette struct {
	Background  color.NRGBA
	Outline     color.NRGBA
	Mesh        color.NRGBA
	MeshWarning color.NRGBA

	materials map[string]color.NRGBA
}

// Material returns the fill colour of a material, grey when unknown.
func (p Palette) Material(name string) color.NRGBA {
	if c, ok := p.materials[name]; ok {
		return c
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

var (
	drillGold = color.NRGBA{R: 227, G: 183, B: 46, A: 255}
	boxShade  = color.NRGBA{R: 194, G: 194, B: 194, A: 40}
	meshGrey  = color.NRGBA{R: 160, G: 160, B: 160, A: 90}
	warnRed   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}
)

// For returns the palette of t. Unknown themes fall back to Classic.
func For(t Theme) Palette {
	switch t {
	case ThemeKiCad2020:
		return build(
			color.NRGBA{R: 0, G: 16, B: 35, A: 255},
			color.NRGBA{R: 255, G: 255, B: 0, A: 255},
			color.NRGBA{R: 25, G: 95, B: 55, A: 255},
			color.NRGBA{R: 179, G: 31, B: 31, A: 255},
			color.NRGBA{R: 12, G: 98, B: 179, A: 255},
		)
	case ThemeBlueTone:
		return build(
			color.NRGBA{R: 0, G: 16, B: 35, A: 255},
			color.NRGBA{R: 208, G: 210, B: 255, A: 255},
			color.NRGBA{R: 20, G: 60, B: 90, A: 255},
			color.NRGBA{R: 72, G: 72, B: 200, A: 255},
			color.NRGBA{R: 0, G: 132, B: 132, A: 255},
		)
	case ThemeEagle:
		return build(
			color.NRGBA{R: 0, G: 0, B: 0, A: 255},
			color.NRGBA{R: 255, G: 255, B: 0, A: 255},
			color.NRGBA{R: 0, G: 0, B: 0, A: 255},
			color.NRGBA{R: 204, G: 0, B: 0, A: 255},
			color.NRGBA{R: 0, G: 0, B: 204, A: 255},
		)
	case ThemeNord:
		return build(
			color.NRGBA{R: 46, G: 52, B: 64, A: 255},
			color.NRGBA{R: 229, G: 233, B: 240, A: 255},
			color.NRGBA{R: 59, G: 66, B: 82, A: 255},
			color.NRGBA{R: 191, G: 97, B: 106, A: 255},
			color.NRGBA{R: 129, G: 161, B: 193, A: 255},
		)
	default:
		return build(
			color.NRGBA{R: 0, G: 16, B: 35, A: 255},
			color.NRGBA{R: 208, G: 210, B: 205, A: 255},
			color.NRGBA{R: 20, G: 90, B: 50, A: 255},
			color.NRGBA{R: 200, G: 52, B: 52, A: 255},
			color.NRGBA{R: 77, G: 127, B: 196, A: 255},
		)
	}
}

func build(bg, outline, substrate, top, bot color.NRGBA) Palette {
	top.A, bot.A = 200, 200
	return Palette{
		Background:  bg,
		Outline:     outline,
		Mesh:        meshGrey,
		MeshWarning: warnRed,
		materials: map[string]color.NRGBA{
			material.NamePCB:      substrate,
			material.NameMetalTop: top,
			material.NameMetalBot: bot,
			material.NameHoleFill: drillGold,
			material.NameBox:      boxShade,
		},
	}
}
