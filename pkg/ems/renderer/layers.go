package renderer

import "github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"

// Overlay names that can be toggled next to materials.
const (
	LayerMesh    = "mesh"
	LayerOutline = "outline"
)

// LayerConfig controls which materials and overlays are drawn. Names that
// were never set are visible.
type LayerConfig struct {
	visible map[string]bool
	hidden  bool
}

// NewLayerConfig creates a configuration with everything visible.
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{visible: make(map[string]bool)}
}

// SetVisible sets the visibility of one layer.
func (lc *LayerConfig) SetVisible(layer string, visible bool) {
	lc.visible[layer] = visible
}

// Toggle flips one layer and returns its new state.
func (lc *LayerConfig) Toggle(layer string) bool {
	v := !lc.IsVisible(layer)
	lc.SetVisible(layer, v)
	return v
}

// IsVisible reports whether layer is drawn.
func (lc *LayerConfig) IsVisible(layer string) bool {
	if v, ok := lc.visible[layer]; ok {
		return v
	}
	return !lc.hidden
}

// HideAll hides every layer not explicitly shown afterwards.
func (lc *LayerConfig) HideAll() {
	lc.visible = make(map[string]bool)
	lc.hidden = true
}

// ShowAll resets to everything visible.
func (lc *LayerConfig) ShowAll() {
	lc.visible = make(map[string]bool)
	lc.hidden = false
}

// ShowOnly shows only the given layers.
func (lc *LayerConfig) ShowOnly(layers ...string) {
	lc.HideAll()
	for _, layer := range layers {
		lc.SetVisible(layer, true)
	}
}

// ShowCopperOnly shows both metal layers and the drills.
func (lc *LayerConfig) ShowCopperOnly() {
	lc.ShowOnly(material.NameMetalTop, material.NameMetalBot, material.NameHoleFill)
}

// HideCopper hides both metal layers.
func (lc *LayerConfig) HideCopper() {
	lc.SetVisible(material.NameMetalTop, false)
	lc.SetVisible(material.NameMetalBot, false)
}
