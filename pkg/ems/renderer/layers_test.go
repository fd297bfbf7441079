package renderer

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

func TestLayerConfig(t *testing.T) {
	lc := NewLayerConfig()
	if !lc.IsVisible(material.NamePCB) {
		t.Error("layers start visible")
	}

	if lc.Toggle(LayerMesh) {
		t.Error("toggle should hide a visible layer")
	}
	if lc.IsVisible(LayerMesh) {
		t.Error("mesh should be hidden")
	}

	lc.ShowCopperOnly()
	if lc.IsVisible(material.NamePCB) || !lc.IsVisible(material.NameMetalTop) || !lc.IsVisible(material.NameHoleFill) {
		t.Error("ShowCopperOnly should leave only metal and drills")
	}

	lc.HideCopper()
	if lc.IsVisible(material.NameMetalBot) {
		t.Error("HideCopper should hide bottom metal")
	}

	lc.ShowAll()
	if !lc.IsVisible(LayerMesh) || !lc.IsVisible(material.NameMetalTop) {
		t.Error("ShowAll should reset every layer")
	}
}
