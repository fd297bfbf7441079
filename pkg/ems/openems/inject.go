// Package openems injects a board model into an existing openEMS XML
// settings document.
package openems

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// ErrBadStructure is returned when the document has no
// openEMS/ContinuousStructure/Properties element.
var ErrBadStructure = errors.New("openems: bad XML structure, can't inject model")

// InjectFile rewrites the settings file at path in place.
func InjectFile(path string, cat *material.Catalog, prims []prim.Primitive) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return fmt.Errorf("openems: read %s: %w", path, err)
	}
	if err := Inject(doc, cat, prims); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	doc.Indent(2)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("openems: write %s: %w", path, err)
	}
	return nil
}

// Inject replaces every Material and Metal property of doc with one element
// per catalog material holding the primitives made of it.
func Inject(doc *etree.Document, cat *material.Catalog, prims []prim.Primitive) error {
	root := doc.Root()
	if root == nil {
		return ErrBadStructure
	}
	structure := root.SelectElement("ContinuousStructure")
	if structure == nil {
		return ErrBadStructure
	}
	props := structure.SelectElement("Properties")
	if props == nil {
		return ErrBadStructure
	}

	for _, tag := range []string{"Material", "Metal"} {
		for _, el := range props.SelectElements(tag) {
			props.RemoveChild(el)
		}
	}

	for _, m := range cat.All() {
		addMaterial(props, m, prims)
	}
	return nil
}

func addMaterial(props *etree.Element, m *material.Material, prims []prim.Primitive) {
	var el *etree.Element
	if m.IsPEC {
		el = props.CreateElement("Metal")
		el.CreateAttr("Name", m.Name)
	} else {
		el = props.CreateElement("Material")
		el.CreateAttr("Name", m.Name)
		p := el.CreateElement("Property")
		p.CreateAttr("Epsilon", formatFloat(m.Epsilon))
		p.CreateAttr("Mue", formatFloat(m.Mue))
		p.CreateAttr("Kappa", formatFloat(m.Kappa))
		p.CreateAttr("Sigma", formatFloat(m.Sigma))
		p.CreateAttr("Density", formatFloat(m.Density))
	}

	primitives := el.CreateElement("Primitives")
	for _, pr := range prims {
		pr.EmitPolygons(m.Name, func(poly *prim.Polygon) {
			addPolygon(primitives, poly)
		})
	}
}

func addPolygon(parent *etree.Element, p *prim.Polygon) {
	verts := p.Vertices()
	if len(verts) == 0 {
		return
	}

	var el *etree.Element
	if p.Thickness != 0 {
		el = parent.CreateElement("LinPoly")
	} else {
		el = parent.CreateElement("Polygon")
	}
	el.CreateAttr("Priority", strconv.Itoa(p.Priority))
	el.CreateAttr("Elevation", formatFloat(p.Elevation))
	if p.Thickness != 0 {
		el.CreateAttr("Length", formatFloat(p.Thickness))
	}
	el.CreateAttr("NormDir", "2")

	for _, v := range verts {
		vx := el.CreateElement("Vertex")
		vx.CreateAttr("X1", formatFloat(v.X))
		vx.CreateAttr("X2", formatFloat(v.Y))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
