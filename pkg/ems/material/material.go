// Package material holds the electrical description of the five fixed
// materials a board model is split into.
package material

// Fixed material names used in solver output.
const (
	NamePCB      = "pcb"
	NameMetalTop = "metal_top"
	NameMetalBot = "metal_bot"
	NameHoleFill = "hole_fill"
	NameBox      = "box"
)

// Material is shared by every primitive made of it and is not modified after
// the catalog is built.
type Material struct {
	Name string `json:"-"`

	IsPEC   bool    `json:"IsPEC"`
	Epsilon float64 `json:"Epsilon"`
	Mue     float64 `json:"Mue"`
	Kappa   float64 `json:"Kappa"`
	Sigma   float64 `json:"Sigma"`
	Density float64 `json:"Density"`

	// Boundary hints consumed when seeding mesh lines at zone edges.
	OneThirdRule    bool    `json:"boundary_one_third_rule"`
	AdditionalLines bool    `json:"boundary_additional_lines"`
	RuleDistance    float64 `json:"boundary_rule_distance"`
}

// Default returns a vacuum-like material called name.
func Default(name string) Material {
	return Material{
		Name:    name,
		Epsilon: 1,
		Mue:     1,
		Density: 1,
	}
}

// Catalog is the fixed set of materials of one conversion.
type Catalog struct {
	PCB      *Material
	MetalTop *Material
	MetalBot *Material
	HoleFill *Material
	Box      *Material
}

// NewCatalog returns a catalog of default materials.
func NewCatalog() *Catalog {
	mk := func(name string) *Material {
		m := Default(name)
		return &m
	}
	return &Catalog{
		PCB:      mk(NamePCB),
		MetalTop: mk(NameMetalTop),
		MetalBot: mk(NameMetalBot),
		HoleFill: mk(NameHoleFill),
		Box:      mk(NameBox),
	}
}

// All returns the materials in output order.
func (c *Catalog) All() []*Material {
	return []*Material{c.PCB, c.MetalTop, c.MetalBot, c.HoleFill, c.Box}
}

// Lookup returns the material called name.
func (c *Catalog) Lookup(name string) (*Material, bool) {
	for _, m := range c.All() {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
