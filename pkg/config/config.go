// Package config loads the JSON conversion settings: board stack-up, mesh
// parameters, the simulation box and the material catalog.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/pcb"
)

// Config is the whole settings file.
type Config struct {
	Conversion    Conversion    `json:"conversion_settings"`
	Mesh          MeshSettings  `json:"mesh_params"`
	SimulationBox SimulationBox `json:"SimulationBox"`

	catalog *material.Catalog
}

// Conversion describes the board stack-up and extraction switches.
type Conversion struct {
	PCBHeight      float64 `json:"pcb_height"`
	MetalThickness float64 `json:"pcb_metal_thickness"`
	MetalZeroThick bool    `json:"pcb_metal_zero_thick"`
	CornerApprox   int     `json:"corner_approximation"`

	UseAuxOrigin   bool    `json:"use_aux_axis_origin"`
	RescueViaDrill bool    `json:"rescue_via_drill"`
	ZoneTolerance  float64 `json:"zone_tolerance"`
}

// Triplet is one value per axis.
type Triplet struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

// Array returns the triplet indexed by mesh.AxisID.
func (t Triplet) Array() [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// MeshSettings groups automatic and manual grid settings.
type MeshSettings struct {
	Automatic AutomaticMesh `json:"automatic_mesh"`
	Manual    ManualMesh    `json:"manual_mesh"`
}

// AutomaticMesh controls grid lines derived from the primitives.
type AutomaticMesh struct {
	Insert           bool    `json:"insert_automatic_mesh"`
	Smooth           bool    `json:"smooth_mesh_lines"`
	Ratio            float64 `json:"smth_neighbor_size_diff"`
	ZLines           int     `json:"pcb_z_lines"`
	RemoveSmallCells bool    `json:"remove_small_cells"`
	MinCell          Triplet `json:"min_cell_size"`
	MaxCell          Triplet `json:"max_cell_size"`
}

// ManualMesh holds lines that are always added.
type ManualMesh struct {
	Insert bool     `json:"insert_manual_mesh"`
	X      LineSpec `json:"X"`
	Y      LineSpec `json:"Y"`
	Z      LineSpec `json:"Z"`
}

// SimulationBox is optional; Min and Max must be given together.
type SimulationBox struct {
	Min       *Triplet  `json:"min"`
	Max       *Triplet  `json:"max"`
	BoxFill   BoxFill   `json:"box_fill"`
	Materials Materials `json:"materials"`
}

// BoxFill fills the simulation box with its own material.
type BoxFill struct {
	Use      bool              `json:"use_box_fill"`
	Material material.Material `json:"box_material"`
}

// Materials are the four board materials.
type Materials struct {
	PCB      material.Material `json:"pcb"`
	MetalTop material.Material `json:"metal_top"`
	MetalBot material.Material `json:"metal_bot"`
	HoleFill material.Material `json:"hole_fill"`
}

// KeyError reports a required key missing from the settings file.
type KeyError struct {
	Path string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("config: element with key %s is not found", e.Path)
}

var requiredKeys = []string{
	"conversion_settings.pcb_height",
	"conversion_settings.pcb_metal_thickness",
	"conversion_settings.pcb_metal_zero_thick",
	"conversion_settings.corner_approximation",
	"mesh_params.automatic_mesh.insert_automatic_mesh",
	"mesh_params.automatic_mesh.smooth_mesh_lines",
	"mesh_params.automatic_mesh.smth_neighbor_size_diff",
	"mesh_params.automatic_mesh.pcb_z_lines",
	"mesh_params.automatic_mesh.remove_small_cells",
	"mesh_params.automatic_mesh.min_cell_size.X",
	"mesh_params.automatic_mesh.min_cell_size.Y",
	"mesh_params.automatic_mesh.min_cell_size.Z",
	"mesh_params.automatic_mesh.max_cell_size.X",
	"mesh_params.automatic_mesh.max_cell_size.Y",
	"mesh_params.automatic_mesh.max_cell_size.Z",
	"mesh_params.manual_mesh.insert_manual_mesh",
}

// Default returns settings for a 1.6 mm board with default materials and no
// simulation box.
func Default() *Config {
	c := &Config{
		Conversion: Conversion{
			PCBHeight:      1.6,
			MetalThickness: 0.035,
			UseAuxOrigin:   true,
			RescueViaDrill: true,
		},
		Mesh: MeshSettings{
			Automatic: AutomaticMesh{
				Ratio:   2,
				MinCell: Triplet{0.01, 0.01, 0.01},
				MaxCell: Triplet{1, 1, 1},
			},
		},
		SimulationBox: SimulationBox{
			BoxFill: BoxFill{Material: material.Default(material.NameBox)},
			Materials: Materials{
				PCB:      material.Default(material.NamePCB),
				MetalTop: material.Default(material.NameMetalTop),
				MetalBot: material.Default(material.NameMetalBot),
				HoleFill: material.Default(material.NameHoleFill),
			},
		},
	}
	c.catalog = c.buildCatalog()
	return c
}

// Load reads and validates a settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes settings. Required keys are checked before decoding; absent
// material fields keep their defaults.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := checkRequired(raw); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.catalog = cfg.buildCatalog()
	return cfg, nil
}

func checkRequired(raw map[string]any) error {
	for _, path := range requiredKeys {
		if !hasKey(raw, path) {
			return &KeyError{Path: path}
		}
	}
	if box, ok := raw["SimulationBox"].(map[string]any); ok {
		_, hasMin := box["min"]
		_, hasMax := box["max"]
		switch {
		case hasMin && !hasMax:
			return &KeyError{Path: "SimulationBox.max"}
		case hasMax && !hasMin:
			return &KeyError{Path: "SimulationBox.min"}
		case !hasMin:
			return nil
		}
		for _, end := range []string{"min", "max"} {
			for _, axis := range []string{"X", "Y", "Z"} {
				path := "SimulationBox." + end + "." + axis
				if !hasKey(raw, path) {
					return &KeyError{Path: path}
				}
			}
		}
	}
	return nil
}

func hasKey(node map[string]any, path string) bool {
	keys := strings.Split(path, ".")
	for i, k := range keys {
		v, ok := node[k]
		if !ok {
			return false
		}
		if i == len(keys)-1 {
			return true
		}
		if node, ok = v.(map[string]any); !ok {
			return false
		}
	}
	return false
}

// Validate rejects settings the extractor or mesher cannot work with.
func (c *Config) Validate() error {
	conv := c.Conversion
	if conv.PCBHeight <= 0 {
		return fmt.Errorf("config: pcb_height must be positive, got %g", conv.PCBHeight)
	}
	if conv.MetalThickness < 0 {
		return fmt.Errorf("config: pcb_metal_thickness must not be negative, got %g", conv.MetalThickness)
	}
	if conv.CornerApprox < 0 {
		return fmt.Errorf("config: corner_approximation must not be negative, got %d", conv.CornerApprox)
	}

	auto := c.Mesh.Automatic
	if auto.ZLines < 0 {
		return fmt.Errorf("config: pcb_z_lines must not be negative, got %d", auto.ZLines)
	}
	if auto.Smooth && auto.Ratio <= 1 {
		return fmt.Errorf("config: smth_neighbor_size_diff must exceed 1, got %g", auto.Ratio)
	}
	minCell, maxCell := auto.MinCell.Array(), auto.MaxCell.Array()
	for _, id := range mesh.Axes {
		if minCell[id] <= 0 || maxCell[id] <= 0 {
			return fmt.Errorf("config: cell sizes on %s must be positive", id)
		}
		if minCell[id] > maxCell[id] {
			return fmt.Errorf("config: min_cell_size.%s %g exceeds max_cell_size %g", id, minCell[id], maxCell[id])
		}
	}

	if box := c.SimulationBox; box.Min != nil && box.Max != nil {
		lo, hi := box.Min.Array(), box.Max.Array()
		for _, id := range mesh.Axes {
			if lo[id] >= hi[id] {
				return fmt.Errorf("config: SimulationBox min.%s %g is not below max %g", id, lo[id], hi[id])
			}
		}
	}
	return nil
}

// HasBox reports whether a simulation box is configured.
func (c *Config) HasBox() bool {
	return c.SimulationBox.Min != nil && c.SimulationBox.Max != nil
}

// Catalog returns the material catalog built when the settings were loaded.
func (c *Config) Catalog() *material.Catalog {
	if c.catalog == nil {
		c.catalog = c.buildCatalog()
	}
	return c.catalog
}

func (c *Config) buildCatalog() *material.Catalog {
	named := func(m material.Material, name string) *material.Material {
		m.Name = name
		return &m
	}
	ms := c.SimulationBox.Materials
	return &material.Catalog{
		PCB:      named(ms.PCB, material.NamePCB),
		MetalTop: named(ms.MetalTop, material.NameMetalTop),
		MetalBot: named(ms.MetalBot, material.NameMetalBot),
		HoleFill: named(ms.HoleFill, material.NameHoleFill),
		Box:      named(c.SimulationBox.BoxFill.Material, material.NameBox),
	}
}

// ExtractOptions returns the geometry extraction options.
func (c *Config) ExtractOptions() pcb.Options {
	conv := c.Conversion
	opts := pcb.Options{
		PCBHeight:      conv.PCBHeight,
		MetalThickness: conv.MetalThickness,
		CornerApprox:   conv.CornerApprox,
		UseAuxOrigin:   conv.UseAuxOrigin,
		RescueViaDrill: conv.RescueViaDrill,
		ZoneTolerance:  conv.ZoneTolerance,
		Materials:      c.Catalog(),
	}
	if conv.MetalZeroThick {
		opts.MetalThickness = 0
	}
	if c.HasBox() && c.SimulationBox.BoxFill.Use {
		opts.BoxFill = &pcb.BoxFill{
			Min: c.SimulationBox.Min.Array(),
			Max: c.SimulationBox.Max.Array(),
		}
	}
	return opts
}

// MeshParams returns the grid generation parameters.
func (c *Config) MeshParams() mesh.Params {
	auto := c.Mesh.Automatic
	p := mesh.Params{
		Automatic:        auto.Insert,
		RemoveSmallCells: auto.RemoveSmallCells,
		Smooth:           auto.Smooth,
		Ratio:            auto.Ratio,
		MinCell:          auto.MinCell.Array(),
		MaxCell:          auto.MaxCell.Array(),
		PCBHeight:        c.Conversion.PCBHeight,
		ZLines:           auto.ZLines,
	}
	if c.HasBox() {
		p.Box = &mesh.Box{
			Min: c.SimulationBox.Min.Array(),
			Max: c.SimulationBox.Max.Array(),
		}
	}
	if man := c.Mesh.Manual; man.Insert {
		var lines mesh.Lines
		lines.Add(mesh.X, man.X...)
		lines.Add(mesh.Y, man.Y...)
		lines.Add(mesh.Z, man.Z...)
		p.Manual = &lines
	}
	return p
}
