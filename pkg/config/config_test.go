package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/config"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
)

const fullConfig = `{
  "conversion_settings": {
    "pcb_height": 1.5,
    "pcb_metal_thickness": 0.018,
    "pcb_metal_zero_thick": false,
    "corner_approximation": 3
  },
  "mesh_params": {
    "automatic_mesh": {
      "insert_automatic_mesh": true,
      "smooth_mesh_lines": true,
      "smth_neighbor_size_diff": 1.5,
      "pcb_z_lines": 3,
      "remove_small_cells": true,
      "min_cell_size": {"X": 0.05, "Y": 0.05, "Z": 0.1},
      "max_cell_size": {"X": 2, "Y": 2, "Z": 1}
    },
    "manual_mesh": {
      "insert_manual_mesh": true,
      "X": [-10, "0:0.5:1"],
      "Y": "-5:5:5",
      "Z": []
    }
  },
  "SimulationBox": {
    "min": {"X": -20, "Y": -20, "Z": -5},
    "max": {"X": 40, "Y": 30, "Z": 6},
    "box_fill": {
      "use_box_fill": true,
      "box_material": {"Epsilon": 1.0}
    },
    "materials": {
      "pcb": {"Epsilon": 4.5, "Kappa": 0.001},
      "metal_top": {"IsPEC": true, "boundary_one_third_rule": true, "boundary_rule_distance": 0.1},
      "metal_bot": {"IsPEC": true},
      "hole_fill": {"IsPEC": true}
    }
  }
}`

// minimalConfig carries only the required keys.
const minimalConfig = `{
  "conversion_settings": {
    "pcb_height": 1.6, "pcb_metal_thickness": 0.035,
    "pcb_metal_zero_thick": true, "corner_approximation": 0
  },
  "mesh_params": {
    "automatic_mesh": {
      "insert_automatic_mesh": false, "smooth_mesh_lines": false,
      "smth_neighbor_size_diff": 2, "pcb_z_lines": 0, "remove_small_cells": false,
      "min_cell_size": {"X": 0.1, "Y": 0.1, "Z": 0.1},
      "max_cell_size": {"X": 1, "Y": 1, "Z": 1}
    },
    "manual_mesh": {"insert_manual_mesh": false}
  }
}`

type ConfigSuite struct {
	suite.Suite
	cfg *config.Config
}

func (s *ConfigSuite) SetupTest() {
	cfg, err := config.Parse([]byte(fullConfig))
	s.Require().NoError(err)
	s.cfg = cfg
}

func (s *ConfigSuite) TestValues() {
	s.Equal(1.5, s.cfg.Conversion.PCBHeight)
	s.Equal(3, s.cfg.Conversion.CornerApprox)
	s.True(s.cfg.Conversion.UseAuxOrigin, "absent switch keeps its default")
	s.True(s.cfg.Conversion.RescueViaDrill)
	s.True(s.cfg.HasBox())
	s.Equal([3]float64{0.05, 0.05, 0.1}, s.cfg.Mesh.Automatic.MinCell.Array())
}

func (s *ConfigSuite) TestCatalog() {
	cat := s.cfg.Catalog()
	s.Same(cat, s.cfg.Catalog(), "catalog is built once")

	s.Equal(material.NamePCB, cat.PCB.Name)
	s.Equal(4.5, cat.PCB.Epsilon)
	s.Equal(1.0, cat.PCB.Mue, "absent material field keeps its default")
	s.Equal(1.0, cat.PCB.Density)
	s.Equal(0.001, cat.PCB.Kappa)

	s.True(cat.MetalTop.IsPEC)
	s.True(cat.MetalTop.OneThirdRule)
	s.Equal(0.1, cat.MetalTop.RuleDistance)
	s.Equal(material.NameBox, cat.Box.Name)

	m, ok := cat.Lookup(material.NameHoleFill)
	s.Require().True(ok)
	s.True(m.IsPEC)
}

func (s *ConfigSuite) TestExtractOptions() {
	opts := s.cfg.ExtractOptions()
	s.Equal(1.5, opts.PCBHeight)
	s.Equal(0.018, opts.MetalThickness)
	s.Equal(3, opts.CornerApprox)
	s.Same(s.cfg.Catalog(), opts.Materials)
	s.Require().NotNil(opts.BoxFill)
	s.Equal([3]float64{-20, -20, -5}, opts.BoxFill.Min)
	s.Equal([3]float64{40, 30, 6}, opts.BoxFill.Max)
}

func (s *ConfigSuite) TestMeshParams() {
	p := s.cfg.MeshParams()
	s.True(p.Automatic)
	s.True(p.Smooth)
	s.True(p.RemoveSmallCells)
	s.Equal(1.5, p.Ratio)
	s.Equal(3, p.ZLines)
	s.Equal(1.5, p.PCBHeight)
	s.Require().NotNil(p.Box)
	s.Equal([3]float64{-20, -20, -5}, p.Box.Min)

	s.Require().NotNil(p.Manual)
	s.Equal(mesh.Axis{-10, 0, 0.5, 1}, p.Manual[mesh.X])
	s.Equal(mesh.Axis{-5, 0, 5}, p.Manual[mesh.Y])
	s.Empty(p.Manual[mesh.Z])
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func TestMinimalConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(minimalConfig))
	require.NoError(t, err)

	require.False(t, cfg.HasBox())
	opts := cfg.ExtractOptions()
	require.Zero(t, opts.MetalThickness, "zero-thick metal overrides the thickness")
	require.Nil(t, opts.BoxFill)
	require.Equal(t, 1.0, opts.Materials.MetalTop.Epsilon)

	p := cfg.MeshParams()
	require.Nil(t, p.Box)
	require.Nil(t, p.Manual)
	require.False(t, p.Automatic)
}

func TestMissingKey(t *testing.T) {
	tests := []struct {
		name string
		edit func(string) string
		path string
	}{
		{
			name: "conversion field",
			edit: func(s string) string { return strings.Replace(s, `"pcb_height": 1.5,`, "", 1) },
			path: "conversion_settings.pcb_height",
		},
		{
			name: "cell size axis",
			edit: func(s string) string {
				return strings.Replace(s, `"max_cell_size": {"X": 2, "Y": 2, "Z": 1}`, `"max_cell_size": {"X": 2, "Y": 2}`, 1)
			},
			path: "mesh_params.automatic_mesh.max_cell_size.Z",
		},
		{
			name: "box max",
			edit: func(s string) string {
				return strings.Replace(s, `"max": {"X": 40, "Y": 30, "Z": 6},`, "", 1)
			},
			path: "SimulationBox.max",
		},
		{
			name: "box axis",
			edit: func(s string) string {
				return strings.Replace(s, `"min": {"X": -20, "Y": -20, "Z": -5}`, `"min": {"X": -20, "Z": -5}`, 1)
			},
			path: "SimulationBox.min.Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.edit(fullConfig)))
			var ke *config.KeyError
			require.True(t, errors.As(err, &ke), "got %v", err)
			require.Equal(t, tt.path, ke.Path)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.Config)
		want string
	}{
		{"height", func(c *config.Config) { c.Conversion.PCBHeight = 0 }, "pcb_height"},
		{"thickness", func(c *config.Config) { c.Conversion.MetalThickness = -1 }, "pcb_metal_thickness"},
		{"approx", func(c *config.Config) { c.Conversion.CornerApprox = -2 }, "corner_approximation"},
		{"ratio", func(c *config.Config) {
			c.Mesh.Automatic.Smooth = true
			c.Mesh.Automatic.Ratio = 1
		}, "smth_neighbor_size_diff"},
		{"min over max", func(c *config.Config) { c.Mesh.Automatic.MinCell.Y = 5 }, "min_cell_size.Y"},
		{"zero cell", func(c *config.Config) { c.Mesh.Automatic.MaxCell.Z = 0 }, "cell sizes on Z"},
		{"box", func(c *config.Config) {
			c.SimulationBox.Min = &config.Triplet{X: 0, Y: 0, Z: 0}
			c.SimulationBox.Max = &config.Triplet{X: 1, Y: 0, Z: 1}
		}, "SimulationBox min.Y"},
	}

	require.NoError(t, config.Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.edit(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := config.Parse([]byte(`{"conversion_settings": `))
	require.Error(t, err)

	bad := strings.Replace(fullConfig, `"Y": "-5:5:5"`, `"Y": "-5:0:5"`, 1)
	_, err = config.Parse([]byte(bad))
	require.ErrorContains(t, err, "zero step")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.018, cfg.Conversion.MetalThickness)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
