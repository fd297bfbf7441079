package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/config"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/pcb"
)

// project is one loaded board with the settings it was converted with.
type project struct {
	cfg   *config.Config
	model *pcb.Model
}

// loadProject reads the settings (defaults when cfgPath is empty) and
// converts the board. Conversion warnings are logged.
func loadProject(cfgPath, pcbPath string) (*project, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return nil, err
		}
		logInfo("loaded configuration %s", cfgPath)
	}

	model, err := pcb.ExtractFile(pcbPath, cfg.ExtractOptions())
	if err != nil {
		return nil, err
	}
	for _, w := range model.Warnings {
		logWarn("%s", w)
	}
	logInfo("converted %s: %d primitives", pcbPath, len(model.Primitives))
	return &project{cfg: cfg, model: model}, nil
}

// extraLines parses the --mesh-x/y/z flag values.
func extraLines(specs [3]string) (mesh.Lines, error) {
	var lines mesh.Lines
	for _, id := range mesh.Axes {
		vs, err := config.ParseLineSpec(specs[id])
		if err != nil {
			return lines, fmt.Errorf("--mesh-%s: %w", strings.ToLower(id.String()), err)
		}
		lines.Add(id, vs...)
	}
	return lines, nil
}

// generateMesh builds the grid and adds lines given on the command line.
// Extra lines are not filtered or smoothed.
func (p *project) generateMesh(extra mesh.Lines) (mesh.Lines, *mesh.Report) {
	params := p.cfg.MeshParams()
	if extra.Len() > 0 {
		manual := extra
		if params.Manual != nil {
			manual.Merge(*params.Manual)
		}
		params.Manual = &manual
	}
	lines, rep := mesh.Generate(params, p.model.Seeders())
	for _, v := range rep.Violations {
		logWarn("mesh %s", v)
	}
	return lines, rep
}
