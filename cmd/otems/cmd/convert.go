package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/csx"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/openems"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/preview"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer/palette"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/solid"
)

var (
	configFile  string
	pcbFile     string
	gridFile    string
	modelFile   string
	xmlFile     string
	stlFile     string
	previewFile string
	previewSize int
	themeName   string
	stlCells    int
	meshSpecs   [3]string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a KiCad board into openEMS model and mesh files",
	Long: `Convert a KiCad PCB into openEMS primitives and write the requested outputs.

Outputs:
  --model   Octave function adding every primitive to a CSX structure
  --grid    Octave function returning the mesh lines, with gap and ratio tables
  --xml     openEMS XML settings file to inject materials and primitives into
  --stl     binary STL of the extruded primitives
  --preview WebP top view with mesh lines

Examples:
  otems convert -c config.json -p board.kicad_pcb -m model.m -g mesh.m
  otems convert -c config.json -p board.kicad_pcb -x simulation.xml
  otems convert -c config.json -p board.kicad_pcb --mesh-x "0:0.5:10" --preview board.webp`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&configFile, "config", "c", "config.json",
		"(in) JSON configuration file")
	convertCmd.Flags().StringVarP(&pcbFile, "pcb", "p", "",
		"(in) KiCad PCB file to convert")
	convertCmd.Flags().StringVarP(&gridFile, "grid", "g", "",
		"(out) mesh grid Octave function file")
	convertCmd.Flags().StringVarP(&modelFile, "model", "m", "",
		"(out) model Octave function file")
	convertCmd.Flags().StringVarP(&xmlFile, "xml", "x", "",
		"(in/out) openEMS XML settings file to inject the model into")
	convertCmd.Flags().StringVar(&stlFile, "stl", "",
		"(out) binary STL file")
	convertCmd.Flags().IntVar(&stlCells, "stl-cells", solid.DefaultOptions().Cells,
		"marching cubes cells along the longest side")
	convertCmd.Flags().StringVar(&previewFile, "preview", "",
		"(out) WebP preview image")
	convertCmd.Flags().IntVar(&previewSize, "preview-width", preview.DefaultOptions().Width,
		"preview width in pixels")
	convertCmd.Flags().StringVar(&themeName, "theme", "Classic",
		"preview colour theme")
	addMeshFlags(convertCmd)

	convertCmd.MarkFlagRequired("config")
	convertCmd.MarkFlagRequired("pcb")
}

func addMeshFlags(c *cobra.Command) {
	c.Flags().StringVar(&meshSpecs[0], "mesh-x", "", "extra X lines, e.g. \"0:0.5:10\"")
	c.Flags().StringVar(&meshSpecs[1], "mesh-y", "", "extra Y lines")
	c.Flags().StringVar(&meshSpecs[2], "mesh-z", "", "extra Z lines")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if gridFile == "" && modelFile == "" && xmlFile == "" && stlFile == "" && previewFile == "" {
		return errors.New("nothing to do: give at least one of --grid, --model, --xml, --stl, --preview")
	}

	fmt.Printf("Converting board: %s\n", pcbFile)
	prj, err := loadProject(configFile, pcbFile)
	if err != nil {
		return err
	}
	m := prj.model
	fmt.Printf("  Primitives: %d (%d segments, %d vias, %d zones, %d pads)\n",
		len(m.Primitives), m.Stats.Segments, m.Stats.Vias, m.Stats.Zones, m.Stats.Pads)

	if modelFile != "" {
		if err := os.WriteFile(modelFile, []byte(csx.ModelScript(m.Primitives)), 0o644); err != nil {
			return fmt.Errorf("write model: %w", err)
		}
		fmt.Printf("✓ Model written to %s\n", modelFile)
	}

	if gridFile != "" || previewFile != "" {
		extra, err := extraLines(meshSpecs)
		if err != nil {
			return err
		}
		lines, rep := prj.generateMesh(extra)
		fmt.Printf("  Mesh: %d x %d x %d lines\n", len(lines[0]), len(lines[1]), len(lines[2]))

		if gridFile != "" {
			if err := os.WriteFile(gridFile, []byte(csx.MeshScript(lines, rep)), 0o644); err != nil {
				return fmt.Errorf("write grid: %w", err)
			}
			fmt.Printf("✓ Grid written to %s\n", gridFile)
		}
		if previewFile != "" {
			if err := writePreview(prj, &lines, rep); err != nil {
				return err
			}
			fmt.Printf("✓ Preview written to %s\n", previewFile)
		}
	}

	if xmlFile != "" {
		if !prj.cfg.HasBox() {
			return errors.New("must include 'SimulationBox' parameters in JSON configuration file to inject into XML")
		}
		if err := openems.InjectFile(xmlFile, prj.cfg.Catalog(), m.Primitives); err != nil {
			return err
		}
		fmt.Printf("✓ Model injected into %s\n", xmlFile)
	}

	if stlFile != "" {
		if err := writeSTL(prj); err != nil {
			return err
		}
	}
	return nil
}

func writePreview(prj *project, lines *mesh.Lines, rep *mesh.Report) error {
	theme, ok := palette.ParseTheme(themeName)
	if !ok {
		logWarn("unknown theme %q, using %s", themeName, palette.ThemeNames[theme])
	}
	opts := preview.DefaultOptions()
	opts.Width = previewSize
	opts.Theme = theme
	opts.Lines = lines
	opts.Report = rep

	img, err := preview.Render(prj.model, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := preview.EncodeWebP(&buf, img); err != nil {
		return err
	}
	if err := os.WriteFile(previewFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func writeSTL(prj *project) error {
	opts := solid.DefaultOptions()
	opts.Cells = stlCells
	s, err := solid.Build(prj.model.Primitives, prj.cfg.Catalog(), opts)
	if err != nil {
		return err
	}

	f, err := os.Create(stlFile)
	if err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	n, err := solid.WriteSTL(f, s, opts.Cells)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	fmt.Printf("✓ STL written to %s (%d triangles)\n", stlFile, n)
	return nil
}
