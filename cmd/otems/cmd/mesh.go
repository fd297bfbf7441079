package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/csx"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
)

var meshOut string

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate the simulation grid and report its quality",
	Long: `Generate the rectilinear grid for a board and check every gap against the
configured cell sizes and neighbour ratio.

Examples:
  otems mesh -c config.json -p board.kicad_pcb
  otems mesh -c config.json -p board.kicad_pcb --mesh-z "-1:0.5:3" -o mesh.m`,
	Args: cobra.NoArgs,
	RunE: runMesh,
}

func init() {
	rootCmd.AddCommand(meshCmd)

	meshCmd.Flags().StringVarP(&configFile, "config", "c", "config.json",
		"(in) JSON configuration file")
	meshCmd.Flags().StringVarP(&pcbFile, "pcb", "p", "",
		"(in) KiCad PCB file")
	meshCmd.Flags().StringVarP(&meshOut, "out", "o", "",
		"(out) mesh grid Octave function file")
	addMeshFlags(meshCmd)

	meshCmd.MarkFlagRequired("pcb")
}

func runMesh(cmd *cobra.Command, args []string) error {
	prj, err := loadProject(configFile, pcbFile)
	if err != nil {
		return err
	}
	extra, err := extraLines(meshSpecs)
	if err != nil {
		return err
	}
	lines, rep := prj.generateMesh(extra)

	fmt.Printf("Mesh for %s\n", pcbFile)
	fmt.Printf("%-4s %8s %12s %12s %10s %10s\n", "Axis", "Lines", "From", "To", "Min gap", "Max gap")
	fmt.Println("──────────────────────────────────────────────────────────────")
	for _, id := range mesh.Axes {
		printAxis(id, lines[id])
	}
	fmt.Println()
	fmt.Print(rep.String())
	if rep.OK() {
		fmt.Println()
	}

	if meshOut != "" {
		if err := os.WriteFile(meshOut, []byte(csx.MeshScript(lines, rep)), 0o644); err != nil {
			return fmt.Errorf("write grid: %w", err)
		}
		fmt.Printf("✓ Grid written to %s\n", meshOut)
	}
	return nil
}

func printAxis(id mesh.AxisID, a mesh.Axis) {
	if len(a) == 0 {
		fmt.Printf("%-4s %8d\n", id, 0)
		return
	}
	gaps := a.Gaps()
	lo, hi := 0.0, 0.0
	for i, g := range gaps {
		if i == 0 || g < lo {
			lo = g
		}
		if g > hi {
			hi = g
		}
	}
	fmt.Printf("%-4s %8d %12.4f %12.4f %10.4f %10.4f\n", id, len(a), a[0], a[len(a)-1], lo, hi)
}
