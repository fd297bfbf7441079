package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

var infoConfig string

var infoCmd = &cobra.Command{
	Use:   "info <board_file>",
	Short: "Show what a board converts into",
	Long: `Convert a KiCad PCB and print record counts, primitive counts per material,
the board extent and any conversion warnings. Without --config the default
settings (1.6 mm board, 35 µm copper) are used.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVarP(&infoConfig, "config", "c", "", "(in) JSON configuration file")
}

func runInfo(cmd *cobra.Command, args []string) error {
	prj, err := loadProject(infoConfig, args[0])
	if err != nil {
		return err
	}
	m := prj.model

	fmt.Printf("Board: %s\n", args[0])
	fmt.Printf("  Version: %d\n", m.Version)
	fmt.Printf("  Segments: %d\n", m.Stats.Segments)
	fmt.Printf("  Vias: %d\n", m.Stats.Vias)
	fmt.Printf("  Zones: %d\n", m.Stats.Zones)
	fmt.Printf("  Pads: %d\n", m.Stats.Pads)
	fmt.Printf("  Edge fragments: %d\n", m.Stats.EdgeFragments)
	if m.HasOrigin {
		fmt.Printf("  Origin: (%.3f, %.3f) mm\n", m.Origin.X, m.Origin.Y)
	}

	switch {
	case len(m.Outline) == 0:
		fmt.Println("  Outline: none")
	case m.OutlineComplete:
		fmt.Printf("  Outline: closed, %d points\n", len(m.Outline))
	default:
		fmt.Printf("  Outline: open, %d points\n", len(m.Outline))
	}

	if bb, ok := m.Bounds(); ok {
		fmt.Printf("  Extent: %.3f x %.3f mm\n", bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y)
		fmt.Printf("  From (%.3f, %.3f) to (%.3f, %.3f)\n", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
	}

	fmt.Printf("\n%-12s %10s\n", "Material", "Polygons")
	fmt.Println("───────────────────────")
	for _, mat := range m.Materials.All() {
		n := len(m.Polygons(mat.Name))
		if n == 0 && mat.Name == material.NameBox {
			continue
		}
		fmt.Printf("%-12s %10d\n", mat.Name, n)
	}

	if len(m.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(m.Warnings))
		for _, w := range m.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	return nil
}
