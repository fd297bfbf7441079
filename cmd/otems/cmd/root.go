package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otems",
	Short: "OpenTraceEMS - KiCad PCB to openEMS converter",
	Long: `OpenTraceEMS (otems) converts KiCad boards into openEMS models:
  - extruded polygon primitives for copper, vias, zones and the substrate
  - an adaptive rectilinear simulation grid with quality checks
  - injection into an existing openEMS XML settings file

Examples:
  otems convert -c config.json -p board.kicad_pcb -m model.m -g mesh.m
  otems convert -c config.json -p board.kicad_pcb -x sim.xml --stl board.stl
  otems mesh -c config.json -p board.kicad_pcb
  otems info board.kicad_pcb
  otems view -c config.json board.kicad_pcb`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func logInfo(format string, args ...any) {
	if verbose {
		log.Printf("[INFO] "+format, args...)
	}
}

func logWarn(format string, args ...any) {
	log.Printf("[WARN] "+format, args...)
}
