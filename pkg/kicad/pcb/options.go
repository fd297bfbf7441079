package pcb

import (
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
)

// Solver priorities. A drill mill sits one above the metal it cuts.
const (
	PriorityPCB   = 0
	PriorityBox   = 0
	PriorityMetal = 1
)

// DefaultViaDrill is used for a via without a drill field when no earlier via
// supplied one.
const DefaultViaDrill = 0.1

// Options controls how a board is turned into primitives.
type Options struct {
	// PCBHeight is the substrate thickness in mm.
	PCBHeight float64
	// MetalThickness is the copper thickness in mm. Zero models copper as
	// flat sheets.
	MetalThickness float64
	// CornerApprox is the number of extra points on each rounded end.
	CornerApprox int

	// UseAuxOrigin rebases coordinates on the board's auxiliary axis origin
	// when the board defines one.
	UseAuxOrigin bool
	// RescueViaDrill lets a via without a drill reuse the previous drill.
	RescueViaDrill bool
	// ZoneTolerance, when positive, drops zone vertices closer than this to
	// the line through their neighbours.
	ZoneTolerance float64

	// BoxFill, when set, adds a box-material block filling the simulation
	// box behind everything else.
	BoxFill *BoxFill

	Materials *material.Catalog
}

// BoxFill is the simulation box extent in model coordinates.
type BoxFill struct {
	Min [3]float64
	Max [3]float64
}

// DefaultOptions returns a 1.6 mm board with 35 um copper.
func DefaultOptions() Options {
	return Options{
		PCBHeight:      1.6,
		MetalThickness: 0.035,
		UseAuxOrigin:   true,
		RescueViaDrill: true,
		Materials:      material.NewCatalog(),
	}
}
