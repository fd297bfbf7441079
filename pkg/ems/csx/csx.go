// Package csx writes the board model and its grid as Octave functions for the
// openEMS CSXCAD scripting interface.
package csx

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/prim"
)

// tableColumns is the number of values per row in the mesh comment tables.
const tableColumns = 10

// ModelScript returns a function that adds every primitive to a CSX
// structure, in the order given.
func ModelScript(prims []prim.Primitive) string {
	var b strings.Builder
	b.WriteString("function retval = kicad_pcb_model(CSX)\n")
	for _, p := range prims {
		b.WriteString(p.Script())
	}
	b.WriteString("retval = CSX;\n")
	b.WriteString("endfunction\n")
	return b.String()
}

// MeshScript returns a function yielding the grid lines, followed by comment
// tables of gap sizes and neighbour ratios. Columns flagged in rep are listed
// after each row. rep may be nil.
func MeshScript(lines mesh.Lines, rep *mesh.Report) string {
	if rep == nil {
		rep = &mesh.Report{}
	}

	var b strings.Builder
	b.WriteString("function retval = kicad_pcb_mesh()\n")
	for _, id := range mesh.Axes {
		fmt.Fprintf(&b, "mesh.%s = [ ", strings.ToLower(id.String()))
		for _, v := range lines[id] {
			fmt.Fprintf(&b, "%f ", v)
		}
		b.WriteString(" ];\n")
	}
	b.WriteString("retval = mesh;\n")
	b.WriteString("endfunction\n")

	b.WriteString("\n% Mesh gap sizes:\n")
	for _, id := range mesh.Axes {
		writeTable(&b, id, lines[id].Gaps(), "size", func(k int) bool {
			return rep.Flagged(id, mesh.GapTooLarge, k) || rep.Flagged(id, mesh.GapTooSmall, k)
		})
	}

	b.WriteString("\n% Mesh gap ratios:\n")
	for _, id := range mesh.Axes {
		gaps := lines[id].Gaps()
		var ratios []float64
		for k := 1; k < len(gaps); k++ {
			ratios = append(ratios, mesh.GapRatio(gaps[k-1], gaps[k]))
		}
		writeTable(&b, id, ratios, "ratio", func(k int) bool {
			return rep.Flagged(id, mesh.RatioExceeded, k)
		})
	}
	return b.String()
}

func writeTable(b *strings.Builder, id mesh.AxisID, vals []float64, what string, flagged func(int) bool) {
	fmt.Fprintf(b, "%% %s:\n", id)
	for row := 0; row == 0 || row < len(vals); row += tableColumns {
		b.WriteString("% ")
		var bad []int
		for k := row; k < min(row+tableColumns, len(vals)); k++ {
			fmt.Fprintf(b, "%f ", vals[k])
			if flagged(k) {
				bad = append(bad, k-row)
			}
		}
		if len(bad) > 0 {
			fmt.Fprintf(b, "\tWARNING mesh gap %s violate configuration at columns:", what)
			for _, c := range bad {
				fmt.Fprintf(b, " %d", c)
			}
		}
		b.WriteByte('\n')
	}
}
