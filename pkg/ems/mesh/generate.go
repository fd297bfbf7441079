package mesh

// Box is the simulation domain.
type Box struct {
	Min [3]float64
	Max [3]float64
}

// Params controls grid generation.
type Params struct {
	// Box, when set, contributes its bounds to every axis.
	Box *Box

	Automatic        bool
	RemoveSmallCells bool
	Smooth           bool
	// Ratio is the largest allowed size ratio between neighbouring cells.
	Ratio   float64
	MinCell [3]float64
	MaxCell [3]float64

	// PCBHeight and ZLines place evenly spaced lines through the substrate.
	PCBHeight float64
	ZLines    int

	// Manual lines are added after automatic processing and are never
	// filtered or smoothed.
	Manual *Lines
}

// Limits returns the bounds the quality report checks against.
func (p Params) Limits() Limits {
	return Limits{MinCell: p.MinCell, MaxCell: p.MaxCell, Ratio: p.Ratio}
}

// Generate builds the grid from the seeders and checks the result.
func Generate(p Params, seeds []Seeder) (Lines, *Report) {
	var lines Lines

	if p.Box != nil {
		for _, id := range Axes {
			lines.Add(id, p.Box.Min[id], p.Box.Max[id])
		}
	}

	if p.Automatic {
		for _, s := range seeds {
			lines.Merge(s.MeshLines())
		}
		for i := 0; i < p.ZLines; i++ {
			lines.Add(Z, float64(i+1)*p.PCBHeight/float64(p.ZLines+1))
		}
		for _, id := range Axes {
			if p.RemoveSmallCells {
				lines[id] = Filter(lines[id], p.MinCell[id])
			}
			if p.Smooth {
				lines[id] = Smooth(lines[id], p.MaxCell[id], p.Ratio)
			}
		}
	}

	if p.Manual != nil {
		lines.Merge(*p.Manual)
	}

	return lines, Check(lines, p.Limits())
}
