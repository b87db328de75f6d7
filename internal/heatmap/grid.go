package heatmap

import (
	"math"

	"vguppi/internal/model"
)

// Grid is one evaluated surface. Z is indexed [row = Y index][column = X index].
type Grid struct {
	XField string
	YField string
	Metric model.Metric

	X []float64
	Y []float64
	Z [][]float64
}

// Resolution is the number of points per axis.
func (g *Grid) Resolution() int { return len(g.X) }

// At returns Z[row][col].
func (g *Grid) At(row, col int) float64 { return g.Z[row][col] }

// Nearest returns the (row, col) of the cell whose coordinates are closest to (x, y).
func (g *Grid) Nearest(x, y float64) (row, col int) {
	return nearestIndex(g.Y, y), nearestIndex(g.X, x)
}

// NonFinite counts NaN and ±Inf cells.
func (g *Grid) NonFinite() int {
	n := 0
	for _, row := range g.Z {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				n++
			}
		}
	}
	return n
}

// Range returns the min and max finite cell values. ok is false when no cell is finite.
func (g *Grid) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.Z {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

func nearestIndex(vals []float64, v float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, x := range vals {
		if d := math.Abs(x - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
