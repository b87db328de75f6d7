package heatmap

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes the grid in long format, one row per cell:
// row,col,<x_field>,<y_field>,<metric>. Non-finite cells are written as NaN, +Inf or -Inf.
func WriteCSV(w io.Writer, g *Grid) error {
	cw := csv.NewWriter(w)

	header := []string{"row", "col", g.XField, g.YField, string(g.Metric)}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, y := range g.Y {
		for j, x := range g.X {
			rec := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				fmtFloat(x),
				fmtFloat(y),
				fmtFloat(g.Z[i][j]),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the grid to path, creating or truncating it.
func WriteCSVFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
