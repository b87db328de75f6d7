package main

import (
	"flag"
	"fmt"
	"math"
	"strings"

	"vguppi/internal/config"
	"vguppi/internal/heatmap"
	"vguppi/internal/model"
)

// Demo:
// - Evaluate the default (or scenario) parameters
// - Sweep two fields on a coarse grid
// - Print the surface as a text table to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML scenario (optional)")
	metricName := flag.String("metric", "", "Metric to sweep (default from scenario)")
	n := flag.Int("n", 6, "Points per axis")
	outCSV := flag.String("out", "", "Optional path to write the grid CSV (e.g. results/demo.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if *metricName != "" {
		cfg.Heatmap.Metric = *metricName
	}
	cfg.Heatmap.Resolution = *n

	req, err := cfg.HeatmapRequest()
	if err != nil {
		panic(err)
	}

	ev := model.Evaluate(req.Base)
	fmt.Printf("e_p=%.4f  e_sd=%.4f  e_sr=%.4f\n", ev.Intermediates.EP, ev.Intermediates.ESD, ev.Intermediates.ESR)
	for _, m := range model.Metrics() {
		fmt.Printf("%-10s %9.4f  %s\n", m, ev.VGUPPIs.Value(m), m.Description())
	}

	grid, err := heatmap.New().Run(req)
	if err != nil {
		panic(err)
	}

	fmt.Printf("\n%s over %s (columns) x %s (rows)\n\n", grid.Metric, grid.XField, grid.YField)
	fmt.Printf("%8s", "")
	for _, x := range grid.X {
		fmt.Printf(" %9.3f", x)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 8+10*len(grid.X)))
	// Print top row = max y so the table reads like the chart.
	for i := len(grid.Y) - 1; i >= 0; i-- {
		fmt.Printf("%8.3f", grid.Y[i])
		for _, v := range grid.Z[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				fmt.Printf(" %9s", "undef")
				continue
			}
			fmt.Printf(" %9.4f", v)
		}
		fmt.Println()
	}

	if *outCSV != "" {
		if err := heatmap.WriteCSVFile(*outCSV, grid); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Undefined cells=%d\n", grid.NonFinite())
}
