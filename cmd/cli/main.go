package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vguppi/internal/analysis"
	"vguppi/internal/config"
	"vguppi/internal/heatmap"
	"vguppi/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "eval":
		cmdEval(os.Args[2:])
	case "heatmap":
		cmdHeatmap(os.Args[2:])
	case "schema":
		cmdSchema(os.Args[2:])
	case "sensitivity":
		cmdSensitivity(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli eval [--config examples/scenario.yaml] [--set p_R=25,m_U=0.3]")
	fmt.Println("  cli heatmap [--config examples/scenario.yaml] --x dr_RD --y m_D --metric vGUPPI_U --resolution 50 --out results/heatmap.csv")
	fmt.Println("  cli schema")
	fmt.Println("  cli sensitivity [--config examples/scenario.yaml] --metric vGUPPI_D3 --steps 21")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config the schema defaults are used")
	fmt.Println("  - undefined results (zero denominators) print as NaN/+Inf/-Inf")
}

func cmdEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (optional)")
	set := fs.String("set", "", "Comma-separated overrides, e.g. p_R=25,m_U=0.3")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	overrides, err := parseOverrides(*set)
	if err != nil {
		panic(err)
	}
	cfg.Params = config.MergeParams(cfg.Params, overrides)

	params, err := cfg.ParameterSet()
	if err != nil {
		panic(err)
	}
	ev := model.Evaluate(params)

	fmt.Println("inputs:")
	for _, name := range model.FieldNames() {
		v, _ := params.Get(name)
		fmt.Printf("  %-6s %10.4f\n", name, v)
	}
	fmt.Println("intermediates:")
	fmt.Printf("  %-6s %10s\n", "e_p", fmtNum(ev.Intermediates.EP))
	fmt.Printf("  %-6s %10s\n", "e_sd", fmtNum(ev.Intermediates.ESD))
	fmt.Printf("  %-6s %10s\n", "e_sr", fmtNum(ev.Intermediates.ESR))
	fmt.Println("vGUPPIs:")
	for _, m := range model.Metrics() {
		fmt.Printf("  %-10s %10s  %s\n", m, fmtNum(ev.VGUPPIs.Value(m)), m.Description())
	}
}

func cmdHeatmap(args []string) {
	fs := flag.NewFlagSet("heatmap", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (optional)")
	x := fs.String("x", "", "X-axis field (default from scenario)")
	y := fs.String("y", "", "Y-axis field (default from scenario)")
	metric := fs.String("metric", "", "Metric to plot (default from scenario)")
	resolution := fs.Int("resolution", 0, "Points per axis (default from scenario)")
	outPath := fs.String("out", "results/heatmap.csv", "Output CSV path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *x != "" {
		cfg.Heatmap.X = *x
	}
	if *y != "" {
		cfg.Heatmap.Y = *y
	}
	if *metric != "" {
		cfg.Heatmap.Metric = *metric
	}
	if *resolution != 0 {
		cfg.Heatmap.Resolution = *resolution
	}

	req, err := cfg.HeatmapRequest()
	if err != nil {
		panic(err)
	}
	grid, err := heatmap.New().Run(req)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := heatmap.WriteCSVFile(*outPath, grid); err != nil {
		panic(err)
	}

	n := grid.Resolution()
	fmt.Printf("Wrote %d cells (%s over %s x %s) to %s\n", n*n, grid.Metric, grid.XField, grid.YField, *outPath)
	if lo, hi, ok := grid.Range(); ok {
		fmt.Printf("Range=[%.4f, %.4f] Undefined cells=%d\n", lo, hi, grid.NonFinite())
	} else {
		fmt.Printf("All %d cells undefined\n", grid.NonFinite())
	}
}

func cmdSchema(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Printf("%-6s %-18s %-8s %-8s %-6s %-8s %s\n", "field", "group", "min", "max", "step", "default", "label")
	for _, m := range model.Schema() {
		fmt.Printf("%-6s %-18s %-8.2f %-8.2f %-6.2f %-8.2f %s\n", m.Name, m.Group, m.Min, m.Max, m.Step, m.Default, m.Label)
	}
	fmt.Println("")
	fmt.Println("metrics:")
	for _, m := range model.Metrics() {
		fmt.Printf("  %-10s %s\n", m, m.Description())
	}
}

func cmdSensitivity(args []string) {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (optional)")
	metricName := fs.String("metric", "", "Metric to analyse (default from scenario)")
	steps := fs.Int("steps", 21, "Sweep points per field")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *metricName != "" {
		cfg.Heatmap.Metric = *metricName
	}
	metric, err := model.ParseMetric(cfg.Heatmap.Metric)
	if err != nil {
		panic(err)
	}
	base, err := cfg.ParameterSet()
	if err != nil {
		panic(err)
	}

	rows, err := analysis.Sensitivity(base, metric, *steps)
	if err != nil {
		panic(err)
	}
	ranked := analysis.RankBySpread(rows)

	fmt.Printf("%-4s %-6s %-10s %-10s %-10s %-10s %-8s\n", "rank", "field", "base", "p05", "p95", "spread", "undef")
	for i, r := range ranked {
		fmt.Printf(
			"%-4d %-6s %-10s %-10s %-10s %-10s %-8d\n",
			i+1,
			r.Field,
			fmtNum(r.BaseValue),
			fmtNum(r.P05),
			fmtNum(r.P95),
			fmtNum(r.Spread),
			r.NonFinite,
		)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func parseOverrides(s string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("bad override %q: want name=value", part)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("bad override %q: %w", part, err)
		}
		out[strings.TrimSpace(k)] = f
	}
	return out, nil
}

// fmtNum prints NaN and ±Inf as-is so undefined results stay visible.
func fmtNum(x float64) string {
	return fmt.Sprintf("%.4f", x)
}
