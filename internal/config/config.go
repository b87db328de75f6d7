package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	// Optional: load a base parameter set from a separate YAML (e.g. examples/params/*.yaml).
	// If both ParamsFile and Params are provided, Params overrides ParamsFile.
	ParamsFile string             `yaml:"params_file"`
	Params     map[string]float64 `yaml:"params"`
	Heatmap    HeatmapConfig      `yaml:"heatmap"`
}

// HeatmapConfig selects a default sweep for the scenario.
type HeatmapConfig struct {
	X          string `yaml:"x"`
	Y          string `yaml:"y"`
	Metric     string `yaml:"metric"`
	Resolution int    `yaml:"resolution"`
}

// Default returns a scenario evaluating the schema defaults with the
// dashboard's initial sweep.
func Default() *Config {
	return &Config{
		Params:  map[string]float64{},
		Heatmap: defaultHeatmap(),
	}
}

func defaultHeatmap() HeatmapConfig {
	return HeatmapConfig{X: "dr_RD", Y: "m_D", Metric: string(model.MetricU), Resolution: 50}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	// If params_file is set, load it and merge in any explicit overrides from c.Params.
	if c.ParamsFile != "" {
		paramsPath := c.ParamsFile
		if !filepath.IsAbs(paramsPath) {
			// Prefer paths relative to the scenario file, then fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), paramsPath)
			if _, err := os.Stat(cand); err == nil {
				paramsPath = cand
			}
		}
		loaded, err := LoadParamsFile(paramsPath)
		if err != nil {
			return nil, err
		}
		c.Params = MergeParams(loaded, c.Params)
	}
	if c.Params == nil {
		c.Params = map[string]float64{}
	}
	c.Heatmap = mergeHeatmap(defaultHeatmap(), c.Heatmap)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if _, err := c.ParameterSet(); err != nil {
		return fmt.Errorf("%w: params: %w", ErrInvalidConfig, err)
	}
	h := c.Heatmap
	if !model.HasField(h.X) || !model.HasField(h.Y) || h.X == h.Y {
		return fmt.Errorf("%w: heatmap axes %q/%q: %w", ErrInvalidConfig, h.X, h.Y, heatmap.ErrInvalidAxisSelection)
	}
	if _, err := model.ParseMetric(h.Metric); err != nil {
		return fmt.Errorf("%w: heatmap: %w", ErrInvalidConfig, err)
	}
	// The upper bound belongs to whoever builds the engine.
	if h.Resolution < 2 {
		return fmt.Errorf("%w: heatmap: %w: %d", ErrInvalidConfig, heatmap.ErrInvalidResolution, h.Resolution)
	}
	return nil
}

// ParameterSet applies the scenario overrides to the schema defaults.
func (c *Config) ParameterSet() (model.ParameterSet, error) {
	if c == nil {
		return model.ParameterSet{}, errors.New("config is nil")
	}
	p, err := model.DefaultParameterSet().WithOverrides(c.Params)
	if err != nil {
		return model.ParameterSet{}, err
	}
	if !p.IsFinite() {
		return model.ParameterSet{}, fmt.Errorf("%w: non-finite parameter", model.ErrSchemaMismatch)
	}
	return p, nil
}

// HeatmapRequest builds the engine request described by the scenario.
func (c *Config) HeatmapRequest() (heatmap.Request, error) {
	p, err := c.ParameterSet()
	if err != nil {
		return heatmap.Request{}, err
	}
	m, err := model.ParseMetric(c.Heatmap.Metric)
	if err != nil {
		return heatmap.Request{}, err
	}
	return heatmap.Request{
		Base:       p,
		XField:     c.Heatmap.X,
		YField:     c.Heatmap.Y,
		Metric:     m,
		Resolution: c.Heatmap.Resolution,
	}, nil
}

type paramsFileWrapper struct {
	Params map[string]float64 `yaml:"params"`
}

// LoadParamsFile reads a YAML file with a top-level `params:` map.
func LoadParamsFile(path string) (map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	var w paramsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	return w.Params, nil
}

// MergeParams overlays every entry of override onto base. Unlike the
// heatmap merge, zero is a legitimate override here (e.g. m_U: 0).
func MergeParams(base, override map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func mergeHeatmap(base, override HeatmapConfig) HeatmapConfig {
	out := base
	if override.X != "" {
		out.X = override.X
	}
	if override.Y != "" {
		out.Y = override.Y
	}
	if override.Metric != "" {
		out.Metric = override.Metric
	}
	if override.Resolution != 0 {
		out.Resolution = override.Resolution
	}
	return out
}
