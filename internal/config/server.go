package config

import (
	"fmt"
	"os"
	"strings"

	"vguppi/internal/heatmap"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "VGUPPI_"

// Server holds settings for the HTTP API binary.
type Server struct {
	Addr          string `koanf:"addr"`
	Env           string `koanf:"env"` // "production" switches gin to release mode
	LogLevel      string `koanf:"log_level"`
	LogFile       string `koanf:"log_file"` // empty: stdout
	StaticDir     string `koanf:"static_dir"`
	CORSOrigins   string `koanf:"cors_origins"` // comma-separated; "*" allows all
	MaxResolution int    `koanf:"max_resolution"`
}

// NewServer returns the built-in defaults.
func NewServer() *Server {
	return &Server{
		Addr:          ":8080",
		Env:           "development",
		LogLevel:      "info",
		StaticDir:     "./web/dist",
		CORSOrigins:   "*",
		MaxResolution: heatmap.DefaultMaxResolution,
	}
}

// LoadServer builds a Server by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (NewServer)
//  2. file (YAML) if VGUPPI_CONFIG is set
//  3. env (prefix VGUPPI_)
func LoadServer() (*Server, error) {
	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// VGUPPI_LOG_LEVEL -> log_level; underscores are kept to match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *NewServer()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Server) Validate() error {
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if s.MaxResolution < 2 {
		return fmt.Errorf("%w: max_resolution must be >= 2", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether Env is "production".
func (s *Server) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

// AllowedOrigins splits CORSOrigins.
func (s *Server) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
