package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	Convey("Given a scenario with a params file and overrides", t, func() {
		dir := t.TempDir()
		writeFile(t, dir, "base.yaml", "params:\n  p_D: 30\n  m_U: 0.4\n")
		path := writeFile(t, dir, "scenario.yaml", `
params_file: base.yaml
params:
  m_U: 0
  dr_RD: 0.6
heatmap:
  x: p_D
  metric: vGUPPI_D3
`)

		Convey("When loading it", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)

			Convey("Then overrides win over the params file, zero included", func() {
				So(cfg.Params, ShouldResemble, map[string]float64{"p_D": 30, "m_U": 0, "dr_RD": 0.6})
			})

			Convey("Then the parameter set falls back to defaults for the rest", func() {
				p, err := cfg.ParameterSet()
				So(err, ShouldBeNil)
				So(p.PD, ShouldEqual, 30)
				So(p.MU, ShouldEqual, 0)
				So(p.DrRD, ShouldEqual, 0.6)
				So(p.E, ShouldEqual, 1)
			})

			Convey("Then unset heatmap fields take the dashboard defaults", func() {
				req, err := cfg.HeatmapRequest()
				So(err, ShouldBeNil)
				So(req.XField, ShouldEqual, "p_D")
				So(req.YField, ShouldEqual, "m_D")
				So(req.Metric, ShouldEqual, model.MetricD3)
				So(req.Resolution, ShouldEqual, 50)
			})
		})
	})

	Convey("Given a scenario with an unknown parameter", t, func() {
		path := writeFile(t, t.TempDir(), "bad.yaml", "params:\n  p_X: 3\n")

		Convey("Then Load rejects it and LoadUnchecked does not", func() {
			_, err := Load(path)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			So(errors.Is(err, model.ErrSchemaMismatch), ShouldBeTrue)

			cfg, err := LoadUnchecked(path)
			So(err, ShouldBeNil)
			So(cfg.Params["p_X"], ShouldEqual, 3)
		})
	})

	Convey("Given a scenario sweeping one field against itself", t, func() {
		path := writeFile(t, t.TempDir(), "same.yaml", "heatmap:\n  x: m_D\n  y: m_D\n")

		Convey("Then validation reports an invalid axis selection", func() {
			_, err := Load(path)
			So(errors.Is(err, heatmap.ErrInvalidAxisSelection), ShouldBeTrue)
		})
	})

	Convey("Given a scenario with a resolution below 2", t, func() {
		path := writeFile(t, t.TempDir(), "tiny.yaml", "heatmap:\n  resolution: 1\n")

		Convey("Then validation reports an invalid resolution", func() {
			_, err := Load(path)
			So(errors.Is(err, heatmap.ErrInvalidResolution), ShouldBeTrue)
		})
	})

	Convey("Given a scenario with a resolution above the dashboard maximum", t, func() {
		path := writeFile(t, t.TempDir(), "big.yaml", "heatmap:\n  resolution: 500\n")

		Convey("Then it loads and the engine decides the cap", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Heatmap.Resolution, ShouldEqual, 500)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		Convey("Then it is a load error", func() {
			So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
		})
	})

	Convey("Given the bundled example scenario", t, func() {
		cfg, err := Load(filepath.Join("..", "..", "examples", "scenario.yaml"))
		So(err, ShouldBeNil)

		Convey("Then the params file and overrides resolve", func() {
			p, err := cfg.ParameterSet()
			So(err, ShouldBeNil)
			So(p.DrRD, ShouldEqual, 0.6)
			So(p.MU, ShouldEqual, 0.35)
			So(p.E, ShouldEqual, 1.5)
			So(p.PD, ShouldEqual, 20)
			So(cfg.Heatmap.Resolution, ShouldEqual, 50)
		})
	})

	Convey("Given the default scenario", t, func() {
		cfg := Default()

		Convey("Then it validates and evaluates the schema defaults", func() {
			So(cfg.Validate(), ShouldBeNil)
			p, err := cfg.ParameterSet()
			So(err, ShouldBeNil)
			So(p, ShouldResemble, model.DefaultParameterSet())
		})
	})
}

func TestLoadServer(t *testing.T) {
	Convey("Given no server configuration", t, func() {
		t.Setenv("VGUPPI_CONFIG", "")

		Convey("Then the defaults apply", func() {
			cfg, err := LoadServer()
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.MaxResolution, ShouldEqual, heatmap.DefaultMaxResolution)
			So(cfg.IsProduction(), ShouldBeFalse)
			So(cfg.AllowedOrigins(), ShouldResemble, []string{"*"})
		})
	})

	Convey("Given a config file and env overrides", t, func() {
		path := writeFile(t, t.TempDir(), "server.yaml", "addr: \":9090\"\nlog_level: debug\nmax_resolution: 40\n")
		t.Setenv("VGUPPI_CONFIG", path)
		t.Setenv("VGUPPI_LOG_LEVEL", "warn")
		t.Setenv("VGUPPI_CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("VGUPPI_ENV", "production")

		Convey("Then env wins over the file and the file over defaults", func() {
			cfg, err := LoadServer()
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LogLevel, ShouldEqual, "warn")
			So(cfg.MaxResolution, ShouldEqual, 40)
			So(cfg.IsProduction(), ShouldBeTrue)
			So(cfg.AllowedOrigins(), ShouldResemble, []string{"http://a.test", "http://b.test"})
		})
	})

	Convey("Given an invalid max resolution", t, func() {
		t.Setenv("VGUPPI_CONFIG", "")
		t.Setenv("VGUPPI_MAX_RESOLUTION", "1")

		Convey("Then loading fails validation", func() {
			_, err := LoadServer()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
