package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vguppi/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on an isolated registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithNamespace("test"))

		Convey("When a heatmap sweep is observed", func() {
			m.ObserveHeatmap(model.MetricR, 100, 10, 3*time.Millisecond)
			m.ObserveHeatmap(model.MetricR, 4, 0, time.Millisecond)

			Convey("Then the sweep and cell counters accumulate", func() {
				So(testutil.ToFloat64(m.heatmapSweeps.WithLabelValues("vGUPPI_R")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.heatmapCells), ShouldEqual, 104)
				So(testutil.ToFloat64(m.heatmapNonFinite), ShouldEqual, 10)
			})
		})

		Convey("When a degenerate evaluation is observed", func() {
			p, _ := model.DefaultParameterSet().With("p_D", 0)
			m.ObserveEvaluation("api", model.ComputeVGUPPIs(p))
			m.ObserveEvaluation("api", model.ComputeVGUPPIs(model.DefaultParameterSet()))

			Convey("Then only the non-finite metrics are counted", func() {
				So(testutil.ToFloat64(m.evaluations.WithLabelValues("api")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.nonFiniteResults.WithLabelValues("vGUPPI_D1")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.nonFiniteResults.WithLabelValues("vGUPPI_D3")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.nonFiniteResults.WithLabelValues("vGUPPI_U")), ShouldEqual, 0)
			})
		})

		Convey("When HTTP traffic is observed", func() {
			m.ObserveHTTP("POST", "/api/v1/heatmap", 200, 5*time.Millisecond)

			Convey("Then the handler exposes it", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
				body := rec.Body.String()
				So(rec.Code, ShouldEqual, 200)
				So(body, ShouldContainSubstring, `test_http_requests_total{method="POST",route="/api/v1/heatmap",status="200"} 1`)
				So(strings.Contains(body, "test_http_request_duration_seconds_bucket"), ShouldBeTrue)
			})
		})
	})
}
