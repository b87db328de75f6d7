package analysis

import (
	"errors"
	"testing"

	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSensitivity(t *testing.T) {
	Convey("Given the default parameters", t, func() {
		base := model.DefaultParameterSet()

		Convey("When sweeping vGUPPI_D1", func() {
			rows, err := Sensitivity(base, model.MetricD1, 21)
			So(err, ShouldBeNil)

			Convey("Then there is one row per field in schema order", func() {
				So(rows, ShouldHaveLength, 15)
				for i, name := range model.FieldNames() {
					So(rows[i].Field, ShouldEqual, name)
				}
			})

			Convey("Then fields outside D1's formula have zero spread", func() {
				byField := map[string]FieldSensitivity{}
				for _, r := range rows {
					byField[r.Field] = r
				}
				So(byField["m_D"].Spread, ShouldEqual, 0)
				So(byField["e"].Spread, ShouldEqual, 0)
				// D1 = dr_DU * m_U * w_U / p_D; dr_DU spans [0,1] so D1 spans [0, 0.25].
				So(byField["dr_DU"].Spread, ShouldAlmostEqual, 0.25, 1e-12)
				So(byField["dr_DU"].BaseValue, ShouldAlmostEqual, 0.0625, 1e-12)
				So(byField["dr_DU"].BaseInput, ShouldEqual, 0.25)
			})

			Convey("Then the ranking puts the largest spread first", func() {
				ranked := RankBySpread(rows)
				So(ranked[0].Spread, ShouldBeGreaterThanOrEqualTo, ranked[1].Spread)
				So(ranked[len(ranked)-1].Spread, ShouldEqual, 0)
			})
		})

		Convey("When sweeping vGUPPI_R, which is undefined at m_U = 0", func() {
			rows, err := Sensitivity(base, model.MetricR, 11)
			So(err, ShouldBeNil)

			Convey("Then the non-finite sample is counted, not fatal", func() {
				for _, r := range rows {
					if r.Field == "m_U" {
						So(r.NonFinite, ShouldEqual, 1)
						So(r.Spread, ShouldBeGreaterThan, 0)
					}
				}
			})
		})

		Convey("When the inputs are invalid", func() {
			_, errMetric := Sensitivity(base, "bogus", 10)
			_, errSteps := Sensitivity(base, model.MetricU, 1)

			Convey("Then the errors are typed", func() {
				So(errors.Is(errMetric, model.ErrUnknownMetric), ShouldBeTrue)
				So(errors.Is(errSteps, heatmap.ErrInvalidResolution), ShouldBeTrue)
			})
		})
	})
}

func TestRankBySpreadNonFiniteLast(t *testing.T) {
	Convey("Given a field whose sweep is entirely non-finite", t, func() {
		in := []FieldSensitivity{
			{Field: "a", Steps: 5, NonFinite: 5},
			{Field: "b", Steps: 5, Spread: 0.1},
			{Field: "c", Steps: 5, Spread: 0.3},
		}

		Convey("Then it ranks last and the input is left alone", func() {
			out := RankBySpread(in)
			So(out[0].Field, ShouldEqual, "c")
			So(out[1].Field, ShouldEqual, "b")
			So(out[2].Field, ShouldEqual, "a")
			So(in[0].Field, ShouldEqual, "a")
		})
	})
}

func TestPercentileSorted(t *testing.T) {
	Convey("Given sorted samples", t, func() {
		vals := []float64{0, 1, 2, 3, 4}

		Convey("Then percentiles interpolate between order statistics", func() {
			So(percentileSorted(vals, 0), ShouldEqual, 0)
			So(percentileSorted(vals, 1), ShouldEqual, 4)
			So(percentileSorted(vals, 0.5), ShouldEqual, 2)
			So(percentileSorted(vals, 0.05), ShouldAlmostEqual, 0.2, 1e-12)
			So(percentileSorted(nil, 0.5), ShouldEqual, 0)
		})
	})
}
