package heatmap_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteCSV(t *testing.T) {
	Convey("Given a small grid with a non-finite cell", t, func() {
		g := &heatmap.Grid{
			XField: "dr_RD",
			YField: "m_U",
			Metric: model.MetricR,
			X:      []float64{0, 1},
			Y:      []float64{0, 1},
			Z:      [][]float64{{math.NaN(), math.Inf(1)}, {0.25, 3e-8}},
		}

		Convey("When writing it as CSV", func() {
			var buf bytes.Buffer
			So(heatmap.WriteCSV(&buf, g), ShouldBeNil)

			rows, err := csv.NewReader(&buf).ReadAll()
			So(err, ShouldBeNil)

			Convey("Then there is a header and one row per cell", func() {
				So(rows, ShouldHaveLength, 5)
				So(rows[0], ShouldResemble, []string{"row", "col", "dr_RD", "m_U", "vGUPPI_R"})
			})

			Convey("Then non-finite cells are spelled out", func() {
				So(rows[1][4], ShouldEqual, "NaN")
				So(rows[2][4], ShouldEqual, "+Inf")
				So(rows[3], ShouldResemble, []string{"1", "0", "0", "1", "0.25"})
			})

			Convey("Then small values keep full precision", func() {
				v, err := strconv.ParseFloat(rows[4][4], 64)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 3e-8)
			})
		})
	})
}
