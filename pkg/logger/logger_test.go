package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		l := New(&buf)

		Convey("When logging with a component and fields", func() {
			l.WithComponent("heatmap").WithFields(Fields{"cells": 2500}).Info("sweep done")

			var entry map[string]interface{}
			So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)

			Convey("Then the entry is JSON with the renamed keys", func() {
				So(entry["message"], ShouldEqual, "sweep done")
				So(entry["level"], ShouldEqual, "info")
				So(entry["component"], ShouldEqual, "heatmap")
				So(entry["cells"], ShouldEqual, float64(2500))
				So(entry, ShouldContainKey, "timestamp")
				So(entry["file"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When an error is attached", func() {
			l.WithError(errors.New("boom")).Error("failed")

			Convey("Then it is logged under the error key", func() {
				So(buf.String(), ShouldContainSubstring, `"error":"boom"`)
			})
		})

		Convey("When the level is raised to warn", func() {
			So(l.Configure(Options{Level: "WARN"}), ShouldBeNil)
			l.Info("hidden")

			Convey("Then info entries are dropped", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the level is unknown", func() {
			err := l.Configure(Options{Level: "chatty"})

			Convey("Then Configure fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When a file is configured", func() {
			path := filepath.Join(t.TempDir(), "logs", "api.log")
			So(l.Configure(Options{File: path}), ShouldBeNil)
			l.Info("to file")

			Convey("Then the buffer stays empty", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}
