package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		var buf bytes.Buffer
		So(Init(&buf), ShouldBeNil)

		Convey("Then Get should return it", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("fetch"), ShouldNotBeNil)
		})

		Convey("When logging below the default warn level", func() {
			Get().Info(context.Background(), "hidden")

			Convey("Then nothing should be written", func() {
				So(buf.String(), ShouldBeEmpty)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(context.Background(), "visible", String("k", "v"))

			Convey("Then the record should carry message, fields and source", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "msg=visible")
				So(out, ShouldContainSubstring, "k=v")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given a standalone logger at info level", t, func() {
		var buf bytes.Buffer
		var lv slog.LevelVar
		lv.Set(slog.LevelInfo)
		l := New(&buf, &lv).Named("scores")

		Convey("When logging an error field", func() {
			l.Error(context.Background(), "fetch failed", Error(errors.New("boom")), Int("attempt", 1))

			Convey("Then the output should be grouped under the name", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "level=ERROR")
				So(out, ShouldContainSubstring, "scores.error=boom")
				So(out, ShouldContainSubstring, "scores.attempt=1")
			})
		})

		Convey("When logging at debug", func() {
			l.Debug(context.Background(), "skipped")

			Convey("Then it should be filtered", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a nop logger", t, func() {
		l := Nop()
		So(func() { l.Error(context.Background(), "ignored") }, ShouldNotPanic)
	})
}

func TestParseLevel(t *testing.T) {
	Convey("Given level strings", t, func() {
		cases := map[string]slog.Level{
			"debug":   slog.LevelDebug,
			"INFO":    slog.LevelInfo,
			"":        slog.LevelWarn,
			"warning": slog.LevelWarn,
			" error ": slog.LevelError,
		}
		for in, want := range cases {
			got, err := ParseLevel(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("When the level is unknown", func() {
			_, err := ParseLevel("loud")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log level")
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
