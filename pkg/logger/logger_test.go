package logger_test

import (
	"context"
	"testing"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	convey.Convey("Given the global logger", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("Then Get returns a usable logger", func() {
			log := logger.Get()
			convey.So(log, convey.ShouldNotBeNil)

			ctx := context.Background()
			convey.So(func() {
				log.Info(ctx, "scoring run started", logger.String("runID", "run-1"))
				log.Debug(ctx, "window loaded", logger.Int("events", 42))
				log.Warn(ctx, "history lookup slow", logger.Float64("seconds", 1.5))
				log.Error(ctx, "payload rejected", logger.Any("detail", map[string]int{"line": 7}))
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then Named loggers group their fields", func() {
			log := logger.Named("worker")
			convey.So(log, convey.ShouldNotBeNil)
			convey.So(func() {
				log.Info(context.Background(), "job done", logger.String("engineerID", "a@example.com"))
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then Sync is safe to call on shutdown", func() {
			convey.So(logger.Sync(), convey.ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	convey.Convey("Given level names from configuration", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("Known names parse", func() {
			for _, level := range []string{"debug", "info", "warn", "warning", "error", "ERROR", " info ", ""} {
				convey.So(logger.SetLevelString(level), convey.ShouldBeNil)
			}
		})

		convey.Convey("Unknown names are rejected", func() {
			convey.So(logger.SetLevelString("loud"), convey.ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	convey.Convey("Given the field constructors", t, func() {
		convey.So(logger.String("tier", "high").Key, convey.ShouldEqual, "tier")
		convey.So(logger.Int("rank", 1).Value, convey.ShouldEqual, 1)
		convey.So(logger.Float64("score", 7.2).Value, convey.ShouldEqual, 7.2)
		convey.So(logger.Any("window", nil).Key, convey.ShouldEqual, "window")
		convey.So(logger.Error(nil).Key, convey.ShouldEqual, "error")
	})
}
