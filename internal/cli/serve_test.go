package cli

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/app"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
)

func TestServeComponents(t *testing.T) {
	convey.Convey("Given the serve command wiring", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("BURNOUT_ADDR", ":8080")
			_ = os.Setenv("BURNOUT_QUEUE_SIZE", "1000")
			_ = os.Setenv("BURNOUT_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("BURNOUT_ADDR")
				_ = os.Unsetenv("BURNOUT_QUEUE_SIZE")
				_ = os.Unsetenv("BURNOUT_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When mapping configuration onto service options", func() {
			cfg := config.New()
			opts, err := service.OptionsFromConfig(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(opts, convey.ShouldNotBeEmpty)

			convey.Convey("Then the service is creatable from them", func() {
				convey.So(service.New(opts...), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running the metrics updaters briefly", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, service.New()) }, convey.ShouldNotPanic)
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(service.New()) }, convey.ShouldNotPanic)
		})

		convey.Convey("When inspecting the command tree", func() {
			names := make(map[string]bool)
			for _, c := range rootCmd.Commands() {
				names[c.Name()] = true
			}
			convey.So(names["serve"], convey.ShouldBeTrue)
			convey.So(names["analyze"], convey.ShouldBeTrue)
			convey.So(names["mock"], convey.ShouldBeTrue)
		})
	})
}
