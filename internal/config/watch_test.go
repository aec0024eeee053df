package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestWatch(t *testing.T) {
	convey.Convey("Given a watched config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		convey.So(os.WriteFile(path, []byte("lookback_days: 30\n"), 0o600), convey.ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reloaded := make(chan *config.Config, 4)
		done := make(chan error, 1)
		go func() {
			done <- config.Watch(ctx, path, func(cfg *config.Config) {
				reloaded <- cfg
			})
		}()

		// Give the watcher a moment to register before writing.
		time.Sleep(100 * time.Millisecond)

		convey.Convey("When the file is rewritten with a valid config", func() {
			convey.So(os.WriteFile(path, []byte("lookback_days: 14\n"), 0o600), convey.ShouldBeNil)

			select {
			case cfg := <-reloaded:
				convey.So(cfg.LookbackDays, convey.ShouldEqual, 14)
			case <-time.After(5 * time.Second):
				convey.So("timed out waiting for reload", convey.ShouldBeEmpty)
			}
		})

		convey.Convey("When the file is rewritten with an invalid config", func() {
			convey.So(os.WriteFile(path, []byte("lookback_days: -1\n"), 0o600), convey.ShouldBeNil)

			select {
			case <-reloaded:
				convey.So("invalid config must not trigger onChange", convey.ShouldBeEmpty)
			case <-time.After(500 * time.Millisecond):
				// No reload observed, previous config stays active.
			}
		})

		cancel()
		select {
		case err := <-done:
			convey.So(err, convey.ShouldBeNil)
		case <-time.After(5 * time.Second):
			convey.So("watcher did not stop", convey.ShouldBeEmpty)
		}
	})
}
