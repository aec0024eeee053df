package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	service "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/app"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func testWindow(engineerID string, events ...model.Event) model.EngineerWindow {
	return model.EngineerWindow{
		EngineerID:  engineerID,
		Timezone:    "UTC",
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Events:      events,
	}
}

func incidentAt(id, engineerID string, ts time.Time) model.Event {
	return model.Event{
		ID:         id,
		EngineerID: engineerID,
		Kind:       model.KindIncident,
		Timestamp:  ts,
		Incident:   &model.IncidentDetails{Severity: "sev1", Escalated: true},
	}
}

// waitFor polls until check returns true or the deadline passes.
func waitFor(check func() bool) bool {
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-deadline:
			return false
		case <-tick.C:
			if check() {
				return true
			}
		}
	}
}

func TestServiceLifecycle(t *testing.T) {
	convey.Convey("Given a service built from defaults", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(64),
			service.WithDedupeSize(128),
		)
		ctx := context.Background()

		convey.Convey("When started twice", func() {
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)

			convey.Convey("Then stats report a running service", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldBeTrue)
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When analyzing before start", func() {
			_, _, err := svc.Analyze(ctx, []model.EngineerWindow{testWindow("a@example.com")})
			convey.So(errors.Is(err, service.ErrNotStarted), convey.ShouldBeTrue)
		})
	})
}

func TestServiceAnalyze(t *testing.T) {
	convey.Convey("Given a running service with history", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(64),
			service.WithHistoryPath(filepath.Join(t.TempDir(), "history.db")),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		quiet := testWindow("calm@example.com")
		loaded := testWindow("busy@example.com",
			incidentAt("inc-1", "busy@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
			incidentAt("inc-2", "busy@example.com", time.Date(2026, 7, 11, 3, 0, 0, 0, time.UTC)),
			incidentAt("inc-3", "busy@example.com", time.Date(2026, 7, 12, 2, 30, 0, 0, time.UTC)),
		)

		convey.Convey("When a run is enqueued", func() {
			runID, enqueued, err := svc.Analyze(ctx, []model.EngineerWindow{quiet, loaded})
			convey.So(err, convey.ShouldBeNil)
			convey.So(runID, convey.ShouldNotBeEmpty)
			convey.So(enqueued, convey.ShouldEqual, 2)

			convey.So(waitFor(func() bool {
				entries, err := svc.TopN(ctx, 10)
				return err == nil && len(entries) == 2
			}), convey.ShouldBeTrue)

			convey.Convey("Then the loaded engineer ranks above the quiet one", func() {
				entries, err := svc.TopN(ctx, 10)
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries[0].EngineerID, convey.ShouldEqual, "busy@example.com")
				convey.So(entries[0].Score, convey.ShouldBeGreaterThan, entries[1].Score)
			})

			convey.Convey("Then individual results are retrievable", func() {
				result, err := svc.Result(ctx, "busy@example.com")
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Score, convey.ShouldBeGreaterThan, 0)
				convey.So(result.Tier, convey.ShouldNotBeEmpty)

				entry, err := svc.Rank(ctx, "busy@example.com")
				convey.So(err, convey.ShouldBeNil)
				convey.So(entry.Rank, convey.ShouldEqual, 1)
			})

			convey.Convey("Then history recorded the period", func() {
				series, err := svc.Series(ctx, "busy@example.com", 10)
				convey.So(err, convey.ShouldBeNil)
				convey.So(series, convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When a window repeats an event id within a run", func() {
			dup := testWindow("dup@example.com",
				incidentAt("inc-9", "dup@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-9", "dup@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
			)
			_, _, err := svc.Analyze(ctx, []model.EngineerWindow{dup})
			convey.So(err, convey.ShouldBeNil)

			convey.So(waitFor(func() bool {
				_, err := svc.Result(ctx, "dup@example.com")
				return err == nil
			}), convey.ShouldBeTrue)

			convey.Convey("Then the deduper absorbed the duplicate", func() {
				convey.So(svc.Size(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a caller keeps its event slice after a run", func() {
			events := []model.Event{
				incidentAt("inc-30", "keep@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-30", "keep@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-31", "keep@example.com", time.Date(2026, 7, 11, 3, 0, 0, 0, time.UTC)),
			}
			win := testWindow("keep@example.com", events...)
			_, _, err := svc.Analyze(ctx, []model.EngineerWindow{win})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the caller's slice is untouched by deduplication", func() {
				convey.So(events, convey.ShouldHaveLength, 3)
				convey.So(events[0].ID, convey.ShouldEqual, "inc-30")
				convey.So(events[1].ID, convey.ShouldEqual, "inc-30")
				convey.So(events[2].ID, convey.ShouldEqual, "inc-31")
			})
		})

		convey.Convey("When an event key is unrecorded after a failed window", func() {
			convey.So(svc.SeenAndRecord(ctx, "run-x/inc-40"), convey.ShouldBeFalse)
			convey.So(svc.SeenAndRecord(ctx, "run-x/inc-40"), convey.ShouldBeTrue)
			svc.Unrecord(ctx, "run-x/inc-40")

			convey.Convey("Then the key can be recorded again", func() {
				convey.So(svc.SeenAndRecord(ctx, "run-x/inc-40"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a window is invalid", func() {
			bad := testWindow("")
			_, _, err := svc.Analyze(ctx, []model.EngineerWindow{bad})
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestServiceTrend(t *testing.T) {
	convey.Convey("Given a service with a prior recorded period", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithWorkerCount(1),
			service.WithHistoryPath(filepath.Join(t.TempDir(), "history.db")),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		june := model.EngineerWindow{
			EngineerID:  "eng@example.com",
			Timezone:    "UTC",
			PeriodStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		}
		_, _, err := svc.Analyze(ctx, []model.EngineerWindow{june})
		convey.So(err, convey.ShouldBeNil)
		convey.So(waitFor(func() bool {
			series, err := svc.Series(ctx, "eng@example.com", 10)
			return err == nil && len(series) == 1
		}), convey.ShouldBeTrue)

		convey.Convey("When a heavier later period is analyzed", func() {
			july := testWindow("eng@example.com",
				incidentAt("inc-20", "eng@example.com", time.Date(2026, 7, 10, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-21", "eng@example.com", time.Date(2026, 7, 11, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-22", "eng@example.com", time.Date(2026, 7, 12, 2, 0, 0, 0, time.UTC)),
				incidentAt("inc-23", "eng@example.com", time.Date(2026, 7, 13, 2, 0, 0, 0, time.UTC)),
			)
			_, _, err := svc.Analyze(ctx, []model.EngineerWindow{july})
			convey.So(err, convey.ShouldBeNil)
			convey.So(waitFor(func() bool {
				series, err := svc.Series(ctx, "eng@example.com", 10)
				return err == nil && len(series) == 2
			}), convey.ShouldBeTrue)

			convey.Convey("Then the stored result carries a degrading trend", func() {
				result, err := svc.Result(ctx, "eng@example.com")
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Trend, convey.ShouldEqual, model.TrendDegrading)
			})
		})
	})
}

func TestServiceConfigMapping(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New()

		convey.Convey("Then service options derive cleanly", func() {
			opts, err := service.OptionsFromConfig(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(opts, convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then engine options derive cleanly", func() {
			opts, err := service.EngineOptionsFromConfig(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(opts), convey.ShouldEqual, 8)
		})

		convey.Convey("When the business days are malformed", func() {
			cfg.BusinessDays = []string{"caturday"}
			_, err := service.OptionsFromConfig(cfg)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestServiceApplyConfig(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When a reloaded config is applied", func() {
			cfg := config.New()
			cfg.TrendTolerance = 0.5
			convey.So(svc.ApplyConfig(ctx, cfg), convey.ShouldBeNil)

			convey.Convey("Then scoring keeps working", func() {
				_, _, err := svc.Analyze(ctx, []model.EngineerWindow{testWindow("a@example.com")})
				convey.So(err, convey.ShouldBeNil)
				convey.So(waitFor(func() bool {
					_, err := svc.Result(ctx, "a@example.com")
					return err == nil
				}), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the reloaded config cannot build an engine", func() {
			cfg := config.New()
			cfg.SourceWeights = map[string]float64{"incident": -1}
			convey.So(svc.ApplyConfig(ctx, cfg), convey.ShouldNotBeNil)
		})
	})
}
