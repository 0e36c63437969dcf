package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"pressure-health-platform/internal/config"
	"pressure-health-platform/internal/services"
	"pressure-health-platform/pkg/logging"
)

// runTimeout bounds one location's pipeline run; the weather fetch is the
// only externally blocking step and must never hang a cycle.
const runTimeout = 30 * time.Second

// Scheduler drives the fetch-and-analyze pipeline for every tracked
// location on a fixed interval. Locations run in parallel; each location's
// pipeline is independent and failures are reported, not retried.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *services.PressureService
	locations []config.Location
	interval  time.Duration
	logger    *logging.StructuredLogger
}

// New creates a new Scheduler.
func New(locations []config.Location, interval time.Duration, service *services.PressureService, logger *logging.StructuredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	ctx := context.Background()

	if len(s.locations) == 0 {
		s.logger.Warn(ctx, "[SCHEDULER] No tracked locations configured, nothing to schedule", logging.Fields{})
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.runCycle)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	s.logger.Info(ctx, "[SCHEDULER_START] Pressure monitoring scheduled", logging.Fields{
		"locations": len(s.locations),
		"interval":  s.interval.String(),
	})

	return nil
}

// runCycle analyzes every tracked location concurrently. A failing
// location is logged and skipped for this cycle.
func (s *Scheduler) runCycle() {
	ctx := context.Background()
	startTime := time.Now()

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			runCtx, cancel := context.WithTimeout(ctx, runTimeout)
			defer cancel()

			report, err := s.service.AnalyzeLocation(runCtx, loc.Latitude, loc.Longitude)
			if err != nil {
				s.logger.Error(runCtx, "[SCHEDULER_RUN_ERROR] Pipeline run failed", logging.Fields{
					"latitude":  loc.Latitude,
					"longitude": loc.Longitude,
				}, err)
				return
			}

			if len(report.Alerts) > 0 {
				s.logger.Warn(runCtx, "[SCHEDULER_ALERTS] Pressure alerts detected", logging.Fields{
					"latitude":        loc.Latitude,
					"longitude":       loc.Longitude,
					"city":            report.Observation.CityName,
					"alerts":          len(report.Alerts),
					"recommendations": len(report.Recommendations),
				})
			}
		}()
	}
	wg.Wait()

	s.logger.Info(ctx, "[SCHEDULER_CYCLE] Monitoring cycle completed", logging.Fields{
		"locations":   len(s.locations),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
