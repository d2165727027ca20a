// Package scheduler runs one independent timer loop per periodic
// notification.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pushel/pkg/activity"
	"pushel/pkg/config"
	"pushel/pkg/metrics"
	"pushel/pkg/notification"
)

// Gate decides whether a scheduled dispatch should proceed now.
// Implemented by activity.Tracker.
type Gate interface {
	IsActive(threshold time.Duration) bool
}

// Scheduler owns the scheduling loops. Loops share no mutable state with
// each other; the gate is the only cross-loop resource.
type Scheduler struct {
	gate     Gate
	notifier notification.Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler dispatching through notifier.
func New(gate Gate, notifier notification.Notifier, m *metrics.Metrics, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		gate:     gate,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With().Str("component", "scheduler").Logger(),
		stopChan: make(chan struct{}),
	}
}

// Start begins an independent loop for spec. The first dispatch happens
// one full interval after start. A zero or negative interval is a
// configuration error and is rejected here rather than at the first tick.
func (s *Scheduler) Start(spec config.Spec) error {
	if spec.Interval <= 0 {
		return fmt.Errorf("notification %q: interval must be positive, got %v", spec.Title, spec.Interval)
	}

	s.wg.Add(1)
	go s.run(spec)

	s.logger.Info().
		Str("title", spec.Title).
		Dur("interval", spec.Interval).
		Msg("notification scheduled")
	return nil
}

// Stop signals every loop to exit at its next wait boundary and waits for
// them to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

// run is one scheduling loop. Drift is not compensated: the next wait
// starts when the previous dispatch (or skip) completes.
func (s *Scheduler) run(spec config.Spec) {
	defer s.wg.Done()

	log := s.logger.With().Str("title", spec.Title).Logger()

	timer := time.NewTimer(spec.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
		case <-s.stopChan:
			return
		}
		s.tick(spec, log)
		timer.Reset(spec.Interval)
	}
}

// tick consults the gate and dispatches once. A failed dispatch is logged
// and the loop keeps its cadence.
func (s *Scheduler) tick(spec config.Spec, log zerolog.Logger) {
	if !s.gate.IsActive(activity.SuppressThreshold) {
		s.metrics.TicksSkippedTotal.Inc()
		log.Debug().Msg("user inactive, tick skipped")
		return
	}

	if err := s.notifier.Send(spec.Notification); err != nil {
		s.metrics.DispatchesTotal.WithLabelValues(metrics.SourceScheduled, metrics.StatusFailed).Inc()
		log.Error().Err(err).Msg("failed to dispatch notification")
		return
	}

	s.metrics.DispatchesTotal.WithLabelValues(metrics.SourceScheduled, metrics.StatusSent).Inc()
	log.Info().Str("message", spec.Message).Msg("notification dispatched")
}
