package activity

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// pollInterval is how often the sensor samples the idle detector.
const pollInterval = 10 * time.Second

// StatusReporter receives active/inactive transitions. Transport and
// retry are the reporter's problem; the sensor only logs failures.
type StatusReporter interface {
	Report(status Status, at time.Time) error
}

// Sensor polls an IdleDetector and feeds the tracker: whenever the user
// has been idle for less than ActiveThreshold, activity is recorded. On
// every active/inactive transition the optional reporter is notified.
type Sensor struct {
	detector IdleDetector
	tracker  *Tracker
	reporter StatusReporter // may be nil
	logger   zerolog.Logger
	interval time.Duration

	mu     sync.Mutex
	status Status

	stopChan chan struct{}
	wg       sync.WaitGroup
	now      func() time.Time
}

// NewSensor creates a sensor. reporter may be nil when no external status
// sink is configured. The initial status is inactive so the first active
// observation produces a transition.
func NewSensor(detector IdleDetector, tracker *Tracker, reporter StatusReporter, logger zerolog.Logger) *Sensor {
	return &Sensor{
		detector: detector,
		tracker:  tracker,
		reporter: reporter,
		logger:   logger.With().Str("component", "sensor").Logger(),
		interval: pollInterval,
		status:   StatusInactive,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins polling in its own goroutine. It polls once immediately,
// then every poll interval until Stop is called.
func (s *Sensor) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Debug().Dur("interval", s.interval).Msg("activity sensor started")
}

// Stop terminates the polling loop and waits for it to exit.
func (s *Sensor) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// Status returns the current activity classification.
func (s *Sensor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Sensor) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.poll()
	for {
		select {
		case <-ticker.C:
			s.poll()
		case <-s.stopChan:
			return
		}
	}
}

// poll samples the detector once. Detector failures are logged and the
// previous classification stands until the next sample.
func (s *Sensor) poll() {
	idle, err := s.detector.IdleTime()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read idle time")
		return
	}

	if idle < ActiveThreshold {
		s.tracker.Record()
		s.transition(StatusActive)
		s.logger.Debug().Dur("idle", idle).Msg("user is active")
	} else {
		s.transition(StatusInactive)
		s.logger.Debug().Dur("idle", idle).Msg("user is idle")
	}
}

// transition updates the classification and notifies the reporter on
// change. Reporter failures are logged, never retried, never fatal.
func (s *Sensor) transition(next Status) {
	s.mu.Lock()
	prev := s.status
	if prev == next {
		s.mu.Unlock()
		return
	}
	s.status = next
	s.mu.Unlock()

	s.logger.Info().
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("activity status changed")

	if s.reporter == nil {
		return
	}
	if err := s.reporter.Report(next, s.now()); err != nil {
		s.logger.Error().Err(err).Str("status", string(next)).Msg("failed to report activity status")
	}
}
