package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"pushel/pkg/activity"
	"pushel/pkg/config"
	"pushel/pkg/metrics"
	"pushel/pkg/notification"
	"pushel/pkg/scheduler"
	"pushel/pkg/server"
)

// shutdownTimeout bounds the graceful webserver shutdown.
const shutdownTimeout = 5 * time.Second

// Dependencies holds all the dependencies for the application.
type Dependencies struct {
	Config    *config.App
	Specs     []config.Spec
	Logger    zerolog.Logger
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Tracker   *activity.Tracker
	Sensor    *activity.Sensor
	Notifier  notification.Notifier
	Scheduler *scheduler.Scheduler
	Server    *server.Server // nil when the webserver is disabled
}

// NewDependencies creates all dependencies with the given configuration.
func NewDependencies(cfg *config.App, specs []config.Spec, log zerolog.Logger, dryRun bool) *Dependencies {
	deps := &Dependencies{
		Config: cfg,
		Specs:  specs,
		Logger: log,
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = metrics.New(deps.Registry)
	deps.Tracker = activity.NewTracker()

	if dryRun {
		deps.Notifier = notification.NewStdoutNotifier(cfg.DefaultTitle)
	} else {
		deps.Notifier = notification.NewCommandNotifier(cfg.DefaultTitle)
	}

	var sink activity.StatusReporter
	if cfg.HomeAssistantURL != "" && cfg.HomeAssistantAPIKey != "" {
		sink = activity.NewHomeAssistantReporter(cfg.HomeAssistantURL, cfg.HomeAssistantAPIKey)
		log.Info().Str("url", cfg.HomeAssistantURL).Msg("home assistant status reporting enabled")
	}
	reporter := &instrumentedReporter{next: sink, metrics: deps.Metrics}

	deps.Sensor = activity.NewSensor(activity.NewXPrintIdleDetector(), deps.Tracker, reporter, log)
	deps.Scheduler = scheduler.New(deps.Tracker, deps.Notifier, deps.Metrics, log)

	if cfg.WebserverEnabled {
		deps.Server = server.New(cfg.Addr(), deps.Notifier, deps.Metrics, deps.Registry, log)
	}

	return deps
}

// Application ties the sensor, the scheduling loops and the webserver
// together.
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies.
func NewApplication(deps *Dependencies) *Application {
	return &Application{deps: deps}
}

// Start launches the sensor, one scheduling loop per spec and, when
// enabled, the webserver. A spec the scheduler rejects is skipped with a
// warning; the remaining specs still run.
func (a *Application) Start() {
	a.deps.Sensor.Start()

	for _, spec := range a.deps.Specs {
		if err := a.deps.Scheduler.Start(spec); err != nil {
			a.deps.Logger.Warn().Err(err).Str("title", spec.Title).Msg("skipping notification")
		}
	}

	if a.deps.Server != nil {
		go func() {
			if err := a.deps.Server.Start(); err != nil {
				a.deps.Logger.Fatal().Err(err).Msg("webserver failed")
			}
		}()
	}
}

// Stop shuts everything down gracefully.
func (a *Application) Stop() {
	if a.deps.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.deps.Server.Shutdown(ctx); err != nil {
			a.deps.Logger.Error().Err(err).Msg("webserver shutdown failed")
		}
	}

	a.deps.Scheduler.Stop()
	a.deps.Sensor.Stop()
}

// instrumentedReporter keeps the activity metrics current and forwards
// transitions to the external sink when one is configured.
type instrumentedReporter struct {
	next    activity.StatusReporter // may be nil
	metrics *metrics.Metrics
}

// Report updates the gauge and forwards to the sink.
func (r *instrumentedReporter) Report(status activity.Status, at time.Time) error {
	if status == activity.StatusActive {
		r.metrics.ActivityState.Set(1)
	} else {
		r.metrics.ActivityState.Set(0)
	}

	if r.next == nil {
		return nil
	}
	if err := r.next.Report(status, at); err != nil {
		r.metrics.StatusReportsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return err
	}
	r.metrics.StatusReportsTotal.WithLabelValues(metrics.StatusSent).Inc()
	return nil
}
