package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"pushel/pkg/config"
	"pushel/pkg/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var (
		configDir   string
		dryRun      bool
		showVersion bool
	)

	flag.StringVar(&configDir, "config-dir", "", "Path to the configuration directory")
	flag.BoolVar(&dryRun, "dry-run", false, "Print notifications to stdout instead of dispatching them")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("pushel " + version)
		os.Exit(0)
	}

	dir := config.Dir(configDir)

	created, err := config.EnsureDefaults(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating default configuration: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadApp(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Logging depends on the loaded settings, so startup errors before
	// this point go to stderr directly.
	log := logger.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if created {
		log.Info().Str("dir", dir).Msg("created default configuration files")
	}
	log.Info().Str("dir", dir).Msg("configuration loaded")

	specs, err := config.LoadSpecs(dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load notifications file")
	}
	log.Info().Int("count", len(specs)).Msg("notifications loaded")

	deps := NewDependencies(cfg, specs, log, dryRun)
	app := NewApplication(deps)
	app.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	app.Stop()
}
