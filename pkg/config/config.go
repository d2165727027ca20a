// Package config loads the two configuration documents: application
// settings (config.json) and the periodic notification specs
// (notifications.json).
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"pushel/pkg/interval"
	"pushel/pkg/notification"
)

const (
	appDirName        = "pushel"
	appConfigFile     = "config.json"
	notificationsFile = "notifications.json"
)

// App holds the process-wide settings from config.json.
type App struct {
	ListenAddress       string `mapstructure:"listen_address"`
	Port                int    `mapstructure:"port"`
	WebserverEnabled    bool   `mapstructure:"webserver_enabled"`
	DefaultTitle        string `mapstructure:"default_title"`
	LogFormat           string `mapstructure:"log_format"`
	LogLevel            string `mapstructure:"log_level"`
	HomeAssistantURL    string `mapstructure:"homeassistant_url"`
	HomeAssistantAPIKey string `mapstructure:"homeassistant_api_key"`
}

// Addr returns the listen address for the webserver.
func (a *App) Addr() string {
	return net.JoinHostPort(a.ListenAddress, strconv.Itoa(a.Port))
}

// Spec is one periodic notification: the payload plus its parsed interval.
// Each spec is owned exclusively by its scheduling loop.
type Spec struct {
	notification.Notification
	Interval time.Duration
}

// specEntry is the on-disk shape of one notifications.json entry.
type specEntry struct {
	notification.Notification
	Interval string `json:"interval"`
}

// Dir resolves the configuration directory. An explicit override wins,
// otherwise the XDG config home is used ($XDG_CONFIG_HOME/pushel, falling
// back to ~/.config/pushel).
func Dir(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// LoadApp reads config.json from dir. Environment variables prefixed with
// PUSHEL_ override file values (PUSHEL_PORT, PUSHEL_DEFAULT_TITLE, ...).
func LoadApp(dir string) (*App, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, appConfigFile))
	v.SetConfigType("json")

	v.SetDefault("listen_address", "0.0.0.0")
	v.SetDefault("port", 3030)
	v.SetDefault("webserver_enabled", true)
	v.SetDefault("default_title", "Erinnerung")
	v.SetDefault("log_format", "pretty")
	v.SetDefault("log_level", "info")
	v.SetDefault("homeassistant_url", "")
	v.SetDefault("homeassistant_api_key", "")

	v.SetEnvPrefix("PUSHEL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if app.Port < 1 || app.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", app.Port)
	}

	return &app, nil
}

// LoadSpecs reads notifications.json from dir. A single bad entry never
// aborts the load: entries with an unparseable or zero interval, or an
// invalid payload, are skipped with a warning and the rest continue. An
// unreadable or unparseable file is fatal.
func LoadSpecs(dir string, log zerolog.Logger) ([]Spec, error) {
	path := filepath.Join(dir, notificationsFile)

	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the config dir
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications file: %w", err)
	}

	var entries []specEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse notifications file: %w", err)
	}

	specs := make([]Spec, 0, len(entries))
	for i, entry := range entries {
		d, err := interval.Parse(entry.Interval)
		if err != nil {
			log.Warn().Err(err).Int("entry", i).Str("title", entry.Title).
				Msg("skipping notification with invalid interval")
			continue
		}
		if d <= 0 {
			log.Warn().Int("entry", i).Str("title", entry.Title).
				Msg("skipping notification with zero interval")
			continue
		}
		if err := entry.Notification.Validate(); err != nil {
			log.Warn().Err(err).Int("entry", i).Str("title", entry.Title).
				Msg("skipping invalid notification")
			continue
		}
		specs = append(specs, Spec{Notification: entry.Notification, Interval: d})
	}

	return specs, nil
}
