package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultAppConfig is written to config.json on first start.
const defaultAppConfig = `{
  "listen_address": "0.0.0.0",
  "port": 3030,
  "webserver_enabled": true,
  "default_title": "Erinnerung",
  "log_format": "pretty",
  "log_level": "info",
  "homeassistant_url": "",
  "homeassistant_api_key": ""
}
`

// defaultNotifications is written to notifications.json on first start.
const defaultNotifications = `[
  {
    "title": "Erinnerung",
    "message": "Trink Wasser!",
    "interval": "30m",
    "urgency": "low",
    "expire_time": 5000,
    "app_name": "Pushel",
    "icon": "dialog-information",
    "category": "reminder",
    "transient": true
  },
  {
    "title": "Erinnerung",
    "message": "Mach mal Pause und strecke dich!",
    "interval": "2h",
    "urgency": "normal",
    "expire_time": 5000,
    "app_name": "Pushel",
    "icon": "dialog-information",
    "category": "reminder",
    "transient": true
  },
  {
    "title": "Erinnerung",
    "message": "Schau in die Ferne, um deine Augen zu entspannen!",
    "interval": "40m",
    "urgency": "low",
    "expire_time": 5000,
    "app_name": "Pushel",
    "icon": "dialog-information",
    "category": "reminder",
    "transient": true
  },
  {
    "title": "Erinnerung",
    "message": "Stehe auf und gehe ein paar Schritte!",
    "interval": "1h",
    "urgency": "normal",
    "expire_time": 5000,
    "app_name": "Pushel",
    "icon": "dialog-information",
    "category": "reminder",
    "transient": true
  },
  {
    "title": "Erinnerung",
    "message": "Überprüfe deine Sitzhaltung!",
    "interval": "15m",
    "urgency": "low",
    "expire_time": 5000,
    "app_name": "Pushel",
    "icon": "dialog-information",
    "category": "reminder",
    "transient": true
  }
]
`

// EnsureDefaults creates the config directory with default files when it
// does not exist yet. It reports whether the defaults were created.
// Existing directories are left untouched, even if files are missing.
func EnsureDefaults(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, appConfigFile), []byte(defaultAppConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, notificationsFile), []byte(defaultNotifications), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default notifications: %w", err)
	}

	return true, nil
}
