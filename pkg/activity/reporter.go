package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// motionEntity is the Home Assistant entity the activity state is pushed to.
const motionEntity = "sensor.pushel_motion"

// HomeAssistantReporter pushes activity transitions to a Home Assistant
// instance as a motion sensor state.
type HomeAssistantReporter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHomeAssistantReporter creates a reporter for the given Home Assistant
// base URL and long-lived access token.
func NewHomeAssistantReporter(baseURL, apiKey string) *HomeAssistantReporter {
	return &HomeAssistantReporter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Report posts the new state to Home Assistant's states API.
func (r *HomeAssistantReporter) Report(status Status, at time.Time) error {
	payload := map[string]any{
		"state": string(status),
		"attributes": map[string]any{
			"friendly_name": "Pushel Motion Detection",
			"last_update":   at.Unix(),
			"device_class":  "motion",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal state payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/states/%s", r.baseURL, motionEntity)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push state to home assistant: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("home assistant returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
