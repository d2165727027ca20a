// Package notification provides notification payloads and dispatch.
package notification

import "fmt"

// Urgency levels understood by the desktop notification mechanism.
const (
	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

// Notification represents a notification to be dispatched. The JSON tags
// match both the notifications file and the ad-hoc API body.
type Notification struct {
	Title      string `json:"title,omitempty"`
	Message    string `json:"message"`
	Urgency    string `json:"urgency,omitempty"`
	ExpireTime int    `json:"expire_time,omitempty"` // milliseconds
	AppName    string `json:"app_name,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Category   string `json:"category,omitempty"`
	Transient  bool   `json:"transient,omitempty"`
}

// Validate checks the fields a payload must get right before dispatch.
// The title may be empty; the dispatcher substitutes the configured
// default.
func (n Notification) Validate() error {
	if n.Message == "" {
		return fmt.Errorf("message is required")
	}
	switch n.Urgency {
	case "", UrgencyLow, UrgencyNormal, UrgencyCritical:
	default:
		return fmt.Errorf("invalid urgency %q (use low, normal or critical)", n.Urgency)
	}
	if n.ExpireTime < 0 {
		return fmt.Errorf("expire_time must be non-negative")
	}
	return nil
}

// Notifier sends notifications.
type Notifier interface {
	Send(notification Notification) error
}
