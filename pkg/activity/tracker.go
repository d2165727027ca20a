// Package activity tracks user activity and decides whether notifications
// should be dispatched or suppressed.
package activity

import (
	"sync"
	"time"
)

// The two idle thresholds are intentionally different: activity sensing is
// fine-grained, notification suppression is coarse.
const (
	// ActiveThreshold classifies the user as active or inactive for
	// external status reporting.
	ActiveThreshold = 10 * time.Second

	// SuppressThreshold gates scheduled notifications. A tick firing when
	// the user has been inactive for at least this long is skipped.
	SuppressThreshold = 15 * time.Minute
)

// Status is the externally visible activity classification.
type Status string

// Activity statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Tracker holds the single last-activity timestamp shared by all
// scheduling loops. One writer (the sensor), any number of concurrent
// readers; the mutex is held only to read or write the one field.
type Tracker struct {
	mu         sync.Mutex
	lastActive time.Time

	now func() time.Time
}

// NewTracker creates a tracker whose initial state is "active now", so a
// freshly started process does not suppress its first scheduled ticks.
func NewTracker() *Tracker {
	t := &Tracker{now: time.Now}
	t.lastActive = t.now()
	return t
}

// SetClock overrides the tracker's time source. Primarily useful for testing.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// Record marks the current instant as the last user activity.
func (t *Tracker) Record() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActive = t.now()
}

// IsActive reports whether the elapsed time since the last recorded
// activity is strictly below threshold. At exactly the threshold the
// user counts as inactive.
func (t *Tracker) IsActive(threshold time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.lastActive) < threshold
}

// LastActive returns the last recorded activity time.
func (t *Tracker) LastActive() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActive
}
