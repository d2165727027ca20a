// Package testutil provides shared mocks for tests.
package testutil

import (
	"sync"

	"pushel/pkg/notification"
)

// MockNotifier records sent notifications and returns a configurable error.
type MockNotifier struct {
	mu            sync.Mutex
	notifications []notification.Notification
	err           error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send records the notification and returns the configured error.
func (m *MockNotifier) Send(n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return m.err
}

// SetError makes subsequent Send calls fail with err (nil to succeed again).
func (m *MockNotifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Sent returns a copy of all recorded notifications.
func (m *MockNotifier) Sent() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Notification(nil), m.notifications...)
}

// Count returns the number of Send calls so far.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}
