package activity

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeDetector returns a scripted sequence of idle times.
type fakeDetector struct {
	mu    sync.Mutex
	times []time.Duration
	errs  []error
	calls int
}

func (d *fakeDetector) IdleTime() (time.Duration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.calls
	if i >= len(d.times) {
		i = len(d.times) - 1
	}
	d.calls++
	if d.errs != nil && d.errs[i] != nil {
		return 0, d.errs[i]
	}
	return d.times[i], nil
}

// fakeReporter records every reported transition.
type fakeReporter struct {
	mu       sync.Mutex
	statuses []Status
	err      error
}

func (r *fakeReporter) Report(status Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
	return r.err
}

func (r *fakeReporter) reported() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.statuses...)
}

func TestSensor_PollRecordsActivity(t *testing.T) {
	detector := &fakeDetector{times: []time.Duration{2 * time.Second}}
	tracker := NewTracker()
	reporter := &fakeReporter{}

	// Backdate the tracker so only the sensor can make it active again.
	past := time.Now().Add(-time.Hour)
	tracker.now = func() time.Time { return past }
	tracker.Record()
	tracker.now = time.Now

	sensor := NewSensor(detector, tracker, reporter, zerolog.Nop())
	sensor.poll()

	if !tracker.IsActive(ActiveThreshold) {
		t.Error("poll with idle < threshold should record activity")
	}
	if got := sensor.Status(); got != StatusActive {
		t.Errorf("Status() = %v, want %v", got, StatusActive)
	}
	if got := reporter.reported(); len(got) != 1 || got[0] != StatusActive {
		t.Errorf("reported = %v, want [active]", got)
	}
}

func TestSensor_PollIdleDoesNotRecord(t *testing.T) {
	detector := &fakeDetector{times: []time.Duration{30 * time.Second}}
	tracker := NewTracker()

	past := time.Now().Add(-time.Hour)
	tracker.now = func() time.Time { return past }
	tracker.Record()
	tracker.now = time.Now

	sensor := NewSensor(detector, tracker, nil, zerolog.Nop())
	sensor.poll()

	if tracker.IsActive(SuppressThreshold) {
		t.Error("poll with idle >= threshold must not record activity")
	}
	if got := sensor.Status(); got != StatusInactive {
		t.Errorf("Status() = %v, want %v", got, StatusInactive)
	}
}

func TestSensor_ReportsOnlyTransitions(t *testing.T) {
	// active for three polls, idle for two, then active again.
	detector := &fakeDetector{times: []time.Duration{
		time.Second,
		2 * time.Second,
		time.Second,
		time.Minute,
		2 * time.Minute,
		3 * time.Second,
	}}
	reporter := &fakeReporter{}
	sensor := NewSensor(detector, NewTracker(), reporter, zerolog.Nop())

	for i := 0; i < 6; i++ {
		sensor.poll()
	}

	want := []Status{StatusActive, StatusInactive, StatusActive}
	got := reporter.reported()
	if len(got) != len(want) {
		t.Fatalf("reported %v transitions (%v), want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSensor_ReporterFailureIsNotFatal(t *testing.T) {
	detector := &fakeDetector{times: []time.Duration{time.Second}}
	reporter := &fakeReporter{err: fmt.Errorf("connection refused")}
	sensor := NewSensor(detector, NewTracker(), reporter, zerolog.Nop())

	sensor.poll()

	// The classification still changed even though the report failed.
	if got := sensor.Status(); got != StatusActive {
		t.Errorf("Status() = %v, want %v", got, StatusActive)
	}
}

func TestSensor_DetectorFailureKeepsStatus(t *testing.T) {
	detector := &fakeDetector{
		times: []time.Duration{time.Second, 0},
		errs:  []error{nil, fmt.Errorf("no display")},
	}
	reporter := &fakeReporter{}
	sensor := NewSensor(detector, NewTracker(), reporter, zerolog.Nop())

	sensor.poll()
	sensor.poll()

	if got := sensor.Status(); got != StatusActive {
		t.Errorf("Status() after detector failure = %v, want %v", got, StatusActive)
	}
	if got := reporter.reported(); len(got) != 1 {
		t.Errorf("reported = %v, want a single transition", got)
	}
}

func TestSensor_StartStop(t *testing.T) {
	detector := &fakeDetector{times: []time.Duration{time.Second}}
	sensor := NewSensor(detector, NewTracker(), nil, zerolog.Nop())
	sensor.interval = 5 * time.Millisecond

	sensor.Start()
	time.Sleep(25 * time.Millisecond)
	sensor.Stop()

	detector.mu.Lock()
	calls := detector.calls
	detector.mu.Unlock()
	if calls < 2 {
		t.Errorf("detector polled %d times, want at least 2", calls)
	}
	if got := sensor.Status(); got != StatusActive {
		t.Errorf("Status() = %v, want %v", got, StatusActive)
	}
}
