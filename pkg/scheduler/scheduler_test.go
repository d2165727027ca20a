package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"pushel/pkg/activity"
	"pushel/pkg/config"
	"pushel/pkg/metrics"
	"pushel/pkg/notification"
	"pushel/pkg/testutil"
)

// fakeGate is a gate with a settable answer.
type fakeGate struct {
	mu     sync.Mutex
	active bool
}

func (g *fakeGate) IsActive(threshold time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

func newScheduler(gate Gate, notifier notification.Notifier) (*Scheduler, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return New(gate, notifier, m, zerolog.Nop()), m
}

func spec(title, message string, interval time.Duration) config.Spec {
	return config.Spec{
		Notification: notification.Notification{Title: title, Message: message},
		Interval:     interval,
	}
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s, _ := newScheduler(&fakeGate{active: true}, testutil.NewMockNotifier())

	if err := s.Start(spec("Erinnerung", "Trink Wasser!", 0)); err == nil {
		t.Error("Start() with zero interval should fail")
	}
	if err := s.Start(spec("Erinnerung", "Trink Wasser!", -time.Second)); err == nil {
		t.Error("Start() with negative interval should fail")
	}
}

func TestScheduler_DispatchesAtInterval(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	s, _ := newScheduler(&fakeGate{active: true}, notifier)

	if err := s.Start(spec("Erinnerung", "Trink Wasser!", 20*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	sent := notifier.Sent()
	if len(sent) < 2 {
		t.Fatalf("dispatched %d times in ~5 intervals, want at least 2", len(sent))
	}
	if sent[0].Title != "Erinnerung" || sent[0].Message != "Trink Wasser!" {
		t.Errorf("dispatched payload = %+v", sent[0])
	}
}

func TestScheduler_SkipsWhenInactive(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	s, m := newScheduler(&fakeGate{active: false}, notifier)

	if err := s.Start(spec("Erinnerung", "Trink Wasser!", 10*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	if got := notifier.Count(); got != 0 {
		t.Errorf("dispatched %d times while inactive, want 0", got)
	}
	if got := promtestutil.ToFloat64(m.TicksSkippedTotal); got < 1 {
		t.Errorf("skipped ticks counter = %v, want at least 1", got)
	}
}

func TestScheduler_FailureKeepsCadence(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	notifier.SetError(fmt.Errorf("exit status 1"))
	s, _ := newScheduler(&fakeGate{active: true}, notifier)

	if err := s.Start(spec("Erinnerung", "Trink Wasser!", 15*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	failed := notifier.Count()
	if failed < 2 {
		t.Errorf("attempted %d dispatches while failing, want at least 2", failed)
	}

	// The loop must still be alive and fire at the next boundary.
	notifier.SetError(nil)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if got := notifier.Count(); got <= failed {
		t.Errorf("no dispatch after recovery: %d then %d", failed, got)
	}
}

func TestScheduler_IndependentLoops(t *testing.T) {
	// A failure in one loop must not delay or skip ticks of another.
	mock := testutil.NewMockNotifier()
	notifier := &conditionalNotifier{inner: mock, failTitle: "Wasser"}
	s, _ := newScheduler(&fakeGate{active: true}, notifier)

	if err := s.Start(spec("Wasser", "Trink Wasser!", 15*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(spec("Pause", "Mach mal Pause!", 20*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	var pause int
	for _, n := range mock.Sent() {
		if n.Title == "Pause" {
			pause++
		}
	}
	if pause < 2 {
		t.Errorf("healthy loop dispatched %d times next to a failing loop, want at least 2", pause)
	}
}

func TestScheduler_StopTerminatesLoops(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	s, _ := newScheduler(&fakeGate{active: true}, notifier)

	if err := s.Start(spec("A", "a", 5*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(spec("B", "b", 5*time.Millisecond)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	count := notifier.Count()
	time.Sleep(30 * time.Millisecond)
	if got := notifier.Count(); got != count {
		t.Errorf("dispatches after Stop(): %d -> %d", count, got)
	}
}

// Tick-level checks against a real tracker cover the end-to-end timing
// scenarios deterministically.
func TestScheduler_TickAgainstTracker(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		activityAt   time.Duration // when activity was recorded, relative to base
		tickAt       time.Duration // when the tick fires, relative to base
		wantDispatch bool
	}{
		{
			name:         "activity at start, tick after 1h",
			activityAt:   0,
			tickAt:       time.Hour,
			wantDispatch: false,
		},
		{
			name:         "activity at 59m, tick at 1h",
			activityAt:   59 * time.Minute,
			tickAt:       time.Hour,
			wantDispatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := base
			tracker := activity.NewTracker()
			tracker.SetClock(func() time.Time { return now })

			now = base.Add(tt.activityAt)
			tracker.Record()

			notifier := testutil.NewMockNotifier()
			s, _ := newScheduler(tracker, notifier)

			now = base.Add(tt.tickAt)
			s.tick(spec("Erinnerung", "Trink Wasser!", time.Hour), zerolog.Nop())

			if got := notifier.Count() > 0; got != tt.wantDispatch {
				t.Errorf("dispatched = %v, want %v", got, tt.wantDispatch)
			}
			if tt.wantDispatch {
				sent := notifier.Sent()[0]
				if sent.Title != "Erinnerung" || sent.Message != "Trink Wasser!" {
					t.Errorf("payload = %+v", sent)
				}
			}
		})
	}
}

// conditionalNotifier fails sends for one title and records everything.
type conditionalNotifier struct {
	inner     *testutil.MockNotifier
	failTitle string
}

func (c *conditionalNotifier) Send(n notification.Notification) error {
	_ = c.inner.Send(n)
	if n.Title == c.failTitle {
		return fmt.Errorf("exit status 1")
	}
	return nil
}
