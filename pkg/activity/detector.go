package activity

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// IdleDetector reports how long the user has been idle. How activity is
// sensed is the detector's business; the tracker only stores timestamps.
type IdleDetector interface {
	IdleTime() (time.Duration, error)
}

// XPrintIdleDetector queries the X server's idle time via xprintidle,
// which prints the idle time in milliseconds.
type XPrintIdleDetector struct {
	cmdExecutor func(name string, args ...string) ([]byte, error)
}

// NewXPrintIdleDetector creates a new xprintidle-based detector.
func NewXPrintIdleDetector() *XPrintIdleDetector {
	return &XPrintIdleDetector{
		cmdExecutor: defaultCmdExecutor,
	}
}

// defaultCmdExecutor executes a command and returns its output.
func defaultCmdExecutor(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// IdleTime returns the time since the last user input event.
func (d *XPrintIdleDetector) IdleTime() (time.Duration, error) {
	out, err := d.cmdExecutor("xprintidle")
	if err != nil {
		return 0, fmt.Errorf("xprintidle failed: %w", err)
	}

	ms, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected xprintidle output %q: %w", strings.TrimSpace(string(out)), err)
	}

	return time.Duration(ms) * time.Millisecond, nil
}
