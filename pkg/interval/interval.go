// Package interval parses the human-readable interval strings used in the
// notifications file, e.g. "45s", "30m", "2h".
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when an interval string cannot be parsed.
// Callers that skip bad config entries branch on this.
var ErrInvalidFormat = errors.New("invalid interval format")

// Parse converts an interval string into a duration. The accepted form is
// a non-negative integer followed by exactly one unit suffix: "s" for
// seconds, "m" for minutes or "h" for hours. Anything else fails with
// ErrInvalidFormat. A zero duration parses successfully; rejecting it is
// the scheduler's job, since only the scheduler knows a zero-length loop
// would busy-spin.
func Parse(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	value := s[:len(s)-1]
	unit := s[len(s)-1:]

	// strconv.ParseUint rejects negatives and non-integers, but still
	// accepts a leading "+" which the format does not allow.
	if strings.HasPrefix(value, "+") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	switch unit {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit in %q", ErrInvalidFormat, s)
	}
}
