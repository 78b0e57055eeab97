package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/age"
)

// Clock abstracts time.Now() to allow deterministic testing.
// It supplies the reference instant when the user asks for "now".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NowInstant reads c and truncates the result to whole seconds in its own location.
func NowInstant(c Clock) age.Instant {
	return age.FromTime(c.Now())
}
