package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Article IDs, publication dates, and town generation timestamps all flow
// through it; production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// TimeNow returns the current time from the package clock. Generators and
// the newsroom pipeline use it instead of time.Now so fixtures stay frozen
// under a fake clock.
func TimeNow() time.Time {
	return clock.Now()
}
