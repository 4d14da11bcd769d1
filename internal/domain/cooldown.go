package domain

import "time"

// CooldownRemaining reports how long a member still has to wait after the anchor.
// The window is measured from the last successful creation, regardless of lake.
func CooldownRemaining(anchor, now time.Time, window time.Duration) (time.Duration, bool) {
	elapsed := now.Sub(anchor)
	if elapsed >= window {
		return 0, false
	}
	return window - elapsed, true
}
