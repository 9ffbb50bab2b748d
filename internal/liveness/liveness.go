// Package liveness derives the device online flag and the freshness countdown.
package liveness

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/wtw/internal/domain"
)

// OnlineWindow is how recently a snapshot must have arrived for the device to
// count as online.
const OnlineWindow = 60 * time.Second

// CountdownSeconds is the freshness countdown's starting value.
const CountdownSeconds = 60

// Status is the liveness view over the known snapshot set.
type Status struct {
	Online   bool
	LastSeen time.Time // zero when no snapshot has been observed
}

// Check derives liveness from the snapshot with the maximum timestamp.
// An empty set is offline, not an error.
func Check(snaps []domain.Snapshot, now time.Time) Status {
	latest, ok := domain.Latest(snaps)
	if !ok {
		return Status{}
	}
	return Status{
		Online:   now.Sub(latest.Timestamp) < OnlineWindow,
		LastSeen: latest.Timestamp,
	}
}

// Countdown is the freshness countdown shown next to the online badge. It
// resets to CountdownSeconds whenever the observed last-seen instant changes
// and ticks down with wall-clock time, floored at zero. It is a presentation
// aid only; Check alone decides Online.
type Countdown struct {
	clock    clock.Clock
	lastSeen time.Time
	resetAt  time.Time
	armed    bool
}

// NewCountdown creates a countdown reading time from the given clock.
func NewCountdown(c clock.Clock) *Countdown {
	return &Countdown{clock: c}
}

// Observe feeds the countdown the current last-seen instant, resetting it when
// the instant changed. A zero instant disarms the countdown.
func (c *Countdown) Observe(lastSeen time.Time) {
	if lastSeen.IsZero() {
		c.armed = false
		return
	}
	if c.armed && lastSeen.Equal(c.lastSeen) {
		return
	}
	c.lastSeen = lastSeen
	c.resetAt = c.clock.Now()
	c.armed = true
}

// Seconds returns the remaining countdown, clamped to [0, CountdownSeconds].
func (c *Countdown) Seconds() int {
	if !c.armed {
		return 0
	}
	elapsed := int(c.clock.Now().Sub(c.resetAt).Seconds())
	remaining := CountdownSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	if remaining > CountdownSeconds {
		return CountdownSeconds
	}
	return remaining
}
