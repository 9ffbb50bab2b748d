package cli

import (
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/liveness"
	"github.com/vburojevic/wtw/internal/output"
)

// StatusCmd shows the device's current status
type StatusCmd struct{}

// Run executes the status command
func (c *StatusCmd) Run(globals *Globals) error {
	globals.Debug("Reading snapshots for status")
	snaps, err := readSnapshots(globals)
	if err != nil {
		return outputErrorCommon(globals, "STORE_OPEN_FAILED", err.Error(), "check --store and --store-path")
	}

	now := time.Now()
	view := dashboard.Compute(snaps, now)
	view.Countdown = remainingCountdown(view.LastSeen, now)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteStatus(view)
	}
	return output.NewTextWriter(globals.Stdout).Status(view, now)
}

// remainingCountdown derives the freshness countdown for a one-shot read:
// full window at the moment of the last snapshot, ticking down since.
func remainingCountdown(lastSeen, now time.Time) int {
	if lastSeen.IsZero() {
		return 0
	}
	left := liveness.CountdownSeconds - int(now.Sub(lastSeen).Seconds())
	if left < 0 {
		return 0
	}
	if left > liveness.CountdownSeconds {
		return liveness.CountdownSeconds
	}
	return left
}
