package cli

import (
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/output"
	"github.com/vburojevic/wtw/internal/usage"
)

// UsageCmd shows per-app usage ranking
type UsageCmd struct {
	Top int `default:"10" help:"Number of apps to show (0 for all)"`
}

// Run executes the usage command
func (c *UsageCmd) Run(globals *Globals) error {
	snaps, err := readSnapshots(globals)
	if err != nil {
		return outputErrorCommon(globals, "STORE_OPEN_FAILED", err.Error(), "check --store and --store-path")
	}

	view := dashboard.Compute(snaps, time.Now())
	entries := view.AppUsage
	if c.Top > 0 {
		entries = usage.Top(entries, c.Top)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteUsage(entries)
	}
	return output.NewTextWriter(globals.Stdout).Usage(entries)
}
