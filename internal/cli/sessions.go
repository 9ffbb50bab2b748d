package cli

import (
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/output"
)

// SessionsCmd shows recent computer sessions
type SessionsCmd struct{}

// Run executes the sessions command
func (c *SessionsCmd) Run(globals *Globals) error {
	snaps, err := readSnapshots(globals)
	if err != nil {
		return outputErrorCommon(globals, "STORE_OPEN_FAILED", err.Error(), "check --store and --store-path")
	}

	now := time.Now()
	view := dashboard.Compute(snaps, now)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteSessions(view.Sessions, now)
	}
	return output.NewTextWriter(globals.Stdout).Sessions(view.Sessions, now)
}
