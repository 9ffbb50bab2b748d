package cli

import (
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/output"
)

// GameModeCmd shows game mode state and playtime
type GameModeCmd struct{}

// Run executes the gamemode command
func (c *GameModeCmd) Run(globals *Globals) error {
	snaps, err := readSnapshots(globals)
	if err != nil {
		return outputErrorCommon(globals, "STORE_OPEN_FAILED", err.Error(), "check --store and --store-path")
	}

	view := dashboard.Compute(snaps, time.Now())

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteGameMode(view.GameMode)
	}
	return output.NewTextWriter(globals.Stdout).GameMode(view.GameMode)
}
