package cli

import (
	"fmt"
	"time"

	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/store"
)

// openFeed builds the snapshot feed selected by --store.
func openFeed(globals *Globals) (store.Feed, error) {
	logger := zapLogger(globals)
	switch globals.Store.Driver {
	case "sqlite":
		return store.NewSQLiteFeed(globals.Store.Path, globals.Store.PollInterval, nil, logger)
	case "file", "":
		return store.NewFileFeed(globals.Store.Path, logger)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", globals.Store.Driver)
	}
}

// readSnapshots opens the feed just long enough to take the initial delivery.
// One-shot commands use this so they never hold a watch open.
func readSnapshots(globals *Globals) ([]domain.Snapshot, error) {
	feed, err := openFeed(globals)
	if err != nil {
		return nil, err
	}
	defer feed.Close()

	select {
	case snaps, ok := <-feed.Snapshots():
		if !ok {
			return nil, fmt.Errorf("snapshot feed closed before first delivery")
		}
		return snaps, nil
	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("timed out waiting for snapshot feed")
	}
}
