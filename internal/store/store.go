// Package store provides snapshot feeds: subscription-style sources that
// deliver the complete current snapshot set whenever it changes. Feeds are
// input only; derived views are never written back.
package store

import "github.com/vburojevic/wtw/internal/domain"

// Feed delivers whole-set snapshot replacements. Deliveries are not deltas:
// consumers must tolerate repeated identical sets, including empty ones.
// Close releases the underlying source exactly once; the snapshot channel is
// closed afterwards.
type Feed interface {
	Snapshots() <-chan []domain.Snapshot
	Close() error
}

// deliver pushes a set into a capacity-1 channel, replacing any undelivered
// set so a slow consumer always observes the newest one.
func deliver(ch chan []domain.Snapshot, snaps []domain.Snapshot) {
	for {
		select {
		case ch <- snaps:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
