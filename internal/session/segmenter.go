// Package session partitions snapshot history into activity sessions.
package session

import (
	"sort"
	"time"

	"github.com/vburojevic/wtw/internal/domain"
)

const (
	// InactivityThreshold is the largest gap between consecutive snapshots
	// that still belongs to one session.
	InactivityThreshold = 15 * time.Minute

	// MaxRecent caps how many sessions Recent returns.
	MaxRecent = 5
)

// minutesBetween returns the whole-minute difference between two instants,
// fractional minutes discarded. A 15m59s gap therefore still counts as 15.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a).Minutes())
}

// Segment partitions the complete known snapshot set into sessions, ascending
// by start time. Input order does not matter; snapshots are stably sorted by
// timestamp first, so duplicates stay adjacent with a zero gap.
//
// Two closure rules apply: a gap above InactivityThreshold closes the current
// session at the previous snapshot's timestamp, and a shutdown event closes it
// at the event's own timestamp. Only the trailing session is left open
// (zero EndTime, IsActive) and only when no shutdown event terminated it.
func Segment(snaps []domain.Snapshot) []domain.Session {
	if len(snaps) == 0 {
		return []domain.Session{}
	}

	sorted := make([]domain.Snapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var sessions []domain.Session
	var current *domain.Session

	finish := func(at time.Time) {
		current.EndTime = at
		current.IsActive = false
		sessions = append(sessions, *current)
		current = nil
	}

	for _, snap := range sorted {
		if current == nil {
			s := domain.NewSession(snap)
			current = &s
		} else {
			prev := current.Snapshots[len(current.Snapshots)-1]
			if minutesBetween(prev.Timestamp, snap.Timestamp) > int(InactivityThreshold.Minutes()) {
				finish(prev.Timestamp)
				s := domain.NewSession(snap)
				current = &s
			} else {
				current.Snapshots = append(current.Snapshots, snap)
			}
		}

		// A shutdown event ends the session it belongs to at its own
		// timestamp, superseding the open-ended default.
		if snap.Event.Kind == domain.EventShutdown {
			finish(snap.Timestamp)
		}
	}

	if current != nil {
		sessions = append(sessions, *current)
	}
	return sessions
}

// Recent returns the most recent sessions, newest first, capped at MaxRecent.
func Recent(sessions []domain.Session) []domain.Session {
	out := make([]domain.Session, 0, MaxRecent)
	for i := len(sessions) - 1; i >= 0 && len(out) < MaxRecent; i-- {
		out = append(out, sessions[i])
	}
	return out
}

// CurrentStart returns the newest session's start time, if any session exists.
func CurrentStart(sessions []domain.Session) (time.Time, bool) {
	if len(sessions) == 0 {
		return time.Time{}, false
	}
	return sessions[len(sessions)-1].StartTime, true
}
