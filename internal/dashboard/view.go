// Package dashboard composes every derived view over the snapshot feed.
package dashboard

import (
	"time"

	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/liveness"
	"github.com/vburojevic/wtw/internal/session"
	"github.com/vburojevic/wtw/internal/usage"
)

// View is one immutable recomputation result. Views are replaced wholesale on
// every feed delivery or clock tick, never mutated in place.
type View struct {
	Latest       *domain.Snapshot   `json:"latestSnapshot,omitempty"`
	Sessions     []domain.Session   `json:"sessions"` // newest first, capped
	Online       bool               `json:"isOnline"`
	LastSeen     time.Time          `json:"lastLogTime,omitzero"`
	Countdown    int                `json:"freshnessCountdownSeconds"`
	AppUsage     []usage.AppMinutes `json:"appUsage"`
	GameMode     gamemode.Status    `json:"gameMode"`
	SessionStart time.Time          `json:"sessionStartTime,omitzero"`
	ComputedAt   time.Time          `json:"computedAt"`
}

// Compute derives a complete view from the snapshot set and an explicit now.
// It is pure: the same inputs always produce the same view, which makes
// re-running it on every tick safe. The freshness countdown is wall-clock
// state owned by the Watcher and stays zero here.
func Compute(snaps []domain.Snapshot, now time.Time) View {
	ascending := session.Segment(snaps)
	live := liveness.Check(snaps, now)

	view := View{
		Sessions:   session.Recent(ascending),
		Online:     live.Online,
		LastSeen:   live.LastSeen,
		AppUsage:   []usage.AppMinutes{},
		GameMode:   gamemode.Track(snaps, now),
		ComputedAt: now,
	}

	if latest, ok := domain.Latest(snaps); ok {
		view.Latest = &latest
		view.AppUsage = usage.Rank(latest.AppUsageSeconds)
	}
	if start, ok := session.CurrentStart(ascending); ok {
		view.SessionStart = start
	}
	return view
}
