// Package gamemode detects the active game and its elapsed playtime.
package gamemode

import (
	"time"

	"github.com/vburojevic/wtw/internal/domain"
)

// Status is the game mode view derived from the snapshot history.
type Status struct {
	Active         bool   `json:"active"`
	Name           string `json:"name"`
	PlayingMinutes int    `json:"playingMinutes"`
}

// Track derives game mode state from the full snapshot history.
//
// The latest snapshot decides which game is in play: an activation event wins
// over the game_mode_active boolean fallback. Playtime spans the most recent
// activation event for that game up to its matching deactivation event, or up
// to now while the game is live. Without any matching activation event the
// tracker reports inactive with zero playtime; it never invents an activation
// time.
func Track(snaps []domain.Snapshot, now time.Time) Status {
	latest, ok := domain.Latest(snaps)
	if !ok {
		return Status{}
	}

	name, flagged := candidate(latest)
	if name == "" {
		return Status{}
	}

	activatedAt, found := lastEvent(snaps, domain.EventGameModeActivated, name)
	if !found {
		return Status{Name: name}
	}
	deactivatedAt, ended := lastEvent(snaps, domain.EventGameModeDeactivated, name)

	if ended && deactivatedAt.After(activatedAt) {
		// Finished span: frozen playtime whether or not the latest
		// snapshot still flags activation (stale activation).
		return Status{Name: name, PlayingMinutes: wholeMinutes(deactivatedAt, activatedAt)}
	}

	if !flagged {
		return Status{Name: name}
	}
	return Status{Active: true, Name: name, PlayingMinutes: wholeMinutes(now, activatedAt)}
}

// candidate picks the game named by the latest snapshot and whether that
// snapshot indicates game mode is on.
func candidate(latest domain.Snapshot) (string, bool) {
	if latest.Event.Kind == domain.EventGameModeActivated {
		if latest.Event.Game != "" {
			return latest.Event.Game, true
		}
		return latest.GameName, true
	}
	flagged := latest.GameModeActive != nil && *latest.GameModeActive
	return latest.GameName, flagged
}

// lastEvent returns the timestamp of the chronologically last event of the
// given kind whose payload names the given game.
func lastEvent(snaps []domain.Snapshot, kind domain.EventKind, game string) (time.Time, bool) {
	var best time.Time
	found := false
	for _, s := range snaps {
		if s.Event.Kind != kind || s.Event.Game != game {
			continue
		}
		if !found || s.Timestamp.After(best) {
			best = s.Timestamp
			found = true
		}
	}
	return best, found
}

// wholeMinutes floors the span between two instants to minutes, never
// negative so a skewed clock cannot produce nonsense playtime.
func wholeMinutes(end, start time.Time) int {
	m := int(end.Sub(start).Minutes())
	if m < 0 {
		return 0
	}
	return m
}
