package gamemode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vburojevic/wtw/internal/domain"
)

var base = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func snap(minutes int, event string) domain.Snapshot {
	return domain.Snapshot{
		Timestamp: base.Add(time.Duration(minutes) * time.Minute),
		Event:     domain.ParseEvent(event),
	}
}

func TestTrackLiveGame(t *testing.T) {
	// Activation at 00:00, latest snapshot at 00:12 still reporting the mode
	// on, now = 00:12: live playtime spans from the activation event.
	active := true
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		{
			Timestamp:      base.Add(12 * time.Minute),
			GameModeActive: &active,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(12*time.Minute))
	assert.True(t, status.Active)
	assert.Equal(t, "SUPERHOT.exe", status.Name)
	assert.Equal(t, 12, status.PlayingMinutes)
}

func TestTrackBooleanFallback(t *testing.T) {
	active := true
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		{
			Timestamp:      base.Add(8 * time.Minute),
			GameModeActive: &active,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(10*time.Minute))
	assert.True(t, status.Active)
	assert.Equal(t, "SUPERHOT.exe", status.Name)
	assert.Equal(t, 10, status.PlayingMinutes)
}

func TestTrackFrozenSpanAfterDeactivation(t *testing.T) {
	// Activation at 00:00, deactivation at 00:20, latest snapshot at 00:25
	// reports the mode off: frozen 20 minutes, inactive.
	inactive := false
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		snap(20, "game_mode_deactivated SUPERHOT.exe"),
		{
			Timestamp:      base.Add(25 * time.Minute),
			GameModeActive: &inactive,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(25*time.Minute))
	assert.False(t, status.Active)
	assert.Equal(t, "SUPERHOT.exe", status.Name)
	assert.Equal(t, 20, status.PlayingMinutes)
}

func TestTrackStaleActivationFlag(t *testing.T) {
	// Latest snapshot still flags activation but a deactivation event
	// already closed the span.
	active := true
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		snap(20, "game_mode_deactivated SUPERHOT.exe"),
		{
			Timestamp:      base.Add(25 * time.Minute),
			GameModeActive: &active,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(25*time.Minute))
	assert.False(t, status.Active)
	assert.Equal(t, 20, status.PlayingMinutes)
}

func TestTrackNeverInventsActivation(t *testing.T) {
	// Flag claims activation but no activation event exists anywhere.
	active := true
	snaps := []domain.Snapshot{
		{
			Timestamp:      base,
			GameModeActive: &active,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(30*time.Minute))
	assert.False(t, status.Active)
	assert.Equal(t, 0, status.PlayingMinutes)
}

func TestTrackGameNameWithSpaces(t *testing.T) {
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated Baldur's Gate 3"),
	}

	status := Track(snaps, base.Add(5*time.Minute))
	assert.True(t, status.Active)
	assert.Equal(t, "Baldur's Gate 3", status.Name)
	assert.Equal(t, 5, status.PlayingMinutes)
}

func TestTrackUsesMostRecentActivation(t *testing.T) {
	// Two play spans; only the second activation should count.
	active := true
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		snap(30, "game_mode_deactivated SUPERHOT.exe"),
		snap(60, "game_mode_activated SUPERHOT.exe"),
		{
			Timestamp:      base.Add(70 * time.Minute),
			GameModeActive: &active,
			GameName:       "SUPERHOT.exe",
		},
	}

	status := Track(snaps, base.Add(70*time.Minute))
	assert.True(t, status.Active)
	assert.Equal(t, 10, status.PlayingMinutes)
}

func TestTrackActivationOnLatestSnapshotRestartsSpan(t *testing.T) {
	// When the newest activation event is the latest snapshot itself, the
	// live span starts there, not at any earlier activation.
	snaps := []domain.Snapshot{
		snap(0, "game_mode_activated SUPERHOT.exe"),
		snap(12, "game_mode_activated SUPERHOT.exe"),
	}

	status := Track(snaps, base.Add(12*time.Minute))
	assert.True(t, status.Active)
	assert.Equal(t, "SUPERHOT.exe", status.Name)
	assert.Equal(t, 0, status.PlayingMinutes)
}

func TestTrackInactiveStates(t *testing.T) {
	// Empty history.
	assert.Equal(t, Status{}, Track(nil, base))

	// Latest snapshot carries neither events nor fallbacks.
	status := Track([]domain.Snapshot{{Timestamp: base}}, base)
	assert.False(t, status.Active)
	assert.Equal(t, 0, status.PlayingMinutes)
}

func TestTrackClockSkewClampsAtZero(t *testing.T) {
	snaps := []domain.Snapshot{snap(10, "game_mode_activated SUPERHOT.exe")}

	// "now" is before the activation timestamp.
	status := Track(snaps, base)
	assert.True(t, status.Active)
	assert.Equal(t, 0, status.PlayingMinutes)
}
