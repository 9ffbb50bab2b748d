package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/usage"
)

// decodeLine consumes exactly one record, leaving later records readable.
func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line, err := buf.ReadString('\n')
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestWriteViewContract(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	view := dashboard.View{
		Online:    true,
		LastSeen:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Countdown: 42,
		AppUsage:  []usage.AppMinutes{{Name: "code.exe", Minutes: 10}},
		GameMode:  gamemode.Status{Active: true, Name: "SUPERHOT.exe", PlayingMinutes: 5},
	}
	require.NoError(t, w.WriteView(view))

	m := decodeLine(t, buf)
	require.Equal(t, "view", m["type"])
	require.EqualValues(t, 1, m["schemaVersion"])
	require.Equal(t, true, m["isOnline"])
	require.EqualValues(t, 42, m["freshnessCountdownSeconds"])
	gm, ok := m["gameMode"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "SUPERHOT.exe", gm["name"])
	require.EqualValues(t, 5, gm["playingMinutes"])
}

func TestWriteStatusIncludesLatestFields(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	view := dashboard.View{
		Online:   true,
		LastSeen: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Latest: &domain.Snapshot{
			Battery:      domain.Battery{Percent: 55, Known: true},
			ActiveApp:    "code.exe",
			WindowTitle:  "main.go",
			IdleTimeSecs: 150,
			RunningApps:  []string{"code.exe", "steam.exe"},
		},
	}
	require.NoError(t, w.WriteStatus(view))

	m := decodeLine(t, buf)
	require.Equal(t, "status", m["type"])
	require.Equal(t, "55%", m["battery"])
	require.Equal(t, "code.exe", m["activeApp"])
	require.EqualValues(t, 2, m["idleMinutes"])
}

func TestWriteSessionsOneRecordEach(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		{ID: "b", StartTime: start.Add(time.Hour), IsActive: true, Snapshots: make([]domain.Snapshot, 2)},
		{ID: "a", StartTime: start, EndTime: start.Add(30 * time.Minute), Snapshots: make([]domain.Snapshot, 3)},
	}
	now := start.Add(time.Hour + 10*time.Minute)
	require.NoError(t, w.WriteSessions(sessions, now))

	first := decodeLine(t, buf)
	require.Equal(t, "session", first["type"])
	require.Equal(t, "b", first["id"])
	require.Equal(t, true, first["isActive"])
	require.EqualValues(t, 10, first["durationMinutes"])
	_, hasEnd := first["endTime"]
	assert.False(t, hasEnd)

	second := decodeLine(t, buf)
	require.Equal(t, "a", second["id"])
	require.Equal(t, false, second["isActive"])
	require.EqualValues(t, 30, second["durationMinutes"])
}

func TestWriteUsageNeverNull(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	require.NoError(t, w.WriteUsage(nil))
	m := decodeLine(t, buf)
	apps, ok := m["apps"].([]interface{})
	require.True(t, ok)
	require.Empty(t, apps)
}

func TestWriteError(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	require.NoError(t, w.WriteError("STORE_OPEN_FAILED", "no such file", "check store.path"))
	m := decodeLine(t, buf)
	require.Equal(t, "error", m["type"])
	require.Equal(t, "STORE_OPEN_FAILED", m["code"])
	require.Equal(t, "no such file", m["message"])
	require.Equal(t, "check store.path", m["hint"])
}
