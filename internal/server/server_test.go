package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/usage"
)

func get(t *testing.T, s *Server, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestHealthz(t *testing.T) {
	s := New("127.0.0.1", 0)
	code, body := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestViewBeforeFirstComputation(t *testing.T) {
	s := New("127.0.0.1", 0)
	code, _ := get(t, s, "/api/view")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestStatusAndGameMode(t *testing.T) {
	s := New("127.0.0.1", 0)
	s.Update(dashboard.View{
		Online:   true,
		LastSeen: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Latest: &domain.Snapshot{
			Battery:   domain.Battery{Percent: 72, Known: true},
			ActiveApp: "steam.exe",
		},
		GameMode: gamemode.Status{Active: true, Name: "SUPERHOT.exe", PlayingMinutes: 12},
	})

	code, body := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["isOnline"])
	assert.Equal(t, "72%", body["battery"])
	assert.Equal(t, "steam.exe", body["activeApp"])

	code, body = get(t, s, "/api/gamemode")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["active"])
	assert.Equal(t, "SUPERHOT.exe", body["name"])
	assert.EqualValues(t, 12, body["playingMinutes"])
}

func TestSessionsAndUsageNeverNull(t *testing.T) {
	s := New("127.0.0.1", 0)
	s.Update(dashboard.View{AppUsage: []usage.AppMinutes{{Name: "code.exe", Minutes: 5}}})

	code, body := get(t, s, "/api/sessions")
	require.Equal(t, http.StatusOK, code)
	sessions, ok := body["sessions"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, sessions)

	code, body = get(t, s, "/api/usage")
	require.Equal(t, http.StatusOK, code)
	apps, ok := body["apps"].([]interface{})
	require.True(t, ok)
	require.Len(t, apps, 1)
}
