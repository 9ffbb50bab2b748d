package tui

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/usage"
)

func sampleView() dashboard.View {
	now := time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)
	return dashboard.View{
		Latest: &domain.Snapshot{
			Timestamp:    now.Add(-30 * time.Second),
			Battery:      domain.Battery{Percent: 72, Known: true},
			ActiveApp:    "code.exe",
			IdleTimeSecs: 12,
		},
		Online:     true,
		LastSeen:   now.Add(-30 * time.Second),
		Countdown:  30,
		AppUsage:   []usage.AppMinutes{{Name: "code.exe", Minutes: 45}},
		GameMode:   gamemode.Status{Active: true, Name: "SUPERHOT.exe", PlayingMinutes: 12},
		ComputedAt: now,
	}
}

func TestModelWaitsBeforeFirstView(t *testing.T) {
	m := New(nil)
	assert.Contains(t, m.View(), "Waiting for telemetry")
}

func TestModelRendersView(t *testing.T) {
	m := New(nil)
	updated, cmd := m.Update(viewMsg(sampleView()))
	require.NotNil(t, cmd)

	out := updated.View()
	assert.Contains(t, out, "ONLINE")
	assert.Contains(t, out, "72%")
	assert.Contains(t, out, "code.exe")
	assert.Contains(t, out, "SUPERHOT.exe")
	assert.Contains(t, out, "45m")
}

func TestModelQuitsOnKey(t *testing.T) {
	m := New(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short ascii untouched", "code.exe", 24, "code.exe"},
		{"long ascii cut with ellipsis", "averyverylongappname.exe", 10, "averyvery…"},
		{"multibyte name cut on rune boundary", "ゲームランチャー.exe", 8, "ゲームランチャ…"},
		{"exact length untouched", "12345678", 8, "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestModelQuitsWhenStreamCloses(t *testing.T) {
	m := New(nil)
	_, cmd := m.Update(streamClosedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
