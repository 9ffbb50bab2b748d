// Package output renders derived views as NDJSON for machines or styled text
// for terminals.
package output

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/usage"
)

// SchemaVersion identifies the NDJSON record contract.
const SchemaVersion = 1

// NDJSONWriter emits one JSON record per line. Safe for concurrent use.
type NDJSONWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

func (w *NDJSONWriter) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(v)
}

// viewRecord is a full dashboard view delivery.
type viewRecord struct {
	Type          string `json:"type"` // "view"
	SchemaVersion int    `json:"schemaVersion"`
	dashboard.View
}

// WriteView emits the complete derived view.
func (w *NDJSONWriter) WriteView(view dashboard.View) error {
	return w.write(viewRecord{Type: "view", SchemaVersion: SchemaVersion, View: view})
}

// statusRecord summarizes device status for one-shot queries.
type statusRecord struct {
	Type          string    `json:"type"` // "status"
	SchemaVersion int       `json:"schemaVersion"`
	Online        bool      `json:"isOnline"`
	LastLogTime   time.Time `json:"lastLogTime,omitzero"`
	Battery       string    `json:"battery,omitempty"`
	ActiveApp     string    `json:"activeApp,omitempty"`
	WindowTitle   string    `json:"windowTitle,omitempty"`
	IdleMinutes   int       `json:"idleMinutes"`
	SessionStart  time.Time `json:"sessionStartTime,omitzero"`
	RunningApps   []string  `json:"runningApps,omitempty"`
}

// WriteStatus emits the status card fields of a view.
func (w *NDJSONWriter) WriteStatus(view dashboard.View) error {
	rec := statusRecord{
		Type:          "status",
		SchemaVersion: SchemaVersion,
		Online:        view.Online,
		LastLogTime:   view.LastSeen,
		SessionStart:  view.SessionStart,
	}
	if view.Latest != nil {
		rec.Battery = view.Latest.Battery.String()
		rec.ActiveApp = view.Latest.ActiveApp
		rec.WindowTitle = view.Latest.WindowTitle
		rec.IdleMinutes = int(view.Latest.IdleTimeSecs / 60)
		rec.RunningApps = view.Latest.RunningApps
	}
	return w.write(rec)
}

// sessionRecord is one segmented activity session.
type sessionRecord struct {
	Type            string    `json:"type"` // "session"
	SchemaVersion   int       `json:"schemaVersion"`
	ID              string    `json:"id"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime,omitzero"`
	IsActive        bool      `json:"isActive"`
	Snapshots       int       `json:"snapshots"`
	DurationMinutes int       `json:"durationMinutes"`
}

// WriteSessions emits one record per session, preserving the given order.
func (w *NDJSONWriter) WriteSessions(sessions []domain.Session, now time.Time) error {
	for _, s := range sessions {
		rec := sessionRecord{
			Type:            "session",
			SchemaVersion:   SchemaVersion,
			ID:              s.ID,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			IsActive:        s.IsActive,
			Snapshots:       len(s.Snapshots),
			DurationMinutes: int(s.Duration(now).Minutes()),
		}
		if err := w.write(rec); err != nil {
			return err
		}
	}
	return nil
}

// usageRecord is the ranked app usage of the latest snapshot.
type usageRecord struct {
	Type          string             `json:"type"` // "app_usage"
	SchemaVersion int                `json:"schemaVersion"`
	Apps          []usage.AppMinutes `json:"apps"`
}

// WriteUsage emits the ranked usage list.
func (w *NDJSONWriter) WriteUsage(entries []usage.AppMinutes) error {
	if entries == nil {
		entries = []usage.AppMinutes{}
	}
	return w.write(usageRecord{Type: "app_usage", SchemaVersion: SchemaVersion, Apps: entries})
}

// gameModeRecord is the current game mode view.
type gameModeRecord struct {
	Type          string `json:"type"` // "game_mode"
	SchemaVersion int    `json:"schemaVersion"`
	gamemode.Status
}

// WriteGameMode emits the game mode view.
func (w *NDJSONWriter) WriteGameMode(status gamemode.Status) error {
	return w.write(gameModeRecord{Type: "game_mode", SchemaVersion: SchemaVersion, Status: status})
}

// errorRecord is a machine-readable failure.
type errorRecord struct {
	Type          string `json:"type"` // "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteError emits a machine-readable failure record.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	rec := errorRecord{Type: "error", SchemaVersion: SchemaVersion, Code: code, Message: message}
	if len(hint) > 0 {
		rec.Hint = hint[0]
	}
	return w.write(rec)
}

// warningRecord is a non-fatal anomaly.
type warningRecord struct {
	Type          string `json:"type"` // "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// WriteWarning emits a non-fatal warning record.
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.write(warningRecord{Type: "warning", SchemaVersion: SchemaVersion, Message: message})
}
