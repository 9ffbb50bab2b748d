package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// timestampLayouts are the formats the collector is known to emit. The Windows
// collector writes datetime.isoformat() which carries no zone; such values are
// interpreted in local time.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a collector timestamp string. A failure here is a
// data-quality error: callers drop the snapshot and warn, they never abort.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// Battery is a charge percentage. The collector reports "N/A" on machines
// without a battery, so the JSON value is either a number or a string.
type Battery struct {
	Percent float64
	Known   bool
}

// UnmarshalJSON accepts either a numeric percentage or any string sentinel.
func (b *Battery) UnmarshalJSON(data []byte) error {
	var pct float64
	if err := json.Unmarshal(data, &pct); err == nil {
		b.Percent = pct
		b.Known = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	*b = Battery{}
	return nil
}

// MarshalJSON mirrors the collector encoding.
func (b Battery) MarshalJSON() ([]byte, error) {
	if !b.Known {
		return json.Marshal("N/A")
	}
	return json.Marshal(b.Percent)
}

func (b Battery) String() string {
	if !b.Known {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", b.Percent)
}

// Snapshot is one telemetry sample of device state at an instant. Snapshots
// are immutable once observed; every derived view is recomputed from the full
// known set.
type Snapshot struct {
	Timestamp        time.Time
	BootTime         time.Time
	Battery          Battery
	ActiveApp        string
	WindowTitle      string
	IdleTimeSecs     float64
	RunningApps      []string
	ResumedFromSleep bool
	// AppUsageSeconds is accumulated foreground seconds per app. Values are
	// non-decreasing within one boot period and may reset across boots; no
	// cross-boot correction is attempted.
	AppUsageSeconds map[string]float64
	Event           Event
	GameModeActive  *bool
	GameName        string
}

// snapshotWire is the collector's JSON schema.
type snapshotWire struct {
	Timestamp        string             `json:"timestamp"`
	BootTime         string             `json:"boot_time,omitempty"`
	Battery          Battery            `json:"battery"`
	ActiveApp        string             `json:"active_app,omitempty"`
	WindowTitle      string             `json:"window_title,omitempty"`
	IdleTimeSecs     float64            `json:"idle_time_secs,omitempty"`
	Apps             []string           `json:"apps,omitempty"`
	ResumedFromSleep bool               `json:"resumed_from_sleep,omitempty"`
	AppUsageTimes    map[string]float64 `json:"app_usage_times,omitempty"`
	Event            string             `json:"event,omitempty"`
	GameModeActive   *bool              `json:"game_mode_active,omitempty"`
	GameName         string             `json:"game_name,omitempty"`
}

// UnmarshalJSON decodes a collector record, parsing the timestamp and event
// exactly once. An unparsable timestamp fails the whole record; an unparsable
// boot_time is ignored since nothing orders on it.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ts, err := ParseTimestamp(w.Timestamp)
	if err != nil {
		return err
	}
	bootTime := time.Time{}
	if w.BootTime != "" {
		if t, err := ParseTimestamp(w.BootTime); err == nil {
			bootTime = t
		}
	}
	*s = Snapshot{
		Timestamp:        ts,
		BootTime:         bootTime,
		Battery:          w.Battery,
		ActiveApp:        w.ActiveApp,
		WindowTitle:      w.WindowTitle,
		IdleTimeSecs:     w.IdleTimeSecs,
		RunningApps:      w.Apps,
		ResumedFromSleep: w.ResumedFromSleep,
		AppUsageSeconds:  w.AppUsageTimes,
		Event:            ParseEvent(w.Event),
		GameModeActive:   w.GameModeActive,
		GameName:         w.GameName,
	}
	return nil
}

// MarshalJSON re-encodes in the collector schema.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := snapshotWire{
		Timestamp:        s.Timestamp.Format(time.RFC3339Nano),
		Battery:          s.Battery,
		ActiveApp:        s.ActiveApp,
		WindowTitle:      s.WindowTitle,
		IdleTimeSecs:     s.IdleTimeSecs,
		Apps:             s.RunningApps,
		ResumedFromSleep: s.ResumedFromSleep,
		AppUsageTimes:    s.AppUsageSeconds,
		Event:            s.Event.Raw,
		GameModeActive:   s.GameModeActive,
		GameName:         s.GameName,
	}
	if !s.BootTime.IsZero() {
		w.BootTime = s.BootTime.Format(time.RFC3339Nano)
	}
	return json.Marshal(w)
}

// Latest returns the snapshot with the maximum timestamp. The feed makes no
// ordering promise, so this never assumes position.
func Latest(snaps []Snapshot) (Snapshot, bool) {
	if len(snaps) == 0 {
		return Snapshot{}, false
	}
	return lo.MaxBy(snaps, func(a, b Snapshot) bool {
		return a.Timestamp.After(b.Timestamp)
	}), true
}
