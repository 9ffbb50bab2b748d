package domain

import "time"

// Session is a maximal run of snapshots with no internal inactivity gap above
// the segmenter's threshold. Sessions never overlap and together cover every
// known snapshot exactly once.
type Session struct {
	ID        string     `json:"id"` // start timestamp, stable key
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime,omitzero"` // zero while the session is open
	Snapshots []Snapshot `json:"-"`
	IsActive  bool       `json:"isActive"`
}

// NewSession opens a session starting at the given snapshot.
func NewSession(first Snapshot) Session {
	return Session{
		ID:        first.Timestamp.Format(time.RFC3339Nano),
		StartTime: first.Timestamp,
		Snapshots: []Snapshot{first},
		IsActive:  true,
	}
}

// Closed reports whether the session has an explicit end.
func (s Session) Closed() bool { return !s.EndTime.IsZero() }

// End returns the session end, substituting now for a still-open session.
func (s Session) End(now time.Time) time.Time {
	if s.Closed() {
		return s.EndTime
	}
	return now
}

// Duration returns the session length, using now as the end while open.
func (s Session) Duration(now time.Time) time.Duration {
	return s.End(now).Sub(s.StartTime)
}
