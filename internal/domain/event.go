package domain

import "strings"

// EventKind identifies the discrete event a snapshot may carry.
type EventKind int

const (
	EventNone EventKind = iota
	EventShutdown
	EventGameModeActivated
	EventGameModeDeactivated
	EventOther
)

const (
	eventShutdown            = "shutdown"
	eventGameModeActivated   = "game_mode_activated"
	eventGameModeDeactivated = "game_mode_deactivated"
)

// Event is the parsed form of the collector's event string. The collector
// encodes game mode events as "game_mode_activated <name>" where the name may
// itself contain spaces. Parsing happens once at ingestion so consumers never
// re-inspect the raw string.
type Event struct {
	Kind EventKind
	Game string // game name payload, game mode events only
	Raw  string
}

// ParseEvent parses a raw collector event string into an Event.
// An empty string means the snapshot carried no event.
func ParseEvent(raw string) Event {
	if raw == "" {
		return Event{Kind: EventNone}
	}
	if raw == eventShutdown {
		return Event{Kind: EventShutdown, Raw: raw}
	}
	if strings.HasPrefix(raw, eventGameModeActivated) {
		return Event{Kind: EventGameModeActivated, Game: eventPayload(raw), Raw: raw}
	}
	if strings.HasPrefix(raw, eventGameModeDeactivated) {
		return Event{Kind: EventGameModeDeactivated, Game: eventPayload(raw), Raw: raw}
	}
	return Event{Kind: EventOther, Raw: raw}
}

// eventPayload returns everything after the first space, rejoined, so game
// names containing spaces survive intact.
func eventPayload(raw string) string {
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// IsGameMode reports whether the event is a game mode transition.
func (e Event) IsGameMode() bool {
	return e.Kind == EventGameModeActivated || e.Kind == EventGameModeDeactivated
}

// String returns the raw collector representation.
func (e Event) String() string { return e.Raw }
