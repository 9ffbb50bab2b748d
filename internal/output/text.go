package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/gamemode"
	"github.com/vburojevic/wtw/internal/liveness"
	"github.com/vburojevic/wtw/internal/usage"
)

var (
	onlineBadge  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	offlineBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimText      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TextWriter renders views for humans. Styling is dropped automatically when
// the destination is not a terminal.
type TextWriter struct {
	w      io.Writer
	styled bool
}

// NewTextWriter creates a text writer, detecting TTY support on w.
func NewTextWriter(w io.Writer) *TextWriter {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TextWriter{w: w, styled: styled}
}

func (t *TextWriter) render(style lipgloss.Style, s string) string {
	if !t.styled {
		return s
	}
	return style.Render(s)
}

// Status renders the device status card.
func (t *TextWriter) Status(view dashboard.View, now time.Time) error {
	badge := t.render(offlineBadge, "OFFLINE")
	if view.Online {
		badge = t.render(onlineBadge, "ONLINE")
	}
	fmt.Fprintf(t.w, "Device: %s\n", badge)
	fmt.Fprintf(t.w, "Last update: %s\n", FormatTime(view.LastSeen))
	if view.Countdown > 0 {
		fmt.Fprintf(t.w, "Freshness: %s %ds\n", t.countdownBar(view.Countdown), view.Countdown)
	}

	if view.Latest == nil {
		fmt.Fprintln(t.w, t.render(dimText, "No snapshots observed yet."))
		return nil
	}

	snap := view.Latest
	fmt.Fprintf(t.w, "Battery: %s\n", snap.Battery)
	fmt.Fprintf(t.w, "Active window: %s", snap.ActiveApp)
	if snap.WindowTitle != "" {
		fmt.Fprintf(t.w, " (%s)", snap.WindowTitle)
	}
	fmt.Fprintln(t.w)

	if !view.SessionStart.IsZero() {
		fmt.Fprintf(t.w, "Active time: %s\n", FormatDuration(now.Sub(view.SessionStart)))
	}
	idleMinutes := int(snap.IdleTimeSecs / 60)
	fmt.Fprintf(t.w, "Idle time: %s\n", FormatMinutes(idleMinutes))
	if snap.IdleTimeSecs > 300 {
		fmt.Fprintln(t.w, t.render(dimText, "User is currently idle"))
	}
	if len(snap.RunningApps) > 0 {
		fmt.Fprintf(t.w, "Running apps (%d): %s\n", len(snap.RunningApps), strings.Join(snap.RunningApps, ", "))
	}
	return nil
}

// countdownBar renders the freshness countdown as a 10-cell bar.
func (t *TextWriter) countdownBar(seconds int) string {
	cells := seconds * 10 / liveness.CountdownSeconds
	if cells > 10 {
		cells = 10
	}
	return "[" + strings.Repeat("#", cells) + strings.Repeat(".", 10-cells) + "]"
}

// Sessions renders a session table in the given order.
func (t *TextWriter) Sessions(sessions []domain.Session, now time.Time) error {
	if len(sessions) == 0 {
		fmt.Fprintln(t.w, t.render(dimText, "No sessions."))
		return nil
	}

	table := tablewriter.NewTable(t.w)
	table.Header("Started", "Ended", "Duration", "Snapshots", "State")
	for _, s := range sessions {
		state := "Ended"
		ended := FormatTime(s.EndTime)
		if s.IsActive {
			state = "Active"
			ended = "-"
		}
		table.Append([]string{
			FormatTime(s.StartTime),
			ended,
			FormatDuration(s.Duration(now)),
			fmt.Sprintf("%d", len(s.Snapshots)),
			state,
		})
	}
	return table.Render()
}

// Usage renders the ranked usage table.
func (t *TextWriter) Usage(entries []usage.AppMinutes) error {
	if len(entries) == 0 {
		fmt.Fprintln(t.w, t.render(dimText, "No usage recorded."))
		return nil
	}

	table := tablewriter.NewTable(t.w)
	table.Header("App", "Time")
	for _, e := range entries {
		table.Append([]string{e.Name, FormatMinutes(e.Minutes)})
	}
	return table.Render()
}

// GameMode renders the game mode card.
func (t *TextWriter) GameMode(status gamemode.Status) error {
	if !status.Active {
		fmt.Fprint(t.w, "Game mode: Inactive")
		if status.Name != "" && status.PlayingMinutes > 0 {
			fmt.Fprintf(t.w, " (last: %s, %s)", status.Name, FormatMinutes(status.PlayingMinutes))
		}
		fmt.Fprintln(t.w)
		return nil
	}
	fmt.Fprintf(t.w, "Game mode: %s\n", t.render(onlineBadge, "Active"))
	fmt.Fprintf(t.w, "Game: %s\n", status.Name)
	fmt.Fprintf(t.w, "Playing time: %s\n", FormatMinutes(status.PlayingMinutes))
	return nil
}
