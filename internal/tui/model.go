// Package tui renders the live dashboard in the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/wtw/internal/dashboard"
	"github.com/vburojevic/wtw/internal/liveness"
	"github.com/vburojevic/wtw/internal/output"
	"github.com/vburojevic/wtw/internal/usage"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	onlineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	offlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// viewMsg carries a fresh dashboard view into the program.
type viewMsg dashboard.View

// streamClosedMsg signals that the watcher stopped.
type streamClosedMsg struct{}

// Model is the bubbletea model for the live dashboard.
type Model struct {
	views <-chan dashboard.View
	view  dashboard.View
	ready bool
	width int
	bar   progress.Model
}

// New creates a dashboard model consuming the given view stream.
func New(views <-chan dashboard.View) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return Model{views: views, bar: bar}
}

func waitForView(views <-chan dashboard.View) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-views
		if !ok {
			return streamClosedMsg{}
		}
		return viewMsg(view)
	}
}

// Init starts consuming views.
func (m Model) Init() tea.Cmd {
	return waitForView(m.views)
}

// Update handles incoming views and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = dashboard.View(msg)
		m.ready = true
		return m, waitForView(m.views)
	case streamClosedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Waiting for telemetry...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("wtw dashboard"))
	b.WriteString("\n\n")

	b.WriteString(cardStyle.Render(m.statusCard()))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(m.gameModeCard()))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(m.sessionsCard()))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(m.usageCard()))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusCard() string {
	v := m.view

	badge := offlineStyle.Render("OFFLINE")
	if v.Online {
		badge = onlineStyle.Render("ONLINE")
	}

	lines := []string{
		"Device status  " + badge,
		labelStyle.Render("Last update: ") + output.FormatTime(v.LastSeen),
		m.bar.ViewAs(float64(v.Countdown)/float64(liveness.CountdownSeconds)) +
			fmt.Sprintf(" %ds", v.Countdown),
	}

	if snap := v.Latest; snap != nil {
		lines = append(lines,
			labelStyle.Render("Battery: ")+snap.Battery.String(),
			labelStyle.Render("Active window: ")+snap.ActiveApp,
		)
		if !v.SessionStart.IsZero() {
			active := v.ComputedAt.Sub(v.SessionStart)
			lines = append(lines, labelStyle.Render("Active time: ")+output.FormatDuration(active))
		}
		lines = append(lines, labelStyle.Render("Idle time: ")+output.FormatMinutes(int(snap.IdleTimeSecs/60)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) gameModeCard() string {
	gm := m.view.GameMode
	if !gm.Active {
		return "Game mode      " + labelStyle.Render("Inactive")
	}
	return strings.Join([]string{
		"Game mode      " + onlineStyle.Render("Active"),
		labelStyle.Render("Game: ") + gm.Name,
		labelStyle.Render("Playing time: ") + output.FormatMinutes(gm.PlayingMinutes),
	}, "\n")
}

func (m Model) sessionsCard() string {
	sessions := m.view.Sessions
	if len(sessions) == 0 {
		return "Sessions       " + labelStyle.Render("none")
	}

	lines := []string{"Sessions"}
	for _, s := range sessions {
		state := labelStyle.Render("ended")
		if s.IsActive {
			state = onlineStyle.Render("active")
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s (%d snapshots)",
			output.FormatTime(s.StartTime),
			output.FormatDuration(s.Duration(m.view.ComputedAt)),
			state,
			len(s.Snapshots),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) usageCard() string {
	entries := usage.Top(m.view.AppUsage, 10)
	if len(entries) == 0 {
		return "App usage      " + labelStyle.Render("none")
	}

	lines := []string{"App usage (minutes)"}
	max := entries[0].Minutes
	if max == 0 {
		max = 1
	}
	for _, e := range entries {
		width := e.Minutes * 20 / max
		lines = append(lines, fmt.Sprintf("%-24s %s %s",
			truncate(e.Name, 24),
			strings.Repeat("█", width),
			output.FormatMinutes(e.Minutes),
		))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
