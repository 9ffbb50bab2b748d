// Package usage ranks per-application accumulated foreground time.
package usage

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// AppMinutes is one ranked entry of the usage view.
type AppMinutes struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// Rank converts a snapshot's accumulated-seconds map into a list of
// (app, minutes) entries sorted by minutes descending. Minutes are rounded,
// not floored, matching the dashboard the collector feeds. Map iteration
// order is unspecified in Go, so ties break by name ascending to keep the
// output deterministic.
func Rank(appUsageSeconds map[string]float64) []AppMinutes {
	if len(appUsageSeconds) == 0 {
		return []AppMinutes{}
	}

	entries := lo.MapToSlice(appUsageSeconds, func(name string, seconds float64) AppMinutes {
		return AppMinutes{Name: name, Minutes: int(math.Round(seconds / 60))}
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Minutes != entries[j].Minutes {
			return entries[i].Minutes > entries[j].Minutes
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Top returns at most n leading entries without copying the backing array.
func Top(entries []AppMinutes, n int) []AppMinutes {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}
