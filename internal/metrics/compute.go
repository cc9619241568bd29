// Package metrics derives aggregate statistics from filtered issue sets.
package metrics

import (
	"sort"
	"time"

	gh "github.com/issuelens/issuelens/internal/github"
)

const (
	secondsPerDay = 86400
	dayFormat     = "2006-01-02"
)

// DayCount is one point on the per-day creation timeline.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// WeekdayCount holds the creation count for one day of the week.
type WeekdayCount struct {
	Weekday time.Weekday `json:"weekday"`
	Count   int          `json:"count"`
}

// Snapshot aggregates derived metrics over one filtered issue set. It is
// recomputed from scratch for every analysis run. AvgResolutionDays is nil
// when the set contains no closed issues; zero would misreport instant
// resolution.
type Snapshot struct {
	Total             int            `json:"total"`
	Open              int            `json:"open"`
	Closed            int            `json:"closed"`
	AvgResolutionDays *float64       `json:"avg_resolution_days,omitempty"`
	CreatedByDay      []DayCount     `json:"created_by_day"`
	CreatedByWeekday  []WeekdayCount `json:"created_by_weekday"`
}

// weekdayOrder is the canonical bucket order for weekday grouping. All seven
// buckets are always present in a Snapshot, zero-filled when empty.
var weekdayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ResolutionDays returns the elapsed time between creation and closure in
// fractional days. ok is false while the issue is open. Malformed data where
// closure precedes creation yields a negative value on purpose: it is a
// data-quality signal to surface, not something to clamp.
func ResolutionDays(issue gh.Issue) (days float64, ok bool) {
	if issue.ClosedAt == nil {
		return 0, false
	}
	return issue.ClosedAt.Sub(issue.CreatedAt).Seconds() / secondsPerDay, true
}

// Compute derives a Snapshot from one filtered issue set.
func Compute(issues []gh.Issue) Snapshot {
	snap := Snapshot{Total: len(issues)}

	var resolutionSum float64
	resolved := 0
	byDay := make(map[string]int)
	byWeekday := make(map[time.Weekday]int)

	for _, issue := range issues {
		switch issue.State {
		case "open":
			snap.Open++
		case "closed":
			snap.Closed++
		}

		if days, ok := ResolutionDays(issue); ok {
			resolutionSum += days
			resolved++
		}

		byDay[issue.CreatedAt.Format(dayFormat)]++
		byWeekday[issue.CreatedAt.Weekday()]++
	}

	if resolved > 0 {
		avg := resolutionSum / float64(resolved)
		snap.AvgResolutionDays = &avg
	}

	snap.CreatedByDay = sortedDayCounts(byDay)

	snap.CreatedByWeekday = make([]WeekdayCount, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		snap.CreatedByWeekday = append(snap.CreatedByWeekday, WeekdayCount{
			Weekday: weekday,
			Count:   byWeekday[weekday],
		})
	}

	return snap
}

func sortedDayCounts(byDay map[string]int) []DayCount {
	out := make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		out = append(out, DayCount{Day: day, Count: count})
	}
	// Day strings are zero-padded ISO dates, so lexical order is date order.
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
