package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/issuelens/issuelens/internal/analyzer"
)

// FormatReport renders a human-readable analysis summary.
func FormatReport(report analyzer.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "repo=%s state=%s total=%d open=%d closed=%d\n",
		report.Repo, report.State, report.Snapshot.Total, report.Snapshot.Open, report.Snapshot.Closed)

	if report.NoData() {
		b.WriteString("no issues matched the selected criteria\n")
		return strings.TrimSuffix(b.String(), "\n")
	}

	avg := "n/a (no closed issues)"
	if report.Snapshot.AvgResolutionDays != nil {
		avg = strconv.FormatFloat(*report.Snapshot.AvgResolutionDays, 'f', 2, 64) + " days"
	}
	fmt.Fprintf(&b, "avg resolution: %s\n", avg)

	parts := make([]string, 0, len(report.Snapshot.CreatedByWeekday))
	for _, wc := range report.Snapshot.CreatedByWeekday {
		parts = append(parts, fmt.Sprintf("%s=%d", wc.Weekday.String()[:3], wc.Count))
	}
	fmt.Fprintf(&b, "created by weekday: %s\n", strings.Join(parts, " "))

	return strings.TrimSuffix(b.String(), "\n")
}
