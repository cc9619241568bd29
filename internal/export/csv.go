// Package export renders an analysis report as CSV for download or local
// files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/issuelens/issuelens/internal/analyzer"
	gh "github.com/issuelens/issuelens/internal/github"
)

// csvHeader is the fixed column layout. One row per issue in the filtered
// set, rows in the same order the report holds them.
var csvHeader = []string{
	"Issue #",
	"Title",
	"Created At",
	"Closed At",
	"Resolution Time (Days)",
	"State",
	"Author",
	"Labels",
}

const fileNameDateFormat = "2006-01-02"

// WriteCSV writes the report's issue rows to w. Open issues leave the
// closed-at and resolution cells empty rather than writing a placeholder.
func WriteCSV(w io.Writer, report analyzer.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range report.Issues {
		if err := cw.Write(csvRow(row)); err != nil {
			return fmt.Errorf("write csv row for issue #%d: %w", row.Number, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(row analyzer.IssueRow) []string {
	closedAt := ""
	if row.ClosedAt != nil {
		closedAt = row.ClosedAt.Format(time.RFC3339)
	}
	resolution := ""
	if row.ResolutionDays != nil {
		resolution = strconv.FormatFloat(*row.ResolutionDays, 'f', 2, 64)
	}
	return []string{
		strconv.Itoa(row.Number),
		row.Title,
		row.CreatedAt.Format(time.RFC3339),
		closedAt,
		resolution,
		row.State,
		row.Author,
		strings.Join(row.Labels, ", "),
	}
}

// FileName builds the default export name, owner-repo-issues-YYYY-MM-DD.csv.
func FileName(ref gh.RepoRef, now time.Time) string {
	return fmt.Sprintf("%s-%s-issues-%s.csv", ref.Owner, ref.Repo, now.Format(fileNameDateFormat))
}
