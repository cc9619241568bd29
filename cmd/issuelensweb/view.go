package main

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/issuelens/issuelens/internal/analyzer"
	gh "github.com/issuelens/issuelens/internal/github"
)

// dashboardView carries everything the index template renders. Table cells
// are preformatted strings so the template stays free of formatting logic.
type dashboardView struct {
	Repo   string
	State  string
	Filter string
	Day    string
	From   string
	To     string
	N      string

	Error string

	HasReport     bool
	NoData        bool
	Total         int
	Open          int
	Closed        int
	AvgResolution string
	FetchedAt     string

	Issues     []issueRowView
	Milestones []gh.Milestone
	ExportURL  string

	DayChartJSON     template.JS
	WeekdayChartJSON template.JS
}

type issueRowView struct {
	Number     int
	Title      string
	State      string
	Author     string
	Labels     string
	CreatedAt  string
	ClosedAt   string
	Resolution string
	URL        string
}

func newDashboardView(r *http.Request) dashboardView {
	query := r.URL.Query()
	state := query.Get("state")
	if state == "" {
		state = string(gh.StateAll)
	}
	filterKind := query.Get("filter")
	if filterKind == "" {
		filterKind = "all_time"
	}
	return dashboardView{
		Repo:   query.Get("repo"),
		State:  state,
		Filter: filterKind,
		Day:    query.Get("day"),
		From:   query.Get("from"),
		To:     query.Get("to"),
		N:      query.Get("n"),
	}
}

func (v *dashboardView) populate(report analyzer.Report, milestones []gh.Milestone) {
	v.HasReport = true
	v.NoData = report.NoData()
	v.Total = report.Snapshot.Total
	v.Open = report.Snapshot.Open
	v.Closed = report.Snapshot.Closed
	v.FetchedAt = report.FetchedAt.Format(time.RFC3339)
	v.Milestones = milestones
	v.ExportURL = exportURL(*v)

	v.AvgResolution = "n/a"
	if report.Snapshot.AvgResolutionDays != nil {
		v.AvgResolution = strconv.FormatFloat(*report.Snapshot.AvgResolutionDays, 'f', 2, 64) + " days"
	}

	v.Issues = make([]issueRowView, 0, len(report.Issues))
	for _, row := range report.Issues {
		v.Issues = append(v.Issues, newIssueRowView(row))
	}

	v.DayChartJSON = chartJSON(dayChartData(report))
	v.WeekdayChartJSON = chartJSON(weekdayChartData(report))
}

func newIssueRowView(row analyzer.IssueRow) issueRowView {
	out := issueRowView{
		Number:    row.Number,
		Title:     row.Title,
		State:     row.State,
		Author:    row.Author,
		Labels:    joinLabels(row.Labels),
		CreatedAt: row.CreatedAt.Format("2006-01-02"),
		URL:       row.URL,
	}
	if row.ClosedAt != nil {
		out.ClosedAt = row.ClosedAt.Format("2006-01-02")
	}
	if row.ResolutionDays != nil {
		out.Resolution = strconv.FormatFloat(*row.ResolutionDays, 'f', 2, 64)
	}
	return out
}

func joinLabels(labels []string) string {
	out := ""
	for i, label := range labels {
		if i > 0 {
			out += ", "
		}
		out += label
	}
	return out
}

type chartData struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

func dayChartData(report analyzer.Report) chartData {
	data := chartData{Labels: []string{}, Counts: []int{}}
	for _, dc := range report.Snapshot.CreatedByDay {
		data.Labels = append(data.Labels, dc.Day)
		data.Counts = append(data.Counts, dc.Count)
	}
	return data
}

func weekdayChartData(report analyzer.Report) chartData {
	data := chartData{Labels: []string{}, Counts: []int{}}
	for _, wc := range report.Snapshot.CreatedByWeekday {
		data.Labels = append(data.Labels, wc.Weekday.String())
		data.Counts = append(data.Counts, wc.Count)
	}
	return data
}

func chartJSON(data chartData) template.JS {
	payload, err := json.Marshal(data)
	if err != nil {
		return template.JS(`{"labels":[],"counts":[]}`)
	}
	return template.JS(payload)
}

func exportURL(v dashboardView) string {
	query := url.Values{}
	query.Set("repo", v.Repo)
	query.Set("state", v.State)
	query.Set("filter", v.Filter)
	if v.Day != "" {
		query.Set("day", v.Day)
	}
	if v.From != "" {
		query.Set("from", v.From)
	}
	if v.To != "" {
		query.Set("to", v.To)
	}
	if v.N != "" {
		query.Set("n", v.N)
	}
	return "/export.csv?" + query.Encode()
}
