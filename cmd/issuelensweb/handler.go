package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/issuelens/issuelens/internal/analyzer"
	"github.com/issuelens/issuelens/internal/export"
	"github.com/issuelens/issuelens/internal/filter"
	gh "github.com/issuelens/issuelens/internal/github"
	"github.com/issuelens/issuelens/internal/parser"
	"github.com/issuelens/issuelens/internal/webmetrics"
	webassets "github.com/issuelens/issuelens/web"
)

const dayQueryLayout = "2006-01-02"

// Analyzer is the slice of the analysis service the dashboard needs.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (analyzer.Report, error)
	Milestones(ctx context.Context, ref gh.RepoRef) ([]gh.Milestone, error)
}

type webDeps struct {
	analyzer   Analyzer
	repoParser parser.RepoParser
	tmpl       *template.Template
	log        *logrus.Logger
}

type webHandler struct {
	analyzer   Analyzer
	repoParser parser.RepoParser
	tmpl       *template.Template
	log        *logrus.Logger
}

func newWebHandler(deps webDeps) http.Handler {
	tmpl := deps.tmpl
	if tmpl == nil {
		tmpl = template.Must(template.New("index").Parse(defaultIndexTemplate))
	}
	log := deps.log
	if log == nil {
		log = logrus.New()
	}
	repoParser := deps.repoParser
	if repoParser == nil {
		repoParser = parser.New()
	}

	handler := &webHandler{
		analyzer:   deps.analyzer,
		repoParser: repoParser,
		tmpl:       tmpl,
		log:        log,
	}

	router := mux.NewRouter()
	router.Use(webmetrics.Middleware)
	router.PathPrefix("/static/").Handler(http.FileServer(http.FS(webassets.FS)))
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", handler.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/export.csv", handler.handleExport).Methods(http.MethodGet)
	router.HandleFunc("/dashboard", handler.handleDashboard).Methods(http.MethodGet)
	router.HandleFunc("/", handler.handleDashboard).Methods(http.MethodGet)

	return router
}

func (h *webHandler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok\n")); err != nil {
		h.log.WithError(err).Warn("write healthz response")
	}
}

func (h *webHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := newDashboardView(r)

	if strings.TrimSpace(r.URL.Query().Get("repo")) == "" {
		h.render(w, http.StatusOK, view)
		return
	}

	req, err := h.parseAnalysisRequest(r)
	if err != nil {
		view.Error = err.Error()
		h.render(w, http.StatusBadRequest, view)
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		h.log.WithError(err).WithField("repo", req.Repo).Error("analyze failed")
		view.Error = "analysis failed: " + err.Error()
		h.render(w, fetchHTTPStatusFromError(err), view)
		return
	}

	milestones, err := h.analyzer.Milestones(r.Context(), req.Repo)
	if err != nil {
		// Milestones are a side panel; the dashboard still renders without them.
		h.log.WithError(err).WithField("repo", req.Repo).Warn("list milestones failed")
	}

	view.populate(report, milestones)
	h.render(w, http.StatusOK, view)
}

func (h *webHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseAnalysisRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		h.log.WithError(err).WithField("repo", req.Repo).Error("analyze for export failed")
		http.Error(w, "analysis failed", fetchHTTPStatusFromError(err))
		return
	}

	fileName := export.FileName(report.Repo, report.FetchedAt)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := export.WriteCSV(w, report); err != nil {
		h.log.WithError(err).Error("write csv export")
	}
}

func (h *webHandler) parseAnalysisRequest(r *http.Request) (analyzer.Request, error) {
	query := r.URL.Query()

	ref, err := h.repoParser.Parse(query.Get("repo"))
	if err != nil {
		return analyzer.Request{}, fmt.Errorf("invalid repository: %w", err)
	}

	rawState := query.Get("state")
	if rawState == "" {
		rawState = string(gh.StateAll)
	}
	state, err := gh.ParseState(rawState)
	if err != nil {
		return analyzer.Request{}, fmt.Errorf("invalid state %q", rawState)
	}

	spec, err := parseFilterQuery(query.Get("filter"), query)
	if err != nil {
		return analyzer.Request{}, err
	}

	return analyzer.Request{Repo: ref, State: state, Filter: spec}, nil
}

func parseFilterQuery(rawKind string, query map[string][]string) (filter.Spec, error) {
	first := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	if rawKind == "" {
		return filter.AllTime(), nil
	}
	kind, err := filter.ParseKind(rawKind)
	if err != nil {
		return filter.Spec{}, fmt.Errorf("invalid filter %q", rawKind)
	}

	switch kind {
	case filter.KindAllTime:
		return filter.AllTime(), nil
	case filter.KindDay:
		day, err := time.Parse(dayQueryLayout, first("day"))
		if err != nil {
			return filter.Spec{}, fmt.Errorf("invalid day %q", first("day"))
		}
		return filter.Day(day), nil
	case filter.KindRange:
		start, err := time.Parse(dayQueryLayout, first("from"))
		if err != nil {
			return filter.Spec{}, fmt.Errorf("invalid from %q", first("from"))
		}
		end, err := time.Parse(dayQueryLayout, first("to"))
		if err != nil {
			return filter.Spec{}, fmt.Errorf("invalid to %q", first("to"))
		}
		if end.Before(start) {
			return filter.Spec{}, fmt.Errorf("range end %q is before start %q", first("to"), first("from"))
		}
		return filter.Range(start, endOfDay(end)), nil
	default:
		n, err := strconv.Atoi(first("n"))
		if err != nil || n < 1 {
			return filter.Spec{}, fmt.Errorf("invalid window size %q", first("n"))
		}
		switch kind {
		case filter.KindLastDays:
			return filter.LastDays(n), nil
		case filter.KindLastWeeks:
			return filter.LastWeeks(n), nil
		default:
			return filter.LastMonths(n), nil
		}
	}
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (h *webHandler) render(w http.ResponseWriter, status int, view dashboardView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.Execute(w, view); err != nil {
		h.log.WithError(err).Error("render dashboard template")
	}
}

func fetchHTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if gh.IsRateLimitError(err) {
		return http.StatusTooManyRequests
	}
	if gh.IsAuthError(err) {
		return authHTTPStatus(err)
	}

	if status, ok := gh.StatusCode(err); ok {
		switch {
		case status == http.StatusNotFound:
			return http.StatusNotFound
		case status >= 500 && status <= 599:
			return http.StatusBadGateway
		}
	}

	return http.StatusBadGateway
}

func authHTTPStatus(err error) int {
	if status, ok := gh.StatusCode(err); ok {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return status
		}
	}

	text := strings.ToLower(err.Error())
	if strings.Contains(text, "status 403") || strings.Contains(text, "forbidden") {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}
