// Package analyzer runs the fetch, filter, compute pipeline for one
// repository analysis request.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/issuelens/issuelens/internal/cache"
	"github.com/issuelens/issuelens/internal/filter"
	gh "github.com/issuelens/issuelens/internal/github"
	"github.com/issuelens/issuelens/internal/metrics"
)

// DefaultCacheTTL bounds how long one raw fetch may be reused before the
// source is asked again.
const DefaultCacheTTL = 5 * time.Minute

// Request describes one analysis run. It is session-scoped configuration,
// reconstructed per request; the service keeps no per-caller state.
type Request struct {
	Repo   gh.RepoRef
	State  gh.State
	Filter filter.Spec
}

// IssueRow is one filtered issue enriched with its resolution time.
// ResolutionDays is nil while the issue is open.
type IssueRow struct {
	gh.Issue
	ResolutionDays *float64
}

// Report is the full derived dataset for one analysis run.
type Report struct {
	Repo      gh.RepoRef
	State     gh.State
	Filter    filter.Spec
	Issues    []IssueRow
	Snapshot  metrics.Snapshot
	FetchedAt time.Time
}

// NoData reports whether the run matched no issues. This is a legitimate
// outcome for the chosen criteria, distinct from a fetch failure.
func (r Report) NoData() bool {
	return len(r.Issues) == 0
}

// Deps bundles service dependencies. Zero-value fields get defaults.
type Deps struct {
	Source   gh.Source
	Cache    cache.Provider
	CacheTTL time.Duration
	Logger   *logrus.Logger
	Now      func() time.Time
}

// Service runs the analysis pipeline. Each call is one sequential
// fetch→filter→compute pass; results are never updated incrementally.
type Service struct {
	source gh.Source
	cache  cache.Provider
	ttl    time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

// NewService creates a pipeline service with injected dependencies.
func NewService(deps Deps) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.NoopProvider{}
	}
	if deps.CacheTTL == 0 {
		deps.CacheTTL = DefaultCacheTTL
	}
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		source: deps.Source,
		cache:  deps.Cache,
		ttl:    deps.CacheTTL,
		log:    deps.Logger,
		now:    deps.Now,
	}
}

// Analyze runs one pipeline pass. The reference time for relative filters is
// captured once, so the whole set is judged against the same cutoff.
func (s *Service) Analyze(ctx context.Context, req Request) (Report, error) {
	issues, err := s.issues(ctx, req.Repo, req.State)
	if err != nil {
		return Report{}, fmt.Errorf("analyze %s: %w", req.Repo, err)
	}

	now := s.now()
	filtered, err := filter.ApplyAt(issues, req.Filter, now)
	if err != nil {
		return Report{}, fmt.Errorf("filter issues for %s: %w", req.Repo, err)
	}

	rows := make([]IssueRow, 0, len(filtered))
	for _, issue := range filtered {
		row := IssueRow{Issue: issue}
		if days, ok := metrics.ResolutionDays(issue); ok {
			row.ResolutionDays = &days
		}
		rows = append(rows, row)
	}

	return Report{
		Repo:      req.Repo,
		State:     req.State,
		Filter:    req.Filter,
		Issues:    rows,
		Snapshot:  metrics.Compute(filtered),
		FetchedAt: now,
	}, nil
}

// Milestones lists repository milestones with the same bounded caching as
// the issue fetch.
func (s *Service) Milestones(ctx context.Context, ref gh.RepoRef) ([]gh.Milestone, error) {
	key := milestonesCacheKey(ref)

	var cached []gh.Milestone
	if ok := s.cacheLookup(ctx, key, &cached); ok {
		return cached, nil
	}

	milestones, err := s.source.Milestones(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, milestones)
	return milestones, nil
}

func (s *Service) issues(ctx context.Context, ref gh.RepoRef, state gh.State) ([]gh.Issue, error) {
	key := issuesCacheKey(ref, state)

	var cached []gh.Issue
	if ok := s.cacheLookup(ctx, key, &cached); ok {
		return cached, nil
	}

	issues, err := s.source.Issues(ctx, ref, state)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, issues)
	return issues, nil
}

// cacheLookup reports whether target was populated from the cache. Cache
// failures degrade to a miss; the pipeline never fails because of the cache.
func (s *Service) cacheLookup(ctx context.Context, key string, target any) bool {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WithError(err).WithField("key", key).Warn("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("discarding undecodable cache entry")
		if delErr := s.cache.Del(ctx, key); delErr != nil {
			s.log.WithError(delErr).WithField("key", key).Warn("cache delete failed")
		}
		return false
	}
	return true
}

func (s *Service) cacheStore(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func issuesCacheKey(ref gh.RepoRef, state gh.State) string {
	return fmt.Sprintf("issues:%s:%s", ref, state)
}

func milestonesCacheKey(ref gh.RepoRef) string {
	return fmt.Sprintf("milestones:%s", ref)
}
