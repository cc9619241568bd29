package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultMaxRetries is the default retry count for GitHub API requests.
	DefaultMaxRetries = 3
	// DefaultInitialBackoff is the first retry delay.
	DefaultInitialBackoff = 2 * time.Second
	// DefaultPerPage is the page size requested from list endpoints.
	DefaultPerPage = 100
	// DefaultMaxPages bounds how many pages one fetch may request. The cap
	// trades completeness for bounded latency on very large repositories;
	// callers must not assume the result is complete when it is hit.
	DefaultMaxPages = 50
)

// ErrInvalidState indicates an unsupported issue state selector.
var ErrInvalidState = errors.New("invalid issue state")

// ParseState validates a raw issue state selector.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateAll, StateOpen, StateClosed:
		return State(raw), nil
	default:
		return "", fmt.Errorf("parse state %q: %w", raw, ErrInvalidState)
	}
}

// Source defines the contract for listing repository issues and milestones.
type Source interface {
	Issues(ctx context.Context, ref RepoRef, state State) ([]Issue, error)
	Milestones(ctx context.Context, ref RepoRef) ([]Milestone, error)
}

// Config configures the GitHub source client.
type Config struct {
	Token          string
	HTTPClient     *http.Client
	MaxRetries     int
	InitialBackoff time.Duration
	RESTBaseURL    string
	PerPage        int
	MaxPages       int
}

// WithDefaults fills missing optional values with package defaults.
func (c Config) WithDefaults() Config {
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialBackoff == 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	return c
}

// NewSource constructs a source instance.
func NewSource(cfg Config) (Source, error) {
	cfg = cfg.WithDefaults()
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid MaxRetries %d", cfg.MaxRetries)
	}
	if cfg.InitialBackoff < 0 {
		return nil, fmt.Errorf("invalid InitialBackoff %s", cfg.InitialBackoff)
	}
	if cfg.PerPage < 1 || cfg.PerPage > 100 {
		return nil, fmt.Errorf("invalid PerPage %d", cfg.PerPage)
	}
	if cfg.MaxPages < 1 {
		return nil, fmt.Errorf("invalid MaxPages %d", cfg.MaxPages)
	}

	restClient, err := newRESTClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create REST client: %w", err)
	}

	return &source{
		cfg:  cfg,
		rest: restClient,
	}, nil
}
