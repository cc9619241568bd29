// Package parser normalizes user-supplied repository references.
package parser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/issuelens/issuelens/internal/github"
)

// ErrInvalidRepoRef indicates an input does not name a GitHub repository.
var ErrInvalidRepoRef = errors.New("invalid repository reference")

// RepoParser parses a raw repository reference into a normalized owner/repo
// pair. Both the shorthand "owner/repo" form and full github.com URLs are
// accepted.
type RepoParser interface {
	Parse(raw string) (gh.RepoRef, error)
}

// New creates the default repository reference parser.
func New() RepoParser {
	return &defaultParser{}
}

type defaultParser struct{}

func (p *defaultParser) Parse(raw string) (gh.RepoRef, error) {
	_ = p

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return gh.RepoRef{}, fmt.Errorf("parse repository reference: %w", invalid("reference must not be empty"))
	}

	if strings.Contains(trimmed, "://") || strings.HasPrefix(strings.ToLower(trimmed), "github.com/") {
		return parseRepoURL(trimmed)
	}
	return parseShorthand(trimmed)
}

func parseShorthand(raw string) (gh.RepoRef, error) {
	segments := strings.Split(raw, "/")
	if len(segments) != 2 {
		return gh.RepoRef{}, fmt.Errorf("parse reference %q: %w", raw, invalid("expected owner/repo"))
	}
	return buildRef(segments[0], segments[1], raw)
}

func parseRepoURL(raw string) (gh.RepoRef, error) {
	withScheme := raw
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}

	parsedURL, err := url.Parse(withScheme)
	if err != nil {
		return gh.RepoRef{}, fmt.Errorf("parse URL %q: %w", raw, err)
	}

	host := strings.ToLower(parsedURL.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return gh.RepoRef{}, fmt.Errorf("validate URL host %q: %w", host, invalid("unsupported host"))
	}

	segments := splitPathSegments(parsedURL.Path)
	if len(segments) < 2 {
		return gh.RepoRef{}, fmt.Errorf("parse URL path %q: %w", parsedURL.Path, invalid("path must start with /{owner}/{repo}"))
	}

	// Deeper paths such as /{owner}/{repo}/issues still name the repository.
	return buildRef(segments[0], segments[1], raw)
}

func buildRef(owner, repo, raw string) (gh.RepoRef, error) {
	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		return gh.RepoRef{}, fmt.Errorf("validate reference %q: %w", raw, invalid("owner/repo must not be empty"))
	}
	return gh.RepoRef{Owner: owner, Repo: repo}, nil
}

func splitPathSegments(rawPath string) []string {
	trimmed := strings.Trim(rawPath, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRepoRef, reason)
}
