package github

import (
	"context"
	"fmt"

	goGithub "github.com/google/go-github/v72/github"
)

type source struct {
	cfg  Config
	rest *restClient
}

// Issues lists issues for one repository, excluding pull requests.
// Pages are requested sequentially in created-descending order until a page
// comes back empty, the API reports no next page, or the MaxPages cap is hit.
// Any page failure aborts the whole fetch; no partial result is returned.
func (s *source) Issues(ctx context.Context, ref RepoRef, state State) ([]Issue, error) {
	var issues []Issue
	err := doWithRetry(ctx, s.cfg.MaxRetries, s.cfg.InitialBackoff, nil, func() error {
		var fetchErr error
		issues, fetchErr = s.fetchIssues(ctx, ref, state)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch issues for %s: %w", ref, err)
	}
	return issues, nil
}

func (s *source) fetchIssues(ctx context.Context, ref RepoRef, state State) ([]Issue, error) {
	var all []Issue
	for page := 1; page <= s.cfg.MaxPages; page++ {
		raw, nextPage, err := s.rest.listIssuesPage(ctx, ref, state, page, s.cfg.PerPage)
		if err != nil {
			return nil, fmt.Errorf("fetch issues page %d: %w", page, err)
		}
		if len(raw) == 0 {
			break
		}

		for _, issue := range raw {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, mapIssue(issue))
		}

		if nextPage == 0 {
			break
		}
	}
	return all, nil
}

// Milestones lists all milestones for one repository.
func (s *source) Milestones(ctx context.Context, ref RepoRef) ([]Milestone, error) {
	var milestones []Milestone
	err := doWithRetry(ctx, s.cfg.MaxRetries, s.cfg.InitialBackoff, nil, func() error {
		raw, fetchErr := s.rest.listMilestones(ctx, ref)
		if fetchErr != nil {
			return fetchErr
		}
		milestones = mapMilestones(raw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch milestones for %s: %w", ref, err)
	}
	return milestones, nil
}

func mapIssue(issue *goGithub.Issue) Issue {
	mapped := Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Author:    issue.GetUser().GetLogin(),
		CreatedAt: issue.GetCreatedAt().Time,
		URL:       issue.GetHTMLURL(),
	}
	for _, label := range issue.Labels {
		mapped.Labels = append(mapped.Labels, label.GetName())
	}
	if closed := issue.ClosedAt; closed != nil {
		t := closed.Time
		mapped.ClosedAt = &t
	}
	return mapped
}

func mapMilestones(raw []*goGithub.Milestone) []Milestone {
	milestones := make([]Milestone, 0, len(raw))
	for _, milestone := range raw {
		milestones = append(milestones, Milestone{
			Title:      milestone.GetTitle(),
			OpenIssues: milestone.GetOpenIssues(),
			URL:        milestone.GetHTMLURL(),
		})
	}
	return milestones
}
