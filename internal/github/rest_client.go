package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	goGithub "github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

const defaultRESTBaseURL = "https://api.github.com/"

type restClient struct {
	client *goGithub.Client
}

func newRESTClient(cfg Config) (*restClient, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		baseTransport := httpClient.Transport
		if baseTransport == nil {
			baseTransport = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   baseTransport,
			},
			Timeout: httpClient.Timeout,
		}
	}

	client := goGithub.NewClient(httpClient)

	baseURL := cfg.RESTBaseURL
	if baseURL == "" {
		baseURL = defaultRESTBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse REST base URL %q: %w", baseURL, err)
	}
	client.BaseURL = parsed

	return &restClient{client: client}, nil
}

// listIssuesPage requests one page of repository issues, created-descending.
// The returned nextPage is zero when the API reports no further pages.
func (c *restClient) listIssuesPage(ctx context.Context, ref RepoRef, state State, page, perPage int) ([]*goGithub.Issue, int, error) {
	opts := &goGithub.IssueListByRepoOptions{
		State:     string(state),
		Sort:      "created",
		Direction: "desc",
		ListOptions: goGithub.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	issues, resp, err := c.client.Issues.ListByRepo(ctx, ref.Owner, ref.Repo, opts)
	if err != nil {
		return nil, 0, wrapRESTError("list repository issues", err)
	}

	nextPage := 0
	if resp != nil {
		nextPage = resp.NextPage
	}
	return issues, nextPage, nil
}

func (c *restClient) listMilestones(ctx context.Context, ref RepoRef) ([]*goGithub.Milestone, error) {
	var all []*goGithub.Milestone
	opts := &goGithub.MilestoneListOptions{
		State:       "all",
		ListOptions: goGithub.ListOptions{PerPage: 100},
	}

	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, ref.Owner, ref.Repo, opts)
		if err != nil {
			return nil, wrapRESTError("list milestones", err)
		}
		all = append(all, milestones...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func wrapRESTError(op string, err error) error {
	if err == nil {
		return nil
	}

	var respErr *goGithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fmt.Errorf("%s: %w", op, &statusError{
			StatusCode: respErr.Response.StatusCode,
			Err:        err,
		})
	}

	return fmt.Errorf("%s: %w", op, err)
}
