package github

import "time"

// State selects which issues to list by lifecycle state.
type State string

const (
	// StateAll lists issues regardless of state.
	StateAll State = "all"
	// StateOpen lists only open issues.
	StateOpen State = "open"
	// StateClosed lists only closed issues.
	StateClosed State = "closed"
)

// RepoRef identifies one repository by owner and name.
type RepoRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// Issue is the normalized issue shape consumed by the analysis pipeline.
// Pull requests are excluded before this type is ever produced.
// ClosedAt is nil while the issue is open.
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Author    string     `json:"author"`
	Labels    []string   `json:"labels,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// Milestone stores the milestone fields shown on the dashboard.
type Milestone struct {
	Title      string `json:"title"`
	OpenIssues int    `json:"open_issues"`
	URL        string `json:"html_url"`
}
