package parser

import (
	"errors"
	"testing"

	gh "github.com/issuelens/issuelens/internal/github"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name    string
		raw     string
		wantRef gh.RepoRef
		wantErr bool
	}{
		{
			name:    "shorthand",
			raw:     "octo/repo",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "shorthand with surrounding whitespace",
			raw:     "  octo/repo \n",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "https url",
			raw:     "https://github.com/octo/repo",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "url without scheme",
			raw:     "github.com/octo/repo",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "www host",
			raw:     "https://www.github.com/octo/repo",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "issues page url still names the repository",
			raw:     "https://github.com/octo/repo/issues",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "trailing slash",
			raw:     "https://github.com/octo/repo/",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "clone url drops .git suffix",
			raw:     "https://github.com/octo/repo.git",
			wantRef: gh.RepoRef{Owner: "octo", Repo: "repo"},
		},
		{
			name:    "empty input",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "bare owner",
			raw:     "octo",
			wantErr: true,
		},
		{
			name:    "too many shorthand segments",
			raw:     "octo/repo/extra",
			wantErr: true,
		},
		{
			name:    "empty repo segment",
			raw:     "octo/",
			wantErr: true,
		},
		{
			name:    "unsupported host",
			raw:     "https://gitlab.com/octo/repo",
			wantErr: true,
		},
		{
			name:    "url missing repo",
			raw:     "https://github.com/octo",
			wantErr: true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Parse(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) error = nil, want error", tc.raw)
				}
				if !errors.Is(err, ErrInvalidRepoRef) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidRepoRef", tc.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tc.raw, err)
			}
			if got != tc.wantRef {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.raw, got, tc.wantRef)
			}
		})
	}
}
