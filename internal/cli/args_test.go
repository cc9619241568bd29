package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/issuelens/issuelens/internal/config"
	"github.com/issuelens/issuelens/internal/filter"
	gh "github.com/issuelens/issuelens/internal/github"
)

func TestValidateArgs(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name         string
		cfg          config.Config
		wantState    gh.State
		wantKind     filter.Kind
		wantErr      bool
		wantConflict bool
	}{
		{
			name:      "defaults to all time",
			cfg:       config.Config{State: "all", Positional: []string{"octo/repo"}},
			wantState: gh.StateAll,
			wantKind:  filter.KindAllTime,
		},
		{
			name:      "open state",
			cfg:       config.Config{State: "open", Positional: []string{"octo/repo"}},
			wantState: gh.StateOpen,
			wantKind:  filter.KindAllTime,
		},
		{
			name:      "specific day",
			cfg:       config.Config{State: "all", Day: "2024-06-01", Positional: []string{"octo/repo"}},
			wantState: gh.StateAll,
			wantKind:  filter.KindDay,
		},
		{
			name:      "date range",
			cfg:       config.Config{State: "all", From: "2024-01-01", To: "2024-02-01", Positional: []string{"octo/repo"}},
			wantState: gh.StateAll,
			wantKind:  filter.KindRange,
		},
		{
			name:      "last weeks",
			cfg:       config.Config{State: "all", LastWeeks: 4, Positional: []string{"octo/repo"}},
			wantState: gh.StateAll,
			wantKind:  filter.KindLastWeeks,
		},
		{
			name:    "missing repository",
			cfg:     config.Config{State: "all"},
			wantErr: true,
		},
		{
			name:    "two repositories",
			cfg:     config.Config{State: "all", Positional: []string{"a/b", "c/d"}},
			wantErr: true,
		},
		{
			name:    "invalid state",
			cfg:     config.Config{State: "merged", Positional: []string{"octo/repo"}},
			wantErr: true,
		},
		{
			name:    "malformed day",
			cfg:     config.Config{State: "all", Day: "June 1st", Positional: []string{"octo/repo"}},
			wantErr: true,
		},
		{
			name:    "from without to",
			cfg:     config.Config{State: "all", From: "2024-01-01", Positional: []string{"octo/repo"}},
			wantErr: true,
		},
		{
			name:    "range end before start",
			cfg:     config.Config{State: "all", From: "2024-02-01", To: "2024-01-01", Positional: []string{"octo/repo"}},
			wantErr: true,
		},
		{
			name:    "negative last days",
			cfg:     config.Config{State: "all", LastDays: -1, Positional: []string{"octo/repo"}},
			wantErr: true,
		},
		{
			name:         "day conflicts with last days",
			cfg:          config.Config{State: "all", Day: "2024-06-01", LastDays: 7, Positional: []string{"octo/repo"}},
			wantErr:      true,
			wantConflict: true,
		},
		{
			name:         "range conflicts with last months",
			cfg:          config.Config{State: "all", From: "2024-01-01", To: "2024-02-01", LastMonths: 3, Positional: []string{"octo/repo"}},
			wantErr:      true,
			wantConflict: true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateArgs(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("ValidateArgs error = nil, want error")
				}
				if tc.wantConflict {
					var cErr *config.ConflictError
					if !errors.As(err, &cErr) {
						t.Fatalf("ValidateArgs error = %T (%v), want *ConflictError", err, err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateArgs error = %v, want nil", err)
			}
			if got.State != tc.wantState {
				t.Fatalf("State = %q, want %q", got.State, tc.wantState)
			}
			if got.Filter.Kind != tc.wantKind {
				t.Fatalf("Filter.Kind = %q, want %q", got.Filter.Kind, tc.wantKind)
			}
		})
	}
}

func TestValidateArgsRangeCoversWholeEndDay(t *testing.T) {
	t.Parallel()

	got, err := ValidateArgs(config.Config{
		State:      "all",
		From:       "2024-01-01",
		To:         "2024-01-31",
		Positional: []string{"octo/repo"},
	})
	if err != nil {
		t.Fatalf("ValidateArgs error = %v, want nil", err)
	}

	lateOnEndDay := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	if got.Filter.End.Before(lateOnEndDay) {
		t.Fatalf("Filter.End = %v, want the end day counted in full", got.Filter.End)
	}
	if !got.Filter.End.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Filter.End = %v, must not spill into the next day", got.Filter.End)
	}
}
