package cli

import (
	"fmt"
	"time"

	"github.com/issuelens/issuelens/internal/config"
	"github.com/issuelens/issuelens/internal/filter"
	gh "github.com/issuelens/issuelens/internal/github"
)

const dayLayout = "2006-01-02"

// Args contains validated and normalized command inputs.
type Args struct {
	RepoRef string
	State   gh.State
	Filter  filter.Spec
}

// ValidateArgs validates positional and filter constraints from config.
func ValidateArgs(cfg config.Config) (Args, error) {
	if len(cfg.Positional) != 1 {
		return Args{}, config.NewValidationError("repository", "exactly one repository reference is required")
	}

	state, err := gh.ParseState(cfg.State)
	if err != nil {
		return Args{}, config.NewValidationError("state", "must be all, open or closed")
	}

	spec, err := buildFilterSpec(cfg)
	if err != nil {
		return Args{}, err
	}

	return Args{
		RepoRef: cfg.Positional[0],
		State:   state,
		Filter:  spec,
	}, nil
}

// buildFilterSpec maps the mutually exclusive filter flags to one Spec.
// No filter flag at all means the whole history.
func buildFilterSpec(cfg config.Config) (filter.Spec, error) {
	type candidate struct {
		flag string
		set  bool
	}
	candidates := []candidate{
		{"--day", cfg.Day != ""},
		{"--from/--to", cfg.From != "" || cfg.To != ""},
		{"--last-days", cfg.LastDays != 0},
		{"--last-weeks", cfg.LastWeeks != 0},
		{"--last-months", cfg.LastMonths != 0},
	}

	var chosen []string
	for _, c := range candidates {
		if c.set {
			chosen = append(chosen, c.flag)
		}
	}
	if len(chosen) > 1 {
		return filter.Spec{}, config.NewConflictError(chosen[0], chosen[1])
	}

	switch {
	case cfg.Day != "":
		day, err := parseDay("day", cfg.Day)
		if err != nil {
			return filter.Spec{}, err
		}
		return filter.Day(day), nil
	case cfg.From != "" || cfg.To != "":
		if cfg.From == "" || cfg.To == "" {
			return filter.Spec{}, config.NewValidationError("range", "--from and --to must be used together")
		}
		start, err := parseDay("from", cfg.From)
		if err != nil {
			return filter.Spec{}, err
		}
		end, err := parseDay("to", cfg.To)
		if err != nil {
			return filter.Spec{}, err
		}
		if end.Before(start) {
			return filter.Spec{}, config.NewValidationError("range", "--to must not be before --from")
		}
		// The range bounds are whole days, so the end day counts in full.
		return filter.Range(start, endOfDay(end)), nil
	case cfg.LastDays != 0:
		return lastN("last-days", cfg.LastDays, filter.LastDays)
	case cfg.LastWeeks != 0:
		return lastN("last-weeks", cfg.LastWeeks, filter.LastWeeks)
	case cfg.LastMonths != 0:
		return lastN("last-months", cfg.LastMonths, filter.LastMonths)
	default:
		return filter.AllTime(), nil
	}
}

func lastN(field string, n int, build func(int) filter.Spec) (filter.Spec, error) {
	if n < 0 {
		return filter.Spec{}, config.NewValidationError(field, "must be positive")
	}
	return build(n), nil
}

func parseDay(field, raw string) (time.Time, error) {
	day, err := time.Parse(dayLayout, raw)
	if err != nil {
		return time.Time{}, config.NewValidationError(field, fmt.Sprintf("%q is not a YYYY-MM-DD date", raw))
	}
	return day, nil
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
