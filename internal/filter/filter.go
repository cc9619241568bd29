// Package filter narrows issue sets by their creation timestamp.
package filter

import (
	"errors"
	"fmt"
	"time"

	gh "github.com/issuelens/issuelens/internal/github"
)

// Kind identifies which temporal predicate a Spec applies.
type Kind string

const (
	// KindAllTime matches every issue.
	KindAllTime Kind = "all_time"
	// KindDay matches issues created on one calendar day.
	KindDay Kind = "day"
	// KindRange matches issues created between two instants, inclusive.
	KindRange Kind = "range"
	// KindLastDays matches issues created within the last N days.
	KindLastDays Kind = "last_days"
	// KindLastWeeks matches issues created within the last N*7 days.
	KindLastWeeks Kind = "last_weeks"
	// KindLastMonths matches issues created within the last N*30 days.
	KindLastMonths Kind = "last_months"
)

// ErrUnknownKind indicates a Spec kind the filter does not recognize.
var ErrUnknownKind = errors.New("unknown filter kind")

// Spec selects which issues pass based on their creation timestamp.
// Exactly one predicate applies, chosen by Kind; the other fields are
// parameters for that predicate.
type Spec struct {
	Kind  Kind      `json:"kind"`
	Day   time.Time `json:"day,omitzero"`
	Start time.Time `json:"start,omitzero"`
	End   time.Time `json:"end,omitzero"`
	N     int       `json:"n,omitempty"`
}

// AllTime matches every issue.
func AllTime() Spec {
	return Spec{Kind: KindAllTime}
}

// Day matches issues created on the given calendar day.
func Day(day time.Time) Spec {
	return Spec{Kind: KindDay, Day: day}
}

// Range matches issues created between start and end, both inclusive.
// start <= end is the caller's responsibility to enforce at the input
// boundary; the filter applies whatever bounds it is given.
func Range(start, end time.Time) Spec {
	return Spec{Kind: KindRange, Start: start, End: end}
}

// LastDays matches issues created within the last n days.
func LastDays(n int) Spec {
	return Spec{Kind: KindLastDays, N: n}
}

// LastWeeks matches issues created within the last n weeks.
func LastWeeks(n int) Spec {
	return Spec{Kind: KindLastWeeks, N: n}
}

// LastMonths matches issues created within the last n months, where a month
// is approximated as a 30-day block rather than a calendar month. The
// approximation is part of the contract; switching to calendar months would
// silently shift reported windows.
func LastMonths(n int) Spec {
	return Spec{Kind: KindLastMonths, N: n}
}

// ParseKind validates a raw kind selector.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindAllTime, KindDay, KindRange, KindLastDays, KindLastWeeks, KindLastMonths:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("parse filter kind %q: %w", raw, ErrUnknownKind)
	}
}

// Apply narrows issues to those whose creation time satisfies spec. The
// current time is captured once for the whole set, so every issue is judged
// against the same cutoff.
func Apply(issues []gh.Issue, spec Spec) ([]gh.Issue, error) {
	return ApplyAt(issues, spec, time.Now())
}

// ApplyAt is Apply with an explicit reference time. The output preserves
// input order: it is always a subsequence of the input.
func ApplyAt(issues []gh.Issue, spec Spec, now time.Time) ([]gh.Issue, error) {
	pred, err := predicate(spec, now)
	if err != nil {
		return nil, fmt.Errorf("build filter predicate: %w", err)
	}

	out := make([]gh.Issue, 0, len(issues))
	for _, issue := range issues {
		if pred(issue.CreatedAt) {
			out = append(out, issue)
		}
	}
	return out, nil
}

func predicate(spec Spec, now time.Time) (func(time.Time) bool, error) {
	switch spec.Kind {
	case KindAllTime:
		return func(time.Time) bool { return true }, nil
	case KindDay:
		return func(created time.Time) bool { return sameDate(created, spec.Day) }, nil
	case KindRange:
		return func(created time.Time) bool {
			return !created.Before(spec.Start) && !created.After(spec.End)
		}, nil
	case KindLastDays:
		return cutoffPredicate(now.AddDate(0, 0, -spec.N)), nil
	case KindLastWeeks:
		return cutoffPredicate(now.AddDate(0, 0, -7*spec.N)), nil
	case KindLastMonths:
		return cutoffPredicate(now.AddDate(0, 0, -30*spec.N)), nil
	default:
		return nil, fmt.Errorf("kind %q: %w", spec.Kind, ErrUnknownKind)
	}
}

func cutoffPredicate(cutoff time.Time) func(time.Time) bool {
	return func(created time.Time) bool { return !created.Before(cutoff) }
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
