package cli

import (
	"context"
	"errors"

	"github.com/issuelens/issuelens/internal/analyzer"
	"github.com/issuelens/issuelens/internal/config"
	gh "github.com/issuelens/issuelens/internal/github"
)

type fakeLoader struct {
	cfg     config.Config
	err     error
	gotArgs []string
}

func (f *fakeLoader) Load(args []string) (config.Config, error) {
	f.gotArgs = append([]string(nil), args...)
	if f.err != nil {
		return config.Config{}, f.err
	}
	return f.cfg, nil
}

type fakeParser struct {
	refByInput map[string]gh.RepoRef
	errByInput map[string]error
	gotInputs  []string
}

func (f *fakeParser) Parse(raw string) (gh.RepoRef, error) {
	f.gotInputs = append(f.gotInputs, raw)
	if err := f.errByInput[raw]; err != nil {
		return gh.RepoRef{}, err
	}
	ref, ok := f.refByInput[raw]
	if !ok {
		return gh.RepoRef{}, errors.New("unexpected input")
	}
	return ref, nil
}

type fakeSourceFactory struct {
	source *fakeSource
	err    error
}

func (f *fakeSourceFactory) New(cfg config.Config) (gh.Source, error) {
	_ = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.source, nil
}

type fakeSource struct {
	issues    []gh.Issue
	issuesErr error
	gotRefs   []gh.RepoRef
	gotStates []gh.State
}

func (f *fakeSource) Issues(_ context.Context, ref gh.RepoRef, state gh.State) ([]gh.Issue, error) {
	f.gotRefs = append(f.gotRefs, ref)
	f.gotStates = append(f.gotStates, state)
	if f.issuesErr != nil {
		return nil, f.issuesErr
	}
	return f.issues, nil
}

func (f *fakeSource) Milestones(_ context.Context, _ gh.RepoRef) ([]gh.Milestone, error) {
	return nil, nil
}

type fakeOutputWriter struct {
	path       string
	err        error
	gotReports []analyzer.Report
}

func (f *fakeOutputWriter) Write(_ config.Config, report analyzer.Report) (string, error) {
	f.gotReports = append(f.gotReports, report)
	if f.err != nil {
		return "", f.err
	}
	if f.path == "" {
		return outputPathStdout, nil
	}
	return f.path, nil
}
