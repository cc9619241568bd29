package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/issuelens/issuelens/internal/analyzer"
	"github.com/issuelens/issuelens/internal/config"
	gh "github.com/issuelens/issuelens/internal/github"
	"github.com/issuelens/issuelens/internal/parser"
)

// Runner executes the CLI application flow.
type Runner interface {
	Run(ctx context.Context, args []string) int
}

// SourceFactory creates GitHub issue sources from runtime config.
type SourceFactory interface {
	New(cfg config.Config) (gh.Source, error)
}

// AppDeps defines dependencies for CLI app construction.
type AppDeps struct {
	Loader        config.Loader
	Parser        parser.RepoParser
	SourceFactory SourceFactory
	Writer        OutputWriter
	Stdout        io.Writer
	Stderr        io.Writer
}

// App orchestrates one analysis run from the command line.
type App struct {
	loader        config.Loader
	parser        parser.RepoParser
	sourceFactory SourceFactory
	writer        OutputWriter
	stdout        io.Writer
	stderr        io.Writer
}

// NewApp creates a CLI runner with injected dependencies.
func NewApp(deps AppDeps) Runner {
	app := &App{
		loader:        deps.Loader,
		parser:        deps.Parser,
		sourceFactory: deps.SourceFactory,
		writer:        deps.Writer,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
	app.setDefaults()
	return app
}

func (a *App) setDefaults() {
	if a.loader == nil {
		a.loader = config.NewLoader()
	}
	if a.parser == nil {
		a.parser = parser.New()
	}
	if a.sourceFactory == nil {
		a.sourceFactory = defaultSourceFactory{}
	}
	if a.writer == nil {
		a.writer = NewOutputWriter(os.Stdout)
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
}

// Run executes the CLI workflow and returns an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	cfg, err := a.loader.Load(args)
	if err != nil {
		writeErrorLine(a.stderr, err)
		return ResolveExitCode(err)
	}

	validated, err := ValidateArgs(cfg)
	if err != nil {
		writeErrorLine(a.stderr, err)
		return ResolveExitCode(err)
	}

	ref, err := a.parser.Parse(validated.RepoRef)
	if err != nil {
		writeErrorLine(a.stderr, err)
		return ResolveExitCode(err)
	}

	source, err := a.sourceFactory.New(cfg)
	if err != nil {
		runErr := fmt.Errorf("build issue source: %w", err)
		writeErrorLine(a.stderr, runErr)
		return ResolveExitCode(runErr)
	}

	// A single run has nothing to reuse, so the pipeline gets no cache.
	service := analyzer.NewService(analyzer.Deps{Source: source})

	report, err := service.Analyze(ctx, analyzer.Request{
		Repo:   ref,
		State:  validated.State,
		Filter: validated.Filter,
	})
	if err != nil {
		writeErrorLine(a.stderr, err)
		return ResolveExitCode(err)
	}

	summaryOutput := a.stdout
	if cfg.Stdout {
		// Keep stdout pure CSV when --stdout is used.
		summaryOutput = a.stderr
	}
	if _, err := fmt.Fprintln(summaryOutput, FormatReport(report)); err != nil {
		writeErrorLine(a.stderr, fmt.Errorf("write summary output: %w", err))
	}

	if cfg.Stdout || cfg.OutputPath != "" {
		outputPath, err := a.writer.Write(cfg, report)
		if err != nil {
			writeErrorLine(a.stderr, err)
			return ResolveExitCode(err)
		}
		if outputPath != outputPathStdout {
			if _, err := fmt.Fprintf(summaryOutput, "csv written to %s\n", outputPath); err != nil {
				writeErrorLine(a.stderr, fmt.Errorf("write summary output: %w", err))
			}
		}
	}

	return ExitOK
}

type defaultSourceFactory struct{}

func (f defaultSourceFactory) New(cfg config.Config) (gh.Source, error) {
	_ = f
	source, err := gh.NewSource(gh.Config{
		Token:    cfg.Token,
		MaxPages: cfg.MaxPages,
	})
	if err != nil {
		return nil, fmt.Errorf("create issue source: %w", err)
	}
	return source, nil
}

func writeErrorLine(w io.Writer, err error) {
	if _, writeErr := fmt.Fprintf(w, "error: %v\n", err); writeErr != nil {
		return
	}
}
