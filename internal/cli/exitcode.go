package cli

import (
	"errors"

	"github.com/issuelens/issuelens/internal/config"
	gh "github.com/issuelens/issuelens/internal/github"
	"github.com/issuelens/issuelens/internal/parser"
)

const (
	// ExitOK indicates the run completed successfully.
	ExitOK = 0
	// ExitRuntime indicates generic runtime failure.
	ExitRuntime = 1
	// ExitInvalidArguments indicates invalid CLI arguments.
	ExitInvalidArguments = 2
	// ExitAuth indicates auth/authz failures.
	ExitAuth = 3
	// ExitOutputConflict indicates an output file conflict without force mode.
	ExitOutputConflict = 4
)

// ResolveExitCode maps run error state to CLI exit codes.
func ResolveExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var vErr *config.ValidationError
	if errors.As(err, &vErr) {
		return ExitInvalidArguments
	}

	var cErr *config.ConflictError
	if errors.As(err, &cErr) {
		return ExitInvalidArguments
	}
	if errors.Is(err, parser.ErrInvalidRepoRef) {
		return ExitInvalidArguments
	}

	if errors.Is(err, ErrOutputConflict) {
		return ExitOutputConflict
	}

	if gh.IsAuthError(err) {
		return ExitAuth
	}

	return ExitRuntime
}
