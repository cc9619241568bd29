package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents normalized runtime configuration shared by the CLI and
// the web dashboard.
type Config struct {
	State      string
	Day        string
	From       string
	To         string
	LastDays   int
	LastWeeks  int
	LastMonths int
	OutputPath string
	Stdout     bool
	Force      bool
	MaxPages   int
	Positional []string
	Token      string
	CacheTTL   time.Duration
	WebAddr    string
	LogFormat  string
}

// Loader loads configuration from CLI args and environment variables.
type Loader interface {
	Load(args []string) (Config, error)
}

// NewLoader constructs the default configuration loader. A .env file in the
// working directory seeds the environment when present; real environment
// variables win over .env entries.
func NewLoader() Loader {
	return &flagLoader{}
}

type flagLoader struct{}

func (l *flagLoader) Load(args []string) (Config, error) {
	_ = l

	// godotenv never overwrites variables already set, and a missing .env
	// file is not an error worth surfacing.
	_ = godotenv.Load()

	cfg := Config{}
	flags := flag.NewFlagSet("issuelens", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&cfg.State, "state", "all", "issue state filter (all, open, closed)")
	flags.StringVar(&cfg.Day, "day", "", "only issues created on this day (YYYY-MM-DD)")
	flags.StringVar(&cfg.From, "from", "", "start of a created-at range (YYYY-MM-DD)")
	flags.StringVar(&cfg.To, "to", "", "end of a created-at range (YYYY-MM-DD)")
	flags.IntVar(&cfg.LastDays, "last-days", 0, "only issues created in the last N days")
	flags.IntVar(&cfg.LastWeeks, "last-weeks", 0, "only issues created in the last N weeks")
	flags.IntVar(&cfg.LastMonths, "last-months", 0, "only issues created in the last N months")
	flags.StringVar(&cfg.OutputPath, "csv", "", "CSV output path")
	flags.BoolVar(&cfg.Stdout, "stdout", false, "write CSV to stdout")
	flags.BoolVar(&cfg.Force, "force", false, "overwrite existing files")
	flags.IntVar(&cfg.MaxPages, "max-pages", 0, "cap on fetched issue pages (0 uses the default)")

	var tokenFlag string
	flags.StringVar(&tokenFlag, "token", "", "GitHub token")

	if err := flags.Parse(args); err != nil {
		return Config{}, WrapError("parse flags", err)
	}

	switch cfg.State {
	case "all", "open", "closed":
	default:
		return Config{}, WrapError("validate flags", NewValidationError("state", "must be all, open or closed"))
	}
	if cfg.MaxPages < 0 {
		return Config{}, WrapError("validate flags", NewValidationError("max-pages", "must not be negative"))
	}
	if cfg.Stdout && cfg.OutputPath != "" {
		return Config{}, WrapError("validate flags", NewConflictError("--stdout", "--csv"))
	}
	cfg.Positional = flags.Args()

	cfg.Token = tokenFlag
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}

	if raw := os.Getenv("ISSUELENS_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, WrapError("validate environment", NewValidationError("ISSUELENS_CACHE_TTL", "must be a duration such as 5m"))
		}
		cfg.CacheTTL = ttl
	}

	cfg.WebAddr = os.Getenv("ISSUELENS_WEB_ADDR")
	cfg.LogFormat = os.Getenv("ISSUELENS_LOG_FORMAT")

	return cfg, nil
}
