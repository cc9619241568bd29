package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/issuelens/issuelens/internal/analyzer"
	"github.com/issuelens/issuelens/internal/cache"
	"github.com/issuelens/issuelens/internal/config"
	gh "github.com/issuelens/issuelens/internal/github"
	"github.com/issuelens/issuelens/internal/parser"
)

func main() {
	cfg, err := config.NewLoader().Load(nil)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := newLogger(cfg.LogFormat)

	source, err := gh.NewSource(gh.Config{
		Token:    cfg.Token,
		MaxPages: cfg.MaxPages,
	})
	if err != nil {
		log.WithError(err).Fatal("create issue source")
	}

	memoryCache := cache.NewMemory()
	defer func() {
		if err := memoryCache.Close(); err != nil {
			log.WithError(err).Warn("close cache")
		}
	}()

	service := analyzer.NewService(analyzer.Deps{
		Source:   source,
		Cache:    memoryCache,
		CacheTTL: cfg.CacheTTL,
		Logger:   log,
	})

	tmpl, err := loadTemplate()
	if err != nil {
		log.WithError(err).Fatal("load template")
	}

	handler := newWebHandler(webDeps{
		analyzer:   service,
		repoParser: parser.New(),
		tmpl:       tmpl,
		log:        log,
	})

	server := &http.Server{
		Addr:              resolveWebAddr(cfg.WebAddr),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithField("addr", server.Addr).Info("issuelens web listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("serve http")
	}
}

func newLogger(format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func resolveWebAddr(addr string) string {
	if trimmed := strings.TrimSpace(addr); trimmed != "" {
		return trimmed
	}
	return ":8080"
}
