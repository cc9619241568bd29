package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/issuelens/issuelens/internal/analyzer"
	"github.com/issuelens/issuelens/internal/config"
	"github.com/issuelens/issuelens/internal/export"
)

// ErrOutputConflict indicates the output file already exists and force mode is disabled.
var ErrOutputConflict = errors.New("output file already exists")

const outputPathStdout = "stdout"

// OutputWriter writes the exported CSV to stdout or the filesystem.
type OutputWriter interface {
	Write(cfg config.Config, report analyzer.Report) (string, error)
}

type fileOutputWriter struct {
	stdout io.Writer
	now    func() time.Time
}

// NewOutputWriter creates an output writer with the provided stdout sink.
func NewOutputWriter(stdout io.Writer) OutputWriter {
	return &fileOutputWriter{stdout: stdout, now: time.Now}
}

func (w *fileOutputWriter) Write(cfg config.Config, report analyzer.Report) (string, error) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}

	if cfg.Stdout {
		if _, err := w.stdout.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("write csv to stdout: %w", err)
		}
		return outputPathStdout, nil
	}

	targetPath, err := resolveOutputPath(cfg, report, w.now())
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	if err := ensureWritable(targetPath, cfg.Force); err != nil {
		return "", fmt.Errorf("validate output path %q: %w", targetPath, err)
	}

	parentDir := filepath.Dir(targetPath)
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", parentDir, err)
	}

	if err := os.WriteFile(targetPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write output file %q: %w", targetPath, err)
	}
	return targetPath, nil
}

func resolveOutputPath(cfg config.Config, report analyzer.Report, now time.Time) (string, error) {
	defaultName := export.FileName(report.Repo, now)

	if cfg.OutputPath == "" {
		return defaultName, nil
	}

	info, err := os.Stat(cfg.OutputPath)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(cfg.OutputPath, defaultName), nil
	case err == nil:
		return cfg.OutputPath, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("stat output path %q: %w", cfg.OutputPath, err)
	}

	if strings.EqualFold(filepath.Ext(cfg.OutputPath), ".csv") {
		return cfg.OutputPath, nil
	}
	return filepath.Join(cfg.OutputPath, defaultName), nil
}

func ensureWritable(path string, force bool) error {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat output file: %w", err)
	}
	if !force {
		return ErrOutputConflict
	}
	return nil
}
