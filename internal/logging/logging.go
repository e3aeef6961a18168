// Package logging builds the zap loggers used by every calckit surface.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olsonco/calckit/internal/calculation"
	"go.uber.org/zap"
)

// Config selects the level, encoding and destination of log output.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel), nil
	case "info", "":
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	case "warn", "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel), nil
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel), nil
	default:
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %s", level)
	}
}

// New creates a zap logger. levelOverride, when non-empty, wins over
// cfg.Level so a command-line flag can raise verbosity.
func New(cfg Config, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	atomic, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	switch strings.ToLower(cfg.Format) {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json", "":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	config.Level = atomic
	// CLI output goes to stdout; keep logs off it.
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		_ = f.Close()

		config.OutputPaths = []string{cfg.OutputFile}
		config.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// CalcLogger adapts a zap logger to calculation.Logger.
type CalcLogger struct {
	s *zap.SugaredLogger
}

var _ calculation.Logger = CalcLogger{}

// NewCalcLogger wraps logger; nil yields a no-op logger.
func NewCalcLogger(logger *zap.Logger) CalcLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CalcLogger{s: logger.Sugar()}
}

func (l CalcLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l CalcLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l CalcLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l CalcLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
