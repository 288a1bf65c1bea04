// Package logging builds the application's zap logger from config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/studyplan/internal/config"
)

// Stderr as a file value sends logs to standard error.
const Stderr = "-"

// New returns a logger for cfg. The terminal belongs to the CLI output, so
// logs go to a file unless cfg.File is Stderr. debug forces debug level.
func New(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Format {
	case "json":
		zapCfg.Encoding = "json"
	default:
		zapCfg.Encoding = "console"
	}

	if cfg.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}
	if debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	out := cfg.File
	if out == "" {
		out = config.DefaultLogPath()
	}
	if out == Stderr {
		out = "stderr"
	} else if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	zapCfg.OutputPaths = []string{out}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
