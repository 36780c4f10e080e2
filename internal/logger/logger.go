// SPDX-License-Identifier: MIT

// Package logger holds the process-wide structured logger used by the CLI.
// Library packages never log; they return errors and report timings through
// spectral.Observer.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/spectral/fault"
)

// Logger is the global logger. It is a no-op until Initialize runs.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize replaces Logger: JSON production encoding when jsonOutput is
// set, a console encoder on stderr otherwise. level is a zap level name
// ("debug", "info", "warn", "error"); empty means info.
func Initialize(jsonOutput bool, level string) error {
	lvl := zap.InfoLevel
	if strings.TrimSpace(level) != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return errors.Wrapf(err, "logger: level %q", level)
		}
	}

	var (
		zl  *zap.Logger
		err error
	)
	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.OutputPaths = []string{"stderr"}
		zl, err = cfg.Build()
		if err != nil {
			return errors.Wrap(err, "logger: build")
		}
	} else {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
		zl = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.AddSync(os.Stderr),
			lvl,
		))
	}

	Logger = zl.Sugar()
	return nil
}

// StageLogger is a spectral.Observer that logs each stage at info, or at
// error when the stage failed.
type StageLogger struct {
	// Nodes is attached to every entry.
	Nodes int
}

// StageDone implements spectral.Observer.
func (s StageLogger) StageDone(stage fault.Stage, d time.Duration, err error) {
	fields := []interface{}{
		"stage", string(stage),
		"duration_ms", float64(d.Microseconds()) / 1000,
		"nodes", s.Nodes,
	}
	if err != nil {
		Logger.Errorw("stage failed", append(fields, "error", err.Error())...)
		return
	}
	Logger.Infow("stage done", fields...)
}

// Cleanup flushes buffered entries.
func Cleanup() {
	_ = Logger.Sync()
}
