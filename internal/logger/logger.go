// Package logger holds the process-wide zap logger. Components take a named child
// via Named so log lines carry where they came from.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Initialize runs, so packages can log from init paths and tests.
var Logger = zap.NewNop().Sugar()

// ParseLevel accepts zap level names ("debug", "info", "warn", "error"), case-insensitive.
func ParseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s))))
	return level, err
}

// New builds a sugared logger writing to w. Console output trims caller paths down
// to the file name.
func New(w io.Writer, level zapcore.Level, jsonOutput bool) *zap.SugaredLogger {
	var encoder zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(filepath.Base(caller.File) + ":" + strconv.Itoa(caller.Line))
		}
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Initialize replaces the global logger. level is parsed with ParseLevel.
func Initialize(level string, jsonOutput bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	Logger = New(os.Stderr, lvl, jsonOutput)
	return nil
}

// Named returns a child of the global logger for a component, e.g. "store" or "webserver".
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Logger.Sync()
}
