// Package logger holds the process-wide zap logger used by the CLI.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	global *zap.Logger
	level  = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

// Init installs a console logger writing to stderr. Stdout stays reserved for
// command output.
func Init() error {
	InitWriter(zapcore.Lock(os.Stderr))
	return nil
}

// InitWriter installs a console logger writing to ws.
func InitWriter(ws zapcore.WriteSyncer) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)

	mu.Lock()
	global = zap.New(core)
	mu.Unlock()
}

// Get returns the global logger. Before Init it returns a no-op logger.
func Get() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return zap.NewNop()
	}
	return global
}

// Named returns a child logger for one component.
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Sync flushes buffered log entries.
func Sync() error {
	return Get().Sync()
}

// SetLevelString parses and sets the logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive). Empty keeps warn.
func SetLevelString(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "info":
		level.SetLevel(zapcore.InfoLevel)
	case "", "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", s)
	}
	return nil
}
