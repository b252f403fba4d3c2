// Package logger provides process-wide logging for sercha-media.
// Debug and info messages are printed only in verbose mode (the --verbose
// flag); warnings and errors are always written. The TUI points the output
// at a log file so messages never land on the alternate screen.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format names accepted by SetFormat.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	level             = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	sugar             = build()
)

// build creates the zap logger for the current output and format (caller must hold lock).
func build() *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "time"

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	return zap.New(core).Sugar()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	sugar = build()
}

// SetFormat selects console or JSON encoding. Unknown formats fall back to console.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	f = strings.ToLower(strings.TrimSpace(f))
	if f != FormatJSON {
		f = FormatConsole
	}
	format = f
	sugar = build()
}

// OpenFile directs logs to the named file, appending to it.
// The returned function restores stderr and closes the file.
func OpenFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return func() error {
		Sync()
		SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = sugar.Sync()
}

// Debug logs a message if verbose mode is enabled.
func Debug(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Debugf(template, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infof("=== %s ===", name)
}

// Info logs an informational message if verbose mode is enabled.
func Info(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infof(template, args...)
}

// Warn logs a warning.
func Warn(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Warnf(template, args...)
}

// Error logs an error.
func Error(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Errorf(template, args...)
}
