// Package logging sets up the process-wide slog logger. All output goes to
// a rotated file under the user's home directory; stdout belongs to the
// terminal UI and must stay clean.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"agrodesk/pkg/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "agrodesk.log"

// Rotation policy. Debug-level sessions are chatty, so the size cap is
// what matters; a month of history is enough for support requests.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Init builds the logger from config and installs it as the slog default.
// On writer setup failure a discard logger is installed and the error
// returned, so callers can keep running without log output.
func Init(cfg config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		path = defaultLogPath()
	}

	out, err := openLogWriter(path)
	if err != nil {
		logger := slog.New(newHandler(cfg.LogFormat, io.Discard, opts))
		slog.SetDefault(logger)
		return logger, err
	}

	logger := slog.New(newHandler(cfg.LogFormat, out, opts))
	slog.SetDefault(logger)
	return logger, nil
}

func openLogWriter(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}, nil
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(".agrodesk", "logs", defaultLogFile)
	}
	return filepath.Join(home, ".agrodesk", "logs", defaultLogFile)
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel maps a config string to a level. Unknown or empty values
// fall back to info rather than erroring out at startup.
func parseLogLevel(level string) slog.Level {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
