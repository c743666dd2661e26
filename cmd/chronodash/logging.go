package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "chronodash.log"
)

// setupLogging routes the standard logger and the returned slog logger
// Disabled: everything is discarded and the file is nil
// Enabled: both append to logs/chronodash.log at debug level
func setupLogging(debug bool) (*slog.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f
}
