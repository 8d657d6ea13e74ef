package main

import (
	"io"
	"log/slog"
	"strings"
)

// setupLogger writes to w, which is stderr in production so stdout carries only
// command output. Unknown levels fall back to info and unknown formats to text.
func setupLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", appName, "version", Version)
}
