package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w at level. When the report itself goes
// to stdout the JSON handler is used, so every stream stays machine-readable.
func New(w io.Writer, reportToStdout bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if reportToStdout {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init is New followed by slog.SetDefault.
func Init(w io.Writer, reportToStdout bool, level slog.Level) *slog.Logger {
	l := New(w, reportToStdout, level)
	slog.SetDefault(l)
	return l
}

// ParseLevel accepts the slog level names (case-insensitive, with optional
// offsets such as "debug+2") plus "warning". An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: want debug, info, warn or error", s)
	}
	return l, nil
}
