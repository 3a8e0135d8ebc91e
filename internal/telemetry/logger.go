package telemetry

import (
	"io"
	"os"
	"sort"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger writes structured events. File output is JSON lines, terminal
// output is charm's text format.
type Logger struct {
	w   io.WriteCloser
	log *clog.Logger
}

func NewLogger(path, level string) (*Logger, error) {
	lvl := parseLevel(level)
	if path == "" {
		l := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "adventctl", Level: lvl})
		return &Logger{w: nopCloser{Writer: os.Stderr}, log: l}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := clog.NewWithOptions(f, clog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       clog.JSONFormatter,
	})
	return &Logger{w: f, log: l}, nil
}

// NewWriterLogger logs to w without taking ownership of it.
func NewWriterLogger(w io.Writer, level string) *Logger {
	l := clog.NewWithOptions(w, clog.Options{Level: parseLevel(level), Formatter: clog.JSONFormatter})
	return &Logger{w: nopCloser{Writer: w}, log: l}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriterLogger(io.Discard, "error")
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.emit(clog.DebugLevel, msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.emit(clog.InfoLevel, msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.emit(clog.WarnLevel, msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.emit(clog.ErrorLevel, msg, fields)
}

func (l *Logger) emit(level clog.Level, msg string, fields map[string]any) {
	if l == nil || l.log == nil {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	l.log.Log(level, msg, kv...)
}

func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

func parseLevel(raw string) clog.Level {
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return clog.InfoLevel
	}
	return lvl
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
