package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adventctl.log")
	l, err := NewLogger(path, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info("run.start", map[string]any{"day": 3, "session": "abc"})
	l.Debug("remote.fetch", map[string]any{"url": "ignored"})
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	sc := bufio.NewScanner(bytes.NewReader(b))
	var lines []map[string]any
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line is not json: %q: %v", sc.Text(), err)
		}
		lines = append(lines, entry)
	}
	if len(lines) != 1 {
		t.Fatalf("expected debug entry to be filtered, got %d lines", len(lines))
	}
	if lines[0]["msg"] != "run.start" {
		t.Fatalf("unexpected msg: %#v", lines[0])
	}
	if lines[0]["session"] != "abc" {
		t.Fatalf("expected session field, got %#v", lines[0])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("x", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close nil logger: %v", err)
	}
}
