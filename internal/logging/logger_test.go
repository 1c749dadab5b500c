package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"Trace", LevelTrace},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantTrace bool
	}{
		{"info", false, false},
		{"debug", true, false},
		{"trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("reselected linked candidate")
			logger.Log(context.Background(), LevelTrace, "candidate correlation")

			out := buf.String()
			if got := strings.Contains(out, "reselected"); got != tt.wantDebug {
				t.Errorf("debug visible = %v, want %v (%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "candidate correlation"); got != tt.wantTrace {
				t.Errorf("trace visible = %v, want %v (%q)", got, tt.wantTrace, out)
			}
			if tt.wantTrace && !strings.Contains(out, "level=TRACE") {
				t.Errorf("trace records should be labelled TRACE: %q", out)
			}
		})
	}
}

func TestNewDecisionLogger_InfoLevelIsNil(t *testing.T) {
	dir := t.TempDir()
	dl := NewDecisionLogger(dir, "info")
	if dl != nil {
		t.Fatal("expected nil DecisionLogger at info level")
	}

	dl.Log(map[string]any{"event": "reselect"})
	dl.Close()

	if _, err := os.Stat(filepath.Join(dir, DecisionsFile)); err == nil {
		t.Error("decisions.jsonl should not exist at info level")
	}
}

func TestNewDecisionLogger_AppendsEvents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	dl := NewDecisionLogger(dir, "debug")
	if dl == nil {
		t.Fatal("expected DecisionLogger at debug level")
	}

	dl.Log(map[string]any{"event": "reselect", "linked": 3})
	dl.Log(map[string]any{"event": "probe", "top_abs": 0.82})
	dl.Close()

	data, err := os.ReadFile(filepath.Join(dir, DecisionsFile))
	if err != nil {
		t.Fatalf("read decisions: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if first["event"] != "reselect" || first["linked"] != float64(3) {
		t.Errorf("first entry = %v", first)
	}

	info, err := os.Stat(filepath.Join(dir, DecisionsFile))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestDecisionWriter_AddsTimeWithoutMutatingCaller(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDecisionWriter(&buf)
	dl.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	event := map[string]any{"event": "probe"}
	dl.Log(event)

	if _, ok := event["time"]; ok {
		t.Error("Log must not mutate the caller's map")
	}
	if !strings.Contains(buf.String(), `"time":"2026-03-01T12:00:00Z"`) {
		t.Errorf("missing time field: %q", buf.String())
	}
}

func TestDecisionLogger_LogAfterClose(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDecisionWriter(&buf)
	dl.Close()
	dl.Log(map[string]any{"event": "after_close"})

	if buf.Len() != 0 {
		t.Errorf("expected no output after Close, got %q", buf.String())
	}
}
