package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLines(t *testing.T, path string, n int) []string {
	t.Helper()
	var content strings.Builder
	var lines []string
	for i := 1; i <= n; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		lines = append(lines, line)
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return lines
}

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	expectedAll := writeLines(t, logPath, 10)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestRead_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Read(path, 3)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read() = %v, want no lines", got)
	}
}

func TestTailer_ReportsOnlyChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeLines(t, path, 3)

	tailer := NewTailer(path, 2)
	lines, changed, err := tailer.Poll()
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if !changed || !reflect.DeepEqual(lines, []string{"Line 2", "Line 3"}) {
		t.Fatalf("Poll() = %v, %v; want last two lines, changed", lines, changed)
	}

	lines, changed, err = tailer.Poll()
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if changed || lines != nil {
		t.Fatalf("Poll() on unchanged file = %v, %v; want nil, false", lines, changed)
	}

	writeLines(t, path, 5)
	// Size changed, so the modification time granularity does not matter.
	lines, changed, _ = tailer.Poll()
	if !changed || !reflect.DeepEqual(lines, []string{"Line 4", "Line 5"}) {
		t.Fatalf("Poll() after append = %v, %v", lines, changed)
	}
}

func TestTailer_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.log")
	tailer := NewTailer(path, 10)

	lines, changed, err := tailer.Poll()
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if !changed || lines == nil || len(lines) != 0 {
		t.Fatalf("first Poll() of a missing file = %v, %v; want empty, changed", lines, changed)
	}
	if _, changed, _ := tailer.Poll(); changed {
		t.Fatal("second Poll() of a missing file reported a change")
	}

	writeLines(t, path, 1)
	future := time.Now().Add(time.Hour)
	_ = os.Chtimes(path, future, future)
	lines, changed, _ = tailer.Poll()
	if !changed || len(lines) != 1 {
		t.Fatalf("Poll() after creation = %v, %v", lines, changed)
	}
	if tailer.Path() != path {
		t.Fatalf("Path() = %q", tailer.Path())
	}
}

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		line string
		want Level
	}{
		{"", LevelNone},
		{"plain text", LevelNone},
		{"2024-10-10 14:32:15 INFO [encoder] started", LevelInfo},
		{"2024-10-10 14:32:15 WARN slow disk", LevelWarn},
		{"time=2024-10-10T14:32:15Z level=ERROR msg=boom", LevelError},
		{"[DEBUG] detail", LevelDebug},
		{"warning: deprecated", LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := DetectLevel(tt.line); got != tt.want {
				t.Fatalf("DetectLevel(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || LevelNone.String() != "" {
		t.Fatalf("unexpected level names: %q %q", LevelWarn.String(), LevelNone.String())
	}
}
