package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Read returns the last maxLines lines of the file at path. maxLines <= 0
// returns every line. A missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return tail(file, maxLines)
}

func tail(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Tailer re-reads a file only when its size or modification time moved since
// the previous call.
type Tailer struct {
	path     string
	maxLines int

	seen    bool
	size    int64
	modTime time.Time
}

// NewTailer returns a Tailer for the last maxLines lines of path.
func NewTailer(path string, maxLines int) *Tailer {
	return &Tailer{path: path, maxLines: maxLines}
}

// Path returns the tailed file path.
func (t *Tailer) Path() string {
	return t.path
}

// Poll returns the current tail and true when the file changed since the last
// Poll, or nil and false when it did not. A file that disappears reports one
// change with no lines.
func (t *Tailer) Poll() ([]string, bool, error) {
	info, err := os.Stat(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			changed := !t.seen || t.size != 0 || !t.modTime.IsZero()
			t.seen, t.size, t.modTime = true, 0, time.Time{}
			if !changed {
				return nil, false, nil
			}
			return []string{}, true, nil
		}
		return nil, false, fmt.Errorf("stat log: %w", err)
	}

	if t.seen && info.Size() == t.size && info.ModTime().Equal(t.modTime) {
		return nil, false, nil
	}

	lines, err := Read(t.path, t.maxLines)
	if err != nil {
		return nil, false, err
	}
	if lines == nil {
		lines = []string{}
	}
	t.seen, t.size, t.modTime = true, info.Size(), info.ModTime()
	return lines, true, nil
}

// Level is the severity detected in a log line.
type Level int

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the canonical upper-case name, or "" for LevelNone.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return ""
	}
}

// DetectLevel finds the first level token in line. It understands plain
// tokens ("2024-10-10 14:32:15 WARN ...") and slog text output ("level=WARN").
func DetectLevel(line string) Level {
	for _, field := range strings.Fields(line) {
		token := strings.TrimPrefix(field, "level=")
		token = strings.Trim(token, "[]:")
		switch strings.ToUpper(token) {
		case "DEBUG", "DBG":
			return LevelDebug
		case "INFO", "INF":
			return LevelInfo
		case "WARN", "WARNING", "WRN":
			return LevelWarn
		case "ERROR", "ERR", "FATAL":
			return LevelError
		}
	}
	return LevelNone
}
