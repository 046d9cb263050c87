// Package prefs persists statekit user preferences in
// ~/.config/statekit/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/statekit/internal/config"
)

// Prefs holds the settings changed from inside the TUI.
type Prefs struct {
	Theme     string `toml:"theme"`
	HideStats bool   `toml:"hide_stats"`
}

const (
	defaultPrefsPath = "~/.config/statekit/prefs.toml"
	// DefaultTheme is used when no theme was saved.
	DefaultTheme = "Nightfox"
)

// Default returns the preferences of a fresh install.
func Default() Prefs {
	return Prefs{Theme: DefaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// File is a preferences file on disk.
type File struct {
	path string
}

// Open resolves path (or the default location when empty) without touching
// the filesystem.
func Open(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	return &File{path: resolved}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the file. Preferences are cosmetic, so a missing or unreadable
// file yields Default() together with the error that caused the fallback, if
// any. Callers may log the error and carry on.
func (f *File) Load() (Prefs, error) {
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Default(), fmt.Errorf("parse prefs: %w", err)
	}
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	return p, nil
}

// Save writes p, creating parent directories as needed.
func (f *File) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(f.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Update loads the current preferences, applies fn and saves the result. A
// file that exists but cannot be read or parsed is left alone: fn still runs
// on the defaults so the caller gets the intended value, but nothing is written
// and the load error is returned.
func (f *File) Update(fn func(*Prefs)) (Prefs, error) {
	p, err := f.Load()
	fn(&p)
	if err != nil {
		return p, fmt.Errorf("update prefs: %w", err)
	}
	if err := f.Save(p); err != nil {
		return p, err
	}
	return p, nil
}
