package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the settings statekit reads at startup.
type Config struct {
	// LogPath is the file tailed into the store's "logs" slice.
	LogPath string
	// TailLines is how many trailing lines of LogPath are kept.
	TailLines int
	// PollInterval is the poller cadence.
	PollInterval time.Duration
	// LogFile receives statekit's own logs while the TUI owns the terminal.
	LogFile string
	// DebugAddr enables the debug HTTP server when non-empty.
	DebugAddr string
	// SourceAddr enables the remote JSON source when non-empty.
	SourceAddr string
	// SourcePath is the request path on SourceAddr.
	SourcePath string
}

const (
	defaultConfigPath   = "~/.config/statekit/config.toml"
	defaultLogFile      = "~/.local/state/statekit/statekit.log"
	defaultTailLines    = 200
	defaultPollInterval = 2 * time.Second
)

type rawConfig struct {
	LogPath      string `toml:"log_path" yaml:"log_path"`
	TailLines    int    `toml:"tail_lines" yaml:"tail_lines"`
	PollInterval int    `toml:"poll_interval" yaml:"poll_interval"`
	LogFile      string `toml:"log_file" yaml:"log_file"`
	DebugAddr    string `toml:"debug_addr" yaml:"debug_addr"`
	SourceAddr   string `toml:"source_addr" yaml:"source_addr"`
	SourcePath   string `toml:"source_path" yaml:"source_path"`
}

// Default returns the configuration used when no file exists.
//
// LogPath defaults to LogFile, so an unconfigured statekit tails its own log.
// Its own poll warnings show up in the log panel on the next poll; the
// poller's backoff bounds that to one line per failed poll. Set log_path to
// watch another file.
func Default() Config {
	logFile := mustExpand(defaultLogFile)
	return Config{
		LogPath:      logFile,
		TailLines:    defaultTailLines,
		PollInterval: defaultPollInterval,
		LogFile:      logFile,
	}
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path, or at the default location when path is
// empty. A missing file yields Default(). Files ending in .yaml or .yml are
// parsed as YAML, everything else as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if isYAML(resolved) {
		err = yaml.Unmarshal(bytes, &raw)
	} else {
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
		cfg.LogPath = cfg.LogFile
	}
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	switch {
	case raw.TailLines < 0:
		return Config{}, fmt.Errorf("tail_lines must not be negative, got %d", raw.TailLines)
	case raw.TailLines > 0:
		cfg.TailLines = raw.TailLines
	}

	switch {
	case raw.PollInterval < 0:
		return Config{}, fmt.Errorf("poll_interval must not be negative, got %d", raw.PollInterval)
	case raw.PollInterval > 0:
		cfg.PollInterval = time.Duration(raw.PollInterval) * time.Second
	}

	cfg.DebugAddr = strings.TrimSpace(raw.DebugAddr)
	cfg.SourceAddr = strings.TrimSpace(raw.SourceAddr)
	cfg.SourcePath = strings.TrimSpace(raw.SourcePath)
	return cfg, nil
}

// Encode renders cfg as TOML in the on-disk key format.
func (c Config) Encode() ([]byte, error) {
	raw := rawConfig{
		LogPath:      c.LogPath,
		TailLines:    c.TailLines,
		PollInterval: int(c.PollInterval / time.Second),
		LogFile:      c.LogFile,
		DebugAddr:    c.DebugAddr,
		SourceAddr:   c.SourceAddr,
		SourcePath:   c.SourcePath,
	}
	bytes, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return bytes, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, replaces a leading ~ with the home directory and
// makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
