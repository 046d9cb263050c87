package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/statekit/internal/config"
	"github.com/five82/statekit/internal/debug"
	"github.com/five82/statekit/internal/logtail"
	"github.com/five82/statekit/internal/model"
	"github.com/five82/statekit/internal/prefs"
	"github.com/five82/statekit/internal/source"
	"github.com/five82/statekit/internal/ui"
)

// Options configure a statekit run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/statekit/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Debug      bool   // log at debug level
}

// Run boots the statekit TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyOverrides(cfg, opts)

	logger, logFile, err := newLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	prefsFile, err := prefs.Open(opts.PrefsPath)
	if err != nil {
		return err
	}
	userPrefs, err := prefsFile.Load()
	if err != nil {
		logger.Warn("using default preferences", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiOpts := ui.Options{
		Store:       model.NewStore(cfg.LogPath, userPrefs.Theme),
		Prefs:       prefsFile,
		Preferences: userPrefs,
		Logger:      logger,
	}

	var onPollFailure func()
	if cfg.DebugAddr != "" {
		dbg := debug.New(logger)
		defer dbg.Close()
		uiOpts.Observer = dbg.Metrics()
		uiOpts.OnAttach = dbg.Watch
		onPollFailure = dbg.Metrics().PollFailed
		go func() {
			if err := dbg.Serve(ctx, cfg.DebugAddr); err != nil {
				logger.Error("debug server stopped", "error", err)
			}
		}()
	}

	var fetcher source.Fetcher
	if cfg.SourceAddr != "" {
		client, err := source.NewClient(cfg.SourceAddr, cfg.SourcePath)
		if err != nil {
			return fmt.Errorf("init source client: %w", err)
		}
		fetcher = client
	}

	root, err := ui.New(uiOpts)
	if err != nil {
		return fmt.Errorf("init ui: %w", err)
	}

	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	poller := NewPoller(
		logtail.NewTailer(cfg.LogPath, cfg.TailLines),
		fetcher,
		func(payload model.State) { program.Send(ui.DispatchMsg{Payload: payload}) },
		cfg.PollInterval,
		logger,
	)
	poller.OnFailure = onPollFailure
	poller.Start(ctx)

	logger.Info("statekit started",
		"log_path", cfg.LogPath,
		"poll_interval", cfg.PollInterval,
		"debug_addr", cfg.DebugAddr,
		"source", cfg.SourceAddr,
	)

	final, runErr := program.Run()
	cancel()
	if m, ok := final.(ui.Model); ok {
		if err := m.Close(); err != nil {
			logger.Warn("ui teardown failed", "error", err)
		}
	} else if err := root.Close(); err != nil {
		logger.Warn("ui teardown failed", "error", err)
	}
	logger.Info("statekit stopped")

	if runErr != nil && !(errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}

func applyOverrides(cfg config.Config, opts Options) config.Config {
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	return cfg
}

// newLogger opens path for appending through tea.LogToFile, since the
// terminal belongs to the TUI, and returns a slog text logger writing to it.
func newLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := tea.LogToFile(path, "statekit")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), file, nil
}
