// sportsboard drives an LED matrix (or a console fallback) with rotating
// sports scores: NFL, MLB, and Premier League.
//
// Display "modes" -- named rotations of sources with per-source durations --
// live in a JSON configuration file that is re-read while the process runs,
// so the active mode can be flipped without a restart.
//
// Usage:
//
//	sportsboard [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: config.json)
//	-once             Render a single frame and exit
//	-tui              Interactive console preview instead of the real target
//	-set-mode string  Rewrite active_mode in the config file and exit
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/sportsboard/pkg/cache"
	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/daemon"
	"gitlab.com/tinyland/lab/sportsboard/pkg/logos"
	"gitlab.com/tinyland/lab/sportsboard/pkg/modes"
	"gitlab.com/tinyland/lab/sportsboard/pkg/render"
	"gitlab.com/tinyland/lab/sportsboard/pkg/scheduler"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/mlb"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/nfl"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/prem"
	"gitlab.com/tinyland/lab/sportsboard/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "config.json", "Path to configuration file")
		runOnce     = flag.Bool("once", false, "Render a single frame and exit")
		runTUI      = flag.Bool("tui", false, "Interactive console preview instead of the real target")
		setMode     = flag.String("set-mode", "", "Rewrite active_mode in the config file and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sportsboard %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Mode switching is the in-binary twin of scripts/switch_mode.sh.
	if *setMode != "" {
		if err := config.SetActiveMode(*configPath, *setMode); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("active_mode set to %q\n", *setMode)
		os.Exit(0)
	}

	// No valid configuration at startup means no scoreboard: fatal.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logClose, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	// Only the long-running daemon takes the panel lock; one-shot renders
	// and the preview share the panel's owner gracefully by not locking.
	if !*runOnce && !*runTUI && cfg.PIDFile != "" {
		lock, err := daemon.Acquire(cfg.PIDFile)
		if err != nil {
			logger.Error("failed to acquire PID lock", "error", err)
			os.Exit(1)
		}
		defer lock.Release()
	}

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		logger.Error("failed to build source registry", "error", err)
		os.Exit(1)
	}

	store := config.NewStore(*configPath, cfg, logger)

	if *runTUI {
		runPreview(ctx, store, registry, logger)
		return
	}

	// Target selection happens once; it is not re-evaluated at runtime.
	target, err := render.Detect(cfg.Display, logger)
	if err != nil {
		logger.Error("no usable render target", "error", err)
		os.Exit(1)
	}
	defer target.Close()

	sched := scheduler.New(scheduler.Config{
		Store:    store,
		Registry: registry,
		Target:   target,
		Logger:   logger,
	})

	if *runOnce {
		if err := sched.Tick(ctx); err != nil {
			logger.Error("render failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting sportsboard",
		"config", *configPath,
		"active_mode", cfg.ActiveMode,
		"reload_interval", cfg.Reload(),
	)
	if err := sched.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

// setupLogging builds the process logger: stderr always, plus the
// configured log file when one is set.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// buildRegistry registers the factory for every known source id. Handles
// are constructed lazily on first reference by a mode, so an unused source
// costs nothing.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*modes.Registry, error) {
	fetcher, err := buildLogoFetcher(logger)
	if err != nil {
		// Logos are decoration; the scoreboard runs fine without them.
		logger.Warn("logo cache unavailable, continuing without logos", "error", err)
	}

	registry := modes.NewRegistry()
	factories := map[string]modes.Factory{
		nfl.SourceName: func(s config.SourceSettings) (sources.Source, error) {
			return nfl.New(s, nfl.WithLogos(fetcher)), nil
		},
		mlb.SourceName: func(s config.SourceSettings) (sources.Source, error) {
			return mlb.New(s, mlb.WithLogos(fetcher)), nil
		},
		prem.SourceName: func(s config.SourceSettings) (sources.Source, error) {
			return prem.New(s, prem.WithLogos(fetcher)), nil
		},
	}
	for id, f := range factories {
		if err := registry.RegisterFactory(id, f); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// buildLogoFetcher sets up the disk-backed logo cache under the XDG cache
// directory.
func buildLogoFetcher(logger *slog.Logger) (sources.LogoProvider, error) {
	home, _ := os.UserHomeDir()
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}
	store, err := cache.NewStore(filepath.Join(cacheHome, "sportsboard", "logos"), logos.DefaultTTL)
	if err != nil {
		return nil, err
	}
	return logos.New(store), nil
}

// runPreview wires the scheduler to a channel target and shows the frames
// in the interactive bubbletea preview.
func runPreview(ctx context.Context, store *config.Store, registry *modes.Registry, logger *slog.Logger) {
	target := render.NewChannelTarget()
	sched := scheduler.New(scheduler.Config{
		Store:    store,
		Registry: registry,
		Target:   target,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := sched.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
		}
	}()

	model := tui.NewModel(target.Frames(), sched.Mode)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}
