package config

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Store holds the last known good configuration and re-reads the file on a
// fixed cadence. A reload that fails for any reason -- stat error, parse
// error, validation error -- leaves the previous configuration active; the
// failure is reported in the ReloadResult rather than swallowed.
type Store struct {
	path string

	mu        sync.RWMutex
	current   *Config
	lastCheck time.Time
	lastMod   time.Time
	logger    *slog.Logger
}

// ReloadResult is the outcome of a MaybeReload call. Exactly one of three
// things happened: the interval had not elapsed (Checked false), the file
// was re-read and swapped in (Reloaded true), or the previous configuration
// was retained (Reloaded false, Err set when the retention was caused by a
// failure rather than an unchanged file).
type ReloadResult struct {
	Config   *Config
	Checked  bool
	Reloaded bool
	Err      error
}

// NewStore wraps an already-loaded configuration for hot reloading.
func NewStore(path string, cfg *Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	mod := time.Time{}
	if fi, err := os.Stat(path); err == nil {
		mod = fi.ModTime()
	}
	return &Store{
		path:    path,
		current: cfg,
		lastMod: mod,
		logger:  logger,
	}
}

// Current returns the active configuration snapshot.
func (s *Store) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Path returns the configuration file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// MaybeReload re-reads the configuration file if the reload interval has
// elapsed since the last check. now is supplied by the caller so the
// scheduler can drive it from its own clock.
func (s *Store) MaybeReload(now time.Time) ReloadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastCheck) < s.current.Reload() {
		return ReloadResult{Config: s.current}
	}
	s.lastCheck = now

	fi, err := os.Stat(s.path)
	if err != nil {
		return ReloadResult{Config: s.current, Checked: true, Err: err}
	}
	if fi.ModTime().Equal(s.lastMod) {
		return ReloadResult{Config: s.current, Checked: true}
	}

	cfg, err := Load(s.path)
	if err != nil {
		// Keep last known good. Record the mtime so an unchanged bad file
		// is not re-parsed every interval.
		s.lastMod = fi.ModTime()
		return ReloadResult{Config: s.current, Checked: true, Err: err}
	}

	s.current = cfg
	s.lastMod = fi.ModTime()
	s.logger.Info("config reloaded", "path", s.path, "active_mode", cfg.ActiveMode)
	return ReloadResult{Config: cfg, Checked: true, Reloaded: true}
}
