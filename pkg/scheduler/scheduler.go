// Package scheduler drives the rotation loop: it decides which source is
// active at any instant, pulls a frame from it, pushes the frame to the
// render target, and absorbs configuration hot-reloads without a restart.
//
// One goroutine owns everything. Config polling, source polling, and
// rendering run sequentially inside each tick, so no state here needs
// locking and no two presents are ever in flight against the same target.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/modes"
	"gitlab.com/tinyland/lab/sportsboard/pkg/render"
)

// DefaultTickInterval is the render refresh cadence. It is independent of
// rotation durations: frames may be re-pulled and re-presented well before
// the active source switches, which keeps per-source game cycling and
// in-progress clocks moving.
const DefaultTickInterval = time.Second

// Config assembles a Scheduler.
type Config struct {
	Store    *config.Store
	Registry *modes.Registry
	Target   render.Target
	Logger   *slog.Logger

	// TickInterval overrides DefaultTickInterval when positive.
	TickInterval time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Scheduler is the rotation state machine. All fields below the
// constructor arguments are mutated only by Tick.
type Scheduler struct {
	store    *config.Store
	registry *modes.Registry
	target   render.Target
	logger   *slog.Logger
	tick     time.Duration
	now      func() time.Time

	// stateMu guards mode and pos for readers outside the loop goroutine
	// (the TUI footer). Only Tick writes them.
	stateMu    sync.RWMutex
	mode       string
	pos        int
	lastSwitch time.Time
	seq        []modes.Entry

	// warnedMode dedupes resolution-failure logging: one log line per
	// occurrence of a bad mode, not one per tick.
	warnedMode string
}

// New creates a scheduler. Store, Registry and Target are required.
func New(cfg Config) *Scheduler {
	s := &Scheduler{
		store:    cfg.Store,
		registry: cfg.Registry,
		target:   cfg.Target,
		logger:   cfg.Logger,
		tick:     cfg.TickInterval,
		now:      cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tick <= 0 {
		s.tick = DefaultTickInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Mode returns the active mode name and the current position within its
// rotation.
func (s *Scheduler) Mode() (string, int) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.mode, s.pos
}

func (s *Scheduler) setState(mode string, pos int) {
	s.stateMu.Lock()
	s.mode = mode
	s.pos = pos
	s.stateMu.Unlock()
}

// Run drives Tick on the tick interval until ctx is cancelled or a present
// fails. A present failure is returned as-is: it only happens on the
// hardware target, where it means no frame can be shown at all.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"tick", s.tick,
		"target", s.target.Name(),
	)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		if err := s.Tick(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick runs one pass of the rotation algorithm: absorb a config reload,
// re-resolve the active mode, advance the rotation position when the
// current entry's duration has elapsed, then pull and present one frame.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := s.now()

	// 1. Config reload and mode switch.
	res := s.store.MaybeReload(now)
	if res.Err != nil {
		s.logger.Warn("config reload failed, keeping last known good", "error", res.Err)
	}
	cfg := s.store.Current()
	if cfg.ActiveMode != s.mode {
		s.logger.Info("switching mode", "from", s.mode, "to", cfg.ActiveMode)
		s.setState(cfg.ActiveMode, 0)
		s.lastSwitch = now
	}

	// 2. Re-resolve the rotation. Cheap because handles are cache-backed,
	// and it means duration or order edits to the current mode take effect
	// within one reload interval. On failure the previously resolved
	// rotation stays in place.
	seq, err := s.registry.Resolve(cfg, s.mode)
	switch {
	case err == nil:
		s.seq = seq
		s.warnedMode = ""
	case errors.Is(err, modes.ErrUnknownMode), errors.Is(err, modes.ErrUnknownSource):
		if s.warnedMode != s.mode {
			s.logger.Warn("mode resolution failed, keeping previous rotation", "mode", s.mode, "error", err)
			s.warnedMode = s.mode
		}
	default:
		if s.warnedMode != s.mode {
			s.logger.Warn("mode resolution failed, keeping previous rotation", "mode", s.mode, "error", err)
			s.warnedMode = s.mode
		}
	}
	if len(s.seq) == 0 {
		// Nothing ever resolved. Skip the tick rather than crash; a later
		// reload can still supply a usable mode.
		return nil
	}
	if s.pos >= len(s.seq) {
		s.setState(s.mode, 0)
	}

	// 3. Advance the position when the current entry's time is up. A
	// single-entry rotation wraps onto itself: the position never changes
	// but the switch time still resets, giving a full refresh cadence.
	if now.Sub(s.lastSwitch) >= s.seq[s.pos].Duration {
		s.setState(s.mode, (s.pos+1)%len(s.seq))
		s.lastSwitch = now
	}

	// 4. Pull and present.
	entry := s.seq[s.pos]
	frame := entry.Source.NextFrame(ctx)
	if err := s.target.Present(frame); err != nil {
		return fmt.Errorf("present frame from %q: %w", entry.Source.Name(), err)
	}
	return nil
}
