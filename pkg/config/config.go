// Package config provides the JSON configuration for sportsboard: the mode
// table that drives source rotation, per-source settings, and display
// options. The file is read once at startup (fatal on error) and re-read on
// a fixed cadence while the process runs; a reload that fails validation is
// discarded and the last known good configuration stays active.
package config

import (
	"fmt"
	"time"
)

// Defaults applied when the corresponding field is absent from the file.
const (
	DefaultReloadInterval = 30 * time.Second
	DefaultRows           = 32
	DefaultCols           = 64
	DefaultPerGameSeconds = 6
)

// Render target selection values for DisplayConfig.Target.
const (
	TargetAuto    = "auto"
	TargetMatrix  = "matrix"
	TargetConsole = "console"
)

// ModeEntry is one step of a mode's rotation: which source to show and for
// how long.
type ModeEntry struct {
	SourceID        string  `json:"source_id"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Duration returns the entry's display duration as a time.Duration.
func (e ModeEntry) Duration() time.Duration {
	return time.Duration(e.DurationSeconds * float64(time.Second))
}

// SourceSettings are optional per-source tuning knobs. Pointer fields
// distinguish "absent" from an explicit false.
type SourceSettings struct {
	PerGameSeconds float64 `json:"per_game_seconds,omitempty"`
	ShowLeaders    *bool   `json:"show_leaders,omitempty"`
	LeaderMode     string  `json:"leader_mode,omitempty"`
	ShowLogos      *bool   `json:"show_logos,omitempty"`
	ShowBatting    *bool   `json:"show_batting,omitempty"`

	// durationMultiplier is the document-level duration_multiplier, folded
	// in by SourceSettingsFor so per-game timing math stays in one place.
	durationMultiplier float64
}

// PerGame returns how long each individual game stays on screen while its
// source is active. Falls back to the package default when unset; the
// global duration multiplier applies either way.
func (s SourceSettings) PerGame() time.Duration {
	per := DefaultPerGameSeconds * time.Second
	if s.PerGameSeconds > 0 {
		per = time.Duration(s.PerGameSeconds * float64(time.Second))
	}
	return s.Scale(per)
}

// Scale applies the global duration multiplier to d. A multiplier of zero
// means unset and leaves d unchanged.
func (s SourceSettings) Scale(d time.Duration) time.Duration {
	if s.durationMultiplier > 0 {
		return time.Duration(float64(d) * s.durationMultiplier)
	}
	return d
}

// LeadersEnabled reports whether leader lines should be shown. Defaults to
// true when unset.
func (s SourceSettings) LeadersEnabled() bool {
	return s.ShowLeaders == nil || *s.ShowLeaders
}

// LogosEnabled reports whether team logos should be fetched and composited.
// Defaults to true when unset.
func (s SourceSettings) LogosEnabled() bool {
	return s.ShowLogos == nil || *s.ShowLogos
}

// DisplayConfig holds panel geometry and render target selection.
type DisplayConfig struct {
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Target string `json:"target,omitempty"` // auto|matrix|console
}

// Config is the parsed configuration document.
type Config struct {
	ActiveMode     string                    `json:"active_mode"`
	Modes          map[string][]ModeEntry    `json:"modes"`
	Sources        map[string]SourceSettings `json:"sources,omitempty"`
	Display        DisplayConfig             `json:"display,omitempty"`
	ReloadInterval Duration                  `json:"reload_interval,omitempty"`

	// DurationMultiplier scales every source's per-game seconds, for quick
	// global tuning without editing each settings block. Zero means 1.
	DurationMultiplier float64 `json:"duration_multiplier,omitempty"`
	LogFile        string                    `json:"log_file,omitempty"`
	PIDFile        string                    `json:"pid_file,omitempty"`
}

// SourceSettingsFor returns the settings block for a source id, or the zero
// value when none is configured, with the global duration multiplier folded
// in.
func (c *Config) SourceSettingsFor(id string) SourceSettings {
	s := c.Sources[id]
	s.durationMultiplier = c.DurationMultiplier
	return s
}

// Reload returns the effective reload interval.
func (c *Config) Reload() time.Duration {
	if c.ReloadInterval.Duration > 0 {
		return c.ReloadInterval.Duration
	}
	return DefaultReloadInterval
}

// Geometry returns the effective panel size.
func (c *Config) Geometry() (rows, cols int) {
	rows, cols = c.Display.Rows, c.Display.Cols
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return rows, cols
}

// Validate checks the structural invariants the scheduler depends on:
// active_mode references a defined mode, every mode is non-empty, and every
// entry has a positive duration and a source id.
func (c *Config) Validate() error {
	if c.ActiveMode == "" {
		return fmt.Errorf("config: active_mode is required")
	}
	if len(c.Modes) == 0 {
		return fmt.Errorf("config: modes is required")
	}
	if _, ok := c.Modes[c.ActiveMode]; !ok {
		return fmt.Errorf("config: active_mode %q is not defined in modes", c.ActiveMode)
	}
	for name, entries := range c.Modes {
		if len(entries) == 0 {
			return fmt.Errorf("config: mode %q has no entries", name)
		}
		for i, e := range entries {
			if e.SourceID == "" {
				return fmt.Errorf("config: mode %q entry %d has no source_id", name, i)
			}
			if e.DurationSeconds <= 0 {
				return fmt.Errorf("config: mode %q entry %d (%s) has non-positive duration", name, i, e.SourceID)
			}
		}
	}
	if c.DurationMultiplier < 0 {
		return fmt.Errorf("config: duration_multiplier must be positive")
	}
	switch c.Display.Target {
	case "", TargetAuto, TargetMatrix, TargetConsole:
	default:
		return fmt.Errorf("config: unknown display target %q", c.Display.Target)
	}
	return nil
}
