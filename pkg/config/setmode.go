package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var activeModePattern = regexp.MustCompile(`("active_mode"\s*:\s*")[^"]*(")`)

// SetActiveMode rewrites the active_mode field of the configuration file in
// place, leaving every other byte of the file untouched. The file must
// parse as valid configuration and mode must be one of its defined modes.
//
// The replace is atomic: the new content is written to a temporary file in
// the same directory and renamed over the original, so a concurrently
// reloading scheduler never observes a half-written file. This is the same
// contract the scripts/switch_mode.sh helper honors.
func SetActiveMode(path, mode string) error {
	if mode == "" {
		return fmt.Errorf("set mode: mode name is required")
	}

	cfg, err := Load(path)
	if err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	if _, ok := cfg.Modes[mode]; !ok {
		return fmt.Errorf("set mode: mode %q is not defined in %s", mode, path)
	}
	if cfg.ActiveMode == mode {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	if !activeModePattern.Match(raw) {
		return fmt.Errorf("set mode: no active_mode field found in %s", path)
	}
	updated := activeModePattern.ReplaceAll(raw, []byte("${1}"+mode+"${2}"))

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("set mode: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(updated); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("set mode: write temp file: %w", err)
	}
	if err := tmp.Chmod(fi.Mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("set mode: chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("set mode: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("set mode: rename into place: %w", err)
	}
	return nil
}
