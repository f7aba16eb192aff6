package render

import (
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
)

// Detect selects the render target once at startup. An explicit target in
// the configuration wins; "auto" probes for LED hardware and falls back to
// the console when none is reachable. The selection is never re-evaluated
// at runtime.
func Detect(display config.DisplayConfig, logger *slog.Logger) (Target, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rows, cols := display.Rows, display.Cols
	if rows <= 0 {
		rows = config.DefaultRows
	}
	if cols <= 0 {
		cols = config.DefaultCols
	}

	switch display.Target {
	case config.TargetConsole:
		return NewConsole(os.Stdout), nil

	case config.TargetMatrix:
		m, err := NewMatrix(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("matrix target requested but unavailable: %w", err)
		}
		return m, nil

	default: // auto
		m, err := NewMatrix(rows, cols)
		if err != nil {
			logger.Info("no LED hardware detected, using console output", "reason", err)
			return NewConsole(os.Stdout), nil
		}
		logger.Info("LED matrix detected", "rows", rows, "cols", cols)
		return m, nil
	}
}
