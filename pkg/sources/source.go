// Package sources defines the content source capability and the shared
// feed machinery behind it. Each source (nfl, mlb, prem) lives in a
// sub-package, wraps an upstream scoreboard API, and produces renderable
// frames on demand. Transient upstream failures never escape a source: it
// serves stale cached data when it has any, and a placeholder frame when it
// has none.
package sources

import (
	"context"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// Source produces renderable frames for one feed. Implementations live in
// sub-packages (e.g., pkg/sources/nfl) and are registered with the mode
// registry at startup.
type Source interface {
	// Name returns the source id used in mode definitions (e.g., "nfl").
	Name() string

	// NextFrame returns the frame to display for the current tick. It never
	// fails: upstream errors are absorbed into stale data or a placeholder.
	NextFrame(ctx context.Context) board.Frame

	// Healthy reports whether the most recent upstream fetch succeeded. A
	// source that has not fetched yet is considered healthy.
	Healthy() bool
}
