// Package render provides the output sinks for frames: a physical LED
// matrix driven over SPI, a styled console fallback, and a channel target
// feeding the interactive preview. The active target is selected once at
// startup; the scheduler is the only writer and presents one frame at a
// time.
package render

import "gitlab.com/tinyland/lab/sportsboard/pkg/board"

// Target consumes frames and displays them.
type Target interface {
	// Name identifies the target ("matrix", "console", "channel").
	Name() string

	// Present displays one frame. The console and channel targets never
	// fail; a matrix error means the hardware link is broken and the
	// caller should treat it as fatal, since no frame can be shown at all.
	Present(f board.Frame) error

	// Close releases the target's resources.
	Close() error
}
