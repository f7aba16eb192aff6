package render

import "gitlab.com/tinyland/lab/sportsboard/pkg/board"

// ChannelTarget hands frames to a consumer over a channel. It keeps only
// the latest frame: when the consumer lags, the stale frame is dropped
// rather than blocking the scheduler tick. The TUI preview and the
// scheduler tests consume through this target.
type ChannelTarget struct {
	ch chan board.Frame
}

// NewChannelTarget creates a channel target.
func NewChannelTarget() *ChannelTarget {
	return &ChannelTarget{ch: make(chan board.Frame, 1)}
}

// Frames returns the receive side of the target.
func (t *ChannelTarget) Frames() <-chan board.Frame {
	return t.ch
}

// Name returns "channel".
func (t *ChannelTarget) Name() string { return "channel" }

// Present publishes the frame, displacing an unconsumed older frame.
func (t *ChannelTarget) Present(f board.Frame) error {
	for {
		select {
		case t.ch <- f:
			return nil
		default:
			select {
			case <-t.ch:
			default:
			}
		}
	}
}

// Close is a no-op; the channel stays open so a lagging consumer can drain
// the final frame.
func (t *ChannelTarget) Close() error { return nil }
