package board

import (
	"image"
	"strings"
	"time"
)

// Role classifies a frame line so render targets can style it without
// knowing which sport produced it.
type Role int

const (
	RoleScore Role = iota
	RoleStatus
	RoleDetail
	RoleLeader
	RoleNotice
)

// Line is one row of renderable text within a frame.
type Line struct {
	Text string
	Role Role
}

// Frame is one unit of renderable output for a single display tick. It is
// produced by a source, handed to a render target, and discarded.
type Frame struct {
	// Source is the name of the source that produced the frame.
	Source string

	// Lines are the text rows, top to bottom.
	Lines []Line

	// AwayLogo and HomeLogo are optional pre-sized team logos for bitmap
	// targets. Text targets ignore them.
	AwayLogo image.Image
	HomeLogo image.Image

	// CreatedAt is when the frame was produced.
	CreatedAt time.Time
}

// Placeholder returns a frame carrying a single notice line. Sources fall
// back to this when upstream data is unavailable.
func Placeholder(source, msg string) Frame {
	return Frame{
		Source:    source,
		Lines:     []Line{{Text: msg, Role: RoleNotice}},
		CreatedAt: time.Now(),
	}
}

// PlainText joins the frame's lines with newlines, without any styling.
func (f Frame) PlainText() string {
	parts := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
