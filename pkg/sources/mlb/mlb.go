// Package mlb provides the MLB content source. Innings replace quarters and
// batting leaders can be toggled off via the show_batting setting.
package mlb

import (
	"context"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/espn"
)

// SourceName is the source id used in mode definitions.
const SourceName = "mlb"

// Source implements sources.Source for MLB games.
type Source struct {
	client   *espn.Client
	feed     *sources.Feed
	settings config.SourceSettings
	logos    sources.LogoProvider
	feedOpts []sources.FeedOption
}

// Option configures a Source.
type Option func(*Source)

// WithClient overrides the ESPN client, for tests.
func WithClient(c *espn.Client) Option {
	return func(s *Source) { s.client = c }
}

// WithLogos supplies a logo provider for bitmap targets.
func WithLogos(p sources.LogoProvider) Option {
	return func(s *Source) { s.logos = p }
}

// WithFeedOptions forwards options to the underlying feed, for tests.
func WithFeedOptions(opts ...sources.FeedOption) Option {
	return func(s *Source) { s.feedOpts = opts }
}

// New creates the MLB source with the given per-source settings.
func New(settings config.SourceSettings, opts ...Option) *Source {
	s := &Source{
		client:   espn.NewClient(),
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.feed = sources.NewFeed(func(ctx context.Context) ([]board.Game, error) {
		return s.client.Scoreboard(ctx, espn.MLB)
	}, settings.PerGame(), s.feedOpts...)
	return s
}

// Name returns the source id.
func (s *Source) Name() string { return SourceName }

// Healthy reports whether the last upstream fetch succeeded.
func (s *Source) Healthy() bool { return s.feed.Healthy() }

// NextFrame returns the frame for the current MLB game, or a placeholder
// when no games are available.
func (s *Source) NextFrame(ctx context.Context) board.Frame {
	g, ok := s.feed.Current(ctx)
	if !ok {
		return board.Placeholder(SourceName, "NO MLB GAMES")
	}

	f := board.Frame{Source: SourceName, CreatedAt: time.Now()}
	f.Lines = append(f.Lines,
		board.Line{Text: g.ScoreLine(), Role: board.RoleScore},
		board.Line{Text: g.StatusLine(), Role: board.RoleStatus},
	)
	if g.State == board.StateIn && g.LastPlay != "" {
		f.Lines = append(f.Lines, board.Line{Text: g.LastPlay, Role: board.RoleDetail})
	}
	if s.settings.LeadersEnabled() {
		for _, l := range s.leaderLines(g) {
			f.Lines = append(f.Lines, board.Line{Text: l, Role: board.RoleLeader})
		}
	}
	if s.settings.LogosEnabled() {
		sources.AttachLogos(ctx, &f, g, s.logos)
	}
	return f
}

// leaderLines filters the game's leaders per settings: batting categories
// are dropped when show_batting is explicitly disabled.
func (s *Source) leaderLines(g board.Game) []string {
	showBatting := s.settings.ShowBatting == nil || *s.settings.ShowBatting
	if showBatting {
		return g.LeaderLines(3)
	}
	filtered := g
	filtered.Leaders = nil
	for _, l := range g.Leaders {
		if strings.Contains(strings.ToLower(l.Category), "bat") {
			continue
		}
		filtered.Leaders = append(filtered.Leaders, l)
	}
	return filtered.LeaderLines(3)
}
