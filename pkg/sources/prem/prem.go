// Package prem provides the Premier League content source. Matches run on
// halves and the leader lines are goal scorers.
package prem

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/espn"
)

// SourceName is the source id used in mode definitions.
const SourceName = "prem"

// defaultPerGame is shorter than the other sports: soccer scorelines carry
// less text, so matches cycle a bit faster.
const defaultPerGame = 5 * time.Second

// Source implements sources.Source for Premier League matches.
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

// New creates the Premier League source with the given per-source settings.
func New(settings config.SourceSettings, opts ...Option) *Source {
	s := &Source{
		client:   espn.NewClient(),
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	perGame := settings.PerGame()
	if settings.PerGameSeconds <= 0 {
		perGame = settings.Scale(defaultPerGame)
	}
	s.feed = sources.NewFeed(func(ctx context.Context) ([]board.Game, error) {
		return s.client.Scoreboard(ctx, espn.Prem)
	}, perGame, s.feedOpts...)
	return s
}

// Name returns the source id.
func (s *Source) Name() string { return SourceName }

// Healthy reports whether the last upstream fetch succeeded.
func (s *Source) Healthy() bool { return s.feed.Healthy() }

// NextFrame returns the frame for the current match, or a placeholder when
// no matches are available.
func (s *Source) NextFrame(ctx context.Context) board.Frame {
	g, ok := s.feed.Current(ctx)
	if !ok {
		return board.Placeholder(SourceName, "NO PREM MATCHES")
	}

	f := board.Frame{Source: SourceName, CreatedAt: time.Now()}
	f.Lines = append(f.Lines,
		board.Line{Text: g.ScoreLine(), Role: board.RoleScore},
		board.Line{Text: g.StatusLine(), Role: board.RoleStatus},
	)
	if s.settings.LeadersEnabled() {
		for _, l := range g.LeaderLines(3) {
			f.Lines = append(f.Lines, board.Line{Text: l, Role: board.RoleLeader})
		}
	}
	if s.settings.LogosEnabled() {
		sources.AttachLogos(ctx, &f, g, s.logos)
	}
	return f
}
