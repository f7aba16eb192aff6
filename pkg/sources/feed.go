package sources

import (
	"context"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// DefaultTTL is how long fetched events are served before the upstream API
// is asked again. A compromise between near-real-time scores and not
// hammering the API.
const DefaultTTL = 30 * time.Second

// FetchFunc retrieves the current slate of games from an upstream API.
type FetchFunc func(ctx context.Context) ([]board.Game, error)

// Feed caches the games returned by a FetchFunc and cycles through them on
// a per-game cadence. On a fetch error it keeps serving the previous slate,
// so a flaky upstream degrades to stale scores rather than a blank panel.
//
// A Feed is owned by exactly one source handle but is safe for concurrent
// use anyway, since handles outlive mode changes and may be shared.
type Feed struct {
	fetch   FetchFunc
	ttl     time.Duration
	perGame time.Duration
	now     func() time.Time

	mu        sync.Mutex
	games     []board.Game
	fetchedAt time.Time
	lastErr   error
	fetched   bool
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithTTL overrides the event cache TTL.
func WithTTL(ttl time.Duration) FeedOption {
	return func(f *Feed) { f.ttl = ttl }
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) FeedOption {
	return func(f *Feed) { f.now = now }
}

// NewFeed creates a feed around fetch. perGame controls how long each game
// in the slate stays current before the feed advances to the next one.
func NewFeed(fetch FetchFunc, perGame time.Duration, opts ...FeedOption) *Feed {
	f := &Feed{
		fetch:   fetch,
		ttl:     DefaultTTL,
		perGame: perGame,
		now:     time.Now,
	}
	if f.perGame <= 0 {
		f.perGame = 6 * time.Second
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Current returns the game to display right now, refreshing the slate from
// upstream when the cache has expired. Returns false when no games are
// available (empty schedule, or first fetch failed).
func (f *Feed) Current(ctx context.Context) (board.Game, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if !f.fetched || now.Sub(f.fetchedAt) >= f.ttl {
		games, err := f.fetch(ctx)
		f.lastErr = err
		if err == nil {
			board.SortForDisplay(games)
			f.games = games
			f.fetchedAt = now
			f.fetched = true
		} else if f.fetched {
			// Serve stale; retry at the next TTL boundary.
			f.fetchedAt = now
		}
	}

	if len(f.games) == 0 {
		return board.Game{}, false
	}

	// Derive the game index from the wall clock so every game in the slate
	// gets its turn while the source is active, regardless of tick rate.
	idx := int(now.UnixNano()/int64(f.perGame)) % len(f.games)
	return f.games[idx], true
}

// PerGame returns how long each game stays current.
func (f *Feed) PerGame() time.Duration { return f.perGame }

// Healthy reports whether the most recent fetch succeeded. A feed that has
// never fetched is healthy.
func (f *Feed) Healthy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr == nil
}
