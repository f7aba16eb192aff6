// Package espn is a client for the ESPN site API scoreboard endpoints. All
// three feeds (NFL, MLB, Premier League) share the same response shape, so
// one client normalizes them into board.Game values and the per-sport
// source packages only differ in presentation.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// DefaultBaseURL is the ESPN site API root.
const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// DefaultTimeout bounds a single scoreboard request.
const DefaultTimeout = 10 * time.Second

// League identifies one scoreboard endpoint.
type League struct {
	Sport board.Sport
	Path  string
}

// Supported leagues.
var (
	NFL  = League{Sport: board.SportNFL, Path: "football/nfl"}
	MLB  = League{Sport: board.SportMLB, Path: "baseball/mlb"}
	Prem = League{Sport: board.SportPrem, Path: "soccer/eng.1"}
)

// Client fetches and normalizes scoreboard data.
type Client struct {
	// BaseURL overrides the API root, for tests. Empty uses DefaultBaseURL.
	BaseURL string

	// HTTPClient is the client used for requests. Nil uses a client with
	// DefaultTimeout.
	HTTPClient *http.Client
}

// NewClient returns a client with default settings.
func NewClient() *Client {
	return &Client{}
}

// Scoreboard fetches the current scoreboard for league and returns the
// normalized games in upstream order.
func (c *Client) Scoreboard(ctx context.Context, league League) ([]board.Game, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s/scoreboard", base, league.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("espn: build request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn: fetch %s scoreboard: %w", league.Sport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn: fetch %s scoreboard: unexpected status %s", league.Sport, resp.Status)
	}

	var sb scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("espn: decode %s scoreboard: %w", league.Sport, err)
	}

	games := make([]board.Game, 0, len(sb.Events))
	for _, ev := range sb.Events {
		games = append(games, normalizeEvent(ev, league.Sport))
	}
	return games, nil
}
