// Package board defines the shared game and frame model used across the
// sportsboard pipeline. Sources normalize upstream API responses into Game
// values, format them into Frames, and render targets consume the Frames.
package board

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sport identifies which feed a game came from.
type Sport string

const (
	SportNFL  Sport = "nfl"
	SportMLB  Sport = "mlb"
	SportPrem Sport = "prem"
)

// Game states as reported by the upstream scoreboard APIs.
const (
	StatePre  = "pre"
	StateIn   = "in"
	StatePost = "post"
)

// TeamSide holds one team's slice of a game.
type TeamSide struct {
	ID      string `json:"id"`
	Abbr    string `json:"abbr"`
	Score   string `json:"score"`
	Record  string `json:"record,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Leader is a single statistical leader line (e.g. passing, batting,
// goal scorers).
type Leader struct {
	Category string `json:"category"`
	Athlete  string `json:"athlete"`
	Display  string `json:"display"`
}

// Game is a normalized scoreboard event. All sports share this shape; the
// Sport field drives sport-specific presentation (period text, leader
// categories).
type Game struct {
	ID        string    `json:"id"`
	Sport     Sport     `json:"sport"`
	State     string    `json:"state"`
	Status    string    `json:"status"`
	Clock     string    `json:"clock,omitempty"`
	Period    int       `json:"period,omitempty"`
	StartTime time.Time `json:"start_time,omitzero"`
	Home      TeamSide  `json:"home"`
	Away      TeamSide  `json:"away"`
	Leaders   []Leader  `json:"leaders,omitempty"`
	LastPlay  string    `json:"last_play,omitempty"`

	// DownDistance is NFL-only situation text ("3rd & 7").
	DownDistance string `json:"down_distance,omitempty"`

	// InningHalf is MLB-only: "top" or "bot" while a game is in progress.
	InningHalf string `json:"inning_half,omitempty"`
}

// ScoreLine formats the game score as "AWY 3 - 1 HOM".
func (g Game) ScoreLine() string {
	return fmt.Sprintf("%s %s - %s %s", g.Away.Abbr, g.Away.Score, g.Home.Score, g.Home.Abbr)
}

// StatusLine formats the game status for display. Pre and post games show
// the upstream status description; in-progress games show the period and
// clock.
func (g Game) StatusLine() string {
	switch g.State {
	case StatePre:
		if g.Status != "" {
			return g.Status
		}
		return "Scheduled"
	case StatePost:
		if g.Status != "" {
			return g.Status
		}
		return "Final"
	default:
		return strings.TrimSpace(g.periodText() + " " + g.Clock)
	}
}

// periodText renders the period number in sport terms: quarters for NFL,
// innings for MLB, halves for soccer.
func (g Game) periodText() string {
	if g.Period <= 0 {
		return ""
	}
	switch g.Sport {
	case SportNFL:
		if g.Period > 4 {
			return "OT"
		}
		return fmt.Sprintf("Q%d", g.Period)
	case SportMLB:
		switch g.InningHalf {
		case "top":
			return fmt.Sprintf("Top %d", g.Period)
		case "bot":
			return fmt.Sprintf("Bot %d", g.Period)
		}
		return fmt.Sprintf("Inn %d", g.Period)
	case SportPrem:
		if g.Period > 2 {
			return "ET"
		}
		return fmt.Sprintf("H%d", g.Period)
	default:
		return fmt.Sprintf("P%d", g.Period)
	}
}

// LeaderLines compresses the game's leaders into at most max display lines.
func (g Game) LeaderLines(max int) []string {
	lines := make([]string, 0, max)
	for _, l := range g.Leaders {
		if len(lines) >= max {
			break
		}
		cat := l.Category
		if len(cat) > 3 {
			cat = cat[:3]
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s %s %s", strings.ToUpper(cat), l.Athlete, l.Display)))
	}
	return lines
}

// SortForDisplay orders games in-progress first, then upcoming, then
// finished, preserving upstream order within each group.
func SortForDisplay(games []Game) {
	rank := func(state string) int {
		switch state {
		case StateIn:
			return 0
		case StatePre:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		return rank(games[i].State) < rank(games[j].State)
	})
}
