package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

const nflFixture = `{
  "events": [
    {
      "id": "401547638",
      "competitions": [
        {
          "startDate": "2026-09-13T17:00:00Z",
          "status": {
            "displayClock": "7:41",
            "period": 3,
            "type": {"state": "in", "description": "In Progress"}
          },
          "competitors": [
            {
              "homeAway": "home",
              "score": "24",
              "team": {"id": "12", "abbreviation": "KC", "logo": "https://a.espncdn.com/kc.png"},
              "record": [{"summary": "1-0"}]
            },
            {
              "homeAway": "away",
              "score": "21",
              "team": {"id": "2", "abbreviation": "BUF", "logos": [{"href": "https://a.espncdn.com/buf.png"}]},
              "record": [{"summary": "0-1"}]
            }
          ],
          "leaders": [
            {
              "name": "passingLeader",
              "leaders": [{"displayValue": "312 YDS", "athlete": {"shortName": "J. Allen"}}]
            },
            {"name": "rushingLeader", "leaders": []}
          ],
          "situation": {
            "downDistanceText": "3rd & 7 at KC 35",
            "lastPlay": {"text": "Pass incomplete"}
          }
        }
      ]
    },
    {"id": "401547639", "competitions": []}
  ]
}`

func TestScoreboardNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/football/nfl/scoreboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(nflFixture))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	games, err := c.Scoreboard(context.Background(), NFL)
	if err != nil {
		t.Fatalf("Scoreboard failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}

	g := games[0]
	if g.ID != "401547638" {
		t.Errorf("ID = %q", g.ID)
	}
	if g.Sport != board.SportNFL {
		t.Errorf("Sport = %q", g.Sport)
	}
	if g.State != board.StateIn || g.Status != "In Progress" {
		t.Errorf("State/Status = %q/%q", g.State, g.Status)
	}
	if g.Clock != "7:41" || g.Period != 3 {
		t.Errorf("Clock/Period = %q/%d", g.Clock, g.Period)
	}
	if g.StartTime.IsZero() {
		t.Error("StartTime should be parsed")
	}
	if g.Home.Abbr != "KC" || g.Home.Score != "24" || g.Home.Record != "1-0" {
		t.Errorf("Home = %+v", g.Home)
	}
	if g.Home.LogoURL != "https://a.espncdn.com/kc.png" {
		t.Errorf("Home.LogoURL = %q", g.Home.LogoURL)
	}
	// The logos list takes precedence over the single logo field.
	if g.Away.LogoURL != "https://a.espncdn.com/buf.png" {
		t.Errorf("Away.LogoURL = %q", g.Away.LogoURL)
	}
	if len(g.Leaders) != 1 {
		t.Fatalf("len(Leaders) = %d, want 1 (empty sets skipped)", len(g.Leaders))
	}
	if g.Leaders[0].Category != "passing" || g.Leaders[0].Athlete != "J. Allen" {
		t.Errorf("Leaders[0] = %+v", g.Leaders[0])
	}
	if g.DownDistance != "3rd & 7 at KC 35" || g.LastPlay != "Pass incomplete" {
		t.Errorf("situation = %q / %q", g.DownDistance, g.LastPlay)
	}

	// An event with no competitions still yields a game shell.
	if games[1].ID != "401547639" || games[1].State != "" {
		t.Errorf("bare event = %+v", games[1])
	}
}

func TestScoreboardDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [{"id": "1", "competitions": [{"competitors": [{"homeAway": "home", "team": {}}]}]}]}`))
	}))
	defer srv.Close()

	games, err := (&Client{BaseURL: srv.URL}).Scoreboard(context.Background(), MLB)
	if err != nil {
		t.Fatalf("Scoreboard failed: %v", err)
	}
	if games[0].Home.Abbr != "???" {
		t.Errorf("missing abbreviation should default, got %q", games[0].Home.Abbr)
	}
	if games[0].Home.Score != "0" {
		t.Errorf("missing score should default, got %q", games[0].Home.Score)
	}
}

func TestNormalizeInningHalf(t *testing.T) {
	tests := []struct {
		name string
		comp competition
		want string
	}{
		{
			"situation halfInning",
			competition{Situation: &situation{HalfInning: "top"}},
			"top",
		},
		{
			"situation inningHalf variant",
			competition{Situation: &situation{InningHalf: "Bottom"}},
			"bot",
		},
		{
			"shortDetail fallback",
			competition{Status: status{Type: statusType{ShortDetail: "Top 5th"}}},
			"top",
		},
		{
			"detail fallback bottom",
			competition{Status: status{Type: statusType{Detail: "Bottom 4th"}}},
			"bot",
		},
		{
			"no inning data",
			competition{Status: status{Type: statusType{Description: "In Progress"}}},
			"",
		},
		{
			"unrelated detail text",
			competition{Status: status{Type: statusType{ShortDetail: "Q4 2:00"}}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeInningHalf(tt.comp); got != tt.want {
				t.Errorf("normalizeInningHalf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreboardHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := (&Client{BaseURL: srv.URL}).Scoreboard(context.Background(), Prem); err == nil {
		t.Fatal("non-200 should be an error")
	}
}

func TestScoreboardBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	if _, err := (&Client{BaseURL: srv.URL}).Scoreboard(context.Background(), NFL); err == nil {
		t.Fatal("undecodable body should be an error")
	}
}

func TestLeaguePaths(t *testing.T) {
	tests := []struct {
		league League
		path   string
	}{
		{NFL, "football/nfl"},
		{MLB, "baseball/mlb"},
		{Prem, "soccer/eng.1"},
	}
	for _, tt := range tests {
		if tt.league.Path != tt.path {
			t.Errorf("%s path = %q, want %q", tt.league.Sport, tt.league.Path, tt.path)
		}
	}
}
