package nfl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources/espn"
)

const fixture = `{
  "events": [
    {
      "id": "1",
      "competitions": [
        {
          "status": {"displayClock": "2:00", "period": 4, "type": {"state": "in", "description": "In Progress"}},
          "competitors": [
            {"homeAway": "home", "score": "27", "team": {"abbreviation": "KC"}},
            {"homeAway": "away", "score": "24", "team": {"abbreviation": "BUF"}}
          ],
          "leaders": [
            {"name": "passingLeader", "leaders": [{"displayValue": "301 YDS", "athlete": {"shortName": "P. Mahomes"}}]},
            {"name": "rushingLeader", "leaders": [{"displayValue": "88 YDS", "athlete": {"shortName": "I. Pacheco"}}]},
            {"name": "receivingLeader", "leaders": [{"displayValue": "120 YDS", "athlete": {"shortName": "T. Kelce"}}]}
          ],
          "situation": {"downDistanceText": "2nd & 5", "lastPlay": {"text": "Run for 6 yards"}}
        }
      ]
    }
  ]
}`

func newTestSource(t *testing.T, body string, status int, settings config.SourceSettings) *Source {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "fail", status)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(settings,
		WithClient(&espn.Client{BaseURL: srv.URL}),
		WithFeedOptions(sources.WithClock(func() time.Time { return time.Unix(0, 0) })),
	)
}

func TestNextFrameFormatsGame(t *testing.T) {
	s := newTestSource(t, fixture, http.StatusOK, config.SourceSettings{})

	f := s.NextFrame(context.Background())
	if f.Source != SourceName {
		t.Errorf("Source = %q", f.Source)
	}

	wantLines := []struct {
		text string
		role board.Role
	}{
		{"BUF 24 - 27 KC", board.RoleScore},
		{"Q4 2:00", board.RoleStatus},
		{"2nd & 5", board.RoleDetail},
		{"Run for 6 yards", board.RoleDetail},
		{"PAS P. Mahomes 301 YDS", board.RoleLeader},
		{"RUS I. Pacheco 88 YDS", board.RoleLeader},
		{"REC T. Kelce 120 YDS", board.RoleLeader},
	}
	if len(f.Lines) != len(wantLines) {
		t.Fatalf("len(Lines) = %d, want %d: %+v", len(f.Lines), len(wantLines), f.Lines)
	}
	for i, want := range wantLines {
		if f.Lines[i].Text != want.text || f.Lines[i].Role != want.role {
			t.Errorf("Lines[%d] = %+v, want %q/%v", i, f.Lines[i], want.text, want.role)
		}
	}
	if !s.Healthy() {
		t.Error("source should be healthy")
	}
}

func TestNextFrameLeadersDisabled(t *testing.T) {
	off := false
	s := newTestSource(t, fixture, http.StatusOK, config.SourceSettings{ShowLeaders: &off})

	f := s.NextFrame(context.Background())
	for _, l := range f.Lines {
		if l.Role == board.RoleLeader {
			t.Errorf("leader line present with show_leaders=false: %q", l.Text)
		}
	}
}

func TestLeaderModeSelectsCategory(t *testing.T) {
	leaderTexts := func(f board.Frame) []string {
		var out []string
		for _, l := range f.Lines {
			if l.Role == board.RoleLeader {
				out = append(out, l.Text)
			}
		}
		return out
	}

	tests := []struct {
		mode string
		want []string
	}{
		{"passing", []string{"PAS P. Mahomes 301 YDS"}},
		{"rushing", []string{"RUS I. Pacheco 88 YDS"}},
		{"receiving", []string{"REC T. Kelce 120 YDS"}},
		{"all", []string{"PAS P. Mahomes 301 YDS", "RUS I. Pacheco 88 YDS", "REC T. Kelce 120 YDS"}},
		{"", []string{"PAS P. Mahomes 301 YDS", "RUS I. Pacheco 88 YDS", "REC T. Kelce 120 YDS"}},
	}
	for _, tt := range tests {
		s := newTestSource(t, fixture, http.StatusOK, config.SourceSettings{LeaderMode: tt.mode})
		got := leaderTexts(s.NextFrame(context.Background()))
		if len(got) != len(tt.want) {
			t.Errorf("leader_mode %q: got %v, want %v", tt.mode, got, tt.want)
			continue
		}
		for i, w := range tt.want {
			if got[i] != w {
				t.Errorf("leader_mode %q line %d = %q, want %q", tt.mode, i, got[i], w)
			}
		}
	}
}

func TestNextFramePlaceholderOnEmptySchedule(t *testing.T) {
	s := newTestSource(t, `{"events": []}`, http.StatusOK, config.SourceSettings{})

	f := s.NextFrame(context.Background())
	if len(f.Lines) != 1 || f.Lines[0].Role != board.RoleNotice {
		t.Fatalf("expected placeholder frame, got %+v", f.Lines)
	}
	if f.Lines[0].Text != "NO NFL GAMES" {
		t.Errorf("placeholder = %q", f.Lines[0].Text)
	}
}

func TestNextFramePlaceholderOnUpstreamFailure(t *testing.T) {
	s := newTestSource(t, "", http.StatusInternalServerError, config.SourceSettings{})

	// Must not panic or error past the boundary; a placeholder comes back.
	f := s.NextFrame(context.Background())
	if len(f.Lines) != 1 || f.Lines[0].Role != board.RoleNotice {
		t.Fatalf("expected placeholder frame, got %+v", f.Lines)
	}
	if s.Healthy() {
		t.Error("source should report unhealthy after a failed fetch")
	}
}
