package espn

import (
	"strings"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// Wire types covering the subset of the ESPN scoreboard response the board
// model needs. Field names follow the upstream JSON.

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	StartDate   string       `json:"startDate"`
	Status      status       `json:"status"`
	Competitors []competitor `json:"competitors"`
	Leaders     []leaderSet  `json:"leaders"`
	Situation   *situation   `json:"situation"`
}

type status struct {
	DisplayClock string     `json:"displayClock"`
	Period       int        `json:"period"`
	Type         statusType `json:"type"`
}

type statusType struct {
	State       string `json:"state"`
	Description string `json:"description"`
	ShortDetail string `json:"shortDetail"`
	Detail      string `json:"detail"`
}

type competitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     team     `json:"team"`
	Records  []record `json:"record"`
}

type team struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
	Logos        []logo `json:"logos"`
}

type logo struct {
	Href string `json:"href"`
}

type record struct {
	Summary string `json:"summary"`
}

type leaderSet struct {
	Name    string        `json:"name"`
	Leaders []leaderEntry `json:"leaders"`
}

type leaderEntry struct {
	DisplayValue string  `json:"displayValue"`
	Athlete      athlete `json:"athlete"`
}

type athlete struct {
	ShortName   string `json:"shortName"`
	DisplayName string `json:"displayName"`
}

type situation struct {
	DownDistanceText string    `json:"downDistanceText"`
	HalfInning       string    `json:"halfInning"`
	InningHalf       string    `json:"inningHalf"`
	LastPlay         *lastPlay `json:"lastPlay"`
}

type lastPlay struct {
	Text string `json:"text"`
}

// normalizeEvent flattens one upstream event into a board.Game. Events with
// no competitions produce a zero-score game carrying only the id.
func normalizeEvent(ev event, sport board.Sport) board.Game {
	g := board.Game{ID: ev.ID, Sport: sport}
	if len(ev.Competitions) == 0 {
		return g
	}
	comp := ev.Competitions[0]

	g.State = comp.Status.Type.State
	g.Status = comp.Status.Type.Description
	g.Clock = comp.Status.DisplayClock
	g.Period = comp.Status.Period
	if t, err := time.Parse(time.RFC3339, comp.StartDate); err == nil {
		g.StartTime = t
	}

	for _, c := range comp.Competitors {
		side := normalizeTeam(c)
		switch c.HomeAway {
		case "home":
			g.Home = side
		case "away":
			g.Away = side
		}
	}

	g.Leaders = normalizeLeaders(comp.Leaders)

	if comp.Situation != nil {
		g.DownDistance = comp.Situation.DownDistanceText
		if comp.Situation.LastPlay != nil {
			g.LastPlay = comp.Situation.LastPlay.Text
		}
	}
	g.InningHalf = normalizeInningHalf(comp)
	return g
}

// normalizeInningHalf extracts the inning half for baseball events. The
// situation block carries it under halfInning (or inningHalf on some
// endpoint variants); older responses only spell it out in the status
// detail text ("Top 5th", "Bottom 4th").
func normalizeInningHalf(comp competition) string {
	if comp.Situation != nil {
		half := strings.ToLower(comp.Situation.HalfInning)
		if half == "" {
			half = strings.ToLower(comp.Situation.InningHalf)
		}
		switch {
		case strings.HasPrefix(half, "top"):
			return "top"
		case strings.HasPrefix(half, "bot"):
			return "bot"
		}
	}
	for _, detail := range []string{comp.Status.Type.ShortDetail, comp.Status.Type.Detail} {
		for _, word := range strings.Fields(detail) {
			switch strings.ToLower(word) {
			case "top":
				return "top"
			case "bot", "bottom":
				return "bot"
			}
		}
	}
	return ""
}

func normalizeTeam(c competitor) board.TeamSide {
	side := board.TeamSide{
		ID:      c.Team.ID,
		Abbr:    c.Team.Abbreviation,
		Score:   c.Score,
		LogoURL: c.Team.Logo,
	}
	if side.Abbr == "" {
		side.Abbr = "???"
	}
	if side.Score == "" {
		side.Score = "0"
	}
	if len(c.Records) > 0 {
		side.Record = c.Records[0].Summary
	}
	// Some endpoints supply multiple logo sizes under "logos"; prefer the
	// first over the single "logo" field.
	if len(c.Team.Logos) > 0 && c.Team.Logos[0].Href != "" {
		side.LogoURL = c.Team.Logos[0].Href
	}
	return side
}

// normalizeLeaders maps upstream leader sets (passingLeader, rushingLeader,
// scorers, ...) to flat board.Leader entries, one athlete per category.
func normalizeLeaders(sets []leaderSet) []board.Leader {
	var out []board.Leader
	for _, set := range sets {
		if len(set.Leaders) == 0 {
			continue
		}
		first := set.Leaders[0]
		name := first.Athlete.ShortName
		if name == "" {
			name = first.Athlete.DisplayName
		}
		out = append(out, board.Leader{
			Category: strings.TrimSuffix(set.Name, "Leader"),
			Athlete:  name,
			Display:  first.DisplayValue,
		})
	}
	return out
}
