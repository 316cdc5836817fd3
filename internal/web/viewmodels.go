package web

import (
	"shembeldon-league/internal/league"
	"shembeldon-league/internal/model"
	"shembeldon-league/internal/rules"
)

type StandingView struct {
	Rank int `json:"rank"`
	model.StandingsRow
	SetDiff    int     `json:"setDiff"`
	GameDiff   int     `json:"gameDiff"`
	WinPercent float64 `json:"winPercent"`
}

type FixtureView struct {
	Index int `json:"index"`
	model.Fixture
	WeekKey string `json:"weekKey"`
}

type MatchView struct {
	model.Match
	ScoreLine  string `json:"scoreLine"`
	WinnerName string `json:"winnerName,omitempty"`
}

type LeagueView struct {
	Title     string
	Players   []string
	Standings []StandingView
	Weeks     []league.WeekSchedule
	Unplayed  []model.Fixture
	Matches   []MatchView
	Notice    string
	Error     string
}

func standingViews(rows []model.StandingsRow) []StandingView {
	views := make([]StandingView, 0, len(rows))
	for i, row := range rows {
		views = append(views, StandingView{
			Rank:         i + 1,
			StandingsRow: row,
			SetDiff:      row.SetDiff(),
			GameDiff:     row.GameDiff(),
			WinPercent:   row.WinPercent(),
		})
	}
	return views
}

func fixtureViews(fixtures []model.Fixture) []FixtureView {
	views := make([]FixtureView, 0, len(fixtures))
	for i, f := range fixtures {
		views = append(views, FixtureView{Index: i, Fixture: f, WeekKey: rules.FixtureWeek(f)})
	}
	return views
}

func matchView(m model.Match) MatchView {
	view := MatchView{Match: m, ScoreLine: rules.ScoreLine(m.Sets)}
	switch m.Winner {
	case model.WinnerA:
		view.WinnerName = m.A
	case model.WinnerB:
		view.WinnerName = m.B
	}
	return view
}

func matchViews(matches []model.Match) []MatchView {
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView(m))
	}
	return views
}
