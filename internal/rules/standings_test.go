package rules

import (
	"reflect"
	"testing"

	"shembeldon-league/internal/model"
)

func standingsFixture() ([]string, []model.Match) {
	players := []string{"Anna", "Ben", "Cara", "Dan"}
	matches := []model.Match{
		{ID: "m1", A: "Anna", B: "Ben", Sets: []model.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 7, B: 6}}, Winner: model.WinnerA},
		{ID: "m2", A: "Cara", B: "Anna", Sets: []model.SetScore{{A: 6, B: 4}, {A: 6, B: 4}}, Winner: model.WinnerA},
		{ID: "m3", A: "Ben", B: "Cara", Sets: []model.SetScore{{A: 6, B: 4}, {A: 4, B: 6}}, Winner: model.NoWinner},
		{ID: "m4", A: "Dan", B: "Zed", Sets: []model.SetScore{{A: 6, B: 0}, {A: 6, B: 0}}, Winner: model.WinnerA},
	}
	return players, matches
}

func TestComputeStandings(t *testing.T) {
	players, matches := standingsFixture()

	got := ComputeStandings(players, matches)

	expected := []model.StandingsRow{
		{Player: "Cara", Played: 2, Wins: 1, Losses: 0, SetsWon: 3, SetsLost: 1, GamesWon: 22, GamesLost: 18},
		{Player: "Anna", Played: 2, Wins: 1, Losses: 1, SetsWon: 2, SetsLost: 3, GamesWon: 25, GamesLost: 28},
		{Player: "Dan"},
		{Player: "Ben", Played: 2, Wins: 0, Losses: 1, SetsWon: 2, SetsLost: 3, GamesWon: 26, GamesLost: 27},
	}
	if !reflect.DeepEqual(expected, got) {
		t.Fatalf("standings were not as expected - actual: %+v", got)
	}
}

func TestComputeStandingsOrderIndependent(t *testing.T) {
	players, matches := standingsFixture()

	reversed := make([]model.Match, len(matches))
	for i, m := range matches {
		reversed[len(matches)-1-i] = m
	}

	if !reflect.DeepEqual(ComputeStandings(players, matches), ComputeStandings(players, reversed)) {
		t.Fatal("standings depend on match order")
	}
}

func TestComputeStandingsNameTiebreak(t *testing.T) {
	got := ComputeStandings([]string{"Zoe", "amy", "Amy"}, nil)

	names := make([]string, 0, len(got))
	for _, row := range got {
		names = append(names, row.Player)
	}
	if !reflect.DeepEqual([]string{"Amy", "Zoe", "amy"}, names) {
		t.Errorf("unexpected order: %v", names)
	}
}

func TestComputeStandingsGameDiffTiebreak(t *testing.T) {
	players := []string{"Anna", "Ben", "Cara", "Dan"}
	matches := []model.Match{
		{A: "Anna", B: "Cara", Sets: []model.SetScore{{A: 6, B: 0}, {A: 6, B: 0}}, Winner: model.WinnerA},
		{A: "Ben", B: "Dan", Sets: []model.SetScore{{A: 6, B: 4}, {A: 6, B: 4}}, Winner: model.WinnerA},
	}

	got := ComputeStandings(players, matches)
	if got[0].Player != "Anna" || got[1].Player != "Ben" {
		t.Fatalf("expected Anna then Ben by game difference, got %+v", got)
	}
}

func TestComputeStandingsRemovingPlayer(t *testing.T) {
	players, matches := standingsFixture()
	before := ComputeStandings(players, matches)

	kept := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if !m.Involves("Dan") {
			kept = append(kept, m)
		}
	}
	after := ComputeStandings([]string{"Anna", "Ben", "Cara"}, kept)

	if len(after) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(after))
	}
	byName := map[string]model.StandingsRow{}
	for _, row := range before {
		byName[row.Player] = row
	}
	for _, row := range after {
		if !reflect.DeepEqual(byName[row.Player], row) {
			t.Errorf("row for %s changed: %+v vs %+v", row.Player, byName[row.Player], row)
		}
	}
}

func TestWinPercent(t *testing.T) {
	if pct := (model.StandingsRow{}).WinPercent(); pct != 0 {
		t.Errorf("expected 0%% for no matches, got %v", pct)
	}
	if pct := (model.StandingsRow{Played: 4, Wins: 3}).WinPercent(); pct != 75 {
		t.Errorf("expected 75%%, got %v", pct)
	}
}

func TestFormatDiff(t *testing.T) {
	for n, expected := range map[int]string{3: "+3", 0: "0", -2: "-2"} {
		if got := FormatDiff(n); got != expected {
			t.Errorf("FormatDiff(%d) = %q, expected %q", n, got, expected)
		}
	}
}
