package rules

import (
	"errors"
	"testing"
	"time"
)

func TestRoundRobinFixtures(t *testing.T) {
	tests := map[string]struct {
		players  []string
		fixtures int
		rounds   int
	}{
		"even roster": {players: []string{"Anna", "Ben", "Cara", "Dan"}, fixtures: 6, rounds: 3},
		"odd roster":  {players: []string{"Anna", "Ben", "Cara"}, fixtures: 3, rounds: 3},
		"pair":        {players: []string{"Anna", "Ben"}, fixtures: 1, rounds: 1},
	}

	start := time.Date(2024, 12, 30, 18, 0, 0, 0, time.UTC)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fixtures, err := RoundRobinFixtures(tc.players, start)
			if err != nil {
				t.Fatalf("expected err to be nil, but was: %v", err)
			}
			if len(fixtures) != tc.fixtures {
				t.Fatalf("expected %d fixtures, got %d", tc.fixtures, len(fixtures))
			}

			seen := map[[2]string]bool{}
			dates := map[string]bool{}
			for _, f := range fixtures {
				if f.A == f.B {
					t.Fatalf("player paired with themselves: %+v", f)
				}
				key := [2]string{f.A, f.B}
				if f.B < f.A {
					key = [2]string{f.B, f.A}
				}
				if seen[key] {
					t.Fatalf("pair scheduled twice: %v", key)
				}
				seen[key] = true
				dates[f.Date] = true
			}
			if len(dates) != tc.rounds {
				t.Errorf("expected %d distinct round dates, got %d", tc.rounds, len(dates))
			}
			if fixtures[0].Date != "2024-12-30" {
				t.Errorf("expected first round on start date, got %s", fixtures[0].Date)
			}
		})
	}
}

func TestRoundRobinFixturesNeedsTwoPlayers(t *testing.T) {
	if _, err := RoundRobinFixtures([]string{"Anna"}, time.Now()); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatal("expected an error for a single player")
	}
}
