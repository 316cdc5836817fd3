package league

import (
	"time"

	"shembeldon-league/internal/model"
	"shembeldon-league/internal/rules"
)

var seedPlayers = []string{"Alex", "Bruno", "Chris", "Dario", "Elena", "Filip"}

// Seed returns a demo league: a small roster with a round robin starting on
// the Monday of the week containing now.
func Seed(now time.Time) model.LeagueData {
	players := append([]string{}, seedPlayers...)
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	fixtures, err := rules.RoundRobinFixtures(players, monday)
	if err != nil {
		fixtures = nil
	}
	return normalize(model.LeagueData{Players: players, Fixtures: fixtures})
}
