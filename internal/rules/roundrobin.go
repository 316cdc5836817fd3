package rules

import (
	"errors"
	"time"

	"shembeldon-league/internal/model"
)

var ErrTooFewPlayers = errors.New("at least two players are required")

// RoundRobinFixtures pairs every player with every other player once, one
// round per week starting on start. With an odd roster one player sits out
// each round.
func RoundRobinFixtures(players []string, start time.Time) ([]model.Fixture, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}
	start = truncateDate(start)

	working := make([]*string, 0, len(players)+1)
	for i := range players {
		working = append(working, &players[i])
	}
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	rounds := len(working) - 1
	fixtures := make([]model.Fixture, 0, rounds*len(working)/2)
	for round := 0; round < rounds; round++ {
		date := start.AddDate(0, 0, 7*round).Format("2006-01-02")
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			if left == nil || right == nil {
				continue
			}
			a, b := *left, *right
			if i == 0 && round%2 == 1 {
				a, b = b, a
			}
			fixtures = append(fixtures, model.Fixture{A: a, B: b, Date: date})
		}
		rotate(working)
	}
	return fixtures, nil
}

func rotate(players []*string) {
	if len(players) <= 2 {
		return
	}
	last := players[len(players)-1]
	copy(players[2:], players[1:len(players)-1])
	players[1] = last
}

func truncateDate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}
