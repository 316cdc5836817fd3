package rules

import (
	"sort"
	"strconv"

	"shembeldon-league/internal/model"
)

// ComputeStandings builds one ranked row per roster player from the match
// history. Matches naming a player outside the roster are skipped.
func ComputeStandings(players []string, matches []model.Match) []model.StandingsRow {
	index := make(map[string]*model.StandingsRow, len(players))
	rows := make([]*model.StandingsRow, 0, len(players))
	for _, p := range players {
		if _, ok := index[p]; ok {
			continue
		}
		row := &model.StandingsRow{Player: p}
		index[p] = row
		rows = append(rows, row)
	}

	for _, match := range matches {
		rowA := index[match.A]
		rowB := index[match.B]
		if rowA == nil || rowB == nil {
			continue
		}
		rowA.Played++
		rowB.Played++

		switch match.Winner {
		case model.WinnerA:
			rowA.Wins++
			rowB.Losses++
		case model.WinnerB:
			rowB.Wins++
			rowA.Losses++
		}

		for _, set := range match.Sets {
			rowA.GamesWon += set.A
			rowA.GamesLost += set.B
			rowB.GamesWon += set.B
			rowB.GamesLost += set.A
			if set.A > set.B {
				rowA.SetsWon++
				rowB.SetsLost++
			} else if set.B > set.A {
				rowB.SetsWon++
				rowA.SetsLost++
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].SetDiff() != rows[j].SetDiff() {
			return rows[i].SetDiff() > rows[j].SetDiff()
		}
		if rows[i].GameDiff() != rows[j].GameDiff() {
			return rows[i].GameDiff() > rows[j].GameDiff()
		}
		return rows[i].Player < rows[j].Player
	})

	standings := make([]model.StandingsRow, 0, len(rows))
	for _, row := range rows {
		standings = append(standings, *row)
	}
	return standings
}

// FormatDiff renders a signed difference, e.g. "+3", "-2" or "0".
func FormatDiff(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
