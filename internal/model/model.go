package model

import "encoding/json"

// Winner marks which side of a match won. The zero value means undecided.
type Winner string

const (
	WinnerA  Winner = "A"
	WinnerB  Winner = "B"
	NoWinner Winner = ""
)

func (w Winner) MarshalJSON() ([]byte, error) {
	if w == NoWinner {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

func (w *Winner) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = NoWinner
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = Winner(s)
	return nil
}

type SetScore struct {
	A int `json:"ga"`
	B int `json:"gb"`
}

type Match struct {
	ID     string     `json:"id"`
	Date   string     `json:"date"`
	A      string     `json:"a"`
	B      string     `json:"b"`
	Sets   []SetScore `json:"sets"`
	Notes  string     `json:"notes"`
	Winner Winner     `json:"winner"`
}

// Involves reports whether the named player is on either side of the match.
func (m Match) Involves(player string) bool {
	return m.A == player || m.B == player
}

type Fixture struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Date string `json:"date,omitempty"`
	Week string `json:"week,omitempty"`
}

func (f Fixture) Involves(player string) bool {
	return f.A == player || f.B == player
}

// LeagueData is the single persisted record holding the whole league.
type LeagueData struct {
	Players  []string  `json:"players"`
	Fixtures []Fixture `json:"fixtures"`
	Matches  []Match   `json:"matches"`
}

type StandingsRow struct {
	Player    string `json:"player"`
	Played    int    `json:"played"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	SetsWon   int    `json:"setsWon"`
	SetsLost  int    `json:"setsLost"`
	GamesWon  int    `json:"gamesWon"`
	GamesLost int    `json:"gamesLost"`
}

func (r StandingsRow) SetDiff() int {
	return r.SetsWon - r.SetsLost
}

func (r StandingsRow) GameDiff() int {
	return r.GamesWon - r.GamesLost
}

// WinPercent returns wins as a percentage of matches played; zero played yields 0.
func (r StandingsRow) WinPercent() float64 {
	played := r.Played
	if played < 1 {
		played = 1
	}
	return float64(r.Wins) / float64(played) * 100
}
