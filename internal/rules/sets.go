package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shembeldon-league/internal/model"
)

// SetsToWin is the number of set wins that decides a best-of-three match.
const SetsToWin = 2

var setPattern = regexp.MustCompile(`^(\d{1,2})\s*[-x:]\s*(\d{1,2})$`)

// FormatError reports set text that could not be turned into a valid result.
// Token holds the offending input verbatim when a single token was at fault.
type FormatError struct {
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid set format: %q", e.Token)
	}
	return e.Reason
}

// ParseSets turns free text such as "6-4, 3-6, 7-5" into set scores.
// Tokens are separated by commas or newlines; parsing stops once a side has
// won two sets and anything after that is ignored.
func ParseSets(text string) ([]model.SetScore, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })

	sets := make([]model.SetScore, 0, 3)
	winsA, winsB := 0, 0
	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		m := setPattern.FindStringSubmatch(token)
		if m == nil {
			return nil, &FormatError{Token: token}
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		sets = append(sets, model.SetScore{A: a, B: b})
		if a > b {
			winsA++
		} else if b > a {
			winsB++
		}
		if winsA == SetsToWin || winsB == SetsToWin {
			break
		}
	}
	if len(sets) < 2 {
		return nil, &FormatError{Reason: "at least 2 sets required"}
	}
	return sets, nil
}

// ResolveWinner decides a match from its sets: set wins first, then total
// games. NoWinner is returned when both are level.
func ResolveWinner(sets []model.SetScore) model.Winner {
	winsA, winsB := 0, 0
	gamesA, gamesB := 0, 0
	for _, set := range sets {
		gamesA += set.A
		gamesB += set.B
		if set.A > set.B {
			winsA++
		} else if set.B > set.A {
			winsB++
		}
	}
	switch {
	case winsA > winsB:
		return model.WinnerA
	case winsB > winsA:
		return model.WinnerB
	case gamesA > gamesB:
		return model.WinnerA
	case gamesB > gamesA:
		return model.WinnerB
	default:
		return model.NoWinner
	}
}

// ScoreLine renders sets the way they are entered, e.g. "6-4, 3-6, 7-5".
func ScoreLine(sets []model.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		parts = append(parts, fmt.Sprintf("%d-%d", set.A, set.B))
	}
	return strings.Join(parts, ", ")
}
