package rules

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"shembeldon-league/internal/model"
)

// UnknownWeek groups fixtures whose date is missing or unparseable.
const UnknownWeek = "—"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// WeekKey returns the ISO-8601 week of date as "YYYY-Www".
func WeekKey(date string) string {
	parsed, ok := parseDate(date)
	if !ok {
		return UnknownWeek
	}
	year, week := parsed.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// FixtureWeek is the group key of a fixture: its trimmed week label, or the
// ISO week of its date.
func FixtureWeek(f model.Fixture) string {
	if week := strings.TrimSpace(f.Week); week != "" {
		return week
	}
	return WeekKey(f.Date)
}

// GroupFixtures buckets fixtures by their week label, falling back to the
// ISO week of the fixture date. Members are ordered by date; the groups
// themselves are left unordered, see SortedWeekKeys.
func GroupFixtures(fixtures []model.Fixture) map[string][]model.Fixture {
	groups := make(map[string][]model.Fixture)
	for _, f := range fixtures {
		key := FixtureWeek(f)
		groups[key] = append(groups[key], f)
	}
	for _, members := range groups {
		sort.SliceStable(members, func(i, j int) bool { return members[i].Date < members[j].Date })
	}
	return groups
}

func SortedWeekKeys(groups map[string][]model.Fixture) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func samePair(m model.Match, f model.Fixture) bool {
	return (m.A == f.A && m.B == f.B) || (m.A == f.B && m.B == f.A)
}

// IsFixturePlayed reports whether any match settles the fixture. A fixture
// scheduled only by week is settled by any match between the same pair.
func IsFixturePlayed(matches []model.Match, fixture model.Fixture) bool {
	for _, m := range matches {
		if !samePair(m, fixture) {
			continue
		}
		if fixture.Date == "" || fixture.Date == m.Date {
			return true
		}
	}
	return false
}

func UnplayedFixtures(fixtures []model.Fixture, matches []model.Match) []model.Fixture {
	unplayed := make([]model.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if !IsFixturePlayed(matches, f) {
			unplayed = append(unplayed, f)
		}
	}
	return unplayed
}
