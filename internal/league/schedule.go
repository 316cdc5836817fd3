package league

import (
	"shembeldon-league/internal/model"
	"shembeldon-league/internal/rules"
)

type ScheduledFixture struct {
	model.Fixture
	Played bool `json:"played"`
}

type WeekSchedule struct {
	Week     string             `json:"week"`
	Fixtures []ScheduledFixture `json:"fixtures"`
}

// Schedule groups fixtures by week in ascending week order and marks the
// ones already settled by a recorded match.
func (l *League) Schedule() []WeekSchedule {
	l.mu.RLock()
	defer l.mu.RUnlock()

	groups := rules.GroupFixtures(l.fixtures)
	weeks := make([]WeekSchedule, 0, len(groups))
	for _, key := range rules.SortedWeekKeys(groups) {
		week := WeekSchedule{Week: key, Fixtures: make([]ScheduledFixture, 0, len(groups[key]))}
		for _, f := range groups[key] {
			week.Fixtures = append(week.Fixtures, ScheduledFixture{
				Fixture: f,
				Played:  rules.IsFixturePlayed(l.matches, f),
			})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
