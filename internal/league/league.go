package league

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"shembeldon-league/internal/model"
	"shembeldon-league/internal/rules"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Persister saves a full snapshot of the league. It is called after every
// successful mutation.
type Persister func(data model.LeagueData) error

// League owns the roster, fixture list and match history. All mutations go
// through its methods, which update the collections and then persist.
type League struct {
	mu       sync.RWMutex
	players  []string
	fixtures []model.Fixture
	matches  []model.Match

	persist Persister
	newID   func() string
	dirty   bool
}

type Option func(*League)

// WithIDGenerator replaces uuid.NewString for match ids.
func WithIDGenerator(fn func() string) Option {
	return func(l *League) { l.newID = fn }
}

func New(data model.LeagueData, persist Persister, opts ...Option) *League {
	data = normalize(data)
	l := &League{
		players:  data.Players,
		fixtures: data.Fixtures,
		matches:  data.Matches,
		persist:  persist,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type MatchInput struct {
	Date     string `json:"date"`
	A        string `json:"a"`
	B        string `json:"b"`
	SetsText string `json:"sets"`
	Notes    string `json:"notes"`
}

func (l *League) Players() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.players)
}

func (l *League) Fixtures() []model.Fixture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.fixtures)
}

func (l *League) Matches() []model.Match {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneMatches(l.matches)
}

func (l *League) Snapshot() model.LeagueData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *League) snapshotLocked() model.LeagueData {
	return model.LeagueData{
		Players:  slices.Clone(l.players),
		Fixtures: slices.Clone(l.fixtures),
		Matches:  cloneMatches(l.matches),
	}
}

func (l *League) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.players, name) {
		return &DuplicatePlayerError{Name: name}
	}
	l.players = append(l.players, name)
	l.saveLocked()
	return nil
}

// RemovePlayer deletes a player together with every match and fixture that
// references them.
func (l *League) RemovePlayer(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.Index(l.players, name)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	l.players = slices.Delete(l.players, idx, idx+1)
	l.matches = slices.DeleteFunc(l.matches, func(m model.Match) bool { return m.Involves(name) })
	l.fixtures = slices.DeleteFunc(l.fixtures, func(f model.Fixture) bool { return f.Involves(name) })
	l.saveLocked()
	return nil
}

// SubmitMatch validates and records a result. Nothing is stored when the
// players or the set text are invalid.
func (l *League) SubmitMatch(in MatchInput) (model.Match, error) {
	if in.A == in.B {
		return model.Match{}, ErrSamePlayers
	}
	sets, err := rules.ParseSets(in.SetsText)
	if err != nil {
		return model.Match{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range []string{in.A, in.B} {
		if !slices.Contains(l.players, p) {
			return model.Match{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, p)
		}
	}

	match := model.Match{
		ID:     l.newID(),
		Date:   strings.TrimSpace(in.Date),
		A:      in.A,
		B:      in.B,
		Sets:   sets,
		Notes:  strings.TrimSpace(in.Notes),
		Winner: rules.ResolveWinner(sets),
	}
	l.matches = slices.Insert(l.matches, 0, match)
	l.saveLocked()
	return match, nil
}

func (l *League) DeleteMatch(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.matches, func(m model.Match) bool { return m.ID == id })
	if idx < 0 {
		return ErrMatchNotFound
	}
	l.matches = slices.Delete(l.matches, idx, idx+1)
	l.saveLocked()
	return nil
}

func (l *League) AddFixture(f model.Fixture) error {
	f.A = strings.TrimSpace(f.A)
	f.B = strings.TrimSpace(f.B)
	f.Date = strings.TrimSpace(f.Date)
	f.Week = strings.TrimSpace(f.Week)
	if f.A == "" || f.B == "" {
		return ErrEmptyName
	}
	if f.A == f.B {
		return ErrSamePlayers
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range []string{f.A, f.B} {
		if !slices.Contains(l.players, p) {
			return fmt.Errorf("%w: %s", ErrPlayerNotFound, p)
		}
	}
	l.fixtures = append(l.fixtures, f)
	l.saveLocked()
	return nil
}

func (l *League) RemoveFixture(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.fixtures) {
		return ErrFixtureNotFound
	}
	l.fixtures = slices.Delete(l.fixtures, index, index+1)
	l.saveLocked()
	return nil
}

// GenerateFixtures appends a round robin over the current roster, one round
// per week from start.
func (l *League) GenerateFixtures(start time.Time) ([]model.Fixture, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	generated, err := rules.RoundRobinFixtures(slices.Clone(l.players), start)
	if err != nil {
		return nil, err
	}
	l.fixtures = append(l.fixtures, generated...)
	l.saveLocked()
	return generated, nil
}

func (l *League) Standings() []model.StandingsRow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rules.ComputeStandings(l.players, l.matches)
}

func (l *League) UnplayedFixtures() []model.Fixture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rules.UnplayedFixtures(l.fixtures, l.matches)
}

// Export renders the league in its persisted JSON shape.
func (l *League) Export() ([]byte, error) {
	return json.MarshalIndent(l.Snapshot(), "", "  ")
}

// Import replaces the whole league with raw. Only the top-level shape is
// checked; the current state is untouched when it is rejected.
func (l *League) Import(raw []byte) error {
	data, err := Decode(raw)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = data.Players
	l.fixtures = data.Fixtures
	l.matches = data.Matches
	l.saveLocked()
	return nil
}

// Decode parses a persisted or exported league. players, fixtures and
// matches must all be present and be arrays.
func Decode(raw []byte) (model.LeagueData, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.LeagueData{}, &ImportSchemaError{Reason: err.Error()}
	}
	for _, key := range []string{"players", "fixtures", "matches"} {
		value, ok := fields[key]
		if !ok {
			return model.LeagueData{}, &ImportSchemaError{Reason: key + " is missing"}
		}
		if trimmed := bytes.TrimSpace(value); len(trimmed) == 0 || trimmed[0] != '[' {
			return model.LeagueData{}, &ImportSchemaError{Reason: key + " must be an array"}
		}
	}

	var data model.LeagueData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.LeagueData{}, &ImportSchemaError{Reason: err.Error()}
	}
	return normalize(data), nil
}

// Flush retries a save that failed earlier. It is a no-op when the last
// save succeeded.
func (l *League) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dirty || l.persist == nil {
		return nil
	}
	if err := l.persist(l.snapshotLocked()); err != nil {
		return fmt.Errorf("flush league: %w", err)
	}
	l.dirty = false
	log.Info().Msg("Pending league changes saved")
	return nil
}

// Save persists the current state unconditionally. A failure leaves the
// league dirty so a later Flush retries it.
func (l *League) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.persist == nil {
		return nil
	}
	if err := l.persist(l.snapshotLocked()); err != nil {
		l.dirty = true
		return fmt.Errorf("save league: %w", err)
	}
	l.dirty = false
	return nil
}

func (l *League) Dirty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dirty
}

func (l *League) saveLocked() {
	if l.persist == nil {
		return
	}
	if err := l.persist(l.snapshotLocked()); err != nil {
		l.dirty = true
		log.Error().Err(err).Msg("Failed to persist league")
		return
	}
	l.dirty = false
}

func normalize(data model.LeagueData) model.LeagueData {
	if data.Players == nil {
		data.Players = []string{}
	}
	if data.Fixtures == nil {
		data.Fixtures = []model.Fixture{}
	}
	if data.Matches == nil {
		data.Matches = []model.Match{}
	}
	return data
}

func cloneMatches(matches []model.Match) []model.Match {
	out := make([]model.Match, len(matches))
	for i, m := range matches {
		m.Sets = slices.Clone(m.Sets)
		out[i] = m
	}
	return out
}
