package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"shembeldon-league/internal/config"
	"shembeldon-league/internal/model"
)

// testStoreContract checks behaviour every Store implementation shares.
func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, config.DefaultStorageKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := s.Save(ctx, config.DefaultStorageKey, []byte(`{"players":["Anna"]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, config.DefaultStorageKey, []byte(`{"players":["Anna","Ben"]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Save(ctx, "other", []byte(`{}`)); err != nil {
		t.Fatalf("save other key: %v", err)
	}

	blob, err := s.Load(ctx, config.DefaultStorageKey)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(blob) != `{"players":["Anna","Ben"]}` {
		t.Errorf("unexpected blob: %s", blob)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	blob := []byte("abc")
	if err := s.Save(context.Background(), "k", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob[0] = 'x'
	got, _ := s.Load(context.Background(), "k")
	if string(got) != "abc" {
		t.Errorf("store shares memory with caller: %s", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "league.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()

	testStoreContract(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.Save(context.Background(), config.DefaultStorageKey, []byte(`{"players":[]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()
	blob, err := reopened.Load(context.Background(), config.DefaultStorageKey)
	if err != nil || string(blob) != `{"players":[]}` {
		t.Errorf("unexpected data after reopen: %s, %v", blob, err)
	}
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore("  "); err == nil {
		t.Error("expected an error, got nil instead")
	}
}

func TestPersister(t *testing.T) {
	s := NewMemoryStore()
	persist := Persister(s, config.DefaultStorageKey, 0)

	data := model.LeagueData{
		Players:  []string{"Anna", "Ben"},
		Fixtures: []model.Fixture{{A: "Anna", B: "Ben", Week: "2025-W02"}},
		Matches: []model.Match{{
			ID: "m1", A: "Anna", B: "Ben", Date: "2025-01-04",
			Sets: []model.SetScore{{A: 6, B: 4}, {A: 4, B: 6}}, Winner: model.NoWinner,
		}},
	}
	if err := persist(data); err != nil {
		t.Fatalf("persist: %v", err)
	}

	blob, err := s.Load(context.Background(), config.DefaultStorageKey)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("stored blob is not json: %v", err)
	}
	match := raw["matches"].([]any)[0].(map[string]any)
	if match["winner"] != nil {
		t.Errorf("undecided winner should be stored as null, got %v", match["winner"])
	}
	sets := match["sets"].([]any)
	if !reflect.DeepEqual(map[string]any{"ga": float64(6), "gb": float64(4)}, sets[0]) {
		t.Errorf("unexpected set encoding: %v", sets[0])
	}
}

type failingStore struct{ MemoryStore }

func (*failingStore) Save(context.Context, string, []byte) error {
	return errors.New("unavailable")
}

func TestPersisterPropagatesErrors(t *testing.T) {
	persist := Persister(&failingStore{}, config.DefaultStorageKey, 0)
	if err := persist(model.LeagueData{}); err == nil {
		t.Error("expected an error, got nil instead")
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected a MemoryStore, got %T", s)
	}

	sqlite, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "l.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer sqlite.Close()

	if _, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"}); err == nil {
		t.Error("expected an error for unknown driver")
	}
}
