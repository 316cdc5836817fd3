package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shembeldon-league/internal/config"
	"shembeldon-league/internal/store"
)

func sqliteConfig(t *testing.T, seed bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.App.Seed = seed
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "league.db")
	return cfg
}

func TestOpenLeagueSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t, true)
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	l, st, err := OpenLeague(ctx, cfg, now)
	if err != nil {
		t.Fatalf("OpenLeague: %v", err)
	}
	if len(l.Players()) == 0 || len(l.Fixtures()) == 0 {
		t.Fatalf("expected seeded league, got %+v", l.Snapshot())
	}
	if _, err := st.Load(ctx, cfg.Storage.Key); err != nil {
		t.Fatalf("seed was not saved: %v", err)
	}
	if err := l.AddPlayer("Zoe"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, st2, err := OpenLeague(ctx, cfg, now.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()
	players := reopened.Players()
	if players[len(players)-1] != "Zoe" {
		t.Fatalf("expected stored roster to win over seed, got %v", players)
	}
}

func TestOpenLeagueWithoutSeed(t *testing.T) {
	cfg := sqliteConfig(t, false)
	l, st, err := OpenLeague(context.Background(), cfg, time.Now())
	if err != nil {
		t.Fatalf("OpenLeague: %v", err)
	}
	defer st.Close()
	if data := l.Snapshot(); len(data.Players)+len(data.Fixtures)+len(data.Matches) != 0 {
		t.Fatalf("expected empty league, got %+v", data)
	}
	if _, err := st.Load(context.Background(), cfg.Storage.Key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestOpenLeagueRejectsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t, true)
	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := st.Save(ctx, cfg.Storage.Key, []byte(`{"players":"nope"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	st.Close()

	if _, _, err := OpenLeague(ctx, cfg, time.Now()); err == nil {
		t.Fatal("expected corrupt blob to fail")
	}
}
