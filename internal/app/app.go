package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shembeldon-league/internal/config"
	"shembeldon-league/internal/league"
	"shembeldon-league/internal/model"
	"shembeldon-league/internal/store"

	"github.com/rs/zerolog/log"
)

// OpenLeague connects the configured store and loads the league saved under
// cfg.Storage.Key. An empty store is seeded with demo data when cfg.App.Seed
// is set.
func OpenLeague(ctx context.Context, cfg *config.Config, now time.Time) (*league.League, store.Store, error) {
	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}

	data, seeded, err := loadData(ctx, st, cfg, now)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	persist := store.Persister(st, cfg.Storage.Key, cfg.Storage.SaveTimeout)
	l := league.New(data, persist)
	if seeded {
		if err := l.Save(); err != nil {
			log.Warn().Err(err).Msg("Seed data not saved yet")
		}
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("key", cfg.Storage.Key).
		Int("players", len(data.Players)).
		Int("fixtures", len(data.Fixtures)).
		Int("matches", len(data.Matches)).
		Bool("seeded", seeded).
		Msg("League loaded")
	return l, st, nil
}

func loadData(ctx context.Context, st store.Store, cfg *config.Config, now time.Time) (model.LeagueData, bool, error) {
	raw, err := st.Load(ctx, cfg.Storage.Key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if cfg.App.Seed {
			return league.Seed(now), true, nil
		}
		return model.LeagueData{}, false, nil
	case err != nil:
		return model.LeagueData{}, false, fmt.Errorf("load league: %w", err)
	}

	data, err := league.Decode(raw)
	if err != nil {
		return model.LeagueData{}, false, fmt.Errorf("decode stored league: %w", err)
	}
	return data, false, nil
}
