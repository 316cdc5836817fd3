package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shembeldon-league/internal/model"
)

var ErrNotFound = errors.New("no data stored under key")

// Store keeps opaque text blobs under string keys.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}

// Persister returns a save callback that writes the league as one JSON
// blob under key. Each save gets its own timeout.
func Persister(s Store, key string, timeout time.Duration) func(model.LeagueData) error {
	return func(data model.LeagueData) error {
		blob, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode league: %w", err)
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return s.Save(ctx, key, blob)
	}
}
