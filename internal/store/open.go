package store

import (
	"context"
	"fmt"

	"shembeldon-league/internal/config"
)

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.DriverPostgres:
		return NewPostgresStore(cfg.PostgresDSN)
	case config.DriverDynamoDB:
		return NewDynamoStore(ctx, cfg.DynamoDBTable)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
