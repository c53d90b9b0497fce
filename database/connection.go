package database

import (
	"context"
	"fmt"

	"mitra-support-backend/config"
	"mitra-support-backend/models"
)

// Store is the aggregate counter backend selected by configuration.
type Store interface {
	Increment(ctx context.Context, metric, key string) error
	Counters(ctx context.Context) ([]models.Counter, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connect opens the counter store named by cfg.Database.Type.
func Connect(cfg *config.Config) (Store, error) {
	switch cfg.Database.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "mongodb":
		return ConnectMongoDB(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}
