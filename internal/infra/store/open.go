// Package store opens the configured record store backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"game-history/internal/config"
	"game-history/internal/infra/adapter/persistence/memory"
	"game-history/internal/infra/adapter/persistence/mongodb"
	"game-history/internal/infra/adapter/persistence/postgres"
	"game-history/internal/infra/adapter/persistence/sqlite"
	"game-history/internal/infra/adapter/search/elasticsearch"
	"game-history/internal/infra/db"
	"game-history/internal/repository"
	"game-history/internal/resilience/retry"
)

// Backend is what every adapter offers its callers.
type Backend interface {
	repository.GameRecordRepository
	repository.Pinger
}

// CloseFunc releases the resources held by a Backend.
type CloseFunc func(context.Context) error

func noClose(context.Context) error { return nil }

// Open connects to the configured backend, waits until it answers, prepares
// its schema and returns it with a close function.
func Open(ctx context.Context, logger *slog.Logger, cfg config.StoreConfig) (Backend, CloseFunc, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory record store; records are lost on restart")
		return memory.NewGameRecordRepo(), noClose, nil

	case config.BackendPostgres, config.BackendSQLite:
		dialect, dsn, pool := db.DialectPostgres, cfg.Postgres.DSN, cfg.Postgres.Pool
		if cfg.Backend == config.BackendSQLite {
			dialect, dsn, pool = db.DialectSQLite, cfg.SQLite.Path, cfg.SQLite.Pool
		}
		database, err := db.Open(dialect, dsn, pool)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error { return database.Close() }
		if err := waitReady(ctx, logger, func() error { return db.Ping(ctx, database) }); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		if err := db.MigrateUp(ctx, database, dialect); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		if dialect == db.DialectSQLite {
			return sqlite.NewGameRecordRepo(database), closeFn, nil
		}
		return postgres.NewGameRecordRepo(database), closeFn, nil

	case config.BackendMongoDB:
		repo, client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection)
		if err != nil {
			return nil, nil, err
		}
		if err := waitReady(ctx, logger, func() error { return repo.Ping(ctx) }); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return repo, client.Disconnect, nil

	case config.BackendElasticsearch:
		repo, err := elasticsearch.NewGameRecordRepo(cfg.Elasticsearch)
		if err != nil {
			return nil, nil, err
		}
		if err := waitReady(ctx, logger, func() error { return repo.Ping(ctx) }); err != nil {
			return nil, nil, err
		}
		return repo, noClose, nil

	default:
		return nil, nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

// waitReady retries ping with backoff while the store is still starting.
func waitReady(ctx context.Context, logger *slog.Logger, ping func() error) error {
	attempt := 0
	err := retry.WithBackoff(ctx, retry.StoreConfig(), func() error {
		attempt++
		err := ping()
		if err != nil {
			logger.Warn("record store not ready",
				slog.Int("attempt", attempt),
				slog.Any("error", err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("store not ready after %d attempts: %w", attempt, err)
	}
	return nil
}
