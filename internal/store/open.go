package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fact-check-board/internal/config"
	"github.com/fact-check-board/internal/database"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Open builds the backend selected by cfg.Store.Driver
func Open(cfg *config.Config, log zerolog.Logger) (Store, error) {
	log = log.With().Str("component", "store").Str("driver", cfg.Store.Driver).Logger()

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil

	case config.DriverPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresStore(db), nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
		return NewRedisStore(rdb, cfg.Redis.KeyPrefix), nil

	case config.DriverSQLite:
		s, err := NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("SQLite store opened")
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
