package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"puzzle-service/internal/app"
	"puzzle-service/internal/config"
	"puzzle-service/internal/infra/memory"
	"puzzle-service/internal/infra/postgres"
	redisstore "puzzle-service/internal/infra/redis"
	"puzzle-service/internal/infra/sqlite"
	"puzzle-service/internal/store"
)

// backend is the persistence selected by store.driver.
type backend struct {
	kv       store.KV
	sessions app.SessionRepository
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	b := &backend{sessions: memory.NewSessionStore()}
	switch cfg.Driver() {
	case config.DriverMemory:
		b.kv = memory.NewStore()
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.kv = redisstore.NewStore(client)
		b.sessions = redisstore.NewSessionStore(client, config.Duration(cfg.Redis.TTL, 10*time.Minute))
	case config.DriverPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		b.kv = postgres.NewStore(pool)
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Close() })
		b.kv = db
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return b, nil
}
