package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps holds the shared clients opened during boot. Fields are populated
// by the corresponding steps and stay nil if boot fails early.
type Deps struct {
	DB    *pgxpool.Pool
	Redis *redis.Client
	Bus   *nats.Conn
}

// Postgres connects the primary wallet store and verifies it with a ping.
func Postgres(d *Deps, url string) Step {
	return Step{
		Name: "postgres",
		Connect: func(ctx context.Context) error {
			pool, err := pgxpool.New(ctx, url)
			if err != nil {
				return fmt.Errorf("create pool: %w", err)
			}
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				return fmt.Errorf("ping: %w", err)
			}
			d.DB = pool
			return nil
		},
	}
}

// Redis connects the cache and verifies it with a ping.
func Redis(d *Deps, addr string) Step {
	return Step{
		Name: "redis",
		Connect: func(ctx context.Context) error {
			client := redis.NewClient(&redis.Options{Addr: addr})
			if err := client.Ping(ctx).Err(); err != nil {
				_ = client.Close()
				return fmt.Errorf("ping: %w", err)
			}
			d.Redis = client
			return nil
		},
	}
}

// EventBus connects the NATS event bus used by the wallet routes.
func EventBus(d *Deps, url string) Step {
	return Step{
		Name: "event bus",
		Connect: func(ctx context.Context) error {
			nc, err := nats.Connect(url, nats.Name("wallet-service"))
			if err != nil {
				return err
			}
			d.Bus = nc
			return nil
		},
	}
}

// Close releases the clients in reverse boot order. Safe to call with
// partially populated deps.
func (d *Deps) Close(log *zap.Logger) {
	if d.Bus != nil {
		if err := d.Bus.Drain(); err != nil {
			log.Warn("nats drain error", zap.Error(err))
		}
		d.Bus.Close()
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Warn("redis close error", zap.Error(err))
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}

// Check pings every connected dependency with a short deadline and
// reports per-dependency results. Used by the readiness endpoint.
func (d *Deps) Check(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	checks := make(map[string]error, 3)

	if d.DB != nil {
		checks["postgres"] = d.DB.Ping(ctx)
	} else {
		checks["postgres"] = fmt.Errorf("not initialized")
	}

	if d.Redis != nil {
		checks["redis"] = d.Redis.Ping(ctx).Err()
	} else {
		checks["redis"] = fmt.Errorf("not initialized")
	}

	if d.Bus != nil {
		if status := d.Bus.Status(); status != nats.CONNECTED {
			checks["event bus"] = fmt.Errorf("connection status %s", status)
		} else {
			checks["event bus"] = nil
		}
	} else {
		checks["event bus"] = fmt.Errorf("not initialized")
	}

	return checks
}
