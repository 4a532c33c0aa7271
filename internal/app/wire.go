package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alanyoungcy/polysnap/internal/artifact"
	s3blob "github.com/alanyoungcy/polysnap/internal/blob/s3"
	"github.com/alanyoungcy/polysnap/internal/cache/redis"
	"github.com/alanyoungcy/polysnap/internal/config"
	"github.com/alanyoungcy/polysnap/internal/domain"
	"github.com/alanyoungcy/polysnap/internal/platform/polymarket"
	"github.com/alanyoungcy/polysnap/internal/store/postgres"
)

// Dependencies holds everything the snapshot pipeline needs. HistoryCache,
// SnapshotStore, and Mirror are nil when the corresponding sink is disabled.
type Dependencies struct {
	Gamma         *polymarket.GammaClient
	Clob          *polymarket.ClobClient
	Artifacts     *artifact.Writer
	HistoryCache  domain.HistoryCache
	SnapshotStore domain.SnapshotStore
	Mirror        *s3blob.Mirror
}

// Wire constructs all dependencies from the configuration. Enabled sinks
// that cannot be reached are a wiring error: a configured-but-unreachable
// dependency is an operator problem, not something to silently skip. The
// returned cleanup function closes every opened connection.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	deps := &Dependencies{
		Gamma:     polymarket.NewGammaClient(cfg.Polymarket.GammaHost),
		Clob:      polymarket.NewClobClient(cfg.Polymarket.ClobHost),
		Artifacts: artifact.NewWriter(cfg.Snapshot.OutputDir),
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Redis.Enabled {
		rc, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() { _ = rc.Close() })
		deps.HistoryCache = redis.NewHistoryCache(rc, cfg.Redis.TTL.Duration)
		logger.Info("history cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	if cfg.Postgres.Enabled {
		pc, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pc.Close)

		if cfg.Postgres.RunMigrations {
			migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			err := pc.RunMigrations(migCtx)
			cancel()
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		deps.SnapshotStore = postgres.NewSnapshotStore(pc.Pool())
		logger.Info("stat store enabled", slog.String("database", cfg.Postgres.Database))
	}

	if cfg.S3.Enabled {
		sc, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect s3: %w", err)
		}
		if err := sc.Health(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		deps.Mirror = s3blob.NewMirror(s3blob.NewWriter(sc), cfg.S3.Prefix, logger)
		logger.Info("artifact mirror enabled", slog.String("bucket", cfg.S3.Bucket))
	}

	return deps, cleanup, nil
}
