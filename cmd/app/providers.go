package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/internal/infra/assesscache"
	"github.com/vitalsense/riskmodel/internal/infra/config"
	"github.com/vitalsense/riskmodel/internal/infra/vitalsrepo"
)

func provideEngineConfig(cfg *config.Config) assessment.Config {
	return assessment.Config{
		TopFeatures: cfg.Engine.TopFeatures,
		Window:      cfg.Engine.Window,
		CacheTTL:    cfg.Cache.TTL,
	}
}

func provideRuleSet() assessment.RuleSet {
	return assessment.DefaultRuleSet()
}

func provideReadingSource(cfg *config.Config, logger *slog.Logger) assessment.ReadingSource {
	fallback := vitalsrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Readings.DSN)
	if dsn == "" {
		logger.Info("readings postgres dsn not set, using memory source")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory source", "error", err)
		return fallback
	}
	if cfg.Readings.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Readings.MaxConns
	}
	if cfg.Readings.MinConns > 0 {
		poolConfig.MinConns = cfg.Readings.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory source", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory source", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres readings source enabled")
	return vitalsrepo.NewPostgresRepository(pool)
}

func provideStore(cfg *config.Config, logger *slog.Logger) assessment.Store {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return assesscache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return assesscache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey assessment cache enabled", "addr", cfg.Cache.Addr)
			return assesscache.NewValkeyStore(client, "assessment")
		}
	}
	return assesscache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
