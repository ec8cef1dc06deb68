package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
	"github.com/yanqian/fitcheck/internal/infra/chart"
	"github.com/yanqian/fitcheck/internal/infra/config"
	"github.com/yanqian/fitcheck/internal/infra/ratelimit"
	"github.com/yanqian/fitcheck/internal/infra/usagerepo"
)

func provideChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		PageTitle: cfg.Chart.PageTitle,
		Width:     cfg.Chart.Width,
		Height:    cfg.Chart.Height,
	}
}

func provideUsageRepository(cfg *config.Config, logger *slog.Logger) (fitness.UsageRepository, func()) {
	fallback := usagerepo.NewMemoryRepository()
	if !cfg.Usage.Enabled {
		return fallback, func() {}
	}
	dsn := strings.TrimSpace(cfg.Usage.Postgres.DSN)
	if dsn == "" {
		logger.Info("usage postgres dsn not set, using memory repository")
		return fallback, func() {}
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, func() {}
	}
	if cfg.Usage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Usage.Postgres.MaxConns
	}
	if cfg.Usage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Usage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, func() {}
	}
	repo := usagerepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("usage schema setup failed, using memory repository", "error", err)
		repo.Close()
		return fallback, func() {}
	}
	logger.Info("usage postgres repository enabled")
	return repo, repo.Close
}

func provideRateLimiter(cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	rl := cfg.HTTP.RateLimit
	if !rl.Enabled {
		return ratelimit.Nop{}, func() {}
	}
	fallback := ratelimit.NewMemoryLimiter(rl.RequestsPerMinute, rl.Burst)
	if !rl.Valkey.Enabled {
		return fallback, func() {}
	}
	opt, err := buildValkeyOptions(rl.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
		return fallback, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
		return fallback, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
		client.Close()
		return fallback, func() {}
	}
	logger.Info("valkey rate limiter enabled", "addr", rl.Valkey.Addr)
	return ratelimit.NewValkeyLimiter(client, rl.Valkey.Prefix, rl.RequestsPerMinute, rl.Burst), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
