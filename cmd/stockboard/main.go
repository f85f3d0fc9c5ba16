package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockBoard/internal/cache"
	"StockBoard/internal/collector"
	"StockBoard/internal/config"
	"StockBoard/internal/logging"
	"StockBoard/internal/metrics"
)

var (
	cfgPath  string
	seed     int64
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockboard",
		Short: "Stock market dashboard server and analytics CLI",
		Long: `stockboard serves a stock market dashboard backed by a simulated
data provider, and offers the same analytics (K-line moving averages,
rankings, multi-stock comparison) on the command line.`,
		SilenceUsage: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfg, "Path to the YAML config file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for the simulated provider (0 keeps the configured seed)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(klineCmd())
	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the config, applies global flags and
// configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if seed != 0 {
		cfg.Provider.Seed = seed
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCollector wires the provider, circuit breaker and cache. Redis is
// used when configured and reachable, memory otherwise.
func buildCollector(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*collector.Collector, func()) {
	mock := collector.NewMockFetcher(collector.MockOptions{
		Seed:         cfg.Provider.Seed,
		LatencyScale: cfg.Provider.LatencyScale,
	})
	fetcher := collector.NewBreakerFetcher(mock, collector.BreakerSettings{
		ConsecutiveFailures: cfg.Provider.FailureLimit,
		OpenTimeout:         cfg.Provider.OpenTimeout,
	})
	log.Info().Str("fetcher", fetcher.Name()).Int64("seed", cfg.Provider.Seed).Msg("data source ready")

	var c cache.Cache = cache.NewMemory()
	cleanup := func() {}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.Prefix)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable, using memory cache")
		} else {
			c = rc
			cleanup = func() { rc.Close() }
		}
	}
	log.Info().Str("cache", c.Name()).Dur("ttl", cfg.Cache.TTL).Msg("cache ready")
	return collector.NewCollector(fetcher, c, m, cfg.Cache.TTL), cleanup
}
