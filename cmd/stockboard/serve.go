package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockBoard/internal/metrics"
	"StockBoard/internal/scheduler"
	"StockBoard/internal/server"
	"StockBoard/internal/store"
	"StockBoard/internal/stream"
	"StockBoard/internal/watchlist"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server and refresh jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log.Info().Msg("StockBoard starting...")

			// Context for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			col, closeCache := buildCollector(ctx, cfg, m)
			defer closeCache()

			st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				log.Warn().Err(err).Str("driver", cfg.Store.Driver).Msg("init store failed, lists will not persist")
				st = store.NewMemoryStore()
			}
			defer st.Close()

			lists, err := watchlist.NewManager(ctx, st, func(ctx context.Context, code string) error {
				_, err := col.Instrument(ctx, code)
				return err
			})
			if err != nil {
				return fmt.Errorf("init lists: %w", err)
			}

			hub := stream.NewHub(m)

			sched := scheduler.NewScheduler(ctx, col, lists, hub, m)
			if err := sched.RegisterAll(cfg.Schedule.SnapshotCron, cfg.Schedule.WatchlistCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()
			go sched.RunNow()

			srv := server.New(server.Options{
				Addr:            cfg.Addr(),
				StaticDir:       cfg.Server.StaticDir,
				StaticPatterns:  cfg.Server.StaticPatterns,
				RateLimit:       cfg.Server.RateLimit,
				RateBurst:       cfg.Server.RateBurst,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			}, server.Deps{Collector: col, Lists: lists, Hub: hub, Metrics: m})

			log.Info().Str("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)).Msg("StockBoard is running. Press Ctrl+C to stop.")
			if err := srv.Run(ctx); err != nil {
				return err
			}
			log.Info().Msg("StockBoard stopped")
			return nil
		},
	}
}
