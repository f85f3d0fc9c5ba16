package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockBoard/internal/collector"
	"StockBoard/internal/metrics"
	"StockBoard/internal/model"
	"StockBoard/internal/watchlist"
)

const jobTimeout = 30 * time.Second

// Broadcaster publishes typed messages to live clients.
type Broadcaster interface {
	Broadcast(msgType string, v any) error
}

// WatchlistQuotes is the payload of the "watchlist" stream message.
type WatchlistQuotes struct {
	Time   time.Time     `json:"time"`
	Quotes []model.Quote `json:"quotes"`
}

// Scheduler manages the periodic refresh jobs.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Lists     *watchlist.Manager
	Stream    Broadcaster
	Metrics   *metrics.Metrics
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Runs of a job never overlap.
func NewScheduler(ctx context.Context, col *collector.Collector, lists *watchlist.Manager, b Broadcaster, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Collector: col,
		Lists:     lists,
		Stream:    b,
		Metrics:   m,
		Ctx:       ctx,
	}
}

// RegisterAll registers the snapshot and watchlist refresh jobs. An empty
// expression leaves that job disabled.
func (s *Scheduler) RegisterAll(snapshotCron, watchlistCron string) error {
	if snapshotCron != "" {
		if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
			return fmt.Errorf("register snapshot task: %w", err)
		}
	}
	if watchlistCron != "" && s.Lists != nil {
		if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
			return fmt.Errorf("register watchlist task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the snapshot job immediately, e.g. at startup.
func (s *Scheduler) RunNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	ctx, cancel := context.WithTimeout(s.Ctx, jobTimeout)
	defer cancel()

	snap, err := s.Collector.Snapshot(ctx)
	if err != nil {
		s.Metrics.SnapshotRun(false)
		log.Error().Err(err).Str("job", "snapshot").Msg("snapshot refresh failed")
		return
	}
	s.Metrics.SnapshotRun(true)
	s.publish("snapshot", snap)
}

func (s *Scheduler) watchlistTask() {
	ctx, cancel := context.WithTimeout(s.Ctx, jobTimeout)
	defer cancel()

	codes, err := s.Lists.Get(watchlist.Watchlist)
	if err != nil {
		log.Error().Err(err).Str("job", "watchlist").Msg("load watchlist failed")
		return
	}
	out := WatchlistQuotes{Time: time.Now(), Quotes: make([]model.Quote, 0, len(codes))}
	for _, code := range codes {
		q, err := s.Collector.Fetcher.Quote(ctx, code)
		if err != nil {
			log.Warn().Err(err).Str("job", "watchlist").Str("code", code).Msg("quote refresh failed")
			continue
		}
		out.Quotes = append(out.Quotes, *q)
	}
	s.publish("watchlist", out)
}

func (s *Scheduler) publish(msgType string, v any) {
	if s.Stream == nil {
		return
	}
	if err := s.Stream.Broadcast(msgType, v); err != nil {
		log.Error().Err(err).Str("type", msgType).Msg("broadcast failed")
	}
}
