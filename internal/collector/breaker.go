package collector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

// ErrUnavailable is returned while the provider circuit is open.
var ErrUnavailable = errors.New("provider unavailable")

// BreakerSettings configures the provider circuit breaker.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	Interval            time.Duration
}

// BreakerFetcher guards a Fetcher with a circuit breaker. Caller errors such as
// unknown codes or cancelled contexts do not count as provider failures.
type BreakerFetcher struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerFetcher wraps next.
func NewBreakerFetcher(next Fetcher, s BreakerSettings) *BreakerFetcher {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	st := gobreaker.Settings{Name: next.Name()}
	st.Interval = s.Interval
	st.Timeout = s.OpenTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= s.ConsecutiveFailures
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil ||
			errors.Is(err, ErrUnknownInstrument) ||
			errors.Is(err, ErrNotFound) ||
			errors.Is(err, calculator.ErrInvalidArgument) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state changed")
	}
	return &BreakerFetcher{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

// State reports the current breaker state.
func (b *BreakerFetcher) State() gobreaker.State { return b.cb.State() }

func guarded[T any](b *BreakerFetcher, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, errors.Join(ErrUnavailable, err)
		}
		if out == nil {
			return zero, err
		}
		return out.(T), err
	}
	return out.(T), nil
}

// Name reports the wrapped fetcher name.
func (b *BreakerFetcher) Name() string { return b.next.Name() }

// Instruments lists the universe through the breaker.
func (b *BreakerFetcher) Instruments(ctx context.Context) ([]model.Instrument, error) {
	return guarded(b, func() ([]model.Instrument, error) { return b.next.Instruments(ctx) })
}

// Search matches codes and names through the breaker.
func (b *BreakerFetcher) Search(ctx context.Context, keyword string) ([]model.Instrument, error) {
	return guarded(b, func() ([]model.Instrument, error) { return b.next.Search(ctx, keyword) })
}

// Quote fetches one quote through the breaker.
func (b *BreakerFetcher) Quote(ctx context.Context, code string) (*model.Quote, error) {
	return guarded(b, func() (*model.Quote, error) { return b.next.Quote(ctx, code) })
}

// DailyBars fetches daily bars through the breaker.
func (b *BreakerFetcher) DailyBars(ctx context.Context, code string, days int) ([]model.OHLCV, error) {
	return guarded(b, func() ([]model.OHLCV, error) { return b.next.DailyBars(ctx, code, days) })
}

// Intraday fetches the session samples through the breaker.
func (b *BreakerFetcher) Intraday(ctx context.Context, code string) ([]model.TimeSample, error) {
	return guarded(b, func() ([]model.TimeSample, error) { return b.next.Intraday(ctx, code) })
}

// Financials fetches fundamentals through the breaker.
func (b *BreakerFetcher) Financials(ctx context.Context, code string) (*model.Financials, error) {
	return guarded(b, func() (*model.Financials, error) { return b.next.Financials(ctx, code) })
}

// Indices fetches index quotes through the breaker.
func (b *BreakerFetcher) Indices(ctx context.Context) ([]model.Quote, error) {
	return guarded(b, func() ([]model.Quote, error) { return b.next.Indices(ctx) })
}

// HotStocks fetches the hot list through the breaker.
func (b *BreakerFetcher) HotStocks(ctx context.Context) ([]model.Quote, error) {
	return guarded(b, func() ([]model.Quote, error) { return b.next.HotStocks(ctx) })
}

// RankBase fetches the ranking board base through the breaker.
func (b *BreakerFetcher) RankBase(ctx context.Context) ([]model.RankedEntry, error) {
	return guarded(b, func() ([]model.RankedEntry, error) { return b.next.RankBase(ctx) })
}

// Sectors fetches sector performance through the breaker.
func (b *BreakerFetcher) Sectors(ctx context.Context, period int) ([]model.Sector, error) {
	return guarded(b, func() ([]model.Sector, error) { return b.next.Sectors(ctx, period) })
}

// Distribution fetches market breadth through the breaker.
func (b *BreakerFetcher) Distribution(ctx context.Context) ([]model.DistributionBucket, error) {
	return guarded(b, func() ([]model.DistributionBucket, error) { return b.next.Distribution(ctx) })
}

// FundFlow fetches industry fund flow through the breaker.
func (b *BreakerFetcher) FundFlow(ctx context.Context) ([]model.FundFlow, error) {
	return guarded(b, func() ([]model.FundFlow, error) { return b.next.FundFlow(ctx) })
}

// News fetches a news page through the breaker.
func (b *BreakerFetcher) News(ctx context.Context, category model.NewsCategory, page, size int) (*model.NewsPage, error) {
	return guarded(b, func() (*model.NewsPage, error) { return b.next.News(ctx, category, page, size) })
}

// NewsDetail fetches one news item through the breaker.
func (b *BreakerFetcher) NewsDetail(ctx context.Context, id string) (*model.News, error) {
	return guarded(b, func() (*model.News, error) { return b.next.NewsDetail(ctx, id) })
}

// HotNews fetches the hot news list through the breaker.
func (b *BreakerFetcher) HotNews(ctx context.Context) ([]model.News, error) {
	return guarded(b, func() ([]model.News, error) { return b.next.HotNews(ctx) })
}

// StockNews fetches news for one stock through the breaker.
func (b *BreakerFetcher) StockNews(ctx context.Context, code string, count int) ([]model.News, error) {
	return guarded(b, func() ([]model.News, error) { return b.next.StockNews(ctx, code, count) })
}
