package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"StockBoard/internal/cache"
	"StockBoard/internal/calculator"
	"StockBoard/internal/compare"
	"StockBoard/internal/metrics"
	"StockBoard/internal/model"
)

// KLine is a bar sequence with its moving-average overlays and period stats.
type KLine struct {
	Code     string                          `json:"code"`
	Name     string                          `json:"name"`
	Bars     []model.OHLCV                   `json:"bars"`
	MA       map[string][]calculator.MAPoint `json:"ma"`
	Change   float64                         `json:"change"`
	High     float64                         `json:"high"`
	Low      float64                         `json:"low"`
	Extremes calculator.Extremes             `json:"extremes"`
}

// Snapshot is the market overview pushed to stream clients.
type Snapshot struct {
	Time       time.Time           `json:"time"`
	Indices    []model.Quote       `json:"indices"`
	Hot        []model.Quote       `json:"hot"`
	TopGainers []model.RankedEntry `json:"topGainers"`
}

const snapshotGainers = 5

// Collector orchestrates data fetching, caching and analytics.
type Collector struct {
	Fetcher Fetcher
	Cache   cache.Cache
	Metrics *metrics.Metrics
	TTL     time.Duration
}

// NewCollector creates a new Collector. A nil cache falls back to memory.
func NewCollector(fetcher Fetcher, c cache.Cache, m *metrics.Metrics, ttl time.Duration) *Collector {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Collector{Fetcher: fetcher, Cache: c, Metrics: m, TTL: ttl}
}

// Bars returns daily bars for code, served from the cache while fresh so
// repeated views of one period stay consistent.
func (c *Collector) Bars(ctx context.Context, code string, days int) ([]model.OHLCV, error) {
	key := fmt.Sprintf("bars:%s:%d", code, days)
	if raw, ok := c.Cache.Get(ctx, key); ok {
		var bars []model.OHLCV
		err := json.Unmarshal(raw, &bars)
		if err == nil {
			c.Metrics.CacheLookup(c.Cache.Name(), true)
			return bars, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
	}
	c.Metrics.CacheLookup(c.Cache.Name(), false)

	bars, err := c.Fetcher.DailyBars(ctx, code, days)
	if err != nil {
		c.Metrics.FetchError("daily_bars")
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if raw, err := json.Marshal(bars); err == nil {
		c.Cache.Set(ctx, key, raw, c.TTL)
	}
	return bars, nil
}

// KLine loads bars for code and computes one moving average per window.
func (c *Collector) KLine(ctx context.Context, code string, days int, windows []int) (*KLine, error) {
	in, err := c.Instrument(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		windows = calculator.DefaultWindows
	}
	bars, err := c.Bars(ctx, code, days)
	if err != nil {
		return nil, err
	}

	lines, err := calculator.MovingAverages(bars, windows...)
	if err != nil {
		c.Metrics.AnalyticsError("moving_average")
		return nil, fmt.Errorf("moving averages: %w", err)
	}
	k := &KLine{Code: in.Code, Name: in.Name, Bars: bars, MA: make(map[string][]calculator.MAPoint, len(lines))}
	for w, pts := range lines {
		k.MA[fmt.Sprintf("ma%d", w)] = pts
	}

	if k.Change, err = calculator.PeriodChange(bars); err != nil {
		c.Metrics.AnalyticsError("period_change")
		log.Warn().Err(err).Str("code", code).Msg("period change unavailable")
	}
	if k.High, k.Low, err = calculator.PeriodRange(bars); err != nil {
		c.Metrics.AnalyticsError("period_range")
		log.Warn().Err(err).Str("code", code).Msg("period range unavailable")
	}
	if k.Extremes, err = calculator.DayChangeExtremes(bars); err != nil {
		c.Metrics.AnalyticsError("day_change_extremes")
		log.Warn().Err(err).Str("code", code).Msg("day change extremes unavailable")
	}
	return k, nil
}

// Compare loads the selection's bars over days and analyses them together.
func (c *Collector) Compare(ctx context.Context, set *compare.Set, days int, method compare.Method) (*compare.Report, error) {
	all, err := c.instruments(ctx)
	if err != nil {
		return nil, err
	}
	members := set.Members()
	series := make([]model.Series, 0, len(members))
	for _, m := range members {
		in, ok := all[m.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, m.Code)
		}
		bars, err := c.Bars(ctx, m.Code, days)
		if err != nil {
			return nil, err
		}
		series = append(series, model.Series{Code: in.Code, Name: in.Name, Color: m.Color, Bars: bars})
	}
	report, err := compare.Analyze(series, method)
	if err != nil {
		c.Metrics.AnalyticsError("compare")
		return nil, fmt.Errorf("compare: %w", err)
	}
	return report, nil
}

// Rank returns one of the dashboard ranking boards.
func (c *Collector) Rank(ctx context.Context, t calculator.RankType) ([]model.RankedEntry, error) {
	base, err := c.rankBase(ctx)
	if err != nil {
		return nil, err
	}
	out, err := calculator.MarketRank(base, t)
	if err != nil {
		c.Metrics.AnalyticsError("market_rank")
		return nil, err
	}
	return out, nil
}

// RankBy orders the ranking base by an arbitrary key and direction.
func (c *Collector) RankBy(ctx context.Context, key calculator.RankKey, dir calculator.Direction) ([]model.RankedEntry, error) {
	base, err := c.rankBase(ctx)
	if err != nil {
		return nil, err
	}
	out, err := calculator.RankBy(base, key, dir)
	if err != nil {
		c.Metrics.AnalyticsError("rank_by")
		return nil, err
	}
	return out, nil
}

func (c *Collector) rankBase(ctx context.Context) ([]model.RankedEntry, error) {
	base, err := c.Fetcher.RankBase(ctx)
	if err != nil {
		c.Metrics.FetchError("rank_base")
		return nil, fmt.Errorf("fetch rank base: %w", err)
	}
	return base, nil
}

// Snapshot gathers indices, hot stocks and the top gainers.
func (c *Collector) Snapshot(ctx context.Context) (*Snapshot, error) {
	indices, err := c.Fetcher.Indices(ctx)
	if err != nil {
		c.Metrics.FetchError("indices")
		return nil, fmt.Errorf("fetch indices: %w", err)
	}
	hot, err := c.Fetcher.HotStocks(ctx)
	if err != nil {
		c.Metrics.FetchError("hot_stocks")
		return nil, fmt.Errorf("fetch hot stocks: %w", err)
	}
	gainers, err := c.Rank(ctx, calculator.RankUp)
	if err != nil {
		return nil, err
	}
	if len(gainers) > snapshotGainers {
		gainers = gainers[:snapshotGainers]
	}
	return &Snapshot{Time: time.Now(), Indices: indices, Hot: hot, TopGainers: gainers}, nil
}

func (c *Collector) instruments(ctx context.Context) (map[string]model.Instrument, error) {
	list, err := c.Fetcher.Instruments(ctx)
	if err != nil {
		c.Metrics.FetchError("instruments")
		return nil, fmt.Errorf("fetch instruments: %w", err)
	}
	byCode := make(map[string]model.Instrument, len(list))
	for _, in := range list {
		byCode[in.Code] = in
	}
	return byCode, nil
}

// Instrument resolves code against the provider universe.
func (c *Collector) Instrument(ctx context.Context, code string) (model.Instrument, error) {
	all, err := c.instruments(ctx)
	if err != nil {
		return model.Instrument{}, err
	}
	in, ok := all[code]
	if !ok {
		return model.Instrument{}, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	return in, nil
}
