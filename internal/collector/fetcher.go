package collector

import (
	"context"
	"errors"

	"StockBoard/internal/model"
)

var (
	// ErrUnknownInstrument is returned when a code is not part of the universe.
	ErrUnknownInstrument = errors.New("unknown instrument")
	// ErrNotFound is returned for lookups of missing non-instrument records.
	ErrNotFound = errors.New("not found")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	Name() string

	Instruments(ctx context.Context) ([]model.Instrument, error)
	Search(ctx context.Context, keyword string) ([]model.Instrument, error)
	Quote(ctx context.Context, code string) (*model.Quote, error)
	DailyBars(ctx context.Context, code string, days int) ([]model.OHLCV, error)
	Intraday(ctx context.Context, code string) ([]model.TimeSample, error)
	Financials(ctx context.Context, code string) (*model.Financials, error)

	Indices(ctx context.Context) ([]model.Quote, error)
	HotStocks(ctx context.Context) ([]model.Quote, error)
	RankBase(ctx context.Context) ([]model.RankedEntry, error)
	Sectors(ctx context.Context, period int) ([]model.Sector, error)
	Distribution(ctx context.Context) ([]model.DistributionBucket, error)
	FundFlow(ctx context.Context) ([]model.FundFlow, error)

	News(ctx context.Context, category model.NewsCategory, page, size int) (*model.NewsPage, error)
	NewsDetail(ctx context.Context, id string) (*model.News, error)
	HotNews(ctx context.Context) ([]model.News, error)
	StockNews(ctx context.Context, code string, count int) ([]model.News, error)
}
