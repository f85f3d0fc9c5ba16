package collector

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

// Simulated response latency per operation, before scaling.
const (
	latencyList       = 300 * time.Millisecond
	latencyIndices    = 400 * time.Millisecond
	latencyDetail     = 500 * time.Millisecond
	latencyFinancials = 600 * time.Millisecond
	latencyKLine      = 700 * time.Millisecond
)

// MockOptions configures a MockFetcher.
type MockOptions struct {
	Seed int64
	// LatencyScale multiplies the simulated latency; 0 disables it.
	LatencyScale float64
	// Now overrides the clock used for dates.
	Now func() time.Time
}

// MockFetcher generates randomized market data from a seeded source.
type MockFetcher struct {
	mu    sync.Mutex
	rng   *rand.Rand
	scale float64
	now   func() time.Time
}

// NewMockFetcher creates a MockFetcher. Equal seeds produce equal call sequences.
func NewMockFetcher(opts MockOptions) *MockFetcher {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MockFetcher{
		rng:   rand.New(rand.NewSource(opts.Seed)),
		scale: opts.LatencyScale,
		now:   now,
	}
}

func (m *MockFetcher) Name() string { return "mock" }

// wait simulates request latency and honours cancellation.
func (m *MockFetcher) wait(ctx context.Context, base time.Duration) error {
	if m.scale <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(float64(base) * m.scale)):
		return nil
	}
}

func (m *MockFetcher) float() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64()
}

func (m *MockFetcher) intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Intn(n)
}

// randomPrice moves base by up to ±volatility.
func (m *MockFetcher) randomPrice(base, volatility float64) float64 {
	return calculator.Round2(base + base*volatility*(m.float()*2-1))
}

func (m *MockFetcher) randomChange() float64 {
	return calculator.Round2(m.float()*10 - 5)
}

func (m *MockFetcher) Instruments(ctx context.Context) ([]model.Instrument, error) {
	if err := m.wait(ctx, latencyList); err != nil {
		return nil, err
	}
	out := make([]model.Instrument, len(universe))
	copy(out, universe)
	return out, nil
}

func (m *MockFetcher) Search(ctx context.Context, keyword string) ([]model.Instrument, error) {
	if err := m.wait(ctx, latencyList); err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	results := []model.Instrument{}
	if keyword == "" {
		return results, nil
	}
	for _, in := range universe {
		if strings.Contains(strings.ToLower(in.Code), keyword) || strings.Contains(strings.ToLower(in.Name), keyword) {
			results = append(results, in)
		}
	}
	return results, nil
}

func (m *MockFetcher) Quote(ctx context.Context, code string) (*model.Quote, error) {
	in, ok := lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	if err := m.wait(ctx, latencyDetail); err != nil {
		return nil, err
	}
	base := 100 + m.float()*100
	if in.Type == model.TypeIndex {
		base = 3000 + m.float()*1000
	}
	q := m.quoteAround(in, base)
	q.Volume = int64(m.intn(1000000))
	q.Amount = int64(m.intn(100000))
	q.High = calculator.Round2(q.CurrentPrice * (1 + m.float()*0.05))
	q.Low = calculator.Round2(q.CurrentPrice * (1 - m.float()*0.05))
	q.Open = calculator.Round2(q.CurrentPrice * (1 + (m.float()*0.04 - 0.02)))
	q.PreClose = calculator.Round2(q.CurrentPrice * (1 + (m.float()*0.04 - 0.02)))
	q.Date = m.now().Format("2006-01-02")
	return &q, nil
}

func (m *MockFetcher) quoteAround(in model.Instrument, base float64) model.Quote {
	price := m.randomPrice(base, 0.05)
	change := m.randomChange()
	return model.Quote{
		Instrument:    in,
		CurrentPrice:  price,
		ChangePercent: change,
		ChangeAmount:  calculator.Round2(price * change / 100),
	}
}

// DailyBars generates days chronological bars ending today. Each bar opens and
// closes within ±2% of the previous close and its wicks enclose the body.
func (m *MockFetcher) DailyBars(ctx context.Context, code string, days int) ([]model.OHLCV, error) {
	if _, ok := lookup(code); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", calculator.ErrInvalidArgument, days)
	}
	if err := m.wait(ctx, latencyKLine); err != nil {
		return nil, err
	}

	today := m.now()
	base := 100 + m.float()*100
	bars := make([]model.OHLCV, 0, days)
	for i := days - 1; i >= 0; i-- {
		open := m.randomPrice(base, 0.02)
		closePrice := m.randomPrice(base, 0.02)
		high := max(open, closePrice) + m.float()*2
		low := min(open, closePrice) - m.float()*2
		bars = append(bars, model.OHLCV{
			Date:   today.AddDate(0, 0, -i).Format("2006-01-02"),
			Open:   open,
			Close:  closePrice,
			High:   calculator.Round2(high),
			Low:    calculator.Round2(max(low, 0.01)),
			Volume: int64(m.intn(1000000)),
		})
		base = closePrice
	}
	return bars, nil
}

// Intraday generates minute samples for the morning (09:30–11:30) and
// afternoon (13:00–15:00) sessions.
func (m *MockFetcher) Intraday(ctx context.Context, code string) ([]model.TimeSample, error) {
	if _, ok := lookup(code); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	if err := m.wait(ctx, latencyDetail); err != nil {
		return nil, err
	}

	price := 100 + m.float()*100
	baseVolume := float64(m.intn(10000))
	samples := make([]model.TimeSample, 0, 242)
	sessions := [][2]int{{9*60 + 30, 11*60 + 30}, {13 * 60, 15 * 60}}
	for _, s := range sessions {
		for minute := s[0]; minute <= s[1]; minute++ {
			price = m.randomPrice(price, 0.005)
			samples = append(samples, model.TimeSample{
				Time:   fmt.Sprintf("%02d:%02d", minute/60, minute%60),
				Price:  price,
				Volume: int64(baseVolume * (0.5 + m.float())),
			})
		}
	}
	return samples, nil
}

func (m *MockFetcher) Financials(ctx context.Context, code string) (*model.Financials, error) {
	if _, ok := lookup(code); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	if err := m.wait(ctx, latencyFinancials); err != nil {
		return nil, err
	}
	r := func(scale, offset float64) float64 { return calculator.Round2(m.float()*scale + offset) }

	var f model.Financials
	f.MarketValue.Total = r(10000, 0)
	f.MarketValue.Circulating = r(8000, 0)
	f.Trading.PERatio = r(50, 5)
	f.Trading.PBRatio = r(5, 0.5)
	f.Trading.TurnoverRate = r(5, 0)
	f.Trading.Dividend = r(3, 0)
	f.Report.Revenue = r(1000, 0)
	f.Report.NetProfit = r(100, 0)
	f.Report.GrowthRate = r(30, -10)
	f.Report.ROE = r(20, 0)
	return &f, nil
}

func (m *MockFetcher) quotesFor(ctx context.Context, codes []string, minBase, spread float64) ([]model.Quote, error) {
	if err := m.wait(ctx, latencyIndices); err != nil {
		return nil, err
	}
	out := make([]model.Quote, 0, len(codes))
	for _, code := range codes {
		in, _ := lookup(code)
		out = append(out, m.quoteAround(in, minBase+m.float()*spread))
	}
	return out, nil
}

func (m *MockFetcher) Indices(ctx context.Context) ([]model.Quote, error) {
	return m.quotesFor(ctx, indexCodes, 3000, 1000)
}

func (m *MockFetcher) HotStocks(ctx context.Context) ([]model.Quote, error) {
	return m.quotesFor(ctx, hotCodes, 100, 100)
}

// RankBase returns a fresh copy of the ranking base dataset.
func (m *MockFetcher) RankBase(ctx context.Context) ([]model.RankedEntry, error) {
	if err := m.wait(ctx, latencyDetail); err != nil {
		return nil, err
	}
	out := make([]model.RankedEntry, len(rankBoard))
	copy(out, rankBoard)
	return out, nil
}

// Sectors returns sector performance over 1, 5 or 30 days.
func (m *MockFetcher) Sectors(ctx context.Context, period int) ([]model.Sector, error) {
	scale, ok := sectorScale[period]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported sector period %d", calculator.ErrInvalidArgument, period)
	}
	if err := m.wait(ctx, latencyDetail); err != nil {
		return nil, err
	}
	out := make([]model.Sector, len(sectorBoard))
	for i, s := range sectorBoard {
		s.Change = calculator.Round2(s.Change * scale[0])
		s.TopChange = calculator.Round2(s.TopChange * scale[1])
		out[i] = s
	}
	return out, nil
}

func (m *MockFetcher) Distribution(ctx context.Context) ([]model.DistributionBucket, error) {
	if err := m.wait(ctx, latencyIndices); err != nil {
		return nil, err
	}
	out := make([]model.DistributionBucket, len(distribution))
	copy(out, distribution)
	return out, nil
}

func (m *MockFetcher) FundFlow(ctx context.Context) ([]model.FundFlow, error) {
	if err := m.wait(ctx, latencyFinancials); err != nil {
		return nil, err
	}
	out := make([]model.FundFlow, len(fundFlow))
	copy(out, fundFlow)
	return out, nil
}
