package model

// InstrumentType distinguishes market indices from individual stocks.
type InstrumentType string

const (
	TypeIndex InstrumentType = "index"
	TypeStock InstrumentType = "stock"
)

// Instrument is a tradable code in the universe.
type Instrument struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Type     InstrumentType `json:"type"`
	Industry string         `json:"industry,omitempty"`
}

// Quote is the current snapshot of an instrument.
type Quote struct {
	Instrument
	CurrentPrice  float64 `json:"currentPrice"`
	ChangePercent float64 `json:"changePercent"`
	ChangeAmount  float64 `json:"changeAmount"`
	Volume        int64   `json:"volume"`
	Amount        int64   `json:"amount"` // 10k CNY
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreClose      float64 `json:"preClose"`
	Date          string  `json:"date"`
}

// Direction returns "up", "down" or "flat" depending on the sign of the change.
func (q Quote) Direction() string {
	return DirectionOf(q.ChangePercent)
}

// DirectionOf classifies a signed change.
func DirectionOf(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "flat"
	}
}

// RankedEntry is one row of a market ranking board.
type RankedEntry struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	ChangeAmount  float64 `json:"changeAmount"`
	Volume        int64   `json:"volume"`
	Amount        float64 `json:"amount"`
	TurnoverRate  float64 `json:"turnoverRate"`
}

// Sector is an industry board's performance over a period.
type Sector struct {
	Name      string  `json:"name"`
	Change    float64 `json:"change"`
	TopStock  string  `json:"topStock"`
	TopChange float64 `json:"topChange"`
}

// DistributionBucket counts instruments by daily move class.
type DistributionBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// FundFlow is the net capital flow into an industry (100M CNY).
type FundFlow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Financials holds the fundamental snapshot of a stock.
type Financials struct {
	MarketValue struct {
		Total       float64 `json:"totalMarketValue"`
		Circulating float64 `json:"circulatingMarketValue"`
	} `json:"marketValue"`
	Trading struct {
		PERatio      float64 `json:"peRatio"`
		PBRatio      float64 `json:"pbRatio"`
		TurnoverRate float64 `json:"turnoverRate"`
		Dividend     float64 `json:"dividend"`
	} `json:"tradingData"`
	Report struct {
		Revenue    float64 `json:"revenue"`
		NetProfit  float64 `json:"netProfit"`
		GrowthRate float64 `json:"growthRate"`
		ROE        float64 `json:"roe"`
	} `json:"financialReport"`
}
