package model

// OHLCV represents a single daily candlestick bar.
// Sequences are ordered by Date ascending.
type OHLCV struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
}

// TimeSample is one intraday point of a single trading session.
type TimeSample struct {
	Time   string  `json:"time"` // HH:MM
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Series is a named, coloured bar sequence used when comparing instruments.
type Series struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Bars  []OHLCV `json:"bars"`
}

// Closes extracts the closing prices of bars.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates extracts the date axis of bars.
func Dates(bars []OHLCV) []string {
	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
	}
	return dates
}
