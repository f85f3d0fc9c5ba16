package compare

import (
	"fmt"
	"sort"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

// Method selects how comparison lines are scaled.
type Method string

const (
	MethodPercent Method = "percent"
	MethodPrice   Method = "price"
)

// ParseMethod accepts "percent" (default when empty) or "price".
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodPercent:
		return MethodPercent, nil
	case MethodPrice:
		return MethodPrice, nil
	}
	return "", fmt.Errorf("%w: unknown compare method %q", calculator.ErrInvalidArgument, s)
}

// Line is one plotted series.
type Line struct {
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Summary is the per-instrument row of the comparison table.
type Summary struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	FirstPrice    float64 `json:"firstPrice"`
	LastPrice     float64 `json:"lastPrice"`
	ChangePercent float64 `json:"changePercent"`
	Direction     string  `json:"direction"`
	calculator.Extremes
}

// Report is the outcome of comparing several series over the same dates.
type Report struct {
	Method    Method    `json:"method"`
	Dates     []string  `json:"dates"`
	Lines     []Line    `json:"lines"`
	Summaries []Summary `json:"summaries"`
	Best      *Summary  `json:"best"`
	Worst     *Summary  `json:"worst"`
	AvgChange float64   `json:"avgChange"`
	RiseCount int       `json:"riseCount"`
	FallCount int       `json:"fallCount"`
}

// Analyze compares series that share one date axis. Lines keep the input
// order; summaries are sorted by period change, highest first.
func Analyze(series []model.Series, method Method) (*Report, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: nothing to compare", calculator.ErrInvalidArgument)
	}
	if method == "" {
		method = MethodPercent
	}
	if method != MethodPercent && method != MethodPrice {
		return nil, fmt.Errorf("%w: unknown compare method %q", calculator.ErrInvalidArgument, method)
	}
	dates := model.Dates(series[0].Bars)
	for _, s := range series[1:] {
		if err := sameAxis(dates, s); err != nil {
			return nil, err
		}
	}

	r := &Report{Method: method, Dates: dates}
	var total float64
	for _, s := range series {
		line := Line{Code: s.Code, Name: s.Name, Color: s.Color}
		var err error
		if method == MethodPercent {
			line.Values, err = calculator.Rebase(s.Bars)
		} else {
			line.Values = model.Closes(s.Bars)
		}
		if err != nil {
			return nil, fmt.Errorf("rebase %s: %w", s.Code, err)
		}
		r.Lines = append(r.Lines, line)

		change, err := calculator.PeriodChange(s.Bars)
		if err != nil {
			return nil, fmt.Errorf("period change %s: %w", s.Code, err)
		}
		ext, err := calculator.DayChangeExtremes(s.Bars)
		if err != nil {
			return nil, fmt.Errorf("extremes %s: %w", s.Code, err)
		}
		r.Summaries = append(r.Summaries, Summary{
			Code:          s.Code,
			Name:          s.Name,
			Color:         s.Color,
			FirstPrice:    calculator.Round2(s.Bars[0].Close),
			LastPrice:     calculator.Round2(s.Bars[len(s.Bars)-1].Close),
			ChangePercent: change,
			Direction:     model.DirectionOf(change),
			Extremes:      ext,
		})
		total += change
		switch {
		case change > 0:
			r.RiseCount++
		case change < 0:
			r.FallCount++
		}
	}

	sort.SliceStable(r.Summaries, func(i, j int) bool {
		return r.Summaries[i].ChangePercent > r.Summaries[j].ChangePercent
	})
	best := r.Summaries[0]
	worst := r.Summaries[len(r.Summaries)-1]
	r.Best, r.Worst = &best, &worst
	r.AvgChange = calculator.Round2(total / float64(len(series)))
	return r, nil
}

func sameAxis(dates []string, s model.Series) error {
	if len(s.Bars) != len(dates) {
		return fmt.Errorf("%w: %s has %d bars, want %d", calculator.ErrInvalidArgument, s.Code, len(s.Bars), len(dates))
	}
	for i, b := range s.Bars {
		if b.Date != dates[i] {
			return fmt.Errorf("%w: %s date %s at %d, want %s", calculator.ErrInvalidArgument, s.Code, b.Date, i, dates[i])
		}
	}
	return nil
}
