package calculator

import (
	"fmt"
	"sort"

	"StockBoard/internal/model"
)

// RankKey selects the numeric field a ranking sorts by.
type RankKey string

const (
	KeyChangePercent RankKey = "changePercent"
	KeyVolume        RankKey = "volume"
	KeyTurnoverRate  RankKey = "turnoverRate"
)

// Direction is the sort order of a ranking.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// RankType names the boards shown on the market page.
type RankType string

const (
	RankUp       RankType = "up"
	RankDown     RankType = "down"
	RankVolume   RankType = "volume"
	RankTurnover RankType = "turnover"
)

func (k RankKey) value(e model.RankedEntry) (float64, bool) {
	switch k {
	case KeyChangePercent:
		return e.ChangePercent, true
	case KeyVolume:
		return float64(e.Volume), true
	case KeyTurnoverRate:
		return e.TurnoverRate, true
	default:
		return 0, false
	}
}

// ParseRankKey validates a key name.
func ParseRankKey(s string) (RankKey, error) {
	k := RankKey(s)
	if _, ok := k.value(model.RankedEntry{}); !ok {
		return "", fmt.Errorf("%w: unknown rank key %q", ErrInvalidArgument, s)
	}
	return k, nil
}

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
	}
}

// RankBy returns a sorted copy of entries ordered by key. Ties keep their input order.
func RankBy(entries []model.RankedEntry, key RankKey, dir Direction) ([]model.RankedEntry, error) {
	if _, ok := key.value(model.RankedEntry{}); !ok {
		return nil, fmt.Errorf("%w: unknown rank key %q", ErrInvalidArgument, key)
	}
	if dir != Asc && dir != Desc {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, dir)
	}

	out := make([]model.RankedEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := key.value(out[i])
		b, _ := key.value(out[j])
		if dir == Desc {
			return a > b
		}
		return a < b
	})
	return out, nil
}

// Decline derives the decline board: a copy of entries with change percent and
// change amount each negated from their original values.
func Decline(entries []model.RankedEntry) []model.RankedEntry {
	out := make([]model.RankedEntry, len(entries))
	for i, e := range entries {
		e.ChangePercent = 0 - e.ChangePercent
		e.ChangeAmount = 0 - e.ChangeAmount
		out[i] = e
	}
	return out
}

// MarketRank builds one of the market page boards from a shared base dataset.
func MarketRank(base []model.RankedEntry, t RankType) ([]model.RankedEntry, error) {
	switch t {
	case RankUp:
		return RankBy(base, KeyChangePercent, Desc)
	case RankDown:
		return RankBy(Decline(base), KeyChangePercent, Desc)
	case RankVolume:
		return RankBy(base, KeyVolume, Desc)
	case RankTurnover:
		return RankBy(base, KeyTurnoverRate, Desc)
	default:
		return nil, fmt.Errorf("%w: unknown rank type %q", ErrInvalidArgument, t)
	}
}
