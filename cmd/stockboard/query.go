package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"StockBoard/internal/calculator"
	"StockBoard/internal/compare"
	"StockBoard/internal/format"
	"StockBoard/internal/model"
)

func klineCmd() *cobra.Command {
	var (
		code    string
		days    int
		windows string
	)
	cmd := &cobra.Command{
		Use:   "kline",
		Short: "Print daily bars with moving averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ws, err := parseWindows(windows)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			col, cleanup := buildCollector(ctx, cfg, nil)
			defer cleanup()

			k, err := col.KLine(ctx, code, days, ws)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatKLine(k))
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "sh000001", "Instrument code")
	cmd.Flags().IntVar(&days, "days", 30, "Number of daily bars")
	cmd.Flags().StringVar(&windows, "ma", "5,10,20", "Comma-separated moving-average windows")
	return cmd
}

func parseWindows(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: bad window %q", calculator.ErrInvalidArgument, part)
		}
		out = append(out, w)
	}
	return out, nil
}

func rankCmd() *cobra.Command {
	var rankType, key, dir string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print a market ranking board",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			col, cleanup := buildCollector(ctx, cfg, nil)
			defer cleanup()

			entries, title, err := rank(ctx, col.Rank, col.RankBy, rankType, key, dir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatRank(title, entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&rankType, "type", "up", "Board: up, down, volume, turnover")
	cmd.Flags().StringVar(&key, "key", "", "Sort key instead of a board: changePercent, volume, turnoverRate")
	cmd.Flags().StringVar(&dir, "dir", "desc", "Sort direction with --key: asc, desc")
	return cmd
}

func rank(
	ctx context.Context,
	board func(context.Context, calculator.RankType) ([]model.RankedEntry, error),
	by func(context.Context, calculator.RankKey, calculator.Direction) ([]model.RankedEntry, error),
	rankType, key, dir string,
) ([]model.RankedEntry, string, error) {
	if key == "" {
		entries, err := board(ctx, calculator.RankType(rankType))
		return entries, rankType, err
	}
	k, err := calculator.ParseRankKey(key)
	if err != nil {
		return nil, "", err
	}
	d, err := calculator.ParseDirection(dir)
	if err != nil {
		return nil, "", err
	}
	entries, err := by(ctx, k, d)
	return entries, key + " " + dir, err
}

func compareCmd() *cobra.Command {
	var (
		codes  string
		days   int
		method string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the performance of several instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := compare.ParseMethod(method)
			if err != nil {
				return err
			}
			var list []string
			for _, c := range strings.Split(codes, ",") {
				if c = strings.TrimSpace(c); c != "" {
					list = append(list, c)
				}
			}
			set, err := compare.NewSet(list...)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			col, cleanup := buildCollector(ctx, cfg, nil)
			defer cleanup()

			report, err := col.Compare(ctx, set, days, m)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatCompare(report))
			return nil
		},
	}
	cmd.Flags().StringVar(&codes, "codes", strings.Join(compare.DefaultCodes, ","), "Comma-separated instrument codes (max 8)")
	cmd.Flags().IntVar(&days, "days", 7, "Comparison period in days")
	cmd.Flags().StringVar(&method, "method", "percent", "Line scaling: percent or price")
	return cmd
}
