package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"StockBoard/internal/calculator"
	"StockBoard/internal/collector"
	"StockBoard/internal/compare"
	"StockBoard/internal/model"
)

func table(b *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func maKeys(ma map[string][]calculator.MAPoint) []string {
	keys := make([]string, 0, len(ma))
	for k := range ma {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, _ := strconv.Atoi(strings.TrimPrefix(keys[i], "ma"))
		wj, _ := strconv.Atoi(strings.TrimPrefix(keys[j], "ma"))
		return wi < wj
	})
	return keys
}

// FormatKLine renders bars with one column per moving average.
func FormatKLine(k *collector.KLine) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s | %d 日K线\n", k.Code, k.Name, len(k.Bars)))
	b.WriteString(fmt.Sprintf("区间涨跌: %+.2f%% | 最高 %.2f | 最低 %.2f | 单日最大涨幅 %+.2f%% | 单日最大跌幅 %+.2f%%\n\n",
		k.Change, k.High, k.Low, k.Extremes.MaxRise, k.Extremes.MaxFall))

	keys := maKeys(k.MA)
	w := table(&b)
	fmt.Fprint(w, "日期\t开盘\t收盘\t最高\t最低\t成交量")
	for _, key := range keys {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(key))
	}
	fmt.Fprintln(w, "\t")
	for i, bar := range k.Bars {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s", bar.Date, bar.Open, bar.Close, bar.High, bar.Low, humanize.Comma(bar.Volume))
		for _, key := range keys {
			fmt.Fprintf(w, "\t%s", k.MA[key][i])
		}
		fmt.Fprintln(w, "\t")
	}
	w.Flush()
	return b.String()
}

var rankTitles = map[calculator.RankType]string{
	calculator.RankUp:       "涨幅榜",
	calculator.RankDown:     "跌幅榜",
	calculator.RankVolume:   "成交量榜",
	calculator.RankTurnover: "换手率榜",
}

// FormatRank renders a ranking board with its position numbers.
func FormatRank(title string, entries []model.RankedEntry) string {
	if t, ok := rankTitles[calculator.RankType(title)]; ok {
		title = t
	}
	var b strings.Builder
	b.WriteString(title + "\n\n")
	w := table(&b)
	fmt.Fprintln(w, "#\t代码\t名称\t现价\t涨跌幅\t涨跌额\t成交量\t成交额(万)\t换手率\t")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%+.2f%%\t%+.2f\t%s\t%s\t%.2f%%\t\n",
			i+1, e.Code, e.Name, e.Price, e.ChangePercent, e.ChangeAmount,
			humanize.Comma(e.Volume), humanize.CommafWithDigits(e.Amount, 2), e.TurnoverRate)
	}
	w.Flush()
	return b.String()
}

// FormatCompare renders the comparison summary table.
func FormatCompare(r *compare.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("走势对比 | %d 只 | %s ~ %s\n\n", len(r.Lines), r.Dates[0], r.Dates[len(r.Dates)-1]))
	w := table(&b)
	fmt.Fprintln(w, "代码\t名称\t起始价\t最新价\t区间涨跌\t最大单日涨幅\t最大单日跌幅\t")
	for _, s := range r.Summaries {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%+.2f%%\t%+.2f%%\t%+.2f%%\t\n",
			s.Code, s.Name, s.FirstPrice, s.LastPrice, s.ChangePercent, s.MaxRise, s.MaxFall)
	}
	w.Flush()
	b.WriteString(fmt.Sprintf("\n最佳: %s %+.2f%% | 最差: %s %+.2f%% | 平均: %+.2f%% | 上涨 %d 只 / 下跌 %d 只\n",
		r.Best.Name, r.Best.ChangePercent, r.Worst.Name, r.Worst.ChangePercent, r.AvgChange, r.RiseCount, r.FallCount))
	return b.String()
}

// FormatSnapshot renders the market overview.
func FormatSnapshot(s *collector.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("市场概览 | %s\n\n", s.Time.Format("2006-01-02 15:04:05")))
	w := table(&b)
	for _, q := range append(append([]model.Quote{}, s.Indices...), s.Hot...) {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%+.2f%%\t\n", q.Code, q.Name, q.CurrentPrice, q.ChangePercent)
	}
	w.Flush()
	return b.String()
}
