package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

const (
	newsArchiveSize = 100
	latencyNews     = 300 * time.Millisecond
)

var newsBody = []string{
	"<p>这是新闻正文第一段，详细介绍新闻的内容。</p>",
	"<p>这是新闻正文第二段，提供更多的细节和背景信息。</p>",
	"<p>这是新闻正文第三段，可能包含引用、数据或其他相关信息。</p>",
	"<p>这是新闻的结尾段落，总结新闻的主要观点或影响。</p>",
}

var newsEpoch = time.Date(2025, 5, 20, 0, 0, 0, 0, time.Local)

var newsRelated = []string{"sh600519", "sh601318", "sz000858"}

// newsCategoryOf assigns archive item i (1-based) to a category.
func newsCategoryOf(i int) model.NewsCategory {
	switch {
	case i%4 == 0:
		return model.NewsPolicy
	case i%3 == 0:
		return model.NewsCompany
	default:
		return model.NewsMarket
	}
}

func newsSourceOf(i int) string {
	switch {
	case i%3 == 0:
		return newsSources[0]
	case i%2 == 0:
		return newsSources[1]
	default:
		return newsSources[2]
	}
}

// archiveItem builds the deterministic archive entry with 1-based index i.
func archiveItem(i int) model.News {
	related := make([]model.Instrument, 0, len(newsRelated))
	for _, code := range newsRelated {
		in, _ := lookup(code)
		related = append(related, model.Instrument{Code: in.Code, Name: in.Name})
	}
	return model.News{
		ID:            fmt.Sprintf("news-%d", i),
		Title:         newsTitles[(i-1)%len(newsTitles)],
		Summary:       "这是新闻摘要，简要介绍新闻的主要内容。",
		Content:       strings.Join(newsBody, "\n"),
		Source:        newsSourceOf(i),
		Time:          newsEpoch.AddDate(0, 0, -i/5).Add(time.Duration(10+i%12)*time.Hour + time.Duration((i*7)%60)*time.Minute).Format("2006-01-02 15:04"),
		Category:      newsCategoryOf(i),
		RelatedStocks: related,
	}
}

func validCategory(c model.NewsCategory) bool {
	switch c {
	case model.NewsAll, model.NewsMarket, model.NewsCompany, model.NewsPolicy:
		return true
	}
	return false
}

// News pages through the archive filtered by category. Pages are 1-based;
// a page past the end is empty.
func (m *MockFetcher) News(ctx context.Context, category model.NewsCategory, page, size int) (*model.NewsPage, error) {
	if category == "" {
		category = model.NewsAll
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("%w: unknown news category %q", calculator.ErrInvalidArgument, category)
	}
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: page and size must be positive", calculator.ErrInvalidArgument)
	}
	if err := m.wait(ctx, latencyNews); err != nil {
		return nil, err
	}

	var filtered []model.News
	for i := 1; i <= newsArchiveSize; i++ {
		if category == model.NewsAll || newsCategoryOf(i) == category {
			item := archiveItem(i)
			item.Content = ""
			filtered = append(filtered, item)
		}
	}

	total := len(filtered)
	start := min((page-1)*size, total)
	end := min(start+size, total)
	items := make([]model.News, end-start)
	copy(items, filtered[start:end])
	return &model.NewsPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}, nil
}

// NewsDetail resolves archive ids ("news-N") and hot ids ("hot-news-N").
func (m *MockFetcher) NewsDetail(ctx context.Context, id string) (*model.News, error) {
	if err := m.wait(ctx, latencyNews); err != nil {
		return nil, err
	}
	for _, h := range hotNews {
		if h.ID == id {
			item := h
			item.Summary = h.Title
			item.Content = fmt.Sprintf("<p>这是热门新闻“%s”的详细内容。</p>\n%s", h.Title, strings.Join(newsBody, "\n"))
			return &item, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(id, "news-%d", &n); err == nil && n >= 1 && n <= newsArchiveSize && id == fmt.Sprintf("news-%d", n) {
		item := archiveItem(n)
		return &item, nil
	}
	return nil, fmt.Errorf("%w: news %s", ErrNotFound, id)
}

func (m *MockFetcher) HotNews(ctx context.Context) ([]model.News, error) {
	if err := m.wait(ctx, latencyNews); err != nil {
		return nil, err
	}
	out := make([]model.News, len(hotNews))
	copy(out, hotNews)
	return out, nil
}

// StockNews returns count random headlines prefixed with the stock name.
func (m *MockFetcher) StockNews(ctx context.Context, code string, count int) ([]model.News, error) {
	in, ok := lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, code)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be positive", calculator.ErrInvalidArgument)
	}
	if err := m.wait(ctx, latencyNews); err != nil {
		return nil, err
	}
	now := m.now()
	out := make([]model.News, 0, count)
	for i := 0; i < count; i++ {
		title := newsTitles[m.intn(len(newsTitles))]
		out = append(out, model.News{
			ID:      fmt.Sprintf("%s-news-%d", code, i),
			Title:   in.Name + title,
			Summary: title,
			Source:  newsSources[m.intn(len(newsSources))],
			Time:    now.Add(-time.Duration(m.intn(24)) * time.Hour).Format("2006-01-02 15:04"),
		})
	}
	return out, nil
}
