package model

// NewsCategory groups news items on the news page.
type NewsCategory string

const (
	NewsAll     NewsCategory = "all"
	NewsMarket  NewsCategory = "market"
	NewsCompany NewsCategory = "company"
	NewsPolicy  NewsCategory = "policy"
)

// News is a single financial news item.
type News struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	Content       string       `json:"content,omitempty"`
	Source        string       `json:"source"`
	Time          string       `json:"time"`
	Category      NewsCategory `json:"category,omitempty"`
	RelatedStocks []Instrument `json:"relatedStocks,omitempty"`
}

// NewsPage is one page of a filtered news listing.
type NewsPage struct {
	Items      []News `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
