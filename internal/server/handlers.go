package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"StockBoard/internal/calculator"
	"StockBoard/internal/compare"
	"StockBoard/internal/model"
)

const (
	defaultKLineDays   = 30
	maxKLineDays       = 1000
	defaultCompareDays = 7
	defaultNewsSize    = 10
	maxNewsSize        = 100
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"fetcher": s.deps.Collector.Fetcher.Name(),
	})
}

func (s *Server) instruments(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Collector.Fetcher.Instruments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	results, err := s.deps.Collector.Fetcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) stockDetail(w http.ResponseWriter, r *http.Request) {
	q, err := s.deps.Collector.Fetcher.Quote(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) stockKLine(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", defaultKLineDays, 1, maxKLineDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var windows []int
	for _, raw := range listParam(r, "ma") {
		win, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, invalidParam("ma", raw))
			return
		}
		windows = append(windows, win)
	}
	k, err := s.deps.Collector.KLine(r.Context(), mux.Vars(r)["code"], days, windows)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (s *Server) stockTimeline(w http.ResponseWriter, r *http.Request) {
	samples, err := s.deps.Collector.Fetcher.Intraday(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (s *Server) stockFinancials(w http.ResponseWriter, r *http.Request) {
	f, err := s.deps.Collector.Fetcher.Financials(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) stockNews(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "count", 3, 1, 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	news, err := s.deps.Collector.Fetcher.StockNews(r.Context(), mux.Vars(r)["code"], count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (s *Server) marketIndices(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.deps.Collector.Fetcher.Indices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) marketHot(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.deps.Collector.Fetcher.HotStocks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// marketRank serves a named board (?type=) or an arbitrary ordering (?key=&dir=).
func (s *Server) marketRank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		entries []model.RankedEntry
		err     error
	)
	if key := q.Get("key"); key != "" {
		var (
			k   calculator.RankKey
			dir calculator.Direction
		)
		if k, err = calculator.ParseRankKey(key); err == nil {
			if dir, err = calculator.ParseDirection(q.Get("dir")); err == nil {
				entries, err = s.deps.Collector.RankBy(r.Context(), k, dir)
			}
		}
	} else {
		t := calculator.RankType(q.Get("type"))
		if t == "" {
			t = calculator.RankUp
		}
		entries, err = s.deps.Collector.Rank(r.Context(), t)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) marketSectors(w http.ResponseWriter, r *http.Request) {
	period, err := intParam(r, "period", 1, 1, 30)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sectors, err := s.deps.Collector.Fetcher.Sectors(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

func (s *Server) marketDistribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.deps.Collector.Fetcher.Distribution(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) marketFundFlow(w http.ResponseWriter, r *http.Request) {
	flows, err := s.deps.Collector.Fetcher.FundFlow(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flows)
}

func (s *Server) newsList(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 1, 1, 1<<20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := intParam(r, "size", defaultNewsSize, 1, maxNewsSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	category := model.NewsCategory(r.URL.Query().Get("category"))
	result, err := s.deps.Collector.Fetcher.News(r.Context(), category, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) newsHot(w http.ResponseWriter, r *http.Request) {
	news, err := s.deps.Collector.Fetcher.HotNews(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (s *Server) newsDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.deps.Collector.Fetcher.NewsDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// compare analyses ?codes= or, when absent, the saved compare list.
func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", defaultCompareDays, 2, maxKLineDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	method, err := compare.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var set *compare.Set
	if codes := listParam(r, "codes"); len(codes) > 0 {
		set, err = compare.NewSet(codes...)
	} else if s.deps.Lists != nil {
		set, err = s.deps.Lists.CompareSet()
	} else {
		set, err = compare.NewSet(compare.DefaultCodes...)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.deps.Collector.Compare(r.Context(), set, days, method)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type listBody struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	codes, err := s.deps.Lists.Get(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Name: name, Codes: codes})
}

func (s *Server) replaceList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var body listBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, invalidParam("body", err.Error()))
		return
	}
	codes, err := s.deps.Lists.Replace(r.Context(), name, body.Codes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Name: name, Codes: codes})
}

func (s *Server) addToList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	codes, err := s.deps.Lists.Add(r.Context(), vars["name"], vars["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listBody{Name: vars["name"], Codes: codes})
}

func (s *Server) removeFromList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	codes, err := s.deps.Lists.Remove(r.Context(), vars["name"], vars["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Name: vars["name"], Codes: codes})
}
