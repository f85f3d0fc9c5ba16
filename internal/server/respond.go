package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"StockBoard/internal/calculator"
	"StockBoard/internal/collector"
	"StockBoard/internal/compare"
	"StockBoard/internal/watchlist"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, calculator.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, collector.ErrUnknownInstrument),
		errors.Is(err, collector.ErrNotFound),
		errors.Is(err, watchlist.ErrUnknownList),
		errors.Is(err, watchlist.ErrNotInList):
		return http.StatusNotFound
	case errors.Is(err, compare.ErrDuplicate), errors.Is(err, compare.ErrSetFull):
		return http.StatusConflict
	case errors.Is(err, collector.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", id).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: id})
}

// intParam reads an integer query parameter within [lo, hi], returning def when absent.
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}

// listParam splits a comma-separated query parameter, dropping blanks.
func listParam(r *http.Request, name string) []string {
	var out []string
	for _, part := range strings.Split(r.URL.Query().Get(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func invalidParam(name, raw string) error {
	return fmt.Errorf("%w: bad value %q for %s", calculator.ErrInvalidArgument, raw, name)
}
