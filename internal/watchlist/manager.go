package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"StockBoard/internal/compare"
	"StockBoard/internal/store"
)

// List names.
const (
	Watchlist = "watchlist"
	Compare   = "compare"
)

// DefaultWatchlist is shown before the user saves their own selection.
var DefaultWatchlist = []string{"sh600519", "sh601318", "sz000858", "sz002594"}

var (
	ErrUnknownList = errors.New("unknown list")
	ErrNotInList   = errors.New("code not in list")
)

// Validator rejects codes that are not tradable instruments.
type Validator func(ctx context.Context, code string) error

// Manager holds the user's named code lists and persists them after each change.
type Manager struct {
	mu       sync.Mutex
	store    store.Store
	validate Validator
	lists    map[string][]string
}

// NewManager loads saved lists from st, falling back to defaults.
func NewManager(ctx context.Context, st store.Store, validate Validator) (*Manager, error) {
	m := &Manager{store: st, validate: validate, lists: map[string][]string{}}
	defaults := map[string][]string{Watchlist: DefaultWatchlist, Compare: compare.DefaultCodes}
	for name, def := range defaults {
		codes, err := st.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if codes == nil {
			codes = append([]string{}, def...)
		}
		m.lists[name] = codes
	}
	log.Info().Int("watchlist", len(m.lists[Watchlist])).Int("compare", len(m.lists[Compare])).Msg("lists loaded")
	return m, nil
}

// Get returns a copy of the named list.
func (m *Manager) Get(name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes, ok := m.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, name)
	}
	return append([]string{}, codes...), nil
}

// CompareSet builds the comparison selection from the compare list.
func (m *Manager) CompareSet() (*compare.Set, error) {
	codes, err := m.Get(Compare)
	if err != nil {
		return nil, err
	}
	return compare.NewSet(codes...)
}

// Add appends code to the named list.
func (m *Manager) Add(ctx context.Context, name, code string) ([]string, error) {
	if err := m.check(ctx, code); err != nil {
		return nil, err
	}
	return m.update(ctx, name, func(codes []string) ([]string, error) {
		return checked(name, append(codes, code))
	})
}

// Remove drops code from the named list.
func (m *Manager) Remove(ctx context.Context, name, code string) ([]string, error) {
	return m.update(ctx, name, func(codes []string) ([]string, error) {
		for i, c := range codes {
			if c == code {
				return append(codes[:i], codes[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotInList, code)
	})
}

// Replace swaps the whole named list.
func (m *Manager) Replace(ctx context.Context, name string, codes []string) ([]string, error) {
	for _, c := range codes {
		if err := m.check(ctx, c); err != nil {
			return nil, err
		}
	}
	return m.update(ctx, name, func([]string) ([]string, error) {
		return checked(name, append([]string{}, codes...))
	})
}

func (m *Manager) check(ctx context.Context, code string) error {
	if m.validate == nil {
		return nil
	}
	return m.validate(ctx, code)
}

// checked enforces list rules: no duplicates anywhere, and the compare list
// obeys the comparison set limits.
func checked(name string, codes []string) ([]string, error) {
	if name == Compare {
		if _, err := compare.NewSet(codes...); err != nil {
			return nil, err
		}
		return codes, nil
	}
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", compare.ErrDuplicate, c)
		}
		seen[c] = true
	}
	return codes, nil
}

func (m *Manager) update(ctx context.Context, name string, fn func([]string) ([]string, error)) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, name)
	}
	next, err := fn(append([]string{}, current...))
	if err != nil {
		return nil, err
	}
	m.lists[name] = next

	if err := m.store.Save(ctx, name, next); err != nil {
		log.Error().Err(err).Str("list", name).Msg("failed to save list")
	}
	return append([]string{}, next...), nil
}
