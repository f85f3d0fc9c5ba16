package store

import (
	"context"
	"fmt"
	"strings"
)

// Store persists named code lists such as the watchlist and the compare set.
type Store interface {
	// Load returns the list saved under key, or nil when nothing was saved.
	Load(ctx context.Context, key string) ([]string, error)
	Save(ctx context.Context, key string, codes []string) error
	Close() error
}

// Open creates the Store for driver: "sqlite", "postgres", "file" or "memory".
func Open(driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "postgres":
		return NewSQLStore(driver, dsn)
	case "file":
		return NewFileStore(dsn)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
