package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileDocument struct {
	Lists     map[string][]string `json:"lists"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// FileStore keeps all lists in one JSON document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore uses path, creating its directory if needed. The file itself
// is written on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) read() (*fileDocument, error) {
	doc := &fileDocument{Lists: map[string][]string{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Lists == nil {
		doc.Lists = map[string][]string{}
	}
	return doc, nil
}

func (s *FileStore) Load(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Lists[key], nil
}

// Save rewrites the document through a temp file and rename.
func (s *FileStore) Save(_ context.Context, key string, codes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	// an empty saved list stays [] so Load can tell it from a missing key
	doc.Lists[key] = append([]string{}, codes...)
	doc.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Close() error { return nil }
