package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlStore, err := Open("sqlite", filepath.Join(dir, "db", "lists.db"))
	require.NoError(t, err)
	fileStore, err := Open("file", filepath.Join(dir, "lists.json"))
	require.NoError(t, err)
	memStore, err := Open("memory", "")
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlStore.Close()
		fileStore.Close()
		memStore.Close()
	})
	return map[string]Store{"sqlite": sqlStore, "file": fileStore, "memory": memStore}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Load(ctx, "watchlist")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Save(ctx, "watchlist", []string{"sh600519", "sz000858"}))
			require.NoError(t, s.Save(ctx, "compare", []string{"sh000001"}))
			require.NoError(t, s.Save(ctx, "watchlist", []string{"sz002594"}))

			got, err = s.Load(ctx, "watchlist")
			require.NoError(t, err)
			assert.Equal(t, []string{"sz002594"}, got)

			got, err = s.Load(ctx, "compare")
			require.NoError(t, err)
			assert.Equal(t, []string{"sh000001"}, got)

			require.NoError(t, s.Save(ctx, "compare", nil))
			got, err = s.Load(ctx, "compare")
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSQLStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lists.db")

	s, err := NewSQLStore("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "watchlist", []string{"sh601318"}))
	require.NoError(t, s.Close())

	s, err = NewSQLStore("sqlite", path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, "watchlist")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh601318"}, got)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Load(context.Background(), "watchlist")
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mongo", "x")
	assert.Error(t, err)
	_, err = Open("postgres", "")
	assert.Error(t, err)
}

func TestFileStore_EmptyListSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lists.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "watchlist", []string{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"watchlist": []`)

	s, err = NewFileStore(path)
	require.NoError(t, err)
	got, err := s.Load(ctx, "watchlist")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = s.Load(ctx, "compare")
	require.NoError(t, err)
	assert.Nil(t, got)
}
