package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

func TestParseWindows(t *testing.T) {
	ws, err := parseWindows("5, 10,,20")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 20}, ws)

	ws, err = parseWindows("")
	require.NoError(t, err)
	assert.Empty(t, ws)

	_, err = parseWindows("5,x")
	assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
}

func TestRank_BoardOrKey(t *testing.T) {
	var gotType calculator.RankType
	var gotKey calculator.RankKey
	var gotDir calculator.Direction
	board := func(_ context.Context, t calculator.RankType) ([]model.RankedEntry, error) {
		gotType = t
		return []model.RankedEntry{{Code: "a"}}, nil
	}
	by := func(_ context.Context, k calculator.RankKey, d calculator.Direction) ([]model.RankedEntry, error) {
		gotKey, gotDir = k, d
		return []model.RankedEntry{{Code: "b"}}, nil
	}

	entries, title, err := rank(context.Background(), board, by, "volume", "", "desc")
	require.NoError(t, err)
	assert.Equal(t, calculator.RankType("volume"), gotType)
	assert.Equal(t, "volume", title)
	assert.Equal(t, "a", entries[0].Code)

	entries, title, err = rank(context.Background(), board, by, "up", "turnoverRate", "asc")
	require.NoError(t, err)
	assert.Equal(t, calculator.RankKey("turnoverRate"), gotKey)
	assert.Equal(t, calculator.Asc, gotDir)
	assert.Equal(t, "turnoverRate asc", title)
	assert.Equal(t, "b", entries[0].Code)

	_, _, err = rank(context.Background(), board, by, "up", "price", "asc")
	assert.True(t, errors.Is(err, calculator.ErrInvalidArgument))
	_, _, err = rank(context.Background(), board, by, "up", "volume", "sideways")
	assert.True(t, errors.Is(err, calculator.ErrInvalidArgument))
}

func TestKLineCommand_Prints(t *testing.T) {
	cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("provider:\n  seed: 7\nlog:\n  format: json\n  level: error\n"), 0o644))
	seed, logLevel = 0, ""

	cmd := klineCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--code", "sh600519", "--days", "10", "--ma", "5"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sh600519")
	assert.Contains(t, out.String(), "MA5")
}
