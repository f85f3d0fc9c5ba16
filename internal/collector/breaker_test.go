package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/internal/model"
)

type flakyFetcher struct {
	*MockFetcher
	calls int
}

func (f *flakyFetcher) Indices(context.Context) ([]model.Quote, error) {
	f.calls++
	return nil, errors.New("upstream down")
}

func TestBreakerFetcher_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyFetcher{MockFetcher: newTestFetcher(1)}
	b := NewBreakerFetcher(inner, BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := b.Indices(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Indices(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls)

	_, err = b.Quote(ctx, "sh600519")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBreakerFetcher_CallerErrorsDoNotTrip(t *testing.T) {
	b := NewBreakerFetcher(newTestFetcher(1), BreakerSettings{ConsecutiveFailures: 2})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := b.Quote(ctx, "zz000000")
		assert.ErrorIs(t, err, ErrUnknownInstrument)
		_, err = b.NewsDetail(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	for i := 0; i < 3; i++ {
		_, err := b.Instruments(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())

	q, err := b.Quote(ctx, "sh600519")
	require.NoError(t, err)
	assert.Equal(t, "sh600519", q.Code)
	assert.Equal(t, "mock", b.Name())
}
