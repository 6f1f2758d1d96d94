package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonusMarket/internal/adapters/clock"
	"bonusMarket/internal/adapters/random"
	"bonusMarket/internal/domain"
	"bonusMarket/internal/market"
	"bonusMarket/internal/ports"
)

func waitSnapshot(t *testing.T, ch <-chan domain.MarketSnapshot) domain.MarketSnapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return domain.MarketSnapshot{}
	}
}

func TestNewMarketStore_Validation(t *testing.T) {
	store, clk := newTestStore(t)
	_ = store

	_, err := NewMarketStore(DefaultStoreConfig(), nil, nil, nil, clk)
	assert.Error(t, err)

	cfg := DefaultStoreConfig()
	cfg.RefreshInterval = 0
	_, err = NewMarketStore(cfg, &mockLogger{}, store.candles, store.books, clk)
	assert.ErrorIs(t, err, ports.ErrConfigurationError)

	cfg = DefaultStoreConfig()
	cfg.CandleCount = 0
	_, err = NewMarketStore(cfg, &mockLogger{}, store.candles, store.books, clk)
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}

func TestMarketStore_EmptyBeforeSelection(t *testing.T) {
	store, clk := newTestStore(t)

	assert.Nil(t, store.CurrentSeries())
	assert.Empty(t, store.CurrentBook().Bids)
	_, ok := store.CurrentPair()
	assert.False(t, ok)
	_, ok = store.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, 0, clk.ActiveTickers())
}

func TestMarketStore_SelectPair(t *testing.T) {
	store, clk := newTestStore(t)
	pair := mustPair(t, "BTC", "USDT", 100)

	require.NoError(t, store.SelectPair(context.Background(), pair))

	series := store.CurrentSeries()
	require.Len(t, series, 30)
	for i, c := range series {
		assert.Equal(t, i, c.Index)
		assert.NoError(t, c.Validate())
	}
	assert.InDelta(t, 100, series[0].Open, 1e-9)

	book := store.CurrentBook()
	assert.Len(t, book.Bids, 12)
	assert.Len(t, book.Asks, 12)
	for _, lvl := range book.Bids {
		assert.Less(t, lvl.Price, 100.0)
	}
	for _, lvl := range book.Asks {
		assert.Greater(t, lvl.Price, 100.0)
	}

	snap, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, pair.ID, snap.Pair.ID)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Equal(t, clk.Now(), snap.UpdatedAt)
	assert.Equal(t, 1, clk.ActiveTickers())
}

func TestMarketStore_LadderFollowsConfiguredDepth(t *testing.T) {
	rnd := random.NewSource(7)
	candles, err := market.NewCandleGenerator(rnd, market.DefaultCandleConfig())
	require.NoError(t, err)
	bookCfg := market.DefaultBookConfig()
	bookCfg.Depth = 5
	books, err := market.NewOrderBookSimulator(rnd, bookCfg)
	require.NoError(t, err)
	require.Equal(t, 5, books.Depth())

	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store, err := NewMarketStore(DefaultStoreConfig(), &mockLogger{}, candles, books, clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.SelectPair(context.Background(), mustPair(t, "BTC", "USDT", 100)))
	book := store.CurrentBook()
	assert.Len(t, book.Bids, books.Depth())
	assert.Len(t, book.Asks, books.Depth())
}

func TestMarketStore_SelectPairRejectsInvalidPair(t *testing.T) {
	store, clk := newTestStore(t)

	err := store.SelectPair(context.Background(), domain.Pair{ID: "bad", Base: "X", Quote: "Y", LastPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, ok := store.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, 0, clk.ActiveTickers())
}

func TestMarketStore_RefreshRegeneratesOnlyLadders(t *testing.T) {
	store, clk := newTestStore(t)
	pair := mustPair(t, "ETH", "USDT", 50)
	require.NoError(t, store.SelectPair(context.Background(), pair))

	before, _ := store.Snapshot()
	sub, unsubscribe := store.Subscribe()
	defer unsubscribe()

	clk.Advance(5 * time.Second)
	after := waitSnapshot(t, sub)

	assert.Equal(t, before.Generation+1, after.Generation)
	assert.Equal(t, before.Series, after.Series)
	assert.NotEqual(t, before.Book, after.Book)
	assert.Equal(t, pair.ID, after.Pair.ID)
}

func TestMarketStore_RapidReselectionLeavesSingleLoop(t *testing.T) {
	store, clk := newTestStore(t)
	first := mustPair(t, "BTC", "USDT", 100)
	second := mustPair(t, "TON", "USDT", 2)

	require.NoError(t, store.SelectPair(context.Background(), first))
	require.NoError(t, store.SelectPair(context.Background(), second))
	assert.Equal(t, 1, clk.ActiveTickers())

	sub, unsubscribe := store.Subscribe()
	defer unsubscribe()

	for i := 0; i < 3; i++ {
		clk.Advance(5 * time.Second)
		snap := waitSnapshot(t, sub)
		require.Equal(t, second.ID, snap.Pair.ID)
		for _, lvl := range snap.Book.Bids {
			assert.Less(t, lvl.Price, 2.0)
		}
		for _, lvl := range snap.Book.Asks {
			assert.Greater(t, lvl.Price, 2.0)
		}
	}

	current, ok := store.CurrentPair()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
}

func TestMarketStore_CloseStopsRefresh(t *testing.T) {
	store, clk := newTestStore(t)
	require.NoError(t, store.SelectPair(context.Background(), mustPair(t, "BTC", "USDT", 100)))
	sub, _ := store.Subscribe()

	require.NoError(t, store.Close())
	assert.Equal(t, 0, clk.ActiveTickers())

	_, ok := <-sub
	assert.False(t, ok, "subscription should be closed")

	err := store.SelectPair(context.Background(), mustPair(t, "ETH", "USDT", 10))
	assert.ErrorIs(t, err, ports.ErrClosed)

	// Second close is a no-op.
	assert.NoError(t, store.Close())
}

func TestMarketStore_StatsFollowSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SelectPair(context.Background(), mustPair(t, "BTC", "USDT", 100)))

	snap, ok := store.Snapshot()
	require.True(t, ok)
	want := market.ComputeStats(snap.Series, snap.Book, DefaultStoreConfig().MAPeriod)
	assert.Equal(t, want, snap.Stats)
	assert.Greater(t, snap.Stats.Spread, 0.0)
}
