package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bonusMarket/internal/adapters/clock"
	"bonusMarket/internal/adapters/random"
	"bonusMarket/internal/domain"
	"bonusMarket/internal/market"
)

type mockLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMsgs = append(m.errorMsgs, msg)
}

func mustPair(t *testing.T, base, quote string, price float64) domain.Pair {
	t.Helper()
	p, err := domain.NewPair("", base, quote, base, quote, price, 1.5, 1_000_000, false)
	require.NoError(t, err)
	return p
}

func newTestStore(t *testing.T) (*MarketStore, *clock.Manual) {
	t.Helper()
	rnd := random.NewSource(42)
	candles, err := market.NewCandleGenerator(rnd, market.DefaultCandleConfig())
	require.NoError(t, err)
	books, err := market.NewOrderBookSimulator(rnd, market.DefaultBookConfig())
	require.NoError(t, err)

	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store, err := NewMarketStore(DefaultStoreConfig(), &mockLogger{}, candles, books, clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, clk
}
