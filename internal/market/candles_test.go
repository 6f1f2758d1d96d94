package market

import (
	"math"
	"testing"

	"bonusMarket/internal/adapters/random"
	"bonusMarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandleGen(t *testing.T, rnd interface{ Float64() float64 }) *CandleGenerator {
	t.Helper()
	g, err := NewCandleGenerator(rnd, DefaultCandleConfig())
	require.NoError(t, err)
	return g
}

func TestCandleGenerator_FixedSequence(t *testing.T) {
	g := newCandleGen(t, random.NewSequence(0.75, 0, 0, 0))

	candles, err := g.Generate(2, 100)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	want := []domain.Candle{
		{Index: 0, Open: 100, High: 102.5, Low: 100, Close: 102.5, Volume: 100},
		{Index: 1, Open: 102.5, High: 105.0625, Low: 102.5, Close: 105.0625, Volume: 100},
	}
	for i := range want {
		assert.Equal(t, want[i].Index, candles[i].Index)
		assert.InDelta(t, want[i].Open, candles[i].Open, 1e-9)
		assert.InDelta(t, want[i].High, candles[i].High, 1e-9)
		assert.InDelta(t, want[i].Low, candles[i].Low, 1e-9)
		assert.InDelta(t, want[i].Close, candles[i].Close, 1e-9)
		assert.InDelta(t, want[i].Volume, candles[i].Volume, 1e-9)
	}
}

func TestCandleGenerator_MidpointSequence(t *testing.T) {
	g := newCandleGen(t, random.NewSequence(0.5))

	candles, err := g.Generate(3, 200)
	require.NoError(t, err)
	for _, c := range candles {
		assert.InDelta(t, 200, c.Open, 1e-9)
		assert.InDelta(t, 200, c.Close, 1e-9)
		assert.InDelta(t, 205, c.High, 1e-9)
		assert.InDelta(t, 195, c.Low, 1e-9)
		assert.InDelta(t, 600, c.Volume, 1e-9)
	}
}

func TestCandleGenerator_DrawsFourValuesPerCandle(t *testing.T) {
	seq := random.NewSequence(0.3, 0.6, 0.9)
	g := newCandleGen(t, seq)

	_, err := g.Generate(30, 10)
	require.NoError(t, err)
	assert.Equal(t, 120, seq.Draws())
}

func TestCandleGenerator_Invariants(t *testing.T) {
	g := newCandleGen(t, random.NewSource(12345))

	for run := 0; run < 20; run++ {
		candles, err := g.Generate(200, 0.37)
		require.NoError(t, err)
		require.Len(t, candles, 200)

		for i, c := range candles {
			assert.Equal(t, i, c.Index)
			assert.GreaterOrEqual(t, c.High, math.Max(c.Open, c.Close), "candle %d high", i)
			assert.LessOrEqual(t, c.Low, math.Min(c.Open, c.Close), "candle %d low", i)
			assert.Greater(t, c.Low, 0.0, "candle %d low must stay positive", i)
			assert.GreaterOrEqual(t, c.Volume, 100.0)
			assert.Less(t, c.Volume, 1100.0)
			assert.NoError(t, c.Validate())
			if i > 0 {
				assert.Equal(t, candles[i-1].Close, c.Open, "walk must be continuous at %d", i)
			}
		}
	}
}

func TestCandleGenerator_IndependentWalks(t *testing.T) {
	g := newCandleGen(t, random.NewSource(99))

	a, err := g.Generate(10, 50)
	require.NoError(t, err)
	b, err := g.Generate(10, 50)
	require.NoError(t, err)

	assert.Equal(t, 50.0, a[0].Open)
	assert.Equal(t, 50.0, b[0].Open)
	assert.NotEqual(t, a, b)
}

func TestCandleGenerator_RejectsBadInput(t *testing.T) {
	g := newCandleGen(t, random.NewSequence())

	tests := []struct {
		name  string
		count int
		price float64
	}{
		{name: "zero price", count: 5, price: 0},
		{name: "negative price", count: 5, price: -10},
		{name: "NaN price", count: 5, price: math.NaN()},
		{name: "infinite price", count: 5, price: math.Inf(1)},
		{name: "negative count", count: -1, price: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.count, tt.price)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	candles, err := g.Generate(0, 10)
	require.NoError(t, err)
	assert.Empty(t, candles)
}

func TestNewCandleGenerator_Validation(t *testing.T) {
	_, err := NewCandleGenerator(nil, DefaultCandleConfig())
	assert.Error(t, err)

	cfg := DefaultCandleConfig()
	cfg.Volatility = 0
	_, err = NewCandleGenerator(random.NewSequence(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cfg = DefaultCandleConfig()
	cfg.MaxVolume = 10
	_, err = NewCandleGenerator(random.NewSequence(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
