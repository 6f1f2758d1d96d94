package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPair(t *testing.T) {
	p, err := NewPair("", " bonus ", "usdt", "Bonus", "Tether", 1.25, -3.2, 1000, true)
	require.NoError(t, err)
	assert.Equal(t, "bonus-usdt", p.ID)
	assert.Equal(t, "BONUS", p.Base)
	assert.Equal(t, "USDT", p.Quote)
	assert.Equal(t, "BONUS/USDT", p.String())
	assert.Equal(t, "BONUSUSDT", p.Symbol())
	assert.True(t, p.Favorite)

	tests := []struct {
		name   string
		base   string
		quote  string
		price  float64
		change float64
		volume float64
	}{
		{name: "missing base", base: "", quote: "USDT", price: 1},
		{name: "same symbols", base: "USDT", quote: "usdt", price: 1},
		{name: "zero price", base: "BTC", quote: "USDT", price: 0},
		{name: "NaN price", base: "BTC", quote: "USDT", price: math.NaN()},
		{name: "infinite change", base: "BTC", quote: "USDT", price: 1, change: math.Inf(-1)},
		{name: "negative volume", base: "BTC", quote: "USDT", price: 1, volume: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPair("x", tt.base, tt.quote, "", "", tt.price, tt.change, tt.volume, false)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCandle_Validate(t *testing.T) {
	assert.NoError(t, Candle{Open: 10, High: 12, Low: 9, Close: 11, Volume: 5}.Validate())
	assert.ErrorIs(t, Candle{Open: 10, High: 10.5, Low: 9, Close: 11}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Candle{Open: 10, High: 12, Low: 10.5, Close: 11}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Candle{Open: 10, High: 12, Low: 9, Close: 11, Volume: -1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Candle{Open: 0, High: 12, Low: 9, Close: 11}.Validate(), ErrInvalidInput)

	assert.True(t, Candle{Open: 1, Close: 1}.Bullish())
	assert.False(t, Candle{Open: 2, Close: 1}.Bullish())
}

func TestOrderBook_SpreadIsNotClamped(t *testing.T) {
	book := OrderBook{
		Bids: []OrderBookLevel{{Price: 101, Amount: 2}, {Price: 100, Amount: 3}},
		Asks: []OrderBookLevel{{Price: 100.5, Amount: 1}},
	}

	spread, ok := book.Spread()
	require.True(t, ok)
	assert.InDelta(t, -0.5, spread, 1e-9)
	assert.Equal(t, 5.0, book.BidVolume())
	assert.Equal(t, 1.0, book.AskVolume())

	_, ok = OrderBook{}.Spread()
	assert.False(t, ok)
	_, ok = OrderBook{}.BestBid()
	assert.False(t, ok)
}

func TestNewOrderTicket(t *testing.T) {
	pair, err := NewPair("", "BONUS", "USDT", "", "", 2.5, 0, 0, false)
	require.NoError(t, err)

	tk, err := NewOrderTicket(OperationTrade, Buy, Market, pair, decimal.NewFromInt(7), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, tk.Price.Equal(decimal.RequireFromString("2.5")), "market ticket takes last price")
	assert.True(t, tk.Spends())

	tk, err = NewOrderTicket(OperationTrade, Sell, Limit, pair, decimal.NewFromInt(7), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, tk.Price.Equal(decimal.NewFromInt(7)))

	tk, err = NewOrderTicket(OperationSwap, "", "", pair, decimal.Zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, Sell, tk.Side)
	assert.Equal(t, Market, tk.Type)
	assert.True(t, tk.Spends())

	tk, err = NewOrderTicket(OperationTransfer, Receive, Market, pair, decimal.Zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, tk.Spends())

	bad := []struct {
		op   Operation
		side OrderSide
		typ  OrderType
	}{
		{OperationTrade, Send, Market},
		{OperationTransfer, Buy, Market},
		{OperationSwap, Buy, Market},
		{Operation("lend"), Buy, Market},
		{OperationTrade, Buy, OrderType("STOP")},
	}
	for _, b := range bad {
		_, err := NewOrderTicket(b.op, b.side, b.typ, pair, decimal.Zero, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrInvalidInput, "%s/%s/%s", b.op, b.side, b.typ)
	}

	_, err = NewOrderTicket(OperationTrade, Buy, Market, Pair{}, decimal.Zero, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOrderSide_Valid(t *testing.T) {
	for _, s := range []OrderSide{Buy, Sell, Send, Receive} {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderSide("HOLD").Valid())
	assert.Equal(t, -1.0, Bids.Sign())
	assert.Equal(t, 1.0, Asks.Sign())
}
