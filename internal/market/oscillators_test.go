package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonusMarket/internal/domain"
)

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		period int
		want   float64
	}{
		{"only gains", []float64{1, 2, 3, 4, 5}, 3, 100},
		{"flat", []float64{5, 5, 5, 5, 5}, 3, 50},
		{"only losses", []float64{5, 4, 3, 2, 1}, 3, 0},
		// gains 1,1 losses 1 over three changes; then +1: avgGain=(2/3*2+1)/3=7/9, avgLoss=(1/3*2)/3=2/9
		{"mixed", []float64{10, 11, 12, 11, 12}, 3, 100 - 100/(1+3.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RSI(closes(tt.closes...), tt.period)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := RSI(closes(1, 2, 3), 3)
	assert.Error(t, err)
	_, err = RSI(closes(1, 2, 3), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestATR(t *testing.T) {
	candles := []domain.Candle{
		{Open: 10, High: 11, Low: 9, Close: 10},
		{Open: 10, High: 11, Low: 9, Close: 10},
		{Open: 10, High: 11, Low: 9, Close: 10},
		{Open: 10, High: 14, Low: 10, Close: 13},
	}
	// True ranges 2,2,2,4; seed over two, then (2*1+2)/2=2, (2*1+4)/2=3.
	got, err := ATR(candles, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-9)

	_, err = ATR(candles, 4)
	assert.Error(t, err)
}
