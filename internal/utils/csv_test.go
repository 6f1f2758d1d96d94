package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonusMarket/internal/domain"
)

func TestWriteCandles(t *testing.T) {
	pair, err := domain.NewPair("", "TON", "USDT", "Toncoin", "Tether", 5, 0, 0, false)
	require.NoError(t, err)
	candles := []domain.Candle{
		{Index: 0, Open: 5, High: 5.5, Low: 4.75, Close: 5.25, Volume: 100},
		{Index: 1, Open: 5.25, High: 5.3, Low: 5.1, Close: 5.2, Volume: 250.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCandles(&buf, pair, candles))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "index,symbol,open,high,low,close,volume", lines[0])
	assert.Equal(t, "0,TONUSDT,5,5.5,4.75,5.25,100", lines[1])
	assert.Equal(t, "1,TONUSDT,5.25,5.3,5.1,5.2,250.5", lines[2])
}

func TestWriteCandlesToCSV_CreatesDirectory(t *testing.T) {
	pair, err := domain.NewPair("", "BTC", "USDT", "", "", 100, 0, 0, false)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "btc.csv")

	require.NoError(t, WriteCandlesToCSV(pair, []domain.Candle{{Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "index,symbol"))
}
