package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"bonusMarket/internal/domain"
)

var candleHeader = []string{"index", "symbol", "open", "high", "low", "close", "volume"}

// WriteCandles writes a candle series as CSV to w.
func WriteCandles(w io.Writer, pair domain.Pair, candles []domain.Candle) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(candleHeader); err != nil {
		return err
	}

	for _, c := range candles {
		if err := writer.Write([]string{
			strconv.Itoa(c.Index),
			pair.Symbol(),
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCandlesToCSV writes a candle series to filename, creating its directory.
func WriteCandlesToCSV(pair domain.Pair, candles []domain.Candle, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCandles(file, pair, candles); err != nil {
		return fmt.Errorf("failed to write candles to %s: %w", filename, err)
	}
	return file.Close()
}
