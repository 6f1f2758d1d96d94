package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"bonusMarket/config"
	"bonusMarket/internal/adapters/logger"
	"bonusMarket/internal/adapters/random"
	"bonusMarket/internal/adapters/sqlite"
	"bonusMarket/internal/catalog"
	"bonusMarket/internal/market"
	"bonusMarket/internal/utils"
)

func main() {
	pairID := flag.String("pair", "btc-usdt", "catalog pair id, e.g. ton-usdt")
	count := flag.Int("count", 0, "number of candles (defaults to CANDLE_COUNT)")
	seed := flag.Int64("seed", 0, "random seed (defaults to RANDOM_SEED)")
	out := flag.String("out", "", "output file (defaults to data/<pair>_candles.csv)")
	flag.Parse()

	if err := run(*pairID, *count, *seed, *out); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(pairID string, count int, seed int64, out string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.NewStdLogger(cfg.LogLevel).Named("export")
	ctx := context.Background()

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		return fmt.Errorf("failed to initialize database repository: %w", err)
	}
	defer repo.Close()

	pairCatalog, err := catalog.NewService(repo, nil, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize pair catalog: %w", err)
	}
	if err := pairCatalog.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed pair catalog: %w", err)
	}
	pair, err := pairCatalog.Get(ctx, strings.ToLower(pairID))
	if err != nil {
		return fmt.Errorf("unknown pair %q: %w", pairID, err)
	}

	if count <= 0 {
		count = cfg.CandleCount
	}
	if seed == 0 {
		seed = cfg.RandomSeed
	}
	gen, err := market.NewCandleGenerator(random.NewSource(seed), market.DefaultCandleConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize candle generator: %w", err)
	}
	candles, err := gen.Generate(count, pair.LastPrice)
	if err != nil {
		return fmt.Errorf("failed to generate candles: %w", err)
	}

	filename := out
	if filename == "" {
		filename = fmt.Sprintf("data/%s_candles.csv", pair.ID)
	}
	if err := utils.WriteCandlesToCSV(pair, candles, filename); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	appLogger.Info(ctx, "Saved candles", map[string]interface{}{"pair": pair.String(), "count": len(candles), "filename": filename})
	return nil
}
