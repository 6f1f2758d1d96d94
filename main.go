package main

import (
	"context"
	"fmt"
	"log" // Standard log only until the app logger exists
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"bonusMarket/config"
	"bonusMarket/internal/adapters/binanceclient"
	"bonusMarket/internal/adapters/clock"
	"bonusMarket/internal/adapters/httpapi"
	"bonusMarket/internal/adapters/logger"
	"bonusMarket/internal/adapters/random"
	"bonusMarket/internal/adapters/sqlite"
	"bonusMarket/internal/app"
	"bonusMarket/internal/catalog"
	"bonusMarket/internal/market"
	"bonusMarket/internal/ports"
	"bonusMarket/internal/pricing"
	"bonusMarket/internal/ticket"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run wires the application and blocks until the server stops.
// Errors are returned so deferred cleanup runs before the process exits.
func run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger.Named("sqlite"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Pair catalog, optionally refreshed from Binance
	var source ports.QuoteSource = catalog.StaticSource{}
	if cfg.CatalogSource == config.CatalogBinance {
		binanceClient, err := binanceclient.New(binanceclient.Config{
			APIKey:     cfg.APIKey,
			SecretKey:  cfg.SecretKey,
			UseTestnet: cfg.IsTestnet,
			Logger:     appLogger.Named("binance"),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Binance client: %w", err)
		}
		source = binanceClient
	}
	pairCatalog, err := catalog.NewService(repo, source, appLogger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("failed to initialize pair catalog: %w", err)
	}
	if err := pairCatalog.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed pair catalog: %w", err)
	}
	if err := pairCatalog.Refresh(ctx); err != nil {
		// Stored figures are still usable.
		appLogger.Warn(ctx, "Catalog refresh failed, using stored quotes", map[string]interface{}{"error": err.Error()})
	}

	// 5. Market simulation
	rnd := random.NewSource(cfg.RandomSeed)
	candles, err := market.NewCandleGenerator(rnd, market.DefaultCandleConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize candle generator: %w", err)
	}
	bookCfg := market.DefaultBookConfig()
	bookCfg.Depth = cfg.LadderDepth
	books, err := market.NewOrderBookSimulator(rnd, bookCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize order book simulator: %w", err)
	}
	store, err := app.NewMarketStore(app.StoreConfig{
		CandleCount:     cfg.CandleCount,
		RefreshInterval: cfg.RefreshInterval,
		MAPeriod:        cfg.MAPeriod,
	}, appLogger.Named("market"), candles, books, clock.System{})
	if err != nil {
		return fmt.Errorf("failed to initialize market store: %w", err)
	}
	defer store.Close()

	// 6. Order tickets
	evaluator, err := ticket.NewEvaluator(ticket.Config{CommissionRate: decimal.NewNullDecimal(cfg.SwapCommissionRate)})
	if err != nil {
		return fmt.Errorf("failed to initialize ticket evaluator: %w", err)
	}
	desk, err := app.NewOrderDesk(appLogger.Named("orders"), evaluator, clock.System{})
	if err != nil {
		return fmt.Errorf("failed to initialize order desk: %w", err)
	}

	formatter, err := pricing.NewFormatter(cfg.Locale)
	if err != nil {
		return fmt.Errorf("failed to initialize formatter: %w", err)
	}

	// 7. HTTP transport
	server, err := httpapi.NewServer(httpapi.Config{
		Addr: ":" + strconv.Itoa(cfg.HTTPPort),
	}, appLogger.Named("http"), pairCatalog, store, desk, formatter)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	if err := server.Run(ctx); err != nil {
		appLogger.Error(context.Background(), err, "HTTP server exited with error")
		return err
	}
	appLogger.Info(context.Background(), "Application finished gracefully.")
	return nil
}
