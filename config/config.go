package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bonusMarket/internal/adapters/logger"
	"bonusMarket/internal/pricing"
)

// Catalog sources.
const (
	CatalogStatic  = "static"
	CatalogBinance = "binance"
)

// Config holds all application configuration.
type Config struct {
	// Server
	HTTPPort int

	// Market simulation
	CandleCount     int
	LadderDepth     int
	RefreshInterval time.Duration
	MAPeriod        int
	RandomSeed      int64 // 0 seeds from the clock

	// Order tickets
	SwapCommissionRate decimal.Decimal
	Locale             string

	// Pair catalog
	CatalogSource string
	APIKey        string
	SecretKey     string
	IsTestnet     bool

	// Database
	DBPath string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// A missing .env is fine; plain env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string

	cfg.HTTPPort, err = getEnvAsIntRequired("HTTP_PORT", 8080)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HTTP_PORT: %v", err))
	} else if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	cfg.CandleCount, err = getEnvAsIntRequired("CANDLE_COUNT", 30)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CANDLE_COUNT: %v", err))
	} else if cfg.CandleCount <= 0 {
		errs = append(errs, "CANDLE_COUNT must be positive")
	}

	cfg.LadderDepth, err = getEnvAsIntRequired("LADDER_DEPTH", 12)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid LADDER_DEPTH: %v", err))
	} else if cfg.LadderDepth <= 0 || cfg.LadderDepth > 50 {
		errs = append(errs, "LADDER_DEPTH must be between 1 and 50")
	}

	refreshSeconds, err := getEnvAsIntRequired("REFRESH_INTERVAL_SECONDS", 5)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid REFRESH_INTERVAL_SECONDS: %v", err))
	} else if refreshSeconds <= 0 {
		errs = append(errs, "REFRESH_INTERVAL_SECONDS must be positive")
	}
	cfg.RefreshInterval = time.Duration(refreshSeconds) * time.Second

	cfg.MAPeriod = getEnvAsInt("MA_PERIOD", 7)
	if cfg.MAPeriod <= 0 {
		errs = append(errs, "MA_PERIOD must be positive")
	}

	seed, err := getEnvAsIntRequired("RANDOM_SEED", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RANDOM_SEED: %v", err))
	}
	cfg.RandomSeed = int64(seed)

	cfg.SwapCommissionRate, err = getEnvAsDecimalRequired("SWAP_COMMISSION_RATE", "0.02")
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SWAP_COMMISSION_RATE: %v", err))
	} else if cfg.SwapCommissionRate.IsNegative() || cfg.SwapCommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, "SWAP_COMMISSION_RATE must be in [0, 1)")
	}

	cfg.Locale = getEnv("LOCALE", pricing.DefaultLocale)
	if _, err := pricing.ParseLocale(cfg.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("invalid LOCALE: %v", err))
	}

	cfg.CatalogSource = strings.ToLower(getEnv("CATALOG_SOURCE", CatalogStatic))
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)
	switch cfg.CatalogSource {
	case CatalogStatic, CatalogBinance:
	default:
		errs = append(errs, fmt.Sprintf("CATALOG_SOURCE must be %q or %q", CatalogStatic, CatalogBinance))
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/bonus_market.db")

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsDecimalRequired(key, defaultValue string) (decimal.Decimal, error) {
	valueStr := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
