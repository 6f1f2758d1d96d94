package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
)

const (
	baseURLProduction = "https://fapi.binance.com"
	baseURLTestnet    = "https://testnet.binancefuture.com"
)

// Client implements ports.QuoteSource with Binance 24h ticker statistics.
type Client struct {
	futuresClient *futures.Client
	logger        ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	BaseURL    string // Overrides the production/testnet URL when set
	Logger     ports.Logger
}

// New creates a new Binance client adapter. Only public endpoints are used,
// so empty keys are accepted.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}

	client := futures.NewClient(cfg.APIKey, cfg.SecretKey)
	switch {
	case cfg.BaseURL != "":
		client.BaseURL = cfg.BaseURL
	case cfg.UseTestnet:
		client.BaseURL = baseURLTestnet
	default:
		client.BaseURL = baseURLProduction
	}
	cfg.Logger.Info(context.Background(), "Binance quote source configured", map[string]interface{}{"baseURL": client.BaseURL})

	return &Client{futuresClient: client, logger: cfg.Logger}, nil
}

// Name identifies the source in logs.
func (c *Client) Name() string { return "binance" }

// Quotes refreshes last price, 24h change and 24h volume of pairs from a
// single ticker statistics request. Unknown symbols are returned unchanged.
func (c *Client) Quotes(ctx context.Context, pairs []domain.Pair) ([]domain.Pair, error) {
	op := "Quotes"
	stats, err := c.futuresClient.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}

	bySymbol := make(map[string]*futures.PriceChangeStats, len(stats))
	for _, s := range stats {
		bySymbol[s.Symbol] = s
	}

	out := make([]domain.Pair, len(pairs))
	matched := 0
	for i, p := range pairs {
		out[i] = p
		s, ok := bySymbol[p.Symbol()]
		if !ok {
			continue
		}
		updated, err := applyStats(p, s)
		if err != nil {
			c.logger.Warn(ctx, "Skipping unparsable ticker statistics", map[string]interface{}{
				"symbol": s.Symbol,
				"error":  err.Error(),
			})
			continue
		}
		out[i] = updated
		matched++
	}

	c.logger.Debug(ctx, "Quotes refreshed", map[string]interface{}{"requested": len(pairs), "matched": matched})
	return out, nil
}

func applyStats(p domain.Pair, s *futures.PriceChangeStats) (domain.Pair, error) {
	last, err := strconv.ParseFloat(s.LastPrice, 64)
	if err != nil {
		return p, fmt.Errorf("could not parse last price '%s': %w", s.LastPrice, err)
	}
	change, err := strconv.ParseFloat(s.PriceChangePercent, 64)
	if err != nil {
		return p, fmt.Errorf("could not parse price change '%s': %w", s.PriceChangePercent, err)
	}
	volume, err := strconv.ParseFloat(s.Volume, 64)
	if err != nil {
		return p, fmt.Errorf("could not parse volume '%s': %w", s.Volume, err)
	}

	p.LastPrice = last
	p.Change24h = change
	p.Volume24h = volume
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// handleError translates Binance API errors into ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1021: // Timestamp outside of recvWindow
			mappedErr = ports.ErrTimeout
		case -1022, -2014, -2015: // Signature or API-key problems
			mappedErr = ports.ErrConfigurationError
		case -1100, -1101, -1102, -1103, -1121: // Parameter/Request format errors
			mappedErr = ports.ErrInvalidRequest
		case -1000, -1001, -1007: // Unknown, disconnected, backend timeout
			mappedErr = ports.ErrSourceUnavailable
		default:
			mappedErr = ports.ErrUnknown
		}
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
	}

	var finalErr error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	case strings.Contains(err.Error(), "connection refused"),
		strings.Contains(err.Error(), "connection reset by peer"),
		strings.Contains(err.Error(), "no such host"):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	default:
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

var _ ports.QuoteSource = (*Client)(nil)
