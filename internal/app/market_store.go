package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/market"
	"bonusMarket/internal/ports"
)

// StoreConfig holds configuration for the market store.
type StoreConfig struct {
	CandleCount     int           // Candles generated on pair selection
	RefreshInterval time.Duration // Ladder regeneration period
	MAPeriod        int           // Moving average period for stats
}

// DefaultStoreConfig returns the reference store settings.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		CandleCount:     30,
		RefreshInterval: 5 * time.Second,
		MAPeriod:        7,
	}
}

// MarketStore owns the active pair and its simulated market data.
// It is the only writer of snapshots; readers get immutable values.
type MarketStore struct {
	cfg     StoreConfig
	logger  ports.Logger
	candles *market.CandleGenerator
	books   *market.OrderBookSimulator
	clock   ports.Clock

	snapshot   atomic.Pointer[domain.MarketSnapshot]
	generation atomic.Uint64

	// mu serializes writers: selection and teardown.
	mu          sync.Mutex
	stopRefresh context.CancelFunc
	refreshDone chan struct{}
	closed      bool

	subMu   sync.Mutex
	subs    map[int]chan domain.MarketSnapshot
	nextSub int
}

// NewMarketStore creates a store. Nothing is generated until a pair is selected.
func NewMarketStore(
	cfg StoreConfig,
	logger ports.Logger,
	candles *market.CandleGenerator,
	books *market.OrderBookSimulator,
	clock ports.Clock,
) (*MarketStore, error) {
	if logger == nil || candles == nil || books == nil || clock == nil {
		return nil, fmt.Errorf("missing required dependencies for MarketStore")
	}
	if cfg.CandleCount <= 0 {
		return nil, fmt.Errorf("candle count must be positive: %w", ports.ErrConfigurationError)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive: %w", ports.ErrConfigurationError)
	}
	if cfg.MAPeriod <= 0 {
		return nil, fmt.Errorf("moving average period must be positive: %w", ports.ErrConfigurationError)
	}

	return &MarketStore{
		cfg:     cfg,
		logger:  logger,
		candles: candles,
		books:   books,
		clock:   clock,
		subs:    make(map[int]chan domain.MarketSnapshot),
	}, nil
}

// SelectPair regenerates the candle series and both ladders for pair and
// rebinds the refresh loop to it. The previous loop has fully exited before
// anything for the new pair is published.
func (s *MarketStore) SelectPair(ctx context.Context, pair domain.Pair) error {
	if err := pair.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ports.ErrClosed
	}

	s.stopRefreshLocked()

	series, err := s.candles.Generate(s.cfg.CandleCount, pair.LastPrice)
	if err != nil {
		return fmt.Errorf("failed to generate candles for %s: %w", pair, err)
	}
	book, err := s.books.Snapshot(pair.LastPrice)
	if err != nil {
		return fmt.Errorf("failed to generate order book for %s: %w", pair, err)
	}
	snap := s.publish(pair, series, book)

	s.startRefreshLocked(pair)

	s.logger.Info(ctx, "Pair selected", map[string]interface{}{
		"pair":        pair.String(),
		"basePrice":   pair.LastPrice,
		"candles":     len(series),
		"ladderDepth": s.books.Depth(),
		"generation":  snap.Generation,
	})
	return nil
}

// CurrentPair returns the selected pair.
func (s *MarketStore) CurrentPair() (domain.Pair, bool) {
	snap := s.snapshot.Load()
	if snap == nil {
		return domain.Pair{}, false
	}
	return snap.Pair, true
}

// CurrentSeries returns the candle series of the selected pair, or nil.
// The slice must not be modified.
func (s *MarketStore) CurrentSeries() []domain.Candle {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.Series
}

// CurrentBook returns the latest order book, or an empty one before selection.
func (s *MarketStore) CurrentBook() domain.OrderBook {
	snap := s.snapshot.Load()
	if snap == nil {
		return domain.OrderBook{}
	}
	return snap.Book
}

// Snapshot returns the latest published snapshot.
func (s *MarketStore) Snapshot() (domain.MarketSnapshot, bool) {
	snap := s.snapshot.Load()
	if snap == nil {
		return domain.MarketSnapshot{}, false
	}
	return *snap, true
}

// Subscribe returns a channel receiving every published snapshot. Slow
// readers only see the latest one. The returned func unsubscribes.
func (s *MarketStore) Subscribe() (<-chan domain.MarketSnapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.MarketSnapshot, 1)
	if s.subs == nil {
		close(ch)
		return ch, func() {}
	}
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close stops the refresh loop and closes all subscriptions.
func (s *MarketStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.stopRefreshLocked()

	s.subMu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.subs = nil
	s.subMu.Unlock()

	s.logger.Info(context.Background(), "Market store closed")
	return nil
}

func (s *MarketStore) startRefreshLocked(pair domain.Pair) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ticker := s.clock.NewTicker(s.cfg.RefreshInterval)

	s.stopRefresh = cancel
	s.refreshDone = done
	go s.refreshLoop(ctx, pair, ticker, done)
}

// stopRefreshLocked cancels the running loop and waits for it to exit.
func (s *MarketStore) stopRefreshLocked() {
	if s.stopRefresh == nil {
		return
	}
	s.stopRefresh()
	<-s.refreshDone
	s.stopRefresh = nil
	s.refreshDone = nil
}

func (s *MarketStore) refreshLoop(ctx context.Context, pair domain.Pair, ticker ports.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			book, err := s.books.Snapshot(pair.LastPrice)
			if err != nil {
				s.logger.Error(ctx, err, "Failed to refresh order book", map[string]interface{}{"pair": pair.String()})
				continue
			}
			if ctx.Err() != nil {
				return
			}
			prev := s.snapshot.Load()
			if prev == nil || prev.Pair.ID != pair.ID {
				return
			}
			snap := s.publish(pair, prev.Series, book)
			s.logger.Debug(ctx, "Order book refreshed", map[string]interface{}{"pair": pair.String(), "generation": snap.Generation})
		}
	}
}

func (s *MarketStore) publish(pair domain.Pair, series []domain.Candle, book domain.OrderBook) *domain.MarketSnapshot {
	snap := &domain.MarketSnapshot{
		Pair:       pair,
		Series:     series,
		Book:       book,
		Stats:      market.ComputeStats(series, book, s.cfg.MAPeriod),
		Generation: s.generation.Add(1),
		UpdatedAt:  s.clock.Now(),
	}
	s.snapshot.Store(snap)
	s.notify(*snap)
	return snap
}

func (s *MarketStore) notify(snap domain.MarketSnapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot with the latest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
