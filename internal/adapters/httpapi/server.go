package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
	"bonusMarket/internal/pricing"
	"bonusMarket/internal/ticket"
)

// PairCatalog lists and updates tradable pairs.
type PairCatalog interface {
	List(ctx context.Context) ([]domain.Pair, error)
	Get(ctx context.Context, id string) (domain.Pair, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (domain.Pair, error)
}

// MarketView is the market store as seen by the transport.
type MarketView interface {
	SelectPair(ctx context.Context, pair domain.Pair) error
	Snapshot() (domain.MarketSnapshot, bool)
	Subscribe() (<-chan domain.MarketSnapshot, func())
}

// TicketDesk evaluates and accepts order tickets.
type TicketDesk interface {
	Evaluate(t domain.OrderTicket, balance decimal.Decimal) ticket.Evaluation
	Submit(ctx context.Context, t domain.OrderTicket, balance decimal.Decimal) (*ports.Acknowledgment, error)
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	WriteTimeout    time.Duration // Per websocket message
}

// Server exposes the market engine over HTTP and a websocket stream.
type Server struct {
	cfg       Config
	logger    ports.Logger
	catalog   PairCatalog
	market    MarketView
	desk      TicketDesk
	formatter *pricing.Formatter
	upgrader  websocket.Upgrader
	router    *mux.Router
}

// NewServer creates the HTTP adapter and registers its routes.
func NewServer(cfg Config, logger ports.Logger, catalog PairCatalog, market MarketView, desk TicketDesk, formatter *pricing.Formatter) (*Server, error) {
	if logger == nil || catalog == nil || market == nil || desk == nil || formatter == nil {
		return nil, fmt.Errorf("missing required dependencies for HTTP server")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		market:    market,
		desk:      desk,
		formatter: formatter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The mini-app is served from another origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/pairs", s.handleListPairs).Methods(http.MethodGet)
	api.HandleFunc("/pairs/{id}/favorite", s.handleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/pairs/{id}/select", s.handleSelect).Methods(http.MethodPost)
	api.HandleFunc("/market", s.handleMarket).Methods(http.MethodGet)
	api.HandleFunc("/orders/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.handleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": s.cfg.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info(ctx, "Shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}

type errorBody struct {
	Error  string        `json:"error"`
	Reason ticket.Reason `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps ports sentinels to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidInput), errors.Is(err, ports.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrNoPairSelected):
		status = http.StatusConflict
	case errors.Is(err, ports.ErrClosed):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ports.ErrContextCanceled), errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}

	fields := map[string]interface{}{"method": r.Method, "path": r.URL.Path, "status": status}
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), err, "Request failed", fields)
	} else {
		s.logger.Debug(r.Context(), "Request rejected: "+err.Error(), fields)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
