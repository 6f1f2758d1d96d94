package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
	"bonusMarket/internal/ticket"
)

func (s *Server) handleListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]pairView, 0, len(pairs))
	for _, p := range pairs {
		views = append(views, s.pairView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("decode favorite request: %v: %w", err, ports.ErrInvalidRequest))
		return
	}
	pair, err := s.catalog.SetFavorite(r.Context(), mux.Vars(r)["id"], req.Favorite)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.pairView(pair))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	pair, err := s.catalog.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.market.SelectPair(r.Context(), pair); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, ok := s.market.Snapshot()
	if !ok {
		s.writeError(w, r, ports.ErrNoPairSelected)
		return
	}
	writeJSON(w, http.StatusOK, s.marketView(snap))
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.market.Snapshot()
	if !ok {
		s.writeError(w, r, ports.ErrNoPairSelected)
		return
	}
	writeJSON(w, http.StatusOK, s.marketView(snap))
}

// ticketRequest is an order form as typed by the user. Numbers are strings so
// locale separators survive until ParseAmount.
type ticketRequest struct {
	Operation     domain.Operation `json:"operation"`
	Side          domain.OrderSide `json:"side"`
	Type          domain.OrderType `json:"type"`
	PairID        string           `json:"pair_id"`
	Price         string           `json:"price"`
	Amount        string           `json:"amount"`
	Balance       string           `json:"balance"`
	ClientOrderID string           `json:"client_order_id"`
}

// buildTicket resolves the pair and parses the numeric fields. Shape errors
// are returned as errors; unparsable numbers come back as a Reason.
func (s *Server) buildTicket(r *http.Request) (domain.OrderTicket, decimal.Decimal, ticket.Reason, error) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.OrderTicket{}, decimal.Zero, ticket.ReasonNone, fmt.Errorf("decode ticket: %v: %w", err, ports.ErrInvalidRequest)
	}

	side := domain.OrderSide(strings.ToUpper(strings.TrimSpace(string(req.Side))))
	if side != "" && !side.Valid() {
		return domain.OrderTicket{}, decimal.Zero, ticket.ReasonNone, fmt.Errorf("unknown side %q: %w", req.Side, ports.ErrInvalidRequest)
	}

	var pair domain.Pair
	if req.PairID != "" {
		p, err := s.catalog.Get(r.Context(), req.PairID)
		if err != nil {
			return domain.OrderTicket{}, decimal.Zero, ticket.ReasonNone, err
		}
		pair = p
	} else {
		snap, ok := s.market.Snapshot()
		if !ok {
			return domain.OrderTicket{}, decimal.Zero, ticket.ReasonNone, ports.ErrNoPairSelected
		}
		pair = snap.Pair
	}

	typ := domain.OrderType(strings.ToUpper(string(req.Type)))
	op := domain.Operation(strings.ToLower(string(req.Operation)))
	if op == "" {
		op = domain.OperationTrade
	}

	reason := ticket.ReasonNone
	amount, amountReason := ticket.ParseAmount(req.Amount)
	if amountReason != ticket.ReasonNone {
		reason = amountReason
	}
	price := decimal.Zero
	if typ == domain.Limit {
		p, priceReason := ticket.ParseAmount(req.Price)
		if priceReason != ticket.ReasonNone {
			reason = priceReason
		}
		price = p
	}
	balance := decimal.Zero
	if strings.TrimSpace(req.Balance) != "" {
		b, balanceReason := ticket.ParseAmount(req.Balance)
		if balanceReason != ticket.ReasonNone {
			reason = balanceReason
		}
		balance = b
	}

	t, err := domain.NewOrderTicket(op, side, typ, pair, price, amount)
	if err != nil {
		return domain.OrderTicket{}, decimal.Zero, ticket.ReasonNone, err
	}
	t.ClientOrderID = req.ClientOrderID
	return t, balance, reason, nil
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	t, balance, reason, err := s.buildTicket(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if reason != ticket.ReasonNone {
		writeJSON(w, http.StatusOK, s.evaluationView(ticket.Evaluation{Reason: reason}))
		return
	}
	writeJSON(w, http.StatusOK, s.evaluationView(s.desk.Evaluate(t, balance)))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	t, balance, reason, err := s.buildTicket(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if reason != ticket.ReasonNone {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ports.ErrInvalidRequest.Error(), Reason: reason})
		return
	}

	ack, err := s.desk.Submit(r.Context(), t, balance)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackView{
		Acknowledgment: ack,
		Summary:        s.evaluationView(ack.Evaluation),
	})
}
