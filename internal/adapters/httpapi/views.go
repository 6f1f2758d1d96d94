package httpapi

import (
	"strconv"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"
	"bonusMarket/internal/pricing"
	"bonusMarket/internal/ticket"
)

type pairView struct {
	domain.Pair
	Display   string `json:"display"`
	Price     string `json:"price"` // Last price at full precision
	PriceText string `json:"price_text"`
	Change    string `json:"change_text"`
	Volume    string `json:"volume_text"`
}

type marketView struct {
	domain.MarketSnapshot
	Price      string `json:"price"`
	Spread     string `json:"spread"`
	PriceText  string `json:"price_text"`
	VolumeText string `json:"volume_text"`
	SpreadText string `json:"spread_text"`
	HighText   string `json:"high_text"`
	LowText    string `json:"low_text"`
}

type evaluationView struct {
	ticket.Evaluation
	TotalText      string `json:"total_text"`
	CommissionText string `json:"commission_text"`
	NetReceiveText string `json:"net_receive_text"`
}

type ackView struct {
	*ports.Acknowledgment
	Summary evaluationView `json:"summary"`
}

func (s *Server) pairView(p domain.Pair) pairView {
	return pairView{
		Pair:      p,
		Display:   p.String(),
		Price:     pricing.PlainPrice(p.LastPrice),
		PriceText: s.formatter.FormatPrice(p.LastPrice),
		Change:    formatChange(p.Change24h),
		Volume:    s.formatter.FormatVolume(p.Volume24h),
	}
}

func (s *Server) marketView(snap domain.MarketSnapshot) marketView {
	return marketView{
		MarketSnapshot: snap,
		Price:          pricing.PlainPrice(snap.Pair.LastPrice),
		Spread:         pricing.PlainPrice(snap.Stats.Spread),
		PriceText:      s.formatter.FormatPrice(snap.Pair.LastPrice),
		VolumeText:     s.formatter.FormatVolume(snap.Stats.Volume),
		SpreadText:     s.formatter.FormatPrice(snap.Stats.Spread),
		HighText:       s.formatter.FormatPrice(snap.Stats.High),
		LowText:        s.formatter.FormatPrice(snap.Stats.Low),
	}
}

func (s *Server) evaluationView(ev ticket.Evaluation) evaluationView {
	return evaluationView{
		Evaluation:     ev,
		TotalText:      s.formatter.FormatMoney(ev.Total.InexactFloat64()),
		CommissionText: s.formatter.FormatMoney(ev.Commission.InexactFloat64()),
		NetReceiveText: s.formatter.FormatMoney(ev.NetReceive.InexactFloat64()),
	}
}

// formatChange renders a signed percent, e.g. "+1.25%".
func formatChange(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 2, 64) + "%"
	if pct > 0 {
		return "+" + s
	}
	return s
}
