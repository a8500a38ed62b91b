// Package models provides domain models for the trade-idea desk.
package models

import (
	"strings"
	"time"
)

// Direction represents the direction of a trade idea.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// AssetType represents the instrument class of a trade idea.
type AssetType string

const (
	AssetStock      AssetType = "stock"
	AssetPennyStock AssetType = "penny_stock"
	AssetOption     AssetType = "option"
	AssetCrypto     AssetType = "crypto"
)

// Source represents the engine that produced a trade idea.
type Source string

const (
	SourceAI            Source = "ai"
	SourceQuant         Source = "quant"
	SourceHybrid        Source = "hybrid"
	SourceFlow          Source = "flow"
	SourceNews          Source = "news"
	SourceManual        Source = "manual"
	SourceChartAnalysis Source = "chart_analysis"
)

// TradeIdea is a single directional trading recommendation produced by an
// upstream generation engine. Ideas are read-only inputs to the desk; the
// Status and OutcomeStatus fields carry the raw upstream strings and must be
// read through Publish and Outcome.
type TradeIdea struct {
	ID                   string     `json:"id"`
	Symbol               string     `json:"symbol"`
	Direction            Direction  `json:"direction"`
	AssetType            AssetType  `json:"assetType"`
	Source               Source     `json:"source"`
	Status               string     `json:"status,omitempty"`
	OutcomeStatus        string     `json:"outcomeStatus,omitempty"`
	Timestamp            time.Time  `json:"timestamp"`
	ExpiryDate           *time.Time `json:"expiryDate,omitempty"`
	ExitBy               *time.Time `json:"exitBy,omitempty"`
	EntryPrice           float64    `json:"entryPrice"`
	TargetPrice          float64    `json:"targetPrice"`
	StopLoss             float64    `json:"stopLoss"`
	CurrentPrice         float64    `json:"currentPrice,omitempty"`
	RiskRewardRatio      float64    `json:"riskRewardRatio"`
	ConfidenceScore      float64    `json:"confidenceScore"`
	TargetHitProbability float64    `json:"targetHitProbability"`
	ProbabilityBand      string     `json:"probabilityBand,omitempty"`
	Catalyst             string     `json:"catalyst,omitempty"`
	IsDayTrade           bool       `json:"isDayTrade,omitempty"`
	IsLottoPlay          bool       `json:"isLottoPlay,omitempty"`
	RealizedPnL          *float64   `json:"realizedPnL,omitempty"`
}

// Outcome returns the normalized outcome state.
func (i TradeIdea) Outcome() OutcomeStatus {
	return NormalizeOutcome(i.OutcomeStatus)
}

// Publish returns the normalized publish state.
func (i TradeIdea) Publish() PublishStatus {
	return NormalizePublish(i.Status)
}

// Expiry returns the idea's expiry instant, preferring ExpiryDate over the
// softer ExitBy deadline. Nil for instruments without an expiry.
func (i TradeIdea) Expiry() *time.Time {
	if i.ExpiryDate != nil && !i.ExpiryDate.IsZero() {
		return i.ExpiryDate
	}
	if i.ExitBy != nil && !i.ExitBy.IsZero() {
		return i.ExitBy
	}
	return nil
}

// PnL returns the realized P/L, treating absence as zero.
func (i TradeIdea) PnL() float64 {
	if i.RealizedPnL == nil {
		return 0
	}
	return *i.RealizedPnL
}

// Quote is a market-data row used only to backfill missing current prices.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Catalyst is an upcoming event for a symbol, used for the earnings
// proximity badge. It plays no part in filtering.
type Catalyst struct {
	Symbol    string    `json:"symbol"`
	Kind      string    `json:"kind"`
	EventTime time.Time `json:"eventTime"`
}

// BackfillPrices fills zero CurrentPrice fields from the quote list,
// matching on symbol. Later quotes for the same symbol win.
func BackfillPrices(ideas []TradeIdea, quotes []Quote) {
	if len(quotes) == 0 {
		return
	}
	prices := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		prices[strings.ToUpper(q.Symbol)] = q.Price
	}
	for n := range ideas {
		if ideas[n].CurrentPrice != 0 {
			continue
		}
		if p, ok := prices[strings.ToUpper(ideas[n].Symbol)]; ok {
			ideas[n].CurrentPrice = p
		}
	}
}

// NearEarnings reports whether the idea's symbol has an earnings catalyst
// within the window around now.
func NearEarnings(idea TradeIdea, catalysts []Catalyst, window time.Duration, now time.Time) bool {
	sym := strings.ToUpper(idea.Symbol)
	for _, c := range catalysts {
		if c.Kind != "earnings" || strings.ToUpper(c.Symbol) != sym {
			continue
		}
		diff := c.EventTime.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			return true
		}
	}
	return false
}
