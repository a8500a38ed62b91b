// Package desk implements the trade-idea filtering, ranking and bucketing
// engine behind the desk views. Every function here is pure: it takes the
// current idea snapshot, the filter criteria and an explicit reference time,
// and returns derived data without touching shared state.
package desk

import (
	"strings"
	"time"

	"signaldesk/internal/models"
)

// Filter dimension values that disable a dimension.
const All = "all"

// Outcome views selectable in the UI tabs.
const (
	ViewActive  = "active"
	ViewWon     = "won"
	ViewLost    = "lost"
	ViewExpired = "expired"
)

// Direction filter accepts the two idea directions plus this pseudo-value,
// which matches the holding-period flag rather than the direction field.
const DirectionDayTrade = "day_trade"

// Date presets for the posted-after threshold.
const (
	RangeToday   = "today"
	RangeWeek    = "7d"
	RangeMonth   = "30d"
	RangeQuarter = "3m"
	RangeYear    = "1y"
)

// Criteria holds the independent filter dimensions. The zero value and the
// string "all" both mean "no constraint" for every dimension.
type Criteria struct {
	Search     string       `json:"search,omitempty"`
	Direction  string       `json:"direction,omitempty"`
	Source     string       `json:"source,omitempty"`
	AssetType  string       `json:"assetType,omitempty"`
	Grade      string       `json:"grade,omitempty"`
	DatePreset string       `json:"dateRange,omitempty"`
	StatusView string       `json:"statusView,omitempty"`
	Symbol     string       `json:"symbol,omitempty"`
	View       string       `json:"view,omitempty"`
	Expiry     ExpiryBucket `json:"expiry,omitempty"`
	Timeframe  Timeframe    `json:"timeframe,omitempty"`
}

func constrained(v string) bool {
	return v != "" && v != All
}

// Filter returns the ideas matching every constrained dimension of c. The
// predicates intersect, so application order cannot affect the result, and
// input order is preserved. now anchors the date-range and expiry checks.
func Filter(ideas []models.TradeIdea, c Criteria, now time.Time) []models.TradeIdea {
	out := make([]models.TradeIdea, 0, len(ideas))
	postedAfter := presetThreshold(c.DatePreset, now)
	for _, idea := range ideas {
		if matches(idea, c, postedAfter, now) {
			out = append(out, idea)
		}
	}
	return out
}

func matches(idea models.TradeIdea, c Criteria, postedAfter *time.Time, now time.Time) bool {
	if s := strings.ToLower(strings.TrimSpace(c.Search)); s != "" {
		if !strings.Contains(strings.ToLower(idea.Symbol), s) &&
			!strings.Contains(strings.ToLower(idea.Catalyst), s) {
			return false
		}
	}
	if constrained(c.Direction) {
		if c.Direction == DirectionDayTrade {
			if !idea.IsDayTrade {
				return false
			}
		} else if string(idea.Direction) != c.Direction {
			return false
		}
	}
	if constrained(c.Source) && string(idea.Source) != c.Source {
		return false
	}
	if constrained(c.AssetType) && string(idea.AssetType) != c.AssetType {
		return false
	}
	if constrained(c.Grade) {
		if !strings.HasPrefix(strings.ToUpper(idea.ProbabilityBand), strings.ToUpper(c.Grade)) {
			return false
		}
	}
	if postedAfter != nil {
		// Ideas with an unparseable posting time drop out of any
		// date-gated view instead of failing the whole pipeline.
		if idea.Timestamp.IsZero() || idea.Timestamp.Before(*postedAfter) {
			return false
		}
	}
	if constrained(c.StatusView) && string(idea.Publish()) != c.StatusView {
		return false
	}
	if q := strings.ToUpper(strings.TrimSpace(c.Symbol)); q != "" {
		if !strings.Contains(strings.ToUpper(idea.Symbol), q) {
			return false
		}
	}
	if constrained(c.View) && outcomeView(idea.Outcome()) != c.View {
		return false
	}
	if c.Expiry != "" && c.Expiry != BucketAll {
		exp := idea.Expiry()
		if exp == nil {
			return false
		}
		if BucketForDays(DaysBetween(now, *exp)) != c.Expiry {
			return false
		}
	}
	if c.Timeframe != "" && c.Timeframe != TimeframeAll {
		if !inTimeframe(idea, c.Timeframe, now) {
			return false
		}
	}
	return true
}

func outcomeView(s models.OutcomeStatus) string {
	switch s {
	case models.StatusHitTarget:
		return ViewWon
	case models.StatusHitStop:
		return ViewLost
	case models.StatusExpired:
		return ViewExpired
	default:
		return ViewActive
	}
}

// presetThreshold converts a named date preset into a posted-after instant.
// Nil means the dimension is unconstrained.
func presetThreshold(preset string, now time.Time) *time.Time {
	var t time.Time
	switch preset {
	case RangeToday:
		t = startOfDay(now)
	case RangeWeek:
		t = now.AddDate(0, 0, -7)
	case RangeMonth:
		t = now.AddDate(0, 0, -30)
	case RangeQuarter:
		t = now.AddDate(0, -3, 0)
	case RangeYear:
		t = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &t
}

// countGate returns the criteria subset that gates bucket count displays:
// asset type, grade, symbol and publish status. Text search, the date range
// and the bucket selections themselves deliberately do not narrow counts,
// so a count always answers "what would I see if I picked this bucket".
func (c Criteria) countGate() Criteria {
	return Criteria{
		AssetType:  c.AssetType,
		Grade:      c.Grade,
		Symbol:     c.Symbol,
		StatusView: c.StatusView,
	}
}
