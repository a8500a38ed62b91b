package desk

import (
	"time"

	"signaldesk/internal/models"
)

// Timeframe is a named trading horizon. Horizons are cumulative windows: an
// idea inside the one-day window also satisfies the wider ones, so the
// "next week" tab shows everything playing out within seven days.
type Timeframe string

const (
	TimeframeToday     Timeframe = "today"
	TimeframeFewDays   Timeframe = "few_days"
	TimeframeNextWeek  Timeframe = "next_week"
	TimeframeNextMonth Timeframe = "next_month"
	TimeframeAll       Timeframe = "all"
)

// Timeframes lists the named horizons in display order.
var Timeframes = []Timeframe{TimeframeToday, TimeframeFewDays, TimeframeNextWeek, TimeframeNextMonth}

func horizonLimit(tf Timeframe) int {
	switch tf {
	case TimeframeToday:
		return 1
	case TimeframeFewDays:
		return 3
	case TimeframeNextWeek:
		return 7
	default:
		return 30
	}
}

// horizonDays returns the calendar-day horizon of an idea: days to expiry
// when the instrument has one, otherwise days since posting. The second
// return is false when no horizon can be derived (already-lapsed expiry on
// a still-open idea, or a malformed posting time).
func horizonDays(idea models.TradeIdea, now time.Time) (int, bool) {
	if exp := idea.Expiry(); exp != nil {
		d := DaysBetween(now, *exp)
		return d, d >= 0
	}
	if idea.Timestamp.IsZero() {
		return 0, false
	}
	return DaysBetween(idea.Timestamp, now), true
}

// inTimeframe reports whether an open idea belongs to the horizon window.
// Resolved ideas never qualify: a closed trade has no horizon left, even
// when its dates would fit the window.
func inTimeframe(idea models.TradeIdea, tf Timeframe, now time.Time) bool {
	if idea.Outcome() != models.StatusOpen {
		return false
	}
	if tf == "" || tf == TimeframeAll {
		return true
	}
	d, ok := horizonDays(idea, now)
	return ok && d <= horizonLimit(tf)
}

// FilterByTimeframe returns the open ideas within the horizon window, in
// input order. TimeframeAll is the identity over the open subset.
func FilterByTimeframe(ideas []models.TradeIdea, tf Timeframe, now time.Time) []models.TradeIdea {
	out := make([]models.TradeIdea, 0, len(ideas))
	for _, idea := range ideas {
		if inTimeframe(idea, tf, now) {
			out = append(out, idea)
		}
	}
	return out
}

// CountByTimeframe returns per-horizon counts over the open subset of the
// given ideas, including the unconstrained "all" tab.
func CountByTimeframe(ideas []models.TradeIdea, now time.Time) map[Timeframe]int {
	counts := make(map[Timeframe]int, len(Timeframes)+1)
	for _, tf := range Timeframes {
		counts[tf] = 0
	}
	counts[TimeframeAll] = 0
	for _, idea := range ideas {
		if idea.Outcome() != models.StatusOpen {
			continue
		}
		counts[TimeframeAll]++
		for _, tf := range Timeframes {
			if inTimeframe(idea, tf, now) {
				counts[tf]++
			}
		}
	}
	return counts
}
