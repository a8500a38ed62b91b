package desk

import (
	"time"

	"signaldesk/internal/models"
)

// Shared fixture helpers for the desk tests.

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func idea(symbol string, mutate ...func(*models.TradeIdea)) models.TradeIdea {
	i := models.TradeIdea{
		ID:                   symbol,
		Symbol:               symbol,
		Direction:            models.DirectionLong,
		AssetType:            models.AssetStock,
		Source:               models.SourceAI,
		Timestamp:            testNow.Add(-24 * time.Hour),
		EntryPrice:           100,
		TargetPrice:          110,
		StopLoss:             95,
		RiskRewardRatio:      2,
		ConfidenceScore:      70,
		TargetHitProbability: 60,
		ProbabilityBand:      "B+",
	}
	for _, fn := range mutate {
		fn(&i)
	}
	return i
}

func postedAgo(d time.Duration) func(*models.TradeIdea) {
	return func(i *models.TradeIdea) { i.Timestamp = testNow.Add(-d) }
}

func expiringIn(days int) func(*models.TradeIdea) {
	return func(i *models.TradeIdea) {
		t := testNow.AddDate(0, 0, days)
		i.ExpiryDate = &t
		i.AssetType = models.AssetOption
	}
}

func withOutcome(raw string) func(*models.TradeIdea) {
	return func(i *models.TradeIdea) { i.OutcomeStatus = raw }
}

func withPnL(v float64) func(*models.TradeIdea) {
	return func(i *models.TradeIdea) { i.RealizedPnL = &v }
}

func symbols(ideas []models.TradeIdea) []string {
	out := make([]string, len(ideas))
	for n, i := range ideas {
		out[n] = i.Symbol
	}
	return out
}

func equalSymbols(a []models.TradeIdea, want []string) bool {
	got := symbols(a)
	if len(got) != len(want) {
		return false
	}
	for n := range got {
		if got[n] != want[n] {
			return false
		}
	}
	return true
}
