package desk

import (
	"signaldesk/internal/models"
)

// GroupStats holds per-group summary statistics. WinRate counts only ideas
// that resolved at the target or the stop; expired ideas close a trade
// without entering the win-rate denominator.
type GroupStats struct {
	Ideas         int     `json:"ideas"`
	ClosedCount   int     `json:"closedCount"`
	WinRate       float64 `json:"winRate"`
	NetPnL        float64 `json:"netPnL"`
	AvgRiskReward float64 `json:"avgRiskReward"`
}

// AggregateByAsset partitions ideas by instrument class and computes each
// group's statistics from that group's members only. Callers feed it the
// set the user can actually see, so displayed stats never drift from the
// displayed list.
func AggregateByAsset(ideas []models.TradeIdea) map[models.AssetType]GroupStats {
	type tally struct {
		ideas, closed, wins, losses, rrCount int
		pnl, rrSum                           float64
	}
	tallies := make(map[models.AssetType]*tally)

	for _, idea := range ideas {
		t := tallies[idea.AssetType]
		if t == nil {
			t = &tally{}
			tallies[idea.AssetType] = t
		}
		t.ideas++
		t.pnl += idea.PnL()
		switch idea.Outcome() {
		case models.StatusHitTarget:
			t.closed++
			t.wins++
		case models.StatusHitStop:
			t.closed++
			t.losses++
		case models.StatusExpired:
			t.closed++
		}
		// Missing or zero risk:reward must not drag the average down.
		if idea.RiskRewardRatio > 0 {
			t.rrSum += idea.RiskRewardRatio
			t.rrCount++
		}
	}

	groups := make(map[models.AssetType]GroupStats, len(tallies))
	for asset, t := range tallies {
		g := GroupStats{
			Ideas:       t.ideas,
			ClosedCount: t.closed,
			NetPnL:      t.pnl,
		}
		if decided := t.wins + t.losses; decided > 0 {
			g.WinRate = float64(t.wins) / float64(decided)
		}
		if t.rrCount > 0 {
			g.AvgRiskReward = t.rrSum / float64(t.rrCount)
		}
		groups[asset] = g
	}
	return groups
}
