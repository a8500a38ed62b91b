package desk

import (
	"sort"
	"time"

	"signaldesk/internal/models"
)

// FreshWindow is the recency window within which an open idea ranks in the
// top tier.
const FreshWindow = 2 * time.Hour

// Rank tiers, coarsest sort key first.
const (
	TierFresh    = 0
	TierActive   = 1
	TierResolved = 2
)

// Tier assigns an idea its rank tier: fresh open ideas first, then the rest
// of the open set, then everything resolved. The tiers partition any idea
// set: an open idea is fresh or active, never both.
func Tier(idea models.TradeIdea, now time.Time) int {
	if idea.Outcome().Resolved() {
		return TierResolved
	}
	if !idea.Timestamp.IsZero() && now.Sub(idea.Timestamp) < FreshWindow {
		return TierFresh
	}
	return TierActive
}

// Rank returns a new slice sorted by tier ascending, then posting time
// descending. The sort is stable, so ideas with identical tier and
// timestamp keep their input order.
func Rank(ideas []models.TradeIdea, now time.Time) []models.TradeIdea {
	type ranked struct {
		idea models.TradeIdea
		tier int
	}
	rs := make([]ranked, len(ideas))
	for n, idea := range ideas {
		rs[n] = ranked{idea: idea, tier: Tier(idea, now)}
	}
	sort.SliceStable(rs, func(a, b int) bool {
		if rs[a].tier != rs[b].tier {
			return rs[a].tier < rs[b].tier
		}
		return rs[a].idea.Timestamp.After(rs[b].idea.Timestamp)
	})
	out := make([]models.TradeIdea, len(rs))
	for n := range rs {
		out[n] = rs[n].idea
	}
	return out
}

// Priority score weights. The blend is a heuristic for single-value ranking
// contexts, not a probability; components are not normalized across
// instrument classes.
const (
	weightConfidence = 0.4
	weightRiskReward = 15.0
	weightHitProb    = 0.3
)

// PriorityScore collapses confidence, risk:reward and target-hit
// probability into one scalar.
func PriorityScore(idea models.TradeIdea) float64 {
	return idea.ConfidenceScore*weightConfidence +
		idea.RiskRewardRatio*weightRiskReward +
		idea.TargetHitProbability*weightHitProb
}
