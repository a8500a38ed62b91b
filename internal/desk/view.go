package desk

import (
	"time"

	"signaldesk/internal/models"
)

// View is the fully derived desk state for one snapshot, one set of
// criteria and one pagination window. It is recomputed from scratch on
// every input or filter change; nothing in it has independent identity.
type View struct {
	Visible  []models.TradeIdea `json:"visible"`
	Resolved []models.TradeIdea `json:"resolved"`

	ActiveTotal   int `json:"activeTotal"`
	ResolvedTotal int `json:"resolvedTotal"`

	ExpiryCounts    ExpiryCounts                    `json:"expiryCounts"`
	TimeframeCounts map[Timeframe]int               `json:"timeframeCounts"`
	Groups          map[models.AssetType]GroupStats `json:"groups"`
}

// BuildView runs the pipeline: filter, rank, split active/resolved, window
// the active list, aggregate what the user can see. Bucket and timeframe
// counts come from their full (pre-pagination) populations, with the
// bucket's own dimension lifted so each count reflects "what I would see if
// I picked this bucket".
func BuildView(ideas []models.TradeIdea, c Criteria, w Window, now time.Time) View {
	filtered := Filter(ideas, c, now)
	ranked := Rank(filtered, now)

	active := make([]models.TradeIdea, 0, len(ranked))
	resolved := make([]models.TradeIdea, 0)
	for _, idea := range ranked {
		if idea.Outcome().Resolved() {
			resolved = append(resolved, idea)
		} else {
			active = append(active, idea)
		}
	}
	visible := w.Slice(active)

	// Expiry counts are gated by the non-expiry dimensions only.
	expiryPop := Filter(ideas, c.countGate(), now)

	// Timeframe tabs count the filtered population with the timeframe
	// dimension released.
	tfCriteria := c
	tfCriteria.Timeframe = ""
	tfPop := filtered
	if c.Timeframe != "" && c.Timeframe != TimeframeAll {
		tfPop = Filter(ideas, tfCriteria, now)
	}

	grouped := make([]models.TradeIdea, 0, len(visible)+len(resolved))
	grouped = append(grouped, visible...)
	grouped = append(grouped, resolved...)

	return View{
		Visible:         visible,
		Resolved:        resolved,
		ActiveTotal:     len(active),
		ResolvedTotal:   len(resolved),
		ExpiryCounts:    CountByExpiry(expiryPop, now),
		TimeframeCounts: CountByTimeframe(tfPop, now),
		Groups:          AggregateByAsset(grouped),
	}
}
