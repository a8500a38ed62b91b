package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"signaldesk/internal/desk"
	derrors "signaldesk/internal/errors"
	"signaldesk/internal/models"
)

// ideaPayload decorates a trade idea with its derived ranking fields.
type ideaPayload struct {
	models.TradeIdea
	Outcome       models.OutcomeStatus `json:"outcome"`
	Tier          int                  `json:"tier"`
	PriorityScore float64              `json:"priorityScore"`
	NearEarnings  bool                 `json:"nearEarnings,omitempty"`
}

// ideasResponse is the full desk view for the list screen.
type ideasResponse struct {
	AsOf            time.Time                            `json:"asOf"`
	Criteria        desk.Criteria                        `json:"criteria"`
	Visible         []ideaPayload                        `json:"visible"`
	Resolved        []ideaPayload                        `json:"resolved"`
	ActiveTotal     int                                  `json:"activeTotal"`
	ResolvedTotal   int                                  `json:"resolvedTotal"`
	ExpiryCounts    desk.ExpiryCounts                    `json:"expiryCounts"`
	TimeframeCounts map[desk.Timeframe]int               `json:"timeframeCounts"`
	Groups          map[models.AssetType]desk.GroupStats `json:"groups"`
}

func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ideas, refreshed := s.refresher.Snapshot()
	if refreshed.IsZero() {
		http.Error(w, derrors.ErrSnapshotStale.Error(), http.StatusServiceUnavailable)
		return
	}
	criteria := criteriaFromQuery(r)
	window := s.windowFromQuery(r)
	now := time.Now()

	view := desk.BuildView(ideas, criteria, window, now)

	resp := ideasResponse{
		AsOf:            refreshed,
		Criteria:        criteria,
		Visible:         s.decorate(view.Visible, now),
		Resolved:        s.decorate(view.Resolved, now),
		ActiveTotal:     view.ActiveTotal,
		ResolvedTotal:   view.ResolvedTotal,
		ExpiryCounts:    view.ExpiryCounts,
		TimeframeCounts: view.TimeframeCounts,
		Groups:          view.Groups,
	}
	writeJSON(w, s, resp)
}

type summaryResponse struct {
	AsOf            time.Time                            `json:"asOf"`
	ActiveTotal     int                                  `json:"activeTotal"`
	ResolvedTotal   int                                  `json:"resolvedTotal"`
	ExpiryCounts    desk.ExpiryCounts                    `json:"expiryCounts"`
	TimeframeCounts map[desk.Timeframe]int               `json:"timeframeCounts"`
	Groups          map[models.AssetType]desk.GroupStats `json:"groups"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ideas, refreshed := s.refresher.Snapshot()
	if refreshed.IsZero() {
		http.Error(w, derrors.ErrSnapshotStale.Error(), http.StatusServiceUnavailable)
		return
	}
	criteria := criteriaFromQuery(r)
	window := desk.NewWindow(s.cfg.Desk.InitialVisible, s.cfg.Desk.PageStep)
	view := desk.BuildView(ideas, criteria, window, time.Now())

	writeJSON(w, s, summaryResponse{
		AsOf:            refreshed,
		ActiveTotal:     view.ActiveTotal,
		ResolvedTotal:   view.ResolvedTotal,
		ExpiryCounts:    view.ExpiryCounts,
		TimeframeCounts: view.TimeframeCounts,
		Groups:          view.Groups,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, refreshed := s.refresher.Snapshot()
	writeJSON(w, s, map[string]interface{}{
		"status":      "ok",
		"snapshotAge": time.Since(refreshed).String(),
	})
}

func (s *Server) decorate(ideas []models.TradeIdea, now time.Time) []ideaPayload {
	out := make([]ideaPayload, len(ideas))
	for n, idea := range ideas {
		out[n] = ideaPayload{
			TradeIdea:     idea,
			Outcome:       idea.Outcome(),
			Tier:          desk.Tier(idea, now),
			PriorityScore: desk.PriorityScore(idea),
		}
		if len(s.catalysts) > 0 {
			out[n].NearEarnings = models.NearEarnings(idea, s.catalysts, s.cfg.Desk.EarningsWindow, now)
		}
	}
	return out
}

// criteriaFromQuery maps query parameters onto filter criteria. Unknown or
// empty values leave a dimension unconstrained.
func criteriaFromQuery(r *http.Request) desk.Criteria {
	q := r.URL.Query()
	return desk.Criteria{
		Search:     q.Get("search"),
		Direction:  q.Get("direction"),
		Source:     q.Get("source"),
		AssetType:  q.Get("asset"),
		Grade:      q.Get("grade"),
		DatePreset: q.Get("range"),
		StatusView: q.Get("status"),
		Symbol:     q.Get("symbol"),
		View:       q.Get("view"),
		Expiry:     desk.ExpiryBucket(q.Get("expiry")),
		Timeframe:  desk.Timeframe(q.Get("timeframe")),
	}
}

func (s *Server) windowFromQuery(r *http.Request) desk.Window {
	w := desk.NewWindow(s.cfg.Desk.InitialVisible, s.cfg.Desk.PageStep)
	if v := r.URL.Query().Get("visible"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			w.Visible = n
		}
	}
	return w
}

func writeJSON(w http.ResponseWriter, s *Server, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("encoding response")
	}
}
