package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	derrors "signaldesk/internal/errors"
	"signaldesk/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ideas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListIdeas(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expiry := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	pnl := 125.5
	ideas := []models.TradeIdea{
		{
			ID:              "idea-1",
			Symbol:          "aapl",
			Direction:       models.DirectionLong,
			AssetType:       models.AssetOption,
			Source:          models.SourceAI,
			Status:          " published ",
			OutcomeStatus:   " hit_target ",
			Timestamp:       time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
			ExpiryDate:      &expiry,
			EntryPrice:      230,
			TargetPrice:     245,
			StopLoss:        222,
			RiskRewardRatio: 1.9,
			ConfidenceScore: 82,
			ProbabilityBand: "A-",
			Catalyst:        "iPhone launch",
			IsDayTrade:      true,
			RealizedPnL:     &pnl,
		},
		{
			ID:        "idea-2",
			Symbol:    "TSLA",
			Direction: models.DirectionShort,
			AssetType: models.AssetStock,
			Source:    models.SourceQuant,
			Timestamp: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
	}

	n, err := s.SaveIdeas(ctx, ideas)
	if err != nil {
		t.Fatalf("SaveIdeas: %v", err)
	}
	if n != 2 {
		t.Fatalf("written = %d, want 2", n)
	}

	got, err := s.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("listed %d ideas, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "idea-2" || got[1].ID != "idea-1" {
		t.Errorf("order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}

	first := got[1]
	if first.Symbol != "AAPL" {
		t.Errorf("symbol not uppercased on write: %q", first.Symbol)
	}
	if first.Status != "published" || first.OutcomeStatus != "hit_target" {
		t.Errorf("statuses not trimmed: %q / %q", first.Status, first.OutcomeStatus)
	}
	if first.ExpiryDate == nil || !first.ExpiryDate.Equal(expiry) {
		t.Errorf("expiry round-trip: %v", first.ExpiryDate)
	}
	if first.RealizedPnL == nil || *first.RealizedPnL != pnl {
		t.Errorf("pnl round-trip: %v", first.RealizedPnL)
	}
	if !first.IsDayTrade {
		t.Error("day-trade flag lost")
	}

	second := got[0]
	if second.ExpiryDate != nil || second.RealizedPnL != nil {
		t.Errorf("absent optionals came back non-nil: %v %v", second.ExpiryDate, second.RealizedPnL)
	}
}

func TestSaveIdeasAssignsMissingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveIdeas(ctx, []models.TradeIdea{{
		Symbol:    "NVDA",
		Direction: models.DirectionLong,
		AssetType: models.AssetStock,
		Source:    models.SourceAI,
		Timestamp: time.Now().UTC(),
	}}); err != nil {
		t.Fatalf("SaveIdeas: %v", err)
	}

	got, err := s.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(got) != 1 || got[0].ID == "" {
		t.Errorf("missing ID not assigned: %+v", got)
	}
}

func TestSaveIdeasUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := models.TradeIdea{
		ID:        "idea-1",
		Symbol:    "AMD",
		Direction: models.DirectionLong,
		AssetType: models.AssetStock,
		Source:    models.SourceAI,
		Timestamp: time.Now().UTC(),
	}
	if _, err := s.SaveIdeas(ctx, []models.TradeIdea{base}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	base.OutcomeStatus = "hit_target"
	base.CurrentPrice = 180
	if _, err := s.SaveIdeas(ctx, []models.TradeIdea{base}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate row after upsert: %d", len(got))
	}
	if got[0].OutcomeStatus != "hit_target" || got[0].CurrentPrice != 180 {
		t.Errorf("update lost: %+v", got[0])
	}
}

func TestGetIdeaNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetIdea(context.Background(), "nope")
	if !errors.Is(err, derrors.ErrDataNotFound) {
		t.Errorf("err = %v, want ErrDataNotFound", err)
	}
}
