// Package refresh keeps an in-memory snapshot of the idea collection
// current. Each refresh is a full replacement: the desk engine recomputes
// its views from scratch on the new snapshot, so no delta model is needed
// at these volumes.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"signaldesk/internal/models"
	"signaldesk/pkg/utils"
)

// Source fetches the current idea collection from upstream.
type Source interface {
	FetchIdeas(ctx context.Context) ([]models.TradeIdea, error)
}

// Refresher periodically replaces its snapshot from a Source. Readers get a
// copy of the latest snapshot; the engine itself never sees the lock.
type Refresher struct {
	source  Source
	logger  zerolog.Logger
	timeout time.Duration
	retry   utils.RetryConfig

	cron *cron.Cron

	mu        sync.RWMutex
	snapshot  []models.TradeIdea
	refreshed time.Time
}

// New creates a Refresher over the given source.
func New(source Source, timeout time.Duration, logger zerolog.Logger) *Refresher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		source:  source,
		logger:  logger,
		timeout: timeout,
		retry:   utils.DefaultRetryConfig(),
	}
}

// Start performs an initial refresh and schedules periodic ones using the
// given cron spec (e.g. "@every 1m").
func (r *Refresher) Start(ctx context.Context, spec string) error {
	r.Refresh(ctx)

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(spec, func() { r.Refresh(ctx) }); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the periodic refresh.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Refresh fetches the idea collection once, with retry, and swaps it in as
// the new snapshot. A failed refresh keeps the previous snapshot.
func (r *Refresher) Refresh(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ideas, err := utils.RetryWithResult(fctx, r.retry, func() ([]models.TradeIdea, error) {
		return r.source.FetchIdeas(fctx)
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("idea refresh failed, keeping previous snapshot")
		return
	}

	r.mu.Lock()
	r.snapshot = ideas
	r.refreshed = time.Now()
	r.mu.Unlock()

	r.logger.Info().Int("ideas", len(ideas)).Msg("idea snapshot refreshed")
}

// Snapshot returns a copy of the latest idea collection and the time it was
// taken. The zero time means no refresh has succeeded yet.
func (r *Refresher) Snapshot() ([]models.TradeIdea, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TradeIdea, len(r.snapshot))
	copy(out, r.snapshot)
	return out, r.refreshed
}

// StoreSource adapts an idea lister into a refresh Source.
type StoreSource struct {
	Lister interface {
		ListIdeas(ctx context.Context) ([]models.TradeIdea, error)
	}
}

// FetchIdeas loads the idea collection from the store.
func (s StoreSource) FetchIdeas(ctx context.Context) ([]models.TradeIdea, error) {
	return s.Lister.ListIdeas(ctx)
}
