// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"signaldesk/internal/models"
)

// IdeaStore defines the interface for idea persistence. The desk engine
// never talks to the store directly; the refresh layer loads snapshots from
// it and hands the engine plain slices.
type IdeaStore interface {
	// SaveIdeas upserts a batch of ideas by ID, assigning IDs to records
	// that arrive without one.
	SaveIdeas(ctx context.Context, ideas []models.TradeIdea) (int, error)

	// ListIdeas returns all stored ideas, newest first.
	ListIdeas(ctx context.Context) ([]models.TradeIdea, error)

	// GetIdea returns a single idea by ID, or ErrDataNotFound.
	GetIdea(ctx context.Context, id string) (*models.TradeIdea, error)

	// Close releases the underlying resources.
	Close() error
}
