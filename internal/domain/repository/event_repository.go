package repository

import (
	"context"
	"time"

	"restock/internal/domain/entity"

	"github.com/google/uuid"
)

// EventRepository defines the interface for the append-only event log.
// Events are never updated or deleted.
type EventRepository interface {
	// AppendEvent persists a new event record.
	AppendEvent(ctx context.Context, event *entity.ItemEvent) error

	// FindEventsByItem retrieves all events for an item, oldest first.
	FindEventsByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.ItemEvent, error)

	// FindPurchaseTimes retrieves the timestamps of the most recent purchase
	// events for an item, newest first, capped at limit. Used by the
	// recurrence estimator.
	FindPurchaseTimes(ctx context.Context, itemID uuid.UUID, limit int) ([]time.Time, error)
}
