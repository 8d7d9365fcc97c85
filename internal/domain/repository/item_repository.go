// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"restock/internal/domain/entity"
	"restock/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for item persistence.
var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
)

// Sort orders accepted by FindActiveItems.
const (
	// SortByUrgency orders urgent before normal before someday, newest first
	// within each band. This is the default listing order.
	SortByUrgency = "urgency"
	// SortByNewest orders purely by capture time, newest first.
	SortByNewest = "newest"
	// SortByName orders alphabetically, case-insensitive.
	SortByName = "name"
)

// ActiveItemQuery describes a filtered listing of a user's active items.
type ActiveItemQuery struct {
	UserID   string
	Category *entity.Category // nil means all categories
	SortBy   string           // one of the SortBy constants; empty means SortByUrgency
}

// ItemRepository defines the interface for item-related database operations.
type ItemRepository interface {
	// CreateItem persists a new item.
	CreateItem(ctx context.Context, item *entity.Item) error

	// FindItemByID retrieves an item by its unique ID.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// FindActiveDuplicate retrieves the most recent active item with the same
	// name (case-insensitive) captured by the user at or after the given
	// time. Returns ErrItemNotFound when no such item exists.
	FindActiveDuplicate(ctx context.Context, userID, name string, since time.Time) (*entity.Item, error)

	// FindActiveItems retrieves all active items matching the query.
	FindActiveItems(ctx context.Context, query ActiveItemQuery) ([]*entity.Item, error)

	// UpdateItem persists the mutable fields of an item (status, urgency,
	// purchase bookkeeping, recurring flag, notes).
	UpdateItem(ctx context.Context, item *entity.Item) error

	// UpdateUrgency updates the urgency of an item.
	UpdateUrgency(ctx context.Context, id uuid.UUID, urgency entity.Urgency) error

	// UpdateNotes updates the free-text notes of an item.
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
}
