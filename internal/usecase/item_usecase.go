// Package usecase defines the application's use case interfaces and the data
// transfer types they exchange with the delivery layer.
package usecase

import (
	"context"

	"restock/internal/domain/entity"

	"github.com/google/uuid"
)

// AddItemInput carries the caller-supplied fields for a direct item add.
// Category and Urgency are optional; the service categorizes the name and
// applies the default urgency when they are absent.
type AddItemInput struct {
	UserID   string
	Name     string
	Category *entity.Category
	Urgency  *entity.Urgency
}

// AddItemResult bundles the stored item with whether this call created it.
// IsNew is false when the duplicate guard matched an existing active item.
type AddItemResult struct {
	Item  *entity.Item `json:"item"`
	IsNew bool         `json:"is_new"`
}

// ActiveItem pairs an item with its derived freshness label. Freshness is
// computed at read time and never persisted.
type ActiveItem struct {
	*entity.Item
	Freshness entity.Freshness `json:"freshness"`
}

// ItemUsecase defines the interface for the item-tracking use cases.
type ItemUsecase interface {
	// AddItem captures a single item. When an active item with the same name
	// already exists inside the duplicate window, the existing item is
	// returned with IsNew=false and no new row is written.
	AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error)

	// ParseAndAddItems splits free text into item names and adds each one.
	// The results preserve input order and flag duplicates individually.
	ParseAndAddItems(ctx context.Context, userID, text string) ([]*AddItemResult, error)

	// GetActiveItems retrieves the user's active items, optionally filtered
	// by category, each annotated with a freshness label.
	GetActiveItems(ctx context.Context, userID, sortBy string, category *entity.Category) ([]*ActiveItem, error)

	// GetItem retrieves a single item by ID.
	GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// GetItemEvents retrieves the full transition history of an item,
	// oldest first.
	GetItemEvents(ctx context.Context, id uuid.UUID) ([]*entity.ItemEvent, error)

	// CompleteItem marks an active item purchased, increments its purchase
	// count, and re-evaluates the recurrence heuristic.
	CompleteItem(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// CancelItem marks an active item cancelled.
	CancelItem(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// UpdateUrgency changes the urgency of an active item.
	UpdateUrgency(ctx context.Context, id uuid.UUID, urgency entity.Urgency) (*entity.Item, error)

	// AddNotes replaces the free-text notes of an active item.
	AddNotes(ctx context.Context, id uuid.UUID, notes string) (*entity.Item, error)
}
