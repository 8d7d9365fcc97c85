// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a tracked item by the kind of store it is bought from.
type Category string

const (
	CategoryGroceries   Category = "groceries"
	CategoryHardware    Category = "hardware"
	CategoryPharmacy    Category = "pharmacy"
	CategoryElectronics Category = "electronics"
	CategoryBooks       Category = "books"
	CategoryOther       Category = "other"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryHardware, CategoryPharmacy,
		CategoryElectronics, CategoryBooks, CategoryOther:
		return true
	}

	return false
}

// Urgency expresses how soon the user wants the item taken care of.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyNormal  Urgency = "normal"
	UrgencySomeday Urgency = "someday"
)

// Valid reports whether the urgency is one of the known values.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyUrgent, UrgencyNormal, UrgencySomeday:
		return true
	}

	return false
}

// Rank orders urgencies for listing. Lower ranks sort first.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyUrgent:
		return 0
	case UrgencyNormal:
		return 1
	default:
		return 2
	}
}

// Status is the lifecycle state of an item. Items are never hard-deleted;
// they leave the active list by moving to a terminal status.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransitionTo reports whether the status change is allowed. Active items
// may be completed or cancelled; completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusActive {
		return false
	}

	return next == StatusCompleted || next == StatusCancelled
}

// Freshness is a derived label describing how long an item has been sitting
// on the active list. It is computed at read time and never persisted.
type Freshness string

const (
	FreshnessFresh Freshness = "fresh"
	FreshnessAging Freshness = "aging"
	FreshnessStale Freshness = "stale"
)

// Item represents a single trackable entry, such as a shopping-list line.
type Item struct {
	ID              uuid.UUID  `json:"id"`                // The unique identifier of the item.
	UserID          string     `json:"user_id"`           // The external identifier of the owning user.
	Name            string     `json:"name"`              // The normalized display name.
	Category        Category   `json:"category"`          // The store category the item belongs to.
	Urgency         Urgency    `json:"urgency"`           // How soon the user wants the item.
	Status          Status     `json:"status"`            // Current lifecycle state.
	CreatedAt       time.Time  `json:"created_at"`        // When the item was captured.
	LastPurchasedAt *time.Time `json:"last_purchased_at"` // Set on completion only; nil until first purchase.
	PurchaseCount   int        `json:"purchase_count"`    // Incremented by exactly one per completion.
	IsRecurring     bool       `json:"is_recurring"`      // Heuristic flag for regularly repurchased items.
	Notes           string     `json:"notes"`             // Optional free-text notes.
}

// FreshnessAt derives the freshness label from the item's age at the given
// time. Items younger than agingAfter are fresh, items older than staleAfter
// are stale, everything in between is aging.
func (i *Item) FreshnessAt(now time.Time, agingAfter, staleAfter time.Duration) Freshness {
	age := now.Sub(i.CreatedAt)
	switch {
	case age < agingAfter:
		return FreshnessFresh
	case age <= staleAfter:
		return FreshnessAging
	default:
		return FreshnessStale
	}
}
