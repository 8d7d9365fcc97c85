package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of lifecycle transition an event records.
type EventType string

const (
	EventItemAdded     EventType = "item_added"
	EventItemPurchased EventType = "item_purchased"
	EventItemCancelled EventType = "item_cancelled"
)

// ItemEvent is an immutable log record of an item's state transition.
// Events are append-only and outlive the item they reference: the ItemID is
// a non-owning reference, so the history survives an administrative purge.
type ItemEvent struct {
	ID        uuid.UUID `json:"id"`          // The unique identifier of the event.
	UserID    string    `json:"user_id"`     // The owning user, denormalized for per-user history queries.
	ItemID    uuid.UUID `json:"item_id"`     // The item this event refers to.
	Type      EventType `json:"event_type"`  // What happened.
	DayOfWeek int       `json:"day_of_week"` // 0 (Sunday) through 6 (Saturday), local time of the transition.
	HourOfDay int       `json:"hour_of_day"` // 0 through 23, local time of the transition.
	CreatedAt time.Time `json:"created_at"`  // When the transition happened.
}

// NewItemEvent builds the event record for a transition of the given item,
// capturing the temporal context (weekday and hour) from the transition time.
func NewItemEvent(item *Item, eventType EventType, at time.Time) *ItemEvent {
	return &ItemEvent{
		ID:        uuid.New(),
		UserID:    item.UserID,
		ItemID:    item.ID,
		Type:      eventType,
		DayOfWeek: int(at.Weekday()),
		HourOfDay: at.Hour(),
		CreatedAt: at,
	}
}
