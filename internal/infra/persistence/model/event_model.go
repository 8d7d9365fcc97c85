package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel is the GORM-specific struct for the 'events' table.
// The table is append-only: rows are inserted on item state transitions and
// never updated or deleted. ItemID is a plain reference, not a foreign key,
// so history survives an administrative purge of the item row.
type EventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:text;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType string    `gorm:"type:text;not null"`
	DayOfWeek int       `gorm:"not null"`
	HourOfDay int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}
