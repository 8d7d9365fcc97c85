// Package model contains the GORM-specific table structs. Domain entities
// never carry GORM tags; the sqldb package converts between the two.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel is the GORM-specific struct for the 'items' table.
// Rows are never deleted; the status column carries the soft lifecycle.
type ItemModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          string    `gorm:"type:text;not null;index:idx_items_user_status,priority:1"`
	Name            string    `gorm:"type:text;not null"`
	Category        string    `gorm:"type:text;not null"`
	Urgency         string    `gorm:"type:text;not null"`
	Status          string    `gorm:"type:text;not null;index:idx_items_user_status,priority:2"`
	CreatedAt       time.Time `gorm:"not null;index"`
	LastPurchasedAt *time.Time
	PurchaseCount   int    `gorm:"not null;default:0"`
	IsRecurring     bool   `gorm:"not null;default:false"`
	Notes           string `gorm:"type:text"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
