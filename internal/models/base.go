package models

import (
	"time"

	"merkliste/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the columns shared by all tables. Deletes remove rows
// for real; cascade ordering is handled in the service layer, so there
// is no soft-delete column.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUIDv7 unless the caller already minted an
// id. The reconciler inserts rows with client-supplied ids, which keeps
// its create path idempotent under retry.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
