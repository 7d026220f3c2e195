package models

import "time"

// Todo is a single actionable item. CategoryID nil means the todo lives
// in its checklist's uncategorized bucket. Price is stored as an opaque
// string; the store enforces no currency format (see internal/pricing
// for the tolerant client-side interpretation).
type Todo struct {
	Base
	ChecklistID string    `gorm:"type:uuid;not null;index" json:"checklist_id"`
	CategoryID  *string   `gorm:"type:uuid;index" json:"category_id"`
	Text        string    `gorm:"not null" json:"text"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Link        *string   `json:"link,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	UpdatedAt   time.Time `json:"updated_at"`
}
