package models

// Category is a named, colored grouping of todos within a checklist.
// Position orders siblings; ties break on created_at, so (position ASC,
// created_at ASC) is a total order. Positions need not be contiguous
// after deletions.
type Category struct {
	Base
	ChecklistID string  `gorm:"type:uuid;not null;index" json:"checklist_id"`
	Name        string  `gorm:"not null" json:"name"`
	Color       *string `json:"color,omitempty"`
	Position    int     `gorm:"not null;default:0" json:"position"`
}
