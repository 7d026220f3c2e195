package models

// DefaultCategoryName is the category every checklist starts with. The
// flat legacy save path files todos without an explicit category under
// it.
const DefaultCategoryName = "General"

// Checklist holds the ordered categories and todos of one project. A
// project has at most one checklist, enforced by the unique index on
// project_id.
type Checklist struct {
	Base
	ProjectID string `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`
	Title     string `gorm:"not null" json:"title"`

	// Relationships
	Categories []Category `gorm:"foreignKey:ChecklistID" json:"categories,omitempty"`
	Todos      []Todo     `gorm:"foreignKey:ChecklistID" json:"todos,omitempty"`
}
