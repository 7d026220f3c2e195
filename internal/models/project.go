package models

// Project is the top-level container a user creates. It owns at most
// one checklist; deleting a project removes its todos, categories and
// checklist rows in dependency order.
type Project struct {
	Base
	Name string `gorm:"not null" json:"name"`

	// Relationships
	Checklists []Checklist `gorm:"foreignKey:ProjectID" json:"checklists,omitempty"`
}
