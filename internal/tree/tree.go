// Package tree holds the denormalized checklist view models exchanged
// with clients, plus the in-memory mutations a client applies before
// saving the whole tree back through the reconciler.
package tree

import "merkliste/internal/pricing"

// TodoItem is a todo as clients see it. CategoryID is only populated in
// the flat view; in the categorized view the containing CategoryNode
// carries that information.
type TodoItem struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Completed  bool    `json:"completed"`
	Position   int     `json:"position"`
	Link       *string `json:"link,omitempty"`
	Price      *string `json:"price,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// CategoryNode is a category together with its ordered todos.
type CategoryNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Color    *string    `json:"color,omitempty"`
	Position int        `json:"position"`
	Todos    []TodoItem `json:"todos"`
}

// OpenSum totals the prices of the category's uncompleted todos.
// Unparseable prices contribute nothing.
func (c *CategoryNode) OpenSum() float64 {
	var sum float64
	for _, todo := range c.Todos {
		if todo.Completed || todo.Price == nil {
			continue
		}
		sum += pricing.Parse(*todo.Price)
	}
	return sum
}

// ChecklistTree is the categorized view of a checklist: each category
// holds its todos, and todos without a category live in the
// uncategorized bucket.
type ChecklistTree struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Categories         []CategoryNode `json:"categories"`
	UncategorizedTodos []TodoItem     `json:"uncategorizedTodos"`
	ProjectID          string         `json:"project_id"`
}

// FlatChecklist is the legacy view: one flat ordered todo sequence,
// category grouping ignored.
type FlatChecklist struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Todos     []TodoItem `json:"todos"`
	ProjectID string     `json:"project_id"`
}
