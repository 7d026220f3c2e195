package tree

import (
	"sort"

	"merkliste/internal/uuid"
)

// CategoryPatch holds the fields an in-memory category edit may change.
// Nil fields stay untouched.
type CategoryPatch struct {
	Name     *string
	Color    *string
	Position *int
}

// TodoPatch holds the fields an in-memory todo edit may change. Nil
// fields stay untouched.
type TodoPatch struct {
	Text      *string
	Completed *bool
	Link      *string
	Price     *string
	Notes     *string
	Position  *int
}

// CreateCategory appends a new empty category at the end of the
// category sequence and returns its minted id.
func (t *ChecklistTree) CreateCategory(name string, color *string) string {
	id := uuid.New()
	t.Categories = append(t.Categories, CategoryNode{
		ID:       id,
		Name:     name,
		Color:    color,
		Position: len(t.Categories),
		Todos:    []TodoItem{},
	})
	return id
}

// UpdateCategory patches the matching category in place, then re-sorts
// the sequence by position so a position edit immediately reorders the
// view.
func (t *ChecklistTree) UpdateCategory(id string, patch CategoryPatch) bool {
	found := false
	for i := range t.Categories {
		if t.Categories[i].ID != id {
			continue
		}
		found = true
		if patch.Name != nil {
			t.Categories[i].Name = *patch.Name
		}
		if patch.Color != nil {
			t.Categories[i].Color = patch.Color
		}
		if patch.Position != nil {
			t.Categories[i].Position = *patch.Position
		}
	}
	if found {
		sort.SliceStable(t.Categories, func(i, j int) bool {
			return t.Categories[i].Position < t.Categories[j].Position
		})
	}
	return found
}

// DeleteCategory removes the category and splices its todos onto the
// end of the uncategorized bucket.
func (t *ChecklistTree) DeleteCategory(id string) bool {
	for i := range t.Categories {
		if t.Categories[i].ID != id {
			continue
		}
		t.UncategorizedTodos = append(t.UncategorizedTodos, t.Categories[i].Todos...)
		t.Categories = append(t.Categories[:i], t.Categories[i+1:]...)
		return true
	}
	return false
}

// CreateTodo appends a new todo to the target category, or to the
// uncategorized bucket when categoryID is nil, and returns its minted
// id.
func (t *ChecklistTree) CreateTodo(text string, categoryID *string) string {
	id := uuid.New()
	if categoryID != nil {
		for i := range t.Categories {
			if t.Categories[i].ID == *categoryID {
				todo := TodoItem{ID: id, Text: text, Position: len(t.Categories[i].Todos)}
				t.Categories[i].Todos = append(t.Categories[i].Todos, todo)
				return id
			}
		}
	}
	todo := TodoItem{ID: id, Text: text, Position: len(t.UncategorizedTodos)}
	t.UncategorizedTodos = append(t.UncategorizedTodos, todo)
	return id
}

// UpdateTodo patches the todo wherever it currently lives: the
// categories are scanned first, then the uncategorized bucket.
func (t *ChecklistTree) UpdateTodo(id string, patch TodoPatch) bool {
	for i := range t.Categories {
		if applyTodoPatch(t.Categories[i].Todos, id, patch) {
			return true
		}
	}
	return applyTodoPatch(t.UncategorizedTodos, id, patch)
}

func applyTodoPatch(todos []TodoItem, id string, patch TodoPatch) bool {
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		if patch.Text != nil {
			todos[i].Text = *patch.Text
		}
		if patch.Completed != nil {
			todos[i].Completed = *patch.Completed
		}
		if patch.Link != nil {
			todos[i].Link = patch.Link
		}
		if patch.Price != nil {
			todos[i].Price = patch.Price
		}
		if patch.Notes != nil {
			todos[i].Notes = patch.Notes
		}
		if patch.Position != nil {
			todos[i].Position = *patch.Position
		}
		return true
	}
	return false
}

// DeleteTodo removes the todo from whichever container holds it.
func (t *ChecklistTree) DeleteTodo(id string) bool {
	_, ok := t.removeTodo(id)
	return ok
}

// MoveTodoToCategory detaches the todo from its current container and
// appends it to the target category (nil = uncategorized bucket). The
// todo always lands at the end of the target, never at a chosen index.
func (t *ChecklistTree) MoveTodoToCategory(todoID string, targetCategoryID *string) bool {
	todo, ok := t.removeTodo(todoID)
	if !ok {
		return false
	}
	if targetCategoryID != nil {
		for i := range t.Categories {
			if t.Categories[i].ID == *targetCategoryID {
				todo.Position = len(t.Categories[i].Todos)
				t.Categories[i].Todos = append(t.Categories[i].Todos, todo)
				return true
			}
		}
	}
	todo.Position = len(t.UncategorizedTodos)
	t.UncategorizedTodos = append(t.UncategorizedTodos, todo)
	return true
}

// removeTodo detaches and returns the todo with the given id.
func (t *ChecklistTree) removeTodo(id string) (TodoItem, bool) {
	for i := range t.Categories {
		for j := range t.Categories[i].Todos {
			if t.Categories[i].Todos[j].ID == id {
				todo := t.Categories[i].Todos[j]
				t.Categories[i].Todos = append(t.Categories[i].Todos[:j], t.Categories[i].Todos[j+1:]...)
				return todo, true
			}
		}
	}
	for j := range t.UncategorizedTodos {
		if t.UncategorizedTodos[j].ID == id {
			todo := t.UncategorizedTodos[j]
			t.UncategorizedTodos = append(t.UncategorizedTodos[:j], t.UncategorizedTodos[j+1:]...)
			return todo, true
		}
	}
	return TodoItem{}, false
}
