package tree

// SaveFunc persists a complete desired-state tree and returns the
// reassembled tree reflecting the now-persisted state.
type SaveFunc func(ChecklistTree) (*ChecklistTree, error)

// Editor pairs an in-memory tree with a full-tree saver. Every edit is
// applied optimistically to the local tree and then pushed as a
// complete snapshot; the saver's result becomes the new baseline. This
// mirrors how the UI drives the reconciler: one round trip per user
// action, no batching.
type Editor struct {
	Tree ChecklistTree
	Save SaveFunc
}

// NewEditor creates an editor over a baseline tree.
func NewEditor(baseline ChecklistTree, save SaveFunc) *Editor {
	return &Editor{Tree: baseline, Save: save}
}

func (e *Editor) push() error {
	saved, err := e.Save(e.Tree)
	if err != nil {
		// The optimistic local state is intentionally kept on failure;
		// callers surface the error and may retry the save.
		return err
	}
	if saved != nil {
		e.Tree = *saved
	}
	return nil
}

// CreateCategory adds a category and saves.
func (e *Editor) CreateCategory(name string, color *string) (string, error) {
	id := e.Tree.CreateCategory(name, color)
	return id, e.push()
}

// UpdateCategory patches a category and saves.
func (e *Editor) UpdateCategory(id string, patch CategoryPatch) error {
	e.Tree.UpdateCategory(id, patch)
	return e.push()
}

// DeleteCategory removes a category, moving its todos to the
// uncategorized bucket, and saves.
func (e *Editor) DeleteCategory(id string) error {
	e.Tree.DeleteCategory(id)
	return e.push()
}

// CreateTodo adds a todo to the given container and saves.
func (e *Editor) CreateTodo(text string, categoryID *string) (string, error) {
	id := e.Tree.CreateTodo(text, categoryID)
	return id, e.push()
}

// UpdateTodo patches a todo and saves.
func (e *Editor) UpdateTodo(id string, patch TodoPatch) error {
	e.Tree.UpdateTodo(id, patch)
	return e.push()
}

// DeleteTodo removes a todo and saves.
func (e *Editor) DeleteTodo(id string) error {
	e.Tree.DeleteTodo(id)
	return e.push()
}

// MoveTodoToCategory re-homes a todo and saves.
func (e *Editor) MoveTodoToCategory(todoID string, targetCategoryID *string) error {
	e.Tree.MoveTodoToCategory(todoID, targetCategoryID)
	return e.push()
}
