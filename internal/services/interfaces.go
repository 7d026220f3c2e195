package services

import (
	"merkliste/internal/models"
	"merkliste/internal/tree"
)

// CategoryUpdates holds a partial category update. Nil fields are
// no-ops; an explicit empty Color clears the swatch.
type CategoryUpdates struct {
	Name     *string
	Color    *string
	Position *int
}

// CreateTodoInput is the tagged todo-creation payload: either plain
// text, or text with optional price/link metadata, decided by the
// caller rather than inferred from the wire format.
type CreateTodoInput struct {
	Text  string
	Price *string
	Link  *string
}

// TodoUpdates holds a partial todo update. Nil fields are no-ops. For
// the nullable fields (Link, Price, Notes, CategoryID) an explicit
// empty string clears the column; a non-empty CategoryID moves the todo
// into that category.
type TodoUpdates struct {
	Text       *string
	Completed  *bool
	Link       *string
	Price      *string
	Notes      *string
	CategoryID *string
	Position   *int
}

// ProjectServicer defines the contract for project CRUD.
type ProjectServicer interface {
	CreateProject(name string) (*models.Project, error)
	GetAllProjects() ([]models.Project, error)
	GetProjectByID(id string) (*models.Project, error)
	UpdateProject(id, name string) (*models.Project, error)
	DeleteProject(id string) error
}

// ChecklistServicer defines the contract for checklist CRUD.
type ChecklistServicer interface {
	CreateChecklist(projectID, title string) (*models.Checklist, error)
	GetChecklistByID(id string) (*models.Checklist, error)
	GetChecklistsByProject(projectID string) ([]models.Checklist, error)
	UpdateChecklist(id, title string) (*models.Checklist, error)
	DeleteChecklist(id string) error
}

// CategoryServicer defines the contract for category CRUD.
type CategoryServicer interface {
	CreateCategory(checklistID, name string, color *string) (*models.Category, error)
	GetCategoriesByChecklist(checklistID string) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, updates CategoryUpdates) (*models.Category, error)
	DeleteCategory(id string) error
}

// TodoServicer defines the contract for todo CRUD.
type TodoServicer interface {
	CreateTodo(checklistID string, input CreateTodoInput, categoryID *string) (*models.Todo, error)
	GetTodosByChecklist(checklistID string) ([]models.Todo, error)
	GetTodosByCategory(categoryID string) ([]models.Todo, error)
	GetTodoByID(id string) (*models.Todo, error)
	UpdateTodo(id string, updates TodoUpdates) (*models.Todo, error)
	ToggleTodo(id string) (*models.Todo, error)
	DeleteTodo(id string) error
}

// TreeServicer assembles denormalized checklist views and reconciles
// client-held desired-state snapshots against the store. The getters
// return (nil, nil) when the project has no checklist yet; callers
// treat that as "needs initialization", not an error.
type TreeServicer interface {
	GetChecklistWithCategories(projectID string) (*tree.ChecklistTree, error)
	GetChecklistWithTodos(projectID string) (*tree.FlatChecklist, error)
	SaveChecklistWithCategories(desired tree.ChecklistTree) (*tree.ChecklistTree, error)
	SaveChecklist(desired tree.FlatChecklist) (*tree.FlatChecklist, error)
}
