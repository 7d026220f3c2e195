package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/models"
)

// todoService handles todo-related business logic.
type todoService struct {
	db *gorm.DB
}

// NewTodoService creates a new TodoServicer.
func NewTodoService(db *gorm.DB) TodoServicer {
	return &todoService{db: db}
}

// CreateTodo creates a todo at the end of its container: the given
// category, or the checklist's uncategorized bucket when categoryID is
// nil. A categorized todo must target a category of the same checklist.
func (s *todoService) CreateTodo(checklistID string, input CreateTodoInput, categoryID *string) (*models.Todo, error) {
	if input.Text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "todo text is required")
	}

	var checklist models.Checklist
	if err := s.db.Where("id = ?", checklistID).First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChecklistNotFound
		}
		return nil, storeError(err)
	}

	categoryID = normalizeNullable(categoryID)
	if categoryID != nil {
		if err := s.checkCategory(*categoryID, checklistID); err != nil {
			return nil, err
		}
	}

	position, err := s.nextTodoPosition(checklistID, categoryID)
	if err != nil {
		return nil, storeError(err)
	}

	todo := &models.Todo{
		ChecklistID: checklistID,
		CategoryID:  categoryID,
		Text:        input.Text,
		Completed:   false,
		Link:        normalizeNullable(input.Link),
		Price:       normalizeNullable(input.Price),
		Position:    position,
	}
	if err := s.db.Create(todo).Error; err != nil {
		return nil, storeError(err)
	}
	return todo, nil
}

// nextTodoPosition computes the next position among the todo's
// siblings, i.e. the todos sharing its container.
func (s *todoService) nextTodoPosition(checklistID string, categoryID *string) (int, error) {
	if categoryID == nil {
		return nextPosition(s.db, &models.Todo{}, "checklist_id = ? AND category_id IS NULL", checklistID)
	}
	return nextPosition(s.db, &models.Todo{}, "checklist_id = ? AND category_id = ?", checklistID, *categoryID)
}

// checkCategory verifies the move/create target category exists and
// belongs to the todo's checklist.
func (s *todoService) checkCategory(categoryID, checklistID string) error {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return storeError(err)
	}
	if category.ChecklistID != checklistID {
		return apperrors.WithMessage(apperrors.ErrConstraintViolation, "category belongs to a different checklist")
	}
	return nil
}

// GetTodosByChecklist retrieves all todos of a checklist in display
// order.
func (s *todoService) GetTodosByChecklist(checklistID string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.Where("checklist_id = ?", checklistID).
		Order("position ASC, created_at ASC").
		Find(&todos).Error; err != nil {
		return nil, storeError(err)
	}
	return todos, nil
}

// GetTodosByCategory retrieves a category's todos in display order.
func (s *todoService) GetTodosByCategory(categoryID string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.Where("category_id = ?", categoryID).
		Order("position ASC, created_at ASC").
		Find(&todos).Error; err != nil {
		return nil, storeError(err)
	}
	return todos, nil
}

// GetTodoByID retrieves a single todo.
func (s *todoService) GetTodoByID(id string) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.Where("id = ?", id).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, storeError(err)
	}
	return &todo, nil
}

// UpdateTodo applies a partial update. Only the fields present in
// updates change; empty strings clear the nullable columns, and an
// empty CategoryID moves the todo to the uncategorized bucket.
func (s *todoService) UpdateTodo(id string, updates TodoUpdates) (*models.Todo, error) {
	todo, err := s.GetTodoByID(id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if updates.Text != nil {
		if *updates.Text == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "todo text cannot be empty")
		}
		fields["text"] = *updates.Text
	}
	if updates.Completed != nil {
		fields["completed"] = *updates.Completed
	}
	if updates.Link != nil {
		fields["link"] = normalizeNullable(updates.Link)
	}
	if updates.Price != nil {
		fields["price"] = normalizeNullable(updates.Price)
	}
	if updates.Notes != nil {
		fields["notes"] = normalizeNullable(updates.Notes)
	}
	if updates.Position != nil {
		fields["position"] = *updates.Position
	}
	if updates.CategoryID != nil {
		target := normalizeNullable(updates.CategoryID)
		if target != nil {
			if err := s.checkCategory(*target, todo.ChecklistID); err != nil {
				return nil, err
			}
		}
		fields["category_id"] = target
	}

	if len(fields) > 0 {
		if err := s.db.Model(todo).Updates(fields).Error; err != nil {
			return nil, storeError(err)
		}
	}
	return todo, nil
}

// ToggleTodo flips a todo's completed flag.
func (s *todoService) ToggleTodo(id string) (*models.Todo, error) {
	todo, err := s.GetTodoByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(todo).Update("completed", !todo.Completed).Error; err != nil {
		return nil, storeError(err)
	}
	return todo, nil
}

// DeleteTodo removes a todo. Deleting an absent id is not an error.
func (s *todoService) DeleteTodo(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Todo{}).Error; err != nil {
		return storeError(err)
	}
	return nil
}
