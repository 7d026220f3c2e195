package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// nextPosition computes the next-available position among the rows of
// model scoped by the given condition: max(position)+1, or 0 when the
// scope is empty.
func nextPosition(db *gorm.DB, model interface{}, query string, args ...interface{}) (int, error) {
	var position int
	err := db.Model(model).
		Where(query, args...).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&position).Error
	return position, err
}

// CreateCategory creates a category at the end of its checklist's
// category sequence.
func (s *categoryService) CreateCategory(checklistID, name string, color *string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var checklist models.Checklist
	if err := s.db.Where("id = ?", checklistID).First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChecklistNotFound
		}
		return nil, storeError(err)
	}

	position, err := nextPosition(s.db, &models.Category{}, "checklist_id = ?", checklistID)
	if err != nil {
		return nil, storeError(err)
	}

	category := &models.Category{
		ChecklistID: checklistID,
		Name:        name,
		Color:       normalizeNullable(color),
		Position:    position,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, storeError(err)
	}
	return category, nil
}

// GetCategoriesByChecklist retrieves a checklist's categories in
// display order.
func (s *categoryService) GetCategoriesByChecklist(checklistID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("checklist_id = ?", checklistID).
		Order("position ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, storeError(err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a single category.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, storeError(err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update. Only the fields present in
// updates change; an explicit empty color clears the swatch.
func (s *categoryService) UpdateCategory(id string, updates CategoryUpdates) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if updates.Name != nil {
		if *updates.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		fields["name"] = *updates.Name
	}
	if updates.Color != nil {
		fields["color"] = normalizeNullable(updates.Color)
	}
	if updates.Position != nil {
		fields["position"] = *updates.Position
	}

	if len(fields) > 0 {
		if err := s.db.Model(category).Updates(fields).Error; err != nil {
			return nil, storeError(err)
		}
	}
	return category, nil
}

// DeleteCategory reassigns the category's todos to the uncategorized
// bucket, then removes the category row. Todos are never deleted as a
// side effect, and deleting an absent id is not an error.
func (s *categoryService) DeleteCategory(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteCategoryTx(tx, id)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

// deleteCategoryTx is the orphan-reassigning delete, shared with the
// reconciler which runs it inside its own transaction.
func deleteCategoryTx(tx *gorm.DB, id string) error {
	if err := tx.Model(&models.Todo{}).Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Category{}).Error
}

// normalizeNullable maps a nil or empty optional string to NULL.
func normalizeNullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
