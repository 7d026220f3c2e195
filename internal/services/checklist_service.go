package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/models"
)

// checklistService handles checklist-related business logic.
type checklistService struct {
	db *gorm.DB
}

// NewChecklistService creates a new ChecklistServicer.
func NewChecklistService(db *gorm.DB) ChecklistServicer {
	return &checklistService{db: db}
}

// CreateChecklist creates a checklist for a project together with its
// default "General" category. A project holds at most one checklist;
// creating a second one fails with CHECKLIST_EXISTS.
func (s *checklistService) CreateChecklist(projectID, title string) (*models.Checklist, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "checklist title is required")
	}

	var project models.Project
	if err := s.db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, storeError(err)
	}

	var count int64
	if err := s.db.Model(&models.Checklist{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return nil, storeError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrChecklistExists
	}

	checklist := &models.Checklist{ProjectID: projectID, Title: title}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checklist).Error; err != nil {
			return err
		}
		defaultCategory := &models.Category{
			ChecklistID: checklist.ID,
			Name:        models.DefaultCategoryName,
			Position:    0,
		}
		return tx.Create(defaultCategory).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return checklist, nil
}

// GetChecklistByID retrieves a single checklist.
func (s *checklistService) GetChecklistByID(id string) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := s.db.Where("id = ?", id).First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChecklistNotFound
		}
		return nil, storeError(err)
	}
	return &checklist, nil
}

// GetChecklistsByProject retrieves a project's checklists, oldest
// first. With the one-checklist invariant in place this returns at most
// one row, but legacy data with duplicates still resolves
// deterministically.
func (s *checklistService) GetChecklistsByProject(projectID string) ([]models.Checklist, error) {
	var checklists []models.Checklist
	if err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&checklists).Error; err != nil {
		return nil, storeError(err)
	}
	return checklists, nil
}

// UpdateChecklist retitles a checklist.
func (s *checklistService) UpdateChecklist(id, title string) (*models.Checklist, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "checklist title is required")
	}

	checklist, err := s.GetChecklistByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(checklist).Update("title", title).Error; err != nil {
		return nil, storeError(err)
	}
	return checklist, nil
}

// DeleteChecklist removes a checklist with its todos and categories.
// Deleting an id that is already absent is not an error.
func (s *checklistService) DeleteChecklist(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checklist_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Checklist{}).Error
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}
