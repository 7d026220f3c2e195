package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/models"
)

// projectService handles project-related business logic.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// CreateProject creates a new project.
func (s *projectService) CreateProject(name string) (*models.Project, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}

	project := &models.Project{Name: name}
	if err := s.db.Create(project).Error; err != nil {
		return nil, storeError(err)
	}
	return project, nil
}

// GetAllProjects retrieves all projects, newest first.
func (s *projectService) GetAllProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, storeError(err)
	}
	return projects, nil
}

// GetProjectByID retrieves a single project.
func (s *projectService) GetProjectByID(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, storeError(err)
	}
	return &project, nil
}

// UpdateProject renames a project.
func (s *projectService) UpdateProject(id, name string) (*models.Project, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}

	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(project).Update("name", name).Error; err != nil {
		return nil, storeError(err)
	}
	return project, nil
}

// DeleteProject removes a project and everything it owns, walking the
// dependency chain bottom-up: todos, categories, checklists, project.
// Deleting an id that is already absent is not an error.
func (s *projectService) DeleteProject(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		checklistIDs := func() *gorm.DB {
			return tx.Model(&models.Checklist{}).Select("id").Where("project_id = ?", id)
		}

		if err := tx.Where("checklist_id IN (?)", checklistIDs()).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checklist_id IN (?)", checklistIDs()).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Checklist{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}
