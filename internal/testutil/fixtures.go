package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"merkliste/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProject creates a project with a unique name.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	project := &models.Project{
		Name: fmt.Sprintf("Test Project %d", nextID()),
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestChecklist creates a checklist row for the given project.
// Unlike the checklist service it does not seed a default category, so
// tests control the category set exactly.
func CreateTestChecklist(t *testing.T, db *gorm.DB, projectID string) *models.Checklist {
	t.Helper()

	checklist := &models.Checklist{
		ProjectID: projectID,
		Title:     fmt.Sprintf("Test Checklist %d", nextID()),
	}
	if err := db.Create(checklist).Error; err != nil {
		t.Fatalf("failed to create test checklist: %v", err)
	}
	return checklist
}

// CreateTestCategory creates a category at the given position.
func CreateTestCategory(t *testing.T, db *gorm.DB, checklistID string, position int) *models.Category {
	t.Helper()

	category := &models.Category{
		ChecklistID: checklistID,
		Name:        fmt.Sprintf("Test Category %d", nextID()),
		Position:    position,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTodo creates a todo in the given container (nil categoryID
// puts it in the uncategorized bucket) at the given position.
func CreateTestTodo(t *testing.T, db *gorm.DB, checklistID string, categoryID *string, position int) *models.Todo {
	t.Helper()

	todo := &models.Todo{
		ChecklistID: checklistID,
		CategoryID:  categoryID,
		Text:        fmt.Sprintf("Test Todo %d", nextID()),
		Position:    position,
	}
	if err := db.Create(todo).Error; err != nil {
		t.Fatalf("failed to create test todo: %v", err)
	}
	return todo
}
