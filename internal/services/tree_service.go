package services

import (
	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/models"
	"merkliste/internal/tree"
)

// treeService assembles the denormalized checklist views and converges
// the store onto client-held desired-state snapshots. Each save runs in
// a single transaction, so a failed reconciliation leaves the store
// untouched.
type treeService struct {
	db *gorm.DB
}

// NewTreeService creates a new TreeServicer.
func NewTreeService(db *gorm.DB) TreeServicer {
	return &treeService{db: db}
}

// GetChecklistWithCategories loads the categorized view of a project's
// checklist: categories in display order, each holding its todos, plus
// the uncategorized bucket. Returns (nil, nil) when the project has no
// checklist.
func (s *treeService) GetChecklistWithCategories(projectID string) (*tree.ChecklistTree, error) {
	return assembleCategorized(s.db, projectID)
}

// GetChecklistWithTodos loads the flat legacy view: one ordered todo
// sequence, category grouping ignored. Returns (nil, nil) when the
// project has no checklist.
func (s *treeService) GetChecklistWithTodos(projectID string) (*tree.FlatChecklist, error) {
	return assembleFlat(s.db, projectID)
}

// firstChecklist returns the project's checklist, or nil if none
// exists. Legacy data with duplicates resolves to the oldest row.
func firstChecklist(db *gorm.DB, projectID string) (*models.Checklist, error) {
	var checklists []models.Checklist
	if err := db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Limit(1).
		Find(&checklists).Error; err != nil {
		return nil, storeError(err)
	}
	if len(checklists) == 0 {
		return nil, nil
	}
	return &checklists[0], nil
}

func assembleCategorized(db *gorm.DB, projectID string) (*tree.ChecklistTree, error) {
	checklist, err := firstChecklist(db, projectID)
	if err != nil || checklist == nil {
		return nil, err
	}

	var categories []models.Category
	if err := db.Where("checklist_id = ?", checklist.ID).
		Order("position ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, storeError(err)
	}

	var todos []models.Todo
	if err := db.Where("checklist_id = ?", checklist.ID).
		Order("position ASC, created_at ASC").
		Find(&todos).Error; err != nil {
		return nil, storeError(err)
	}

	// Partition todos by category, preserving their own order.
	byCategory := make(map[string][]tree.TodoItem)
	uncategorized := []tree.TodoItem{}
	for _, todo := range todos {
		item := todoItem(todo, false)
		if todo.CategoryID == nil {
			uncategorized = append(uncategorized, item)
			continue
		}
		byCategory[*todo.CategoryID] = append(byCategory[*todo.CategoryID], item)
	}

	nodes := make([]tree.CategoryNode, 0, len(categories))
	for _, category := range categories {
		todos := byCategory[category.ID]
		if todos == nil {
			todos = []tree.TodoItem{}
		}
		nodes = append(nodes, tree.CategoryNode{
			ID:       category.ID,
			Name:     category.Name,
			Color:    category.Color,
			Position: category.Position,
			Todos:    todos,
		})
	}

	return &tree.ChecklistTree{
		ID:                 checklist.ID,
		Title:              checklist.Title,
		Categories:         nodes,
		UncategorizedTodos: uncategorized,
		ProjectID:          checklist.ProjectID,
	}, nil
}

func assembleFlat(db *gorm.DB, projectID string) (*tree.FlatChecklist, error) {
	checklist, err := firstChecklist(db, projectID)
	if err != nil || checklist == nil {
		return nil, err
	}

	var todos []models.Todo
	if err := db.Where("checklist_id = ?", checklist.ID).
		Order("position ASC, created_at ASC").
		Find(&todos).Error; err != nil {
		return nil, storeError(err)
	}

	items := make([]tree.TodoItem, 0, len(todos))
	for _, todo := range todos {
		items = append(items, todoItem(todo, true))
	}

	return &tree.FlatChecklist{
		ID:        checklist.ID,
		Title:     checklist.Title,
		Todos:     items,
		ProjectID: checklist.ProjectID,
	}, nil
}

// todoItem converts a row to the view shape. The flat view keeps the
// category reference; the categorized view drops it because the
// containing node carries it.
func todoItem(todo models.Todo, withCategory bool) tree.TodoItem {
	item := tree.TodoItem{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		Position:  todo.Position,
		Link:      todo.Link,
		Price:     todo.Price,
		Notes:     todo.Notes,
	}
	if withCategory {
		item.CategoryID = todo.CategoryID
	}
	return item
}

// SaveChecklistWithCategories converges the store onto the desired
// tree: the checklist row is upserted, categories are diffed by id
// (removed ones reassign their todos to the uncategorized bucket,
// surviving ones are overwritten last-writer-wins, new ones are
// inserted with the client-minted id), every todo in the snapshot is
// upserted into the container it was found in, and todos absent from
// the snapshot are deleted. Returns the freshly reassembled tree as the
// client's new baseline.
func (s *treeService) SaveChecklistWithCategories(desired tree.ChecklistTree) (*tree.ChecklistTree, error) {
	if desired.ID == "" || desired.ProjectID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "checklist id and project_id are required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertChecklist(tx, desired.ID, desired.ProjectID, desired.Title, false); err != nil {
			return err
		}

		// Category diff.
		var existing []models.Category
		if err := tx.Where("checklist_id = ?", desired.ID).Find(&existing).Error; err != nil {
			return err
		}
		existingIDs := make(map[string]bool, len(existing))
		for _, category := range existing {
			existingIDs[category.ID] = true
		}
		desiredIDs := make(map[string]bool, len(desired.Categories))
		for _, node := range desired.Categories {
			desiredIDs[node.ID] = true
		}

		for _, category := range existing {
			if !desiredIDs[category.ID] {
				if err := deleteCategoryTx(tx, category.ID); err != nil {
					return err
				}
			}
		}

		for _, node := range desired.Categories {
			if existingIDs[node.ID] {
				fields := map[string]interface{}{
					"name":     node.Name,
					"color":    normalizeNullable(node.Color),
					"position": node.Position,
				}
				if err := tx.Model(&models.Category{}).Where("id = ?", node.ID).Updates(fields).Error; err != nil {
					return err
				}
			} else {
				category := &models.Category{
					Base:        models.Base{ID: node.ID},
					ChecklistID: desired.ID,
					Name:        node.Name,
					Color:       normalizeNullable(node.Color),
					Position:    node.Position,
				}
				if err := tx.Create(category).Error; err != nil {
					return err
				}
			}
		}

		// Todo upserts: each todo is written into whatever container
		// the snapshot holds it in. This is how a drag between
		// categories persists; the reconciler never computes "category
		// changed".
		snapshotIDs := make(map[string]bool)
		for _, node := range desired.Categories {
			categoryID := node.ID
			for _, item := range node.Todos {
				snapshotIDs[item.ID] = true
				if err := upsertTodo(tx, item, desired.ID, &categoryID); err != nil {
					return err
				}
			}
		}
		for _, item := range desired.UncategorizedTodos {
			snapshotIDs[item.ID] = true
			if err := upsertTodo(tx, item, desired.ID, nil); err != nil {
				return err
			}
		}

		return deleteMissingTodos(tx, desired.ID, snapshotIDs)
	})
	if err != nil {
		return nil, wrapReconcileError(err)
	}

	return assembleCategorized(s.db, desired.ProjectID)
}

// SaveChecklist is the legacy flat-model reconciliation: no category
// diff, but a newly created checklist gets the default "General"
// category, which also becomes the container for snapshot todos that
// carry no category reference.
func (s *treeService) SaveChecklist(desired tree.FlatChecklist) (*tree.FlatChecklist, error) {
	if desired.ID == "" || desired.ProjectID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "checklist id and project_id are required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertChecklist(tx, desired.ID, desired.ProjectID, desired.Title, true); err != nil {
			return err
		}

		snapshotIDs := make(map[string]bool, len(desired.Todos))
		for _, item := range desired.Todos {
			snapshotIDs[item.ID] = true
		}
		if err := deleteMissingTodos(tx, desired.ID, snapshotIDs); err != nil {
			return err
		}

		// Default container for todos without an explicit category.
		var defaults []models.Category
		if err := tx.Where("checklist_id = ?", desired.ID).
			Order("position ASC, created_at ASC").
			Limit(1).
			Find(&defaults).Error; err != nil {
			return err
		}
		var defaultCategoryID *string
		if len(defaults) > 0 {
			defaultCategoryID = &defaults[0].ID
		}

		for _, item := range desired.Todos {
			var count int64
			if err := tx.Model(&models.Todo{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				// The flat model knows nothing about containers, so
				// category_id is left alone on update.
				fields := map[string]interface{}{
					"text":      item.Text,
					"completed": item.Completed,
					"position":  item.Position,
					"price":     normalizeNullable(item.Price),
					"link":      normalizeNullable(item.Link),
					"notes":     normalizeNullable(item.Notes),
				}
				if err := tx.Model(&models.Todo{}).Where("id = ?", item.ID).Updates(fields).Error; err != nil {
					return err
				}
				continue
			}

			categoryID := normalizeNullable(item.CategoryID)
			if categoryID == nil {
				categoryID = defaultCategoryID
			}
			todo := &models.Todo{
				Base:        models.Base{ID: item.ID},
				ChecklistID: desired.ID,
				CategoryID:  categoryID,
				Text:        item.Text,
				Completed:   item.Completed,
				Position:    item.Position,
				Price:       normalizeNullable(item.Price),
				Link:        normalizeNullable(item.Link),
				Notes:       normalizeNullable(item.Notes),
			}
			if err := tx.Create(todo).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, wrapReconcileError(err)
	}

	return assembleFlat(s.db, desired.ProjectID)
}

// upsertChecklist inserts the checklist row if the client-minted id is
// unknown, otherwise overwrites the title. withDefaultCategory seeds
// the "General" category on insert (flat legacy path).
func upsertChecklist(tx *gorm.DB, id, projectID, title string, withDefaultCategory bool) error {
	var count int64
	if err := tx.Model(&models.Checklist{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return tx.Model(&models.Checklist{}).Where("id = ?", id).Update("title", title).Error
	}

	checklist := &models.Checklist{
		Base:      models.Base{ID: id},
		ProjectID: projectID,
		Title:     title,
	}
	if err := tx.Create(checklist).Error; err != nil {
		return err
	}
	if withDefaultCategory {
		defaultCategory := &models.Category{
			ChecklistID: id,
			Name:        models.DefaultCategoryName,
			Position:    0,
		}
		return tx.Create(defaultCategory).Error
	}
	return nil
}

// upsertTodo writes one snapshot todo: update when the id is known to
// the store, insert with the client-minted id otherwise. The container
// is always set to where the snapshot holds the todo.
func upsertTodo(tx *gorm.DB, item tree.TodoItem, checklistID string, categoryID *string) error {
	var count int64
	if err := tx.Model(&models.Todo{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fields := map[string]interface{}{
			"text":        item.Text,
			"completed":   item.Completed,
			"category_id": categoryID,
			"position":    item.Position,
			"price":       normalizeNullable(item.Price),
			"link":        normalizeNullable(item.Link),
			"notes":       normalizeNullable(item.Notes),
		}
		return tx.Model(&models.Todo{}).Where("id = ?", item.ID).Updates(fields).Error
	}

	todo := &models.Todo{
		Base:        models.Base{ID: item.ID},
		ChecklistID: checklistID,
		CategoryID:  categoryID,
		Text:        item.Text,
		Completed:   item.Completed,
		Position:    item.Position,
		Price:       normalizeNullable(item.Price),
		Link:        normalizeNullable(item.Link),
		Notes:       normalizeNullable(item.Notes),
	}
	return tx.Create(todo).Error
}

// deleteMissingTodos removes every stored todo of the checklist whose
// id does not appear anywhere in the desired snapshot.
func deleteMissingTodos(tx *gorm.DB, checklistID string, snapshotIDs map[string]bool) error {
	var stored []models.Todo
	if err := tx.Where("checklist_id = ?", checklistID).Find(&stored).Error; err != nil {
		return err
	}
	for _, todo := range stored {
		if !snapshotIDs[todo.ID] {
			if err := tx.Where("id = ?", todo.ID).Delete(&models.Todo{}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// wrapReconcileError keeps AppErrors intact and maps raw store errors.
func wrapReconcileError(err error) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return storeError(err)
}
