package services

import (
	"testing"

	"merkliste/internal/testutil"
	"merkliste/internal/tree"
	"merkliste/internal/uuid"
)

func TestGetChecklistWithCategories(t *testing.T) {
	t.Run("no_checklist_yields_nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)

		got, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if got != nil {
			t.Fatalf("expected nil tree, got %+v", got)
		}
	})

	t.Run("partitions_todos_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		kitchen := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		bath := testutil.CreateTestCategory(t, db, checklist.ID, 1)
		inKitchen := testutil.CreateTestTodo(t, db, checklist.ID, &kitchen.ID, 0)
		loose := testutil.CreateTestTodo(t, db, checklist.ID, nil, 0)

		got, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if got == nil {
			t.Fatal("expected a tree")
		}
		if got.ID != checklist.ID || got.ProjectID != project.ID {
			t.Errorf("unexpected tree identity: %s / %s", got.ID, got.ProjectID)
		}
		if len(got.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(got.Categories))
		}
		if got.Categories[0].ID != kitchen.ID || got.Categories[1].ID != bath.ID {
			t.Error("expected categories in position order")
		}
		if len(got.Categories[0].Todos) != 1 || got.Categories[0].Todos[0].ID != inKitchen.ID {
			t.Error("expected kitchen todo inside its category")
		}
		if got.Categories[1].Todos == nil || len(got.Categories[1].Todos) != 0 {
			t.Error("expected empty category to carry an empty todo slice")
		}
		if len(got.UncategorizedTodos) != 1 || got.UncategorizedTodos[0].ID != loose.ID {
			t.Error("expected loose todo in the uncategorized bucket")
		}
		if got.UncategorizedTodos[0].CategoryID != nil {
			t.Error("categorized view must not carry per-todo category ids")
		}
	})
}

func TestGetChecklistWithTodos(t *testing.T) {
	t.Run("no_checklist_yields_nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)

		got, err := svc.GetChecklistWithTodos(project.ID)
		testutil.AssertNoError(t, err)
		if got != nil {
			t.Fatalf("expected nil checklist, got %+v", got)
		}
	})

	t.Run("flat_view_keeps_category_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		category := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		testutil.CreateTestTodo(t, db, checklist.ID, &category.ID, 0)

		got, err := svc.GetChecklistWithTodos(project.ID)
		testutil.AssertNoError(t, err)
		if got == nil {
			t.Fatal("expected a checklist")
		}
		if len(got.Todos) != 1 {
			t.Fatalf("expected 1 todo, got %d", len(got.Todos))
		}
		if got.Todos[0].CategoryID == nil || *got.Todos[0].CategoryID != category.ID {
			t.Error("expected flat todo to carry its category id")
		}
	})
}

func TestSaveChecklistWithCategories(t *testing.T) {
	t.Run("creates_empty_checklist_from_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)

		desired := tree.ChecklistTree{
			ID:                 uuid.New(),
			Title:              "Projektaufgaben",
			Categories:         []tree.CategoryNode{},
			UncategorizedTodos: []tree.TodoItem{},
			ProjectID:          project.ID,
		}
		saved, err := svc.SaveChecklistWithCategories(desired)
		testutil.AssertNoError(t, err)
		if saved.ID != desired.ID || saved.Title != "Projektaufgaben" {
			t.Errorf("unexpected saved checklist: %+v", saved)
		}
		if len(saved.Categories) != 0 || len(saved.UncategorizedTodos) != 0 {
			t.Error("expected empty checklist after empty snapshot")
		}

		refetched, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if refetched == nil || refetched.ID != desired.ID {
			t.Error("expected refetch to return the saved checklist")
		}
	})

	t.Run("round_trip_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		category := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		testutil.CreateTestTodo(t, db, checklist.ID, &category.ID, 0)
		testutil.CreateTestTodo(t, db, checklist.ID, nil, 0)

		loaded, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)

		saved, err := svc.SaveChecklistWithCategories(*loaded)
		testutil.AssertNoError(t, err)

		if saved.ID != loaded.ID || saved.Title != loaded.Title {
			t.Error("expected save of unmodified tree to change nothing")
		}
		if len(saved.Categories) != len(loaded.Categories) {
			t.Fatalf("category count changed: %d -> %d", len(loaded.Categories), len(saved.Categories))
		}
		for i := range saved.Categories {
			if saved.Categories[i].ID != loaded.Categories[i].ID ||
				len(saved.Categories[i].Todos) != len(loaded.Categories[i].Todos) {
				t.Error("expected categories unchanged after round trip")
			}
		}
		if len(saved.UncategorizedTodos) != len(loaded.UncategorizedTodos) {
			t.Error("expected uncategorized bucket unchanged after round trip")
		}
	})

	t.Run("moves_todo_between_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		source := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		target := testutil.CreateTestCategory(t, db, checklist.ID, 1)
		moving := testutil.CreateTestTodo(t, db, checklist.ID, &source.ID, 0)
		testutil.CreateTestTodo(t, db, checklist.ID, &target.ID, 0)

		loaded, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if !loaded.MoveTodoToCategory(moving.ID, &target.ID) {
			t.Fatal("expected move to find the todo")
		}

		saved, err := svc.SaveChecklistWithCategories(*loaded)
		testutil.AssertNoError(t, err)

		for _, node := range saved.Categories {
			switch node.ID {
			case source.ID:
				if len(node.Todos) != 0 {
					t.Errorf("expected source category emptied, got %d todos", len(node.Todos))
				}
			case target.ID:
				if len(node.Todos) != 2 {
					t.Fatalf("expected 2 todos in target category, got %d", len(node.Todos))
				}
				if node.Todos[1].ID != moving.ID {
					t.Error("expected moved todo at the end of the target category")
				}
			}
		}
	})

	t.Run("removed_category_orphans_its_todos", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		category := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		orphan := testutil.CreateTestTodo(t, db, checklist.ID, &category.ID, 0)

		loaded, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if !loaded.DeleteCategory(category.ID) {
			t.Fatal("expected delete to find the category")
		}

		saved, err := svc.SaveChecklistWithCategories(*loaded)
		testutil.AssertNoError(t, err)
		if len(saved.Categories) != 0 {
			t.Fatalf("expected no categories, got %d", len(saved.Categories))
		}
		if len(saved.UncategorizedTodos) != 1 || saved.UncategorizedTodos[0].ID != orphan.ID {
			t.Error("expected orphaned todo in the uncategorized bucket")
		}
	})

	t.Run("todos_absent_from_snapshot_are_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		todos := NewTodoService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		keep := testutil.CreateTestTodo(t, db, checklist.ID, nil, 0)
		drop := testutil.CreateTestTodo(t, db, checklist.ID, nil, 1)

		loaded, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if !loaded.DeleteTodo(drop.ID) {
			t.Fatal("expected delete to find the todo")
		}

		saved, err := svc.SaveChecklistWithCategories(*loaded)
		testutil.AssertNoError(t, err)
		if len(saved.UncategorizedTodos) != 1 || saved.UncategorizedTodos[0].ID != keep.ID {
			t.Error("expected only the kept todo to survive")
		}

		_, err = todos.GetTodoByID(drop.ID)
		testutil.AssertAppError(t, err, "TODO_NOT_FOUND")
	})

	t.Run("inserts_rows_with_client_minted_ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)

		categoryID := uuid.New()
		todoID := uuid.New()
		desired := tree.ChecklistTree{
			ID:    uuid.New(),
			Title: "Einkauf",
			Categories: []tree.CategoryNode{
				{
					ID:       categoryID,
					Name:     "Küche",
					Position: 0,
					Todos: []tree.TodoItem{
						{ID: todoID, Text: "Milch", Position: 0},
					},
				},
			},
			UncategorizedTodos: []tree.TodoItem{},
			ProjectID:          project.ID,
		}

		saved, err := svc.SaveChecklistWithCategories(desired)
		testutil.AssertNoError(t, err)
		if len(saved.Categories) != 1 || saved.Categories[0].ID != categoryID {
			t.Fatal("expected client-minted category id preserved")
		}
		if len(saved.Categories[0].Todos) != 1 || saved.Categories[0].Todos[0].ID != todoID {
			t.Fatal("expected client-minted todo id preserved")
		}
	})

	t.Run("rejects_snapshot_without_ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)

		_, err := svc.SaveChecklistWithCategories(tree.ChecklistTree{Title: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSaveChecklist(t *testing.T) {
	t.Run("new_checklist_seeds_default_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)

		todoID := uuid.New()
		desired := tree.FlatChecklist{
			ID:    uuid.New(),
			Title: "Einkauf",
			Todos: []tree.TodoItem{
				{ID: todoID, Text: "Brot", Position: 0},
			},
			ProjectID: project.ID,
		}

		saved, err := svc.SaveChecklist(desired)
		testutil.AssertNoError(t, err)
		if len(saved.Todos) != 1 {
			t.Fatalf("expected 1 todo, got %d", len(saved.Todos))
		}
		if saved.Todos[0].CategoryID == nil {
			t.Fatal("expected uncategorized snapshot todo assigned to the default category")
		}

		categorized, err := svc.GetChecklistWithCategories(project.ID)
		testutil.AssertNoError(t, err)
		if len(categorized.Categories) != 1 || categorized.Categories[0].Name != "General" {
			t.Fatal("expected seeded General category")
		}
		if len(categorized.Categories[0].Todos) != 1 || categorized.Categories[0].Todos[0].ID != todoID {
			t.Error("expected the todo inside the default category")
		}
	})

	t.Run("update_preserves_category_assignment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		category := testutil.CreateTestCategory(t, db, checklist.ID, 0)
		todo := testutil.CreateTestTodo(t, db, checklist.ID, &category.ID, 0)

		loaded, err := svc.GetChecklistWithTodos(project.ID)
		testutil.AssertNoError(t, err)
		loaded.Todos[0].Text = "geändert"
		loaded.Todos[0].CategoryID = nil

		saved, err := svc.SaveChecklist(*loaded)
		testutil.AssertNoError(t, err)
		if saved.Todos[0].Text != "geändert" {
			t.Errorf("expected updated text, got %s", saved.Todos[0].Text)
		}
		if saved.Todos[0].CategoryID == nil || *saved.Todos[0].CategoryID != category.ID {
			t.Errorf("expected category assignment of todo %s preserved", todo.ID)
		}
	})

	t.Run("round_trip_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)
		project := testutil.CreateTestProject(t, db)
		checklist := testutil.CreateTestChecklist(t, db, project.ID)
		testutil.CreateTestTodo(t, db, checklist.ID, nil, 0)
		testutil.CreateTestTodo(t, db, checklist.ID, nil, 1)

		loaded, err := svc.GetChecklistWithTodos(project.ID)
		testutil.AssertNoError(t, err)

		saved, err := svc.SaveChecklist(*loaded)
		testutil.AssertNoError(t, err)
		if len(saved.Todos) != 2 {
			t.Fatalf("expected 2 todos, got %d", len(saved.Todos))
		}
		for i := range saved.Todos {
			if saved.Todos[i].ID != loaded.Todos[i].ID {
				t.Error("expected todo ids unchanged after round trip")
			}
		}
	})

	t.Run("rejects_snapshot_without_ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTreeService(db)

		_, err := svc.SaveChecklist(tree.FlatChecklist{Title: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
