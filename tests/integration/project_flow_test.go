package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestProjectFlow(t *testing.T) {
	t.Run("create_read_update_delete", func(t *testing.T) {
		app := setupApp(t)

		projectID := app.createProject(t, "Umzug")

		rec := app.request("GET", "/api/v1/projects/"+projectID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get project failed: %d %s", rec.Code, rec.Body.String())
		}
		project := parseJSON(t, rec)["project"].(map[string]interface{})
		if project["name"] != "Umzug" {
			t.Errorf("expected name Umzug, got %v", project["name"])
		}

		rec = app.request("PUT", "/api/v1/projects/"+projectID, `{"name":"Umzug 2026"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("update project failed: %d %s", rec.Code, rec.Body.String())
		}
		project = parseJSON(t, rec)["project"].(map[string]interface{})
		if project["name"] != "Umzug 2026" {
			t.Errorf("expected renamed project, got %v", project["name"])
		}

		rec = app.request("DELETE", "/api/v1/projects/"+projectID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete project failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/projects/"+projectID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "PROJECT_NOT_FOUND" {
			t.Errorf("expected PROJECT_NOT_FOUND, got %s", code)
		}
	})

	t.Run("list_returns_newest_first", func(t *testing.T) {
		app := setupApp(t)

		app.createProject(t, "Erstes")
		app.createProject(t, "Zweites")

		rec := app.request("GET", "/api/v1/projects", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list projects failed: %d %s", rec.Code, rec.Body.String())
		}
		projects := parseJSON(t, rec)["projects"].([]interface{})
		if len(projects) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(projects))
		}
	})

	t.Run("invalid_id_rejected", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("GET", "/api/v1/projects/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %s", code)
		}
	})

	t.Run("missing_name_rejected", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("POST", "/api/v1/projects", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete_cascades_to_checklist_contents", func(t *testing.T) {
		app := setupApp(t)

		projectID := app.createProject(t, "Umzug")
		checklistID := app.createChecklist(t, projectID, "Kisten")

		rec := app.request("POST", fmt.Sprintf("/api/v1/checklists/%s/todos", checklistID), `{"text":"Packen"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create todo failed: %d %s", rec.Code, rec.Body.String())
		}
		todo := parseJSON(t, rec)["todo"].(map[string]interface{})
		todoID := todo["id"].(string)

		rec = app.request("DELETE", "/api/v1/projects/"+projectID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete project failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/todos/"+todoID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected todo gone after project delete, got %d", rec.Code)
		}
		rec = app.request("GET", "/api/v1/checklists/"+checklistID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected checklist gone after project delete, got %d", rec.Code)
		}
	})
}

func TestChecklistFlow(t *testing.T) {
	t.Run("create_seeds_default_category", func(t *testing.T) {
		app := setupApp(t)

		projectID := app.createProject(t, "Umzug")
		checklistID := app.createChecklist(t, projectID, "Kisten")

		rec := app.request("GET", fmt.Sprintf("/api/v1/checklists/%s/categories", checklistID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list categories failed: %d %s", rec.Code, rec.Body.String())
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 seeded category, got %d", len(categories))
		}
		category := categories[0].(map[string]interface{})
		if category["name"] != "General" {
			t.Errorf("expected General, got %v", category["name"])
		}
	})

	t.Run("second_checklist_conflicts", func(t *testing.T) {
		app := setupApp(t)

		projectID := app.createProject(t, "Umzug")
		app.createChecklist(t, projectID, "Kisten")

		body := fmt.Sprintf(`{"project_id":%q,"title":"Noch eine"}`, projectID)
		rec := app.request("POST", "/api/v1/checklists", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "CHECKLIST_EXISTS" {
			t.Errorf("expected CHECKLIST_EXISTS, got %s", code)
		}
	})

	t.Run("retitle_and_delete", func(t *testing.T) {
		app := setupApp(t)

		projectID := app.createProject(t, "Umzug")
		checklistID := app.createChecklist(t, projectID, "Kisten")

		rec := app.request("PUT", "/api/v1/checklists/"+checklistID, `{"title":"Kartons"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("update checklist failed: %d %s", rec.Code, rec.Body.String())
		}
		checklist := parseJSON(t, rec)["checklist"].(map[string]interface{})
		if checklist["title"] != "Kartons" {
			t.Errorf("expected title Kartons, got %v", checklist["title"])
		}

		rec = app.request("DELETE", "/api/v1/checklists/"+checklistID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete checklist failed: %d %s", rec.Code, rec.Body.String())
		}
		rec = app.request("GET", "/api/v1/checklists/"+checklistID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})
}
